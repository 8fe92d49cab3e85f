package game

import (
	"fmt"
	"math"

	"route_planner/internal/models"
)

const (
	// shareValueScale converts daily profit into share value change.
	shareValueScale = 40_000_000

	baselineFlights   = 4
	cargoLargeShare   = 0.8
	cargoHeavyShare   = 0.2
	cargoCO2UnitScale = 500
)

// DefaultSalaries is the daily salary per staff member.
var DefaultSalaries = models.Salaries{
	Pilot:    200,
	Crew:     150,
	Engineer: 250,
	Tech:     225,
}

func DefaultProfitOptions() models.ProfitOptions {
	return models.ProfitOptions{
		FuelPrice:  500,
		CO2Price:   120,
		Activity:   18,
		Reputation: 100,
		Mode:       models.Realism,
	}
}

type Expenses struct {
	Fuel        float64 `json:"fuel"`
	CO2         float64 `json:"co2"`
	Maintenance float64 `json:"maintenance"`
	Staff       float64 `json:"staff"`
}

func (e Expenses) Total() float64 {
	return e.Fuel + e.CO2 + e.Maintenance + e.Staff
}

func (e Expenses) scale(f float64) Expenses {
	return Expenses{Fuel: e.Fuel * f, CO2: e.CO2 * f, Maintenance: e.Maintenance * f, Staff: e.Staff * f}
}

func (e Expenses) add(o Expenses) Expenses {
	return Expenses{
		Fuel:        e.Fuel + o.Fuel,
		CO2:         e.CO2 + o.CO2,
		Maintenance: e.Maintenance + o.Maintenance,
		Staff:       e.Staff + o.Staff,
	}
}

// ProfitResult holds daily figures. Income, Expenses and Profit are rounded
// to whole dollars; Breakdown is unrounded.
type ProfitResult struct {
	Profit    float64  `json:"profit"`
	Income    float64  `json:"income"`
	Expenses  float64  `json:"expenses"`
	Breakdown Expenses `json:"breakdown"`
}

// ShareValueGrowth is the daily share value change attributable to the
// given income and expenses.
func (r ProfitResult) ShareValueGrowth() float64 {
	return ShareValueGrowth(r.Income, r.Expenses)
}

func ShareValueGrowth(income, expenses float64) float64 {
	return income/shareValueScale - expenses/shareValueScale
}

func validateOptions(opts models.ProfitOptions) error {
	if opts.Reputation < 0 || opts.Reputation > 100 {
		return fmt.Errorf("%.1f: %w", opts.Reputation, ErrInvalidReputation)
	}
	if opts.Activity < 0 || opts.Activity > 24 {
		return fmt.Errorf("%.1f: %w", opts.Activity, ErrInvalidActivity)
	}
	if opts.Mode != models.Realism && opts.Mode != models.Easy {
		return fmt.Errorf("%v: %w", opts.Mode, models.ErrUnknownGameMode)
	}
	return nil
}

// Profit computes the daily profit of one plane flying a route flights
// times a day with the given configuration. The plane is adjusted for
// opts.Mode internally and must not be pre-adjusted by the caller.
func Profit(plane models.Plane, cfg models.Configuration, distance float64, flights int, opts models.ProfitOptions) (ProfitResult, error) {
	if plane.Capacity <= 0 {
		return ProfitResult{}, fmt.Errorf("%s: %w", plane.Name, ErrInvalidCapacity)
	}
	if flights < 1 {
		return ProfitResult{}, fmt.Errorf("%d: %w", flights, ErrInvalidFlights)
	}
	if distance < 0 {
		return ProfitResult{}, fmt.Errorf("%.0f: %w", distance, ErrNegativeDistance)
	}
	if err := validateOptions(opts); err != nil {
		return ProfitResult{}, err
	}

	p := ForMode(plane, opts.Mode)
	n := float64(flights)

	var exp Expenses
	if p.ACheck.IntervalHours > 0 {
		exp.Maintenance = p.ACheck.Price / p.ACheck.IntervalHours * opts.Activity
	}
	exp.Fuel = distance * p.Fuel * (opts.FuelPrice / 1000) * n

	// charged on the full cabin whatever the configuration
	co2Units := float64(p.Capacity)
	if p.IsCargo() {
		co2Units = float64(p.Capacity) / cargoCO2UnitScale
	}
	exp.CO2 = p.CO2 * distance * co2Units * (opts.CO2Price / 1000) * n
	if opts.Salaries != nil {
		exp.Staff = salaries(p.Staff, *opts.Salaries)
	}

	tickets := Ticket(distance, opts.Mode, p.Type == models.VIP)
	rep := opts.Reputation / 100
	var income float64
	if p.IsCargo() {
		income = float64(cfg.L)*rep*tickets.L + float64(cfg.H)*rep*tickets.H
	} else {
		for _, c := range paxClasses {
			income += math.Floor(float64(cfg.Get(c))*rep) * tickets.Get(c)
		}
	}
	income *= n

	return result(income, exp), nil
}

// PlaneProfit estimates the daily profit of a plane with no real route: it
// flies 4 legs a day that fill the activity window, with a fixed cabin
// split, and pays flat salaries.
func PlaneProfit(plane models.Plane, opts models.ProfitOptions) (ProfitResult, error) {
	if plane.Capacity <= 0 {
		return ProfitResult{}, fmt.Errorf("%s: %w", plane.Name, ErrInvalidCapacity)
	}
	if err := validateOptions(opts); err != nil {
		return ProfitResult{}, err
	}
	speed := ForMode(plane, opts.Mode).Speed
	if speed <= 0 {
		return ProfitResult{}, fmt.Errorf("%s: %w", plane.Name, ErrInvalidSpeed)
	}
	distance := opts.Activity * speed / baselineFlights

	if opts.Salaries == nil {
		s := DefaultSalaries
		opts.Salaries = &s
	}
	return Profit(plane, BaselineConfiguration(plane), distance, baselineFlights, opts)
}

// BaselineConfiguration is the fixed split used when no demand is known:
// 80% large / 20% heavy for cargo, a third of the cabin per class for pax.
func BaselineConfiguration(plane models.Plane) models.Configuration {
	var cfg models.Configuration
	if plane.IsCargo() {
		cfg.L = models.HeavyToLarge(int(float64(plane.Capacity) * cargoLargeShare))
		cfg.H = int(float64(plane.Capacity) * cargoHeavyShare)
		return cfg
	}
	third := plane.Capacity / 3
	cfg.F = third / 3
	cfg.J = third / 2
	cfg.Y = third
	absorbTruncation(&cfg, plane.Capacity)
	return cfg
}

// EstimatedShareValueGrowth is the daily share value change from operating
// one plane on a route.
func EstimatedShareValueGrowth(plane models.Plane, cfg models.Configuration, distance float64, flights int, opts models.ProfitOptions) (float64, error) {
	res, err := Profit(plane, cfg, distance, flights, opts)
	if err != nil {
		return 0, err
	}
	return res.ShareValueGrowth(), nil
}

func salaries(s models.Staff, sal models.Salaries) float64 {
	return float64(s.Pilots)*sal.Pilot +
		float64(s.Crew)*sal.Crew +
		float64(s.Engineers)*sal.Engineer +
		float64(s.Tech)*sal.Tech
}

func result(income float64, exp Expenses) ProfitResult {
	total := exp.Total()
	return ProfitResult{
		Profit:    math.Round(income - total),
		Income:    math.Round(income),
		Expenses:  math.Round(total),
		Breakdown: exp,
	}
}
