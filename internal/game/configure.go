package game

import (
	"fmt"
	"math"
	"slices"

	"route_planner/internal/models"
)

type ConfigureOptions struct {
	Flights int `json:"flights"`
	// Reputation in percent, taken literally as Profit does. Callers
	// without a value use DefaultProfitOptions().Reputation.
	Reputation float64 `json:"reputation"`
	// Priority overrides the default class order when non-empty.
	Priority []models.Class `json:"priority,omitempty"`
	Mode     models.GameMode `json:"mode"`
	Distance float64         `json:"distance"`
}

type ConfigResult struct {
	Config   models.Configuration `json:"config"`
	Priority []models.Class       `json:"priority"`
}

var (
	cargoPriority = []models.Class{models.Large, models.Heavy}
	paxClasses    = []models.Class{models.First, models.Business, models.Economy}

	// seat weight in economy-equivalents
	paxWeight = map[models.Class]int{models.First: 3, models.Business: 2, models.Economy: 1}
)

type priorityBreak struct {
	below    float64
	priority []models.Class
}

var (
	realismBreaks = []priorityBreak{
		{13889, []models.Class{models.First, models.Business, models.Economy}},
		{15694, []models.Class{models.Business, models.First, models.Economy}},
		{17500, []models.Class{models.Business, models.Economy, models.First}},
	}
	easyBreaks = []priorityBreak{
		{14425, []models.Class{models.First, models.Business, models.Economy}},
		{14812, []models.Class{models.Business, models.First, models.Economy}},
		{15200, []models.Class{models.Business, models.Economy, models.First}},
	}
	longHaulPriority = []models.Class{models.Economy, models.Business, models.First}
)

// DefaultPriority returns the class order that maximises income on a route
// of the given distance. First class is favoured on short routes; economy
// takes over once the long-haul ticket formulas make it more profitable per
// economy-equivalent seat.
func DefaultPriority(plane models.Plane, mode models.GameMode, distance float64) []models.Class {
	if plane.IsCargo() {
		return slices.Clone(cargoPriority)
	}
	var breaks []priorityBreak
	switch mode {
	case models.Realism:
		breaks = realismBreaks
	case models.Easy:
		breaks = easyBreaks
	default:
		panic("unhandled game mode " + mode.String())
	}
	for i, b := range breaks {
		// the first breakpoint is exclusive, the rest inclusive
		if distance < b.below || (i > 0 && distance == b.below) {
			return slices.Clone(b.priority)
		}
	}
	return slices.Clone(longHaulPriority)
}

// Configure allocates the plane's capacity among classes according to route
// demand. Every class but the last in the priority order is capped at its
// per-flight demand; the last class takes whatever capacity remains, even
// past its demand. That terminal fill is intentional game-balance behaviour:
// an empty seat earns nothing, an over-supplied one might.
func Configure(plane models.Plane, demand models.Demand, opts ConfigureOptions) (ConfigResult, error) {
	if plane.Capacity <= 0 {
		return ConfigResult{}, fmt.Errorf("%s: %w", plane.Name, ErrInvalidCapacity)
	}
	if opts.Flights < 1 {
		return ConfigResult{}, fmt.Errorf("%d: %w", opts.Flights, ErrInvalidFlights)
	}
	if opts.Distance < 0 {
		return ConfigResult{}, fmt.Errorf("%.0f: %w", opts.Distance, ErrNegativeDistance)
	}
	rep := opts.Reputation
	if rep < 0 || rep > 100 {
		return ConfigResult{}, fmt.Errorf("%.1f: %w", rep, ErrInvalidReputation)
	}

	priority := opts.Priority
	if len(priority) == 0 {
		priority = DefaultPriority(plane, opts.Mode, opts.Distance)
	} else if err := validatePriority(plane, priority); err != nil {
		return ConfigResult{}, err
	}
	priority = slices.Clone(priority)

	change := (200 - rep) / 100
	perFlight := func(units float64) int {
		return max(0, int(math.Round(units*change/float64(opts.Flights))))
	}

	var cfg models.Configuration
	if plane.IsCargo() {
		maxDemand := map[models.Class]int{
			models.Large: perFlight(float64(demand.L) * 7 / 10),
			models.Heavy: perFlight(float64(demand.H)),
		}
		fill(&cfg, priority, maxDemand, plane.Capacity)
		cfg.L = models.HeavyToLarge(cfg.L)
		return ConfigResult{Config: cfg, Priority: priority}, nil
	}

	maxDemand := make(map[models.Class]int, len(paxClasses))
	for _, c := range paxClasses {
		maxDemand[c] = perFlight(float64(demand.Get(c) * paxWeight[c]))
	}
	// allocated in economy-equivalents, then converted to seats
	fill(&cfg, priority, maxDemand, plane.Capacity)
	cfg.F /= 3
	cfg.J /= 2
	absorbTruncation(&cfg, plane.Capacity)
	return ConfigResult{Config: cfg, Priority: priority}, nil
}

func fill(cfg *models.Configuration, priority []models.Class, maxDemand map[models.Class]int, capacity int) {
	remaining := capacity
	for i, c := range priority {
		alloc := remaining
		if i < len(priority)-1 {
			alloc = min(remaining, maxDemand[c])
		}
		cfg.Set(c, alloc)
		remaining -= alloc
	}
}

// absorbTruncation hands the economy-equivalents lost when converting to
// whole F and J seats to the class that divides them evenly, so that
// Y + 2J + 3F == capacity.
func absorbTruncation(cfg *models.Configuration, capacity int) {
	switch lost := capacity - cfg.EconomyEquivalent(); {
	case lost%3 == 0:
		cfg.F += lost / 3
	case lost%2 == 0:
		cfg.J += lost / 2
	default:
		cfg.Y += lost
	}
}

func validatePriority(plane models.Plane, priority []models.Class) error {
	seen := make(map[models.Class]bool, len(priority))
	for _, c := range priority {
		if c < models.First || c > models.Heavy {
			return fmt.Errorf("%v: %w", c, ErrInvalidPriority)
		}
		if c.IsCargo() != plane.IsCargo() {
			return fmt.Errorf("%v class on %s plane: %w", c, plane.Type, ErrInvalidPriority)
		}
		if seen[c] {
			return fmt.Errorf("%v listed twice: %w", c, ErrInvalidPriority)
		}
		seen[c] = true
	}
	return nil
}
