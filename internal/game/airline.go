package game

import (
	"fmt"

	"route_planner/internal/models"
)

type AirlineOptions struct {
	Options models.ProfitOptions `json:"options"`
	// Reputation buckets; Options.Reputation is ignored.
	PaxReputation   float64 `json:"pax_reputation"`
	CargoReputation float64 `json:"cargo_reputation"`
}

type PlaneProfitResult struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Amount int    `json:"amount"`
	// Each is the result for a single plane, Total for all Amount of them.
	Each             ProfitResult `json:"each"`
	Total            ProfitResult `json:"total"`
	ShareValueGrowth float64      `json:"share_value_growth"`
}

type AirlineProfitResult struct {
	PerPlane         []PlaneProfitResult `json:"per_plane"`
	Totals           ProfitResult        `json:"totals"`
	ShareValueGrowth float64             `json:"share_value_growth"`
}

// AirlineProfit sums the daily profit of every owned plane. Planes with a
// route are evaluated on it; the rest fall back to the PlaneProfit
// baseline.
func AirlineProfit(fleet []models.OwnedPlane, opts AirlineOptions) (AirlineProfitResult, error) {
	var res AirlineProfitResult
	var income float64
	var exp Expenses
	for _, owned := range fleet {
		if owned.Amount < 1 {
			return AirlineProfitResult{}, fmt.Errorf("%s: %d: %w", owned.Plane.Name, owned.Amount, ErrInvalidAmount)
		}
		o := opts.Options
		o.Reputation = opts.PaxReputation
		if owned.Plane.IsCargo() {
			o.Reputation = opts.CargoReputation
		}

		var each ProfitResult
		var err error
		if rt := owned.Route; rt != nil {
			each, err = Profit(owned.Plane, rt.Config, rt.Distance, rt.Flights, o)
		} else {
			each, err = PlaneProfit(owned.Plane, o)
		}
		if err != nil {
			return AirlineProfitResult{}, fmt.Errorf("%s: %w", owned.Plane.Name, err)
		}

		n := float64(owned.Amount)
		totalExp := each.Breakdown.scale(n)
		total := ProfitResult{
			Profit:    each.Profit * n,
			Income:    each.Income * n,
			Expenses:  each.Expenses * n,
			Breakdown: totalExp,
		}
		res.PerPlane = append(res.PerPlane, PlaneProfitResult{
			ID:               owned.Plane.ID,
			Name:             owned.Plane.Name,
			Amount:           owned.Amount,
			Each:             each,
			Total:            total,
			ShareValueGrowth: total.ShareValueGrowth(),
		})
		income += total.Income
		exp = exp.add(totalExp)
	}
	res.Totals = result(income, exp)
	res.ShareValueGrowth = res.Totals.ShareValueGrowth()
	return res, nil
}

// CalculateStaff is the staff needed to operate the whole fleet.
func CalculateStaff(fleet []models.OwnedPlane) models.Staff {
	var s models.Staff
	for _, owned := range fleet {
		s = s.Add(owned.Plane.Staff.Scale(owned.Amount))
	}
	return s
}
