package game

import (
	"math"

	"route_planner/internal/models"
)

// Tickets are per-unit prices: per seat for F/J/Y, per lb for L/H.
type Tickets struct {
	F float64 `json:"F"`
	J float64 `json:"J"`
	Y float64 `json:"Y"`
	L float64 `json:"L"`
	H float64 `json:"H"`
}

func (t Tickets) Get(c models.Class) float64 {
	switch c {
	case models.First:
		return t.F
	case models.Business:
		return t.J
	case models.Economy:
		return t.Y
	case models.Large:
		return t.L
	case models.Heavy:
		return t.H
	}
	return 0
}

// linear is price = markup * (slope*distance + base).
type linear struct {
	markup, slope, base float64
}

func (l linear) at(distance float64) float64 {
	return l.markup * (l.slope*distance + l.base)
}

// These coefficients define game balance and must not be tuned. Cargo
// coefficients are in cents per lb.
var (
	realismPax = [3]linear{
		{1.06, 0.9, 1000},
		{1.08, 0.6, 500},
		{1.10, 0.3, 150},
	}
	easyPax = [3]linear{
		{1.06, 1.2, 1200},
		{1.08, 0.8, 560},
		{1.10, 0.4, 170},
	}
	vipPax = [3]linear{
		{1.17 * 1.7489, 1.2, 1200},
		{1.20 * 1.7489, 0.8, 560},
		{1.22 * 1.7489, 0.4, 170},
	}
	realismCargo = [2]linear{
		{1.10, 0.0776321822039374, 85.0567600367807000},
		{1.08, 0.0517742799409248, 24.6369915396414000},
	}
	easyCargo = [2]linear{
		{1.10, 0.0948283724581252, 85.2045432642377000},
		{1.08, 0.0689663577640275, 28.2981124272893000},
	}
)

// Ticket returns the optimal ticket prices for a route of the given
// distance. VIP pricing replaces the pax classes regardless of mode; cargo
// prices always follow the mode.
func Ticket(distance float64, mode models.GameMode, vip bool) Tickets {
	var pax [3]linear
	var cargo [2]linear
	switch mode {
	case models.Realism:
		pax, cargo = realismPax, realismCargo
	case models.Easy:
		pax, cargo = easyPax, easyCargo
	default:
		panic("unhandled game mode " + mode.String())
	}
	if vip {
		pax = vipPax
	}
	return Tickets{
		F: truncTenth(pax[0].at(distance)),
		J: truncTenth(pax[1].at(distance)),
		Y: truncTenth(pax[2].at(distance)),
		L: math.Floor(cargo[0].at(distance)) / 100,
		H: math.Floor(cargo[1].at(distance)) / 100,
	}
}

func truncTenth(v float64) float64 {
	return math.Floor(v*10) / 10
}
