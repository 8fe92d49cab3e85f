package geo

import (
	"route_planner/internal/models"
)

// Ellipse is the set of points whose summed great-circle distance to the
// two foci is at most Major km. With foci at a route's departure and
// arrival, it contains every airport that can appear on a route whose total
// length is at most Major.
type Ellipse struct {
	A, B  models.Coordinate
	Major float64
}

// Bounds returns the region holding every stopover of a route from a to b
// flown in the given number of legs, each at most rangeKm once rounded.
func Bounds(a, b models.Coordinate, rangeKm float64, legs int) Ellipse {
	if legs < 2 {
		legs = 2
	}
	// a leg rounded down to rangeKm may be up to half a km longer
	return Ellipse{A: a, B: b, Major: (rangeKm + 0.5) * float64(legs)}
}

func (e Ellipse) Contains(c models.Coordinate) bool {
	return Between(e.A, c)+Between(c, e.B) <= e.Major
}

// Filter returns the airports inside the ellipse, preserving order.
func (e Ellipse) Filter(airports []models.Airport) []models.Airport {
	var out []models.Airport
	for _, ap := range airports {
		if e.Contains(ap.Location) {
			out = append(out, ap)
		}
	}
	return out
}
