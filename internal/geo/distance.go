// Package geo computes distances between coordinates. Distance is the
// game-accurate great-circle distance used for all economics and range
// checks; PreciseDistance is a cheaper planar approximation used to bound
// search regions.
package geo

import (
	"errors"
	"math"

	"route_planner/internal/models"
)

const (
	earthRadiusKm = 6371.0
	earthRadiusM  = 6371000.0
)

var ErrInsufficientCoordinates = errors.New("at least 2 coordinates are required")

type Result struct {
	Total int   `json:"total"`
	Legs  []int `json:"legs"`
}

// Distance returns the spherical law-of-cosines distance in km.
func Distance(coords ...models.Coordinate) (Result, error) {
	return legs(coords, cosineKm)
}

// PreciseDistance returns the equirectangular approximation in km.
func PreciseDistance(coords ...models.Coordinate) (Result, error) {
	return legs(coords, equirectangularKm)
}

// Between is the unrounded great-circle distance between two points in km.
func Between(a, b models.Coordinate) float64 {
	return cosineKm(a, b)
}

func legs(coords []models.Coordinate, f func(a, b models.Coordinate) float64) (Result, error) {
	if len(coords) < 2 {
		return Result{}, ErrInsufficientCoordinates
	}
	res := Result{Legs: make([]int, 0, len(coords)-1)}
	for i := 1; i < len(coords); i++ {
		d := int(math.Round(f(coords[i-1], coords[i])))
		res.Legs = append(res.Legs, d)
		res.Total += d
	}
	return res, nil
}

func cosineKm(a, b models.Coordinate) float64 {
	lat1, lat2 := toRad(a.Lat), toRad(b.Lat)
	dLon := toRad(b.Lon - a.Lon)
	c := math.Sin(lat1)*math.Sin(lat2) + math.Cos(lat1)*math.Cos(lat2)*math.Cos(dLon)
	// rounding can push identical points just past 1
	c = math.Max(-1, math.Min(1, c))
	return math.Acos(c) * earthRadiusKm
}

func equirectangularKm(a, b models.Coordinate) float64 {
	lat1, lat2 := toRad(a.Lat), toRad(b.Lat)
	x := toRad(wrapLon(b.Lon-a.Lon)) * math.Cos((lat1+lat2)/2)
	y := lat2 - lat1
	return math.Sqrt(x*x+y*y) * earthRadiusM / 1000
}

// wrapLon maps a longitude delta into [-180, 180] so that pairs straddling
// the antimeridian are not measured the long way round.
func wrapLon(d float64) float64 {
	d = math.Mod(d+180, 360)
	if d < 0 {
		d += 360
	}
	return d - 180
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
