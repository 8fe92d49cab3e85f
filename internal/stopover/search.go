// Package stopover finds intermediate airports that make a route flyable
// for a plane whose range is shorter than one of the route's legs.
package stopover

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"route_planner/internal/geo"
	"route_planner/internal/log"
	"route_planner/internal/models"
)

var ErrCandidatePoolTooLarge = errors.New("candidate pool too large for multi-stop search")

type Options struct {
	// Depth is the maximum number of stopovers inserted; values below 1
	// mean 1.
	Depth int
	// MaxCandidates caps the candidate pool. Required when Depth > 1 since
	// the search is exponential in the pool size.
	MaxCandidates int
	// Workers bounds the number of top-level candidates searched at once.
	// Zero means GOMAXPROCS.
	Workers int
	Logger  *log.Logger
}

type searcher struct {
	plane models.Plane
	mode  models.GameMode
	lg    *log.Logger
}

// Find returns every route made by inserting up to opts.Depth candidates
// before the arrival of route such that each leg is within the plane's
// range. Results are sorted by total distance. An empty result means no
// candidate works; it is not an error.
func Find(ctx context.Context, route []models.Airport, candidates []models.Airport, plane models.Plane, mode models.GameMode, opts Options) ([]models.StopoverRoute, error) {
	if len(route) < 2 {
		return nil, fmt.Errorf("route: %w", geo.ErrInsufficientCoordinates)
	}
	depth := max(1, opts.Depth)
	if opts.MaxCandidates > 0 && len(candidates) > opts.MaxCandidates {
		return nil, fmt.Errorf("%d candidates, limit %d: %w", len(candidates), opts.MaxCandidates, ErrCandidatePoolTooLarge)
	}
	if depth > 1 && opts.MaxCandidates <= 0 {
		return nil, fmt.Errorf("depth %d without a candidate limit: %w", depth, ErrCandidatePoolTooLarge)
	}

	s := &searcher{plane: plane, mode: mode, lg: opts.Logger}
	within, err := s.withinRange(route)
	if err != nil {
		return nil, err
	}
	if within {
		return []models.StopoverRoute{}, nil
	}

	arrival := route[len(route)-1]
	pool := s.pool(route, arrival, candidates)
	s.lg.Debugf("stopover search %s: %d of %d candidates, depth %d", routeKey(route), len(pool), len(candidates), depth)

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var mu sync.Mutex
	var found []models.StopoverRoute
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, c := range pool {
		rest := without(pool, i)
		eg.Go(func() error {
			res, err := s.visit(ctx, route, c, rest, depth)
			if err != nil {
				return err
			}
			if len(res) > 0 {
				mu.Lock()
				found = append(found, res...)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	slices.SortFunc(found, func(a, b models.StopoverRoute) int {
		return cmp.Or(cmp.Compare(a.Distance, b.Distance),
			strings.Compare(routeKey(a.Airports), routeKey(b.Airports)))
	})
	s.lg.Debugf("stopover search %s: %d routes", routeKey(route), len(found))
	if found == nil {
		found = []models.StopoverRoute{}
	}
	return found, nil
}

// visit inserts stop before the arrival of skeleton. If only the final leg
// is still too long, it keeps inserting from pool until depth runs out.
func (s *searcher) visit(ctx context.Context, skeleton []models.Airport, stop models.Airport, pool []models.Airport, depth int) ([]models.StopoverRoute, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	next := insertBeforeArrival(skeleton, stop)
	d, err := geo.Distance(coordinates(next)...)
	if err != nil {
		return nil, err
	}
	last := len(d.Legs) - 1
	// Only legs before the last prune. An over-range final leg is the one a
	// deeper insertion splits, so pruning on it would make depth > 1 find
	// nothing that depth 1 does not. At depth 1 both rules agree.
	for _, leg := range d.Legs[:last] {
		if float64(leg) > s.plane.Range {
			return nil, nil
		}
	}
	if float64(d.Legs[last]) <= s.plane.Range {
		return []models.StopoverRoute{{Airports: next, Distance: d.Total, Legs: d.Legs}}, nil
	}
	if depth <= 1 {
		return nil, nil
	}

	var out []models.StopoverRoute
	for i, c := range pool {
		res, err := s.visit(ctx, next, c, without(pool, i), depth-1)
		if err != nil {
			return nil, err
		}
		out = append(out, res...)
	}
	return out, nil
}

func (s *searcher) withinRange(route []models.Airport) (bool, error) {
	d, err := geo.Distance(coordinates(route)...)
	if err != nil {
		return false, err
	}
	for _, leg := range d.Legs {
		if float64(leg) > s.plane.Range {
			return false, nil
		}
	}
	return true, nil
}

// pool drops candidates already on the route and those the runway rule
// rejects.
func (s *searcher) pool(route []models.Airport, arrival models.Airport, candidates []models.Airport) []models.Airport {
	onRoute := make(map[string]bool, len(route))
	for _, ap := range route {
		onRoute[ap.Code()] = true
	}
	var out []models.Airport
	for _, c := range candidates {
		if onRoute[c.Code()] || RunwayRejects(s.plane, arrival, c, s.mode) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// RunwayRejects reports whether stop cannot be used on a route ending at
// arrival. The arrival runway is checked in every mode; the stopover's own
// runway only in Realism.
func RunwayRejects(plane models.Plane, arrival, stop models.Airport, mode models.GameMode) bool {
	return plane.RunwayFt > arrival.RunwayFt || (plane.RunwayFt > stop.RunwayFt && mode == models.Realism)
}

func insertBeforeArrival(route []models.Airport, stop models.Airport) []models.Airport {
	out := make([]models.Airport, 0, len(route)+1)
	out = append(out, route[:len(route)-1]...)
	out = append(out, stop, route[len(route)-1])
	return out
}

func without(pool []models.Airport, i int) []models.Airport {
	out := make([]models.Airport, 0, len(pool)-1)
	out = append(out, pool[:i]...)
	return append(out, pool[i+1:]...)
}

func coordinates(route []models.Airport) []models.Coordinate {
	out := make([]models.Coordinate, len(route))
	for i, ap := range route {
		out[i] = ap.Location
	}
	return out
}

func routeKey(route []models.Airport) string {
	codes := make([]string, len(route))
	for i, ap := range route {
		codes[i] = ap.Code()
	}
	return strings.Join(codes, "-")
}
