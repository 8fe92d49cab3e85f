package game

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/brunoga/deep"

	"route_planner/internal/catalog"
	"route_planner/internal/geo"
	"route_planner/internal/log"
	"route_planner/internal/models"
	"route_planner/internal/stopover"
)

// SearchSettings bound the stopover search run by the engine.
type SearchSettings struct {
	Depth         int `json:"depth"`
	MaxCandidates int `json:"max_candidates"`
	Workers       int `json:"workers"`
}

// Engine answers route and fleet questions against a plane and airport
// catalog.
type Engine struct {
	mu       sync.RWMutex
	catalog  *catalog.Catalog
	defaults models.ProfitOptions
	search   SearchSettings
	lg       *log.Logger
}

func NewEngine(c *catalog.Catalog, defaults models.ProfitOptions, lg *log.Logger) *Engine {
	return &Engine{
		catalog:  c,
		defaults: defaults,
		search:   SearchSettings{Depth: 1},
		lg:       lg,
	}
}

// SetCatalog replaces the catalog, e.g. after reloading the data files.
func (e *Engine) SetCatalog(c *catalog.Catalog) {
	e.mu.Lock()
	e.catalog = c
	e.mu.Unlock()
}

func (e *Engine) SetSearch(s SearchSettings) {
	e.mu.Lock()
	e.search = s
	e.mu.Unlock()
}

func (e *Engine) Search() SearchSettings {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.search
}

// Defaults returns a private copy of the default economics. Request JSON is
// decoded on top of it so that omitted fields keep their defaults.
func (e *Engine) Defaults() models.ProfitOptions {
	return deep.MustCopy(e.defaults)
}

func (e *Engine) Airports() []models.Airport {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.catalog.Airports()
}

func (e *Engine) Planes() []models.Plane {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.catalog.Planes()
}

// AirportByIdent returns an airport by IATA, ICAO or ID.
func (e *Engine) AirportByIdent(ident string) (models.Airport, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	ap, ok := e.catalog.AirportByCode(ident)
	if !ok {
		return models.Airport{}, fmt.Errorf("%q: %w", ident, ErrUnknownAirport)
	}
	return ap, nil
}

func (e *Engine) Plane(name string) (models.Plane, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	p, ok := e.catalog.PlaneByName(name)
	if !ok {
		return models.Plane{}, fmt.Errorf("%q: %w", name, ErrUnknownPlane)
	}
	return p, nil
}

// Route resolves origin, stopovers and destination to airports.
func (e *Engine) Route(origin string, via []string, dest string) ([]models.Airport, error) {
	route := make([]models.Airport, 0, len(via)+2)
	for _, ident := range slices.Concat([]string{origin}, via, []string{dest}) {
		ap, err := e.AirportByIdent(ident)
		if err != nil {
			return nil, err
		}
		route = append(route, ap)
	}
	if route[0].Code() == route[len(route)-1].Code() {
		return nil, fmt.Errorf("%s: %w", route[0].Code(), ErrSameAirport)
	}
	return route, nil
}

type RouteRequest struct {
	Origin        string               `json:"origin"`
	Dest          string               `json:"dest"`
	Via           []string             `json:"via,omitempty"`
	Planes        []string             `json:"planes"`
	Demand        models.Demand        `json:"demand"`
	Priority      []models.Class       `json:"priority,omitempty"`
	Modifications models.Modifications `json:"modifications"`
	// Options replaces the engine defaults when set. Start from Defaults()
	// to override single fields.
	Options *models.ProfitOptions `json:"options,omitempty"`
}

type RouteAnalysis struct {
	Plane            string       `json:"plane"`
	Valid            bool         `json:"valid"`
	Error            string       `json:"error,omitempty"`
	Distance         int          `json:"distance"`
	Legs             []int        `json:"legs"`
	Flights          int          `json:"flights"`
	FlightTime       string       `json:"flight_time"`
	Tickets          Tickets      `json:"tickets"`
	Config           ConfigResult `json:"config"`
	Profit           ProfitResult `json:"profit"`
	ShareValueGrowth float64      `json:"share_value_growth"`
}

// AnalyzeRoute evaluates each requested plane on the route: range and
// runway feasibility, flights per day, the demand-driven configuration and
// the resulting daily profit. Planes that cannot fly the route are reported
// with Valid false. Valid results come first, most profitable first.
func (e *Engine) AnalyzeRoute(req RouteRequest) ([]RouteAnalysis, error) {
	route, err := e.Route(req.Origin, req.Via, req.Dest)
	if err != nil {
		return nil, err
	}
	d, err := geo.Distance(coordinates(route)...)
	if err != nil {
		return nil, err
	}
	opts := e.defaults
	if req.Options != nil {
		opts = *req.Options
	}
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	results := make([]RouteAnalysis, 0, len(req.Planes))
	for _, name := range req.Planes {
		res := RouteAnalysis{Plane: name, Distance: d.Total, Legs: d.Legs}
		if err := e.analyze(&res, name, route, req, opts); err != nil {
			res.Error = err.Error()
			e.lg.Debugf("%s on %s: %v", name, routeCodes(route), err)
		} else {
			res.Valid = true
		}
		results = append(results, res)
	}

	slices.SortStableFunc(results, func(a, b RouteAnalysis) int {
		if a.Valid != b.Valid {
			if a.Valid {
				return -1
			}
			return 1
		}
		return cmp.Compare(b.Profit.Profit, a.Profit.Profit)
	})
	return results, nil
}

func (e *Engine) analyze(res *RouteAnalysis, name string, route []models.Airport, req RouteRequest, opts models.ProfitOptions) error {
	base, err := e.Plane(name)
	if err != nil {
		return err
	}
	res.Plane = base.Name
	plane, err := ApplyModifications(base, req.Modifications)
	if err != nil {
		return err
	}

	for i, leg := range res.Legs {
		if float64(leg) > plane.Range {
			return fmt.Errorf("%s-%s %d km exceeds range of %.0f km", route[i].Code(), route[i+1].Code(), leg, plane.Range)
		}
	}
	if opts.Mode == models.Realism {
		for _, ap := range route {
			if ap.RunwayFt < plane.RunwayFt {
				return fmt.Errorf("%s runway %d ft too short for %s", ap.Code(), ap.RunwayFt, plane.Name)
			}
		}
	}

	distance := float64(res.Distance)
	speed := ForMode(plane, opts.Mode).Speed
	res.Flights = Flights(distance, speed, opts.Activity)
	res.FlightTime = FlightTime(distance, speed).String()
	res.Tickets = Ticket(distance, opts.Mode, plane.Type == models.VIP)

	res.Config, err = Configure(plane, req.Demand, ConfigureOptions{
		Flights:    res.Flights,
		Reputation: opts.Reputation,
		Priority:   req.Priority,
		Mode:       opts.Mode,
		Distance:   distance,
	})
	if err != nil {
		return err
	}
	res.Profit, err = Profit(plane, res.Config.Config, distance, res.Flights, opts)
	if err != nil {
		return err
	}
	res.ShareValueGrowth = res.Profit.ShareValueGrowth()
	return nil
}

type StopoverRequest struct {
	Origin        string               `json:"origin"`
	Dest          string               `json:"dest"`
	Plane         string               `json:"plane"`
	Mode          models.GameMode      `json:"mode"`
	Depth         int                  `json:"depth,omitempty"`
	Modifications models.Modifications `json:"modifications"`
}

// FindStopovers searches the catalog for stopovers that bring every leg of
// origin to dest within the plane's range. Candidates are first narrowed to
// the region reachable in depth+1 legs.
func (e *Engine) FindStopovers(ctx context.Context, req StopoverRequest) ([]models.StopoverRoute, error) {
	route, err := e.Route(req.Origin, nil, req.Dest)
	if err != nil {
		return nil, err
	}
	base, err := e.Plane(req.Plane)
	if err != nil {
		return nil, err
	}
	plane, err := ApplyModifications(base, req.Modifications)
	if err != nil {
		return nil, err
	}

	settings := e.Search()
	depth := cmp.Or(req.Depth, settings.Depth, 1)
	if settings.Depth > 0 && depth > settings.Depth {
		depth = settings.Depth
	}

	pool := geo.Bounds(route[0].Location, route[1].Location, plane.Range, depth+1).Filter(e.Airports())
	opts := stopover.Options{Depth: depth, Workers: settings.Workers, Logger: e.lg}
	if depth > 1 {
		opts.MaxCandidates = settings.MaxCandidates
	}
	return stopover.Find(ctx, route, pool, plane, req.Mode, opts)
}

type FleetEntry struct {
	Plane         string               `json:"plane"`
	Amount        int                  `json:"amount"`
	Modifications models.Modifications `json:"modifications"`
	Route         *models.RouteUsage   `json:"route,omitempty"`
}

// Fleet resolves plane names to owned planes with modifications applied.
func (e *Engine) Fleet(entries []FleetEntry) ([]models.OwnedPlane, error) {
	fleet := make([]models.OwnedPlane, 0, len(entries))
	for _, ent := range entries {
		base, err := e.Plane(ent.Plane)
		if err != nil {
			return nil, err
		}
		plane, err := ApplyModifications(base, ent.Modifications)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ent.Plane, err)
		}
		fleet = append(fleet, models.OwnedPlane{Plane: plane, Amount: ent.Amount, Route: ent.Route})
	}
	return fleet, nil
}

func coordinates(route []models.Airport) []models.Coordinate {
	out := make([]models.Coordinate, len(route))
	for i, ap := range route {
		out[i] = ap.Location
	}
	return out
}

func routeCodes(route []models.Airport) string {
	codes := make([]string, len(route))
	for i, ap := range route {
		codes[i] = ap.Code()
	}
	return strings.Join(codes, "-")
}
