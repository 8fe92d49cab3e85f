package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"route_planner/internal/game"
	"route_planner/internal/log"
	"route_planner/internal/models"
	"route_planner/internal/report"
)

type Options struct {
	CacheSize int
	CacheTTL  time.Duration
	Logger    *log.Logger
}

type Server struct {
	engine    *game.Engine
	stopovers *expirable.LRU[string, []models.StopoverRoute]
	lg        *log.Logger
}

// New constructs the HTTP router wired to the engine.
func New(engine *game.Engine, opts Options) http.Handler {
	size := opts.CacheSize
	if size <= 0 {
		size = 256
	}
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	s := &Server{
		engine:    engine,
		stopovers: expirable.NewLRU[string, []models.StopoverRoute](size, nil, ttl),
		lg:        opts.Logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/airports", s.handleAirports)
	r.Get("/planes", s.handlePlanes)
	r.Post("/analysis/ticket", s.handleTicket)
	r.Post("/analysis/route", s.handleRouteAnalysis)
	r.Post("/analysis/stopovers", s.handleStopovers)
	r.Post("/fleet/profit", s.handleFleetProfit)
	r.Post("/fleet/staff", s.handleFleetStaff)
	r.Post("/fleet/report", s.handleFleetReport)

	return r
}

func (s *Server) handleAirports(w http.ResponseWriter, r *http.Request) {
	country := r.URL.Query().Get("country")
	minRunway, _ := strconv.Atoi(r.URL.Query().Get("min_runway"))
	writeJSON(w, filterAirports(s.engine.Airports(), country, minRunway))
}

func (s *Server) handlePlanes(w http.ResponseWriter, r *http.Request) {
	planes := s.engine.Planes()
	if t := r.URL.Query().Get("type"); t != "" {
		pt, err := models.ParsePlaneType(t)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		out := make([]models.Plane, 0, len(planes))
		for _, p := range planes {
			if p.Type == pt {
				out = append(out, p)
			}
		}
		planes = out
	}
	writeJSON(w, planes)
}

type TicketRequest struct {
	Distance float64         `json:"distance"`
	Mode     models.GameMode `json:"mode"`
	VIP      bool            `json:"vip"`
}

func (s *Server) handleTicket(w http.ResponseWriter, r *http.Request) {
	var req TicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Distance < 0 {
		writeJSONError(w, http.StatusBadRequest, game.ErrNegativeDistance.Error())
		return
	}
	writeJSON(w, game.Ticket(req.Distance, req.Mode, req.VIP))
}

func (s *Server) handleRouteAnalysis(w http.ResponseWriter, r *http.Request) {
	defaults := s.engine.Defaults()
	req := game.RouteRequest{Options: &defaults}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Planes) == 0 {
		writeJSONError(w, http.StatusBadRequest, "no planes requested")
		return
	}

	results, err := s.engine.AnalyzeRoute(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, results)
}

func (s *Server) handleStopovers(w http.ResponseWriter, r *http.Request) {
	var req game.StopoverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := stopoverKey(req)
	if routes, ok := s.stopovers.Get(key); ok {
		writeJSON(w, routes)
		return
	}

	start := time.Now()
	routes, err := s.engine.FindStopovers(r.Context(), req)
	if err != nil {
		s.lg.Warnf("stopovers %s: %v", key, err)
		writeError(w, err)
		return
	}
	s.lg.Infof("stopovers %s: %d routes in %s", key, len(routes), time.Since(start))
	s.stopovers.Add(key, routes)
	writeJSON(w, routes)
}

type FleetRequest struct {
	Fleet []game.FleetEntry `json:"fleet"`
	// Options fields omitted by the client keep the server's economics; the
	// reputations default to Options.Reputation.
	Options         *models.ProfitOptions `json:"options,omitempty"`
	PaxReputation   *float64              `json:"pax_reputation,omitempty"`
	CargoReputation *float64              `json:"cargo_reputation,omitempty"`
}

func (s *Server) decodeFleet(r *http.Request) ([]models.OwnedPlane, game.AirlineOptions, error) {
	defaults := s.engine.Defaults()
	req := FleetRequest{Options: &defaults}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, game.AirlineOptions{}, err
	}
	fleet, err := s.engine.Fleet(req.Fleet)
	if err != nil {
		return nil, game.AirlineOptions{}, err
	}
	opts := game.AirlineOptions{Options: s.engine.Defaults()}
	if req.Options != nil {
		opts.Options = *req.Options
	}
	opts.PaxReputation = opts.Options.Reputation
	opts.CargoReputation = opts.Options.Reputation
	if req.PaxReputation != nil {
		opts.PaxReputation = *req.PaxReputation
	}
	if req.CargoReputation != nil {
		opts.CargoReputation = *req.CargoReputation
	}
	return fleet, opts, nil
}

func (s *Server) handleFleetProfit(w http.ResponseWriter, r *http.Request) {
	fleet, opts, err := s.decodeFleet(r)
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := game.AirlineProfit(fleet, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, res)
}

func (s *Server) handleFleetStaff(w http.ResponseWriter, r *http.Request) {
	fleet, _, err := s.decodeFleet(r)
	if err != nil {
		writeError(w, err)
		return
	}
	staff := game.CalculateStaff(fleet)
	writeJSON(w, struct {
		models.Staff
		Total int `json:"total"`
	}{staff, staff.Total()})
}

func (s *Server) handleFleetReport(w http.ResponseWriter, r *http.Request) {
	fleet, opts, err := s.decodeFleet(r)
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := game.AirlineProfit(fleet, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="fleet.xlsx"`)
	if err := report.WriteFleet(w, res, game.CalculateStaff(fleet)); err != nil {
		s.lg.Errorf("fleet report: %v", err)
	}
}

// ===== helpers =====

func stopoverKey(req game.StopoverRequest) string {
	m := req.Modifications
	return fmt.Sprintf("%s-%s/%s/%v/%d/%t%t%t%d%d",
		strings.ToUpper(strings.TrimSpace(req.Origin)), strings.ToUpper(strings.TrimSpace(req.Dest)),
		strings.ToLower(strings.TrimSpace(req.Plane)), req.Mode, req.Depth,
		m.Speed, m.Fuel, m.CO2, m.FuelTraining, m.CO2Training)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// writeError reports err as a bad request; unknown airports and planes are
// not found.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	if errors.Is(err, game.ErrUnknownAirport) || errors.Is(err, game.ErrUnknownPlane) {
		status = http.StatusNotFound
	}
	writeJSONError(w, status, err.Error())
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	if msg == "" {
		msg = http.StatusText(status)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func filterAirports(all []models.Airport, country string, minRunway int) []models.Airport {
	if country == "" && minRunway <= 0 {
		return all
	}
	out := make([]models.Airport, 0, len(all))
	for _, a := range all {
		if country != "" && !strings.EqualFold(a.Country, country) {
			continue
		}
		if a.RunwayFt < minRunway {
			continue
		}
		out = append(out, a)
	}
	return out
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
