package stopover

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"testing"

	"route_planner/internal/geo"
	"route_planner/internal/log"
	"route_planner/internal/models"
)

func airport(code string, lon, lat float64, runway int) models.Airport {
	return models.Airport{ID: code, IATA: code, Location: models.Coordinate{Lon: lon, Lat: lat}, RunwayFt: runway}
}

// Everything below lies on or near the equator, where a degree of
// longitude is 111.19 km.
var (
	dep = airport("DEP", 0, 0, 12000)
	arr = airport("ARR", 160, 0, 12000) // 17791 km from DEP
	mid = airport("MID", 80, 0, 12000)  // 8896 + 8896
	off = airport("OFF", 80, 10, 12000) // 8913 + 8913
	lop = airport("LOP", 70, 0, 12000)  // 7784 + 10008
	w50 = airport("W50", 50, 0, 12000)
	e10 = airport("E10", 110, 0, 12000)
)

func testPlane(rangeKm float64) models.Plane {
	return models.Plane{Name: "Test", Type: models.Pax, Capacity: 300, Speed: 900, Range: rangeKm, RunwayFt: 10000}
}

func codes(r models.StopoverRoute) string {
	var s []string
	for _, ap := range r.Airports {
		s = append(s, ap.Code())
	}
	return strings.Join(s, "-")
}

func TestSingleStopover(t *testing.T) {
	res, err := Find(context.Background(), []models.Airport{dep, arr}, []models.Airport{mid}, testPlane(9000), models.Realism, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 1 {
		t.Fatalf("got %d routes, expected 1", len(res))
	}
	r := res[0]
	if codes(r) != "DEP-MID-ARR" {
		t.Errorf("route %s", codes(r))
	}
	if !slices.Equal(r.Legs, []int{8896, 8896}) || r.Distance != 17792 {
		t.Errorf("legs %v total %d", r.Legs, r.Distance)
	}
	if s := r.Stopovers(); len(s) != 1 || s[0].Code() != "MID" {
		t.Errorf("stopovers %v", s)
	}
}

func TestLastLegTooLong(t *testing.T) {
	res, err := Find(context.Background(), []models.Airport{dep, arr}, []models.Airport{lop}, testPlane(9000), models.Realism, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res == nil || len(res) != 0 {
		t.Errorf("expected empty non-nil result, got %v", res)
	}
}

func TestAlreadyWithinRange(t *testing.T) {
	res, err := Find(context.Background(), []models.Airport{dep, arr}, []models.Airport{mid}, testPlane(20000), models.Realism, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res == nil || len(res) != 0 {
		t.Errorf("expected empty non-nil result, got %v", res)
	}
}

func TestSortedByDistance(t *testing.T) {
	res, err := Find(context.Background(), []models.Airport{dep, arr}, []models.Airport{off, lop, mid}, testPlane(9000), models.Realism, Options{Workers: 2})
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, r := range res {
		got = append(got, codes(r))
	}
	if want := []string{"DEP-MID-ARR", "DEP-OFF-ARR"}; !slices.Equal(got, want) {
		t.Errorf("got %v, expected %v", got, want)
	}
	for _, r := range res {
		for _, leg := range r.Legs {
			if leg > 9000 {
				t.Errorf("%s: leg %d over range", codes(r), leg)
			}
		}
	}
}

func TestTwoStopovers(t *testing.T) {
	route := []models.Airport{dep, arr}
	pool := []models.Airport{w50, e10}

	res, err := Find(context.Background(), route, pool, testPlane(9000), models.Realism, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 0 {
		t.Errorf("depth 1 found %d routes, expected none", len(res))
	}

	// DEP-W50-ARR leaves a 12231 km final leg which E10 then splits
	res, err = Find(context.Background(), route, pool, testPlane(9000), models.Realism, Options{Depth: 2, MaxCandidates: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 1 {
		t.Fatalf("depth 2 found %d routes, expected 1", len(res))
	}
	if codes(res[0]) != "DEP-W50-E10-ARR" || !slices.Equal(res[0].Legs, []int{5560, 6672, 5560}) {
		t.Errorf("got %s %v", codes(res[0]), res[0].Legs)
	}
}

func TestCandidatePoolTooLarge(t *testing.T) {
	route := []models.Airport{dep, arr}
	pool := []models.Airport{w50, e10, mid}
	for _, opts := range []Options{
		{Depth: 2},
		{Depth: 2, MaxCandidates: 2},
		{Depth: 1, MaxCandidates: 1},
	} {
		if _, err := Find(context.Background(), route, pool, testPlane(9000), models.Realism, opts); !errors.Is(err, ErrCandidatePoolTooLarge) {
			t.Errorf("%+v: got %v, expected ErrCandidatePoolTooLarge", opts, err)
		}
	}
}

func TestRunwayRejects(t *testing.T) {
	plane := testPlane(9000) // 10000 ft
	long := airport("LNG", 0, 0, 12000)
	short := airport("SHT", 0, 0, 5000)

	for _, c := range []struct {
		arrival, stop models.Airport
		mode          models.GameMode
		reject        bool
	}{
		{long, long, models.Realism, false},
		{long, short, models.Realism, true},
		{long, short, models.Easy, false},
		{short, long, models.Realism, true},
		{short, long, models.Easy, true},
		{short, short, models.Easy, true},
	} {
		if got := RunwayRejects(plane, c.arrival, c.stop, c.mode); got != c.reject {
			t.Errorf("arrival %d stop %d %v: got %v, expected %v", c.arrival.RunwayFt, c.stop.RunwayFt, c.mode, got, c.reject)
		}
	}
}

func TestRunwayFilter(t *testing.T) {
	shortMid := mid
	shortMid.RunwayFt = 5000
	route := []models.Airport{dep, arr}

	res, err := Find(context.Background(), route, []models.Airport{shortMid}, testPlane(9000), models.Realism, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 0 {
		t.Errorf("realism accepted a short runway stopover")
	}

	res, err = Find(context.Background(), route, []models.Airport{shortMid}, testPlane(9000), models.Easy, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 1 {
		t.Errorf("easy rejected a short runway stopover")
	}

	shortArr := arr
	shortArr.RunwayFt = 5000
	res, err = Find(context.Background(), []models.Airport{dep, shortArr}, []models.Airport{mid}, testPlane(9000), models.Easy, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 0 {
		t.Errorf("short arrival runway accepted")
	}
}

func TestRouteAirportsNotCandidates(t *testing.T) {
	res, err := Find(context.Background(), []models.Airport{dep, arr}, []models.Airport{dep, arr, mid}, testPlane(9000), models.Realism, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 1 || codes(res[0]) != "DEP-MID-ARR" {
		t.Errorf("got %v", res)
	}
}

func TestExistingStopover(t *testing.T) {
	// DEP-W50 is flyable; the new stop goes between W50 and ARR.
	res, err := Find(context.Background(), []models.Airport{dep, w50, arr}, []models.Airport{e10}, testPlane(9000), models.Realism, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 1 || codes(res[0]) != "DEP-W50-E10-ARR" {
		t.Errorf("got %v", res)
	}
}

func TestCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Find(ctx, []models.Airport{dep, arr}, []models.Airport{mid}, testPlane(9000), models.Realism, Options{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, expected context.Canceled", err)
	}
}

func TestInsufficientRoute(t *testing.T) {
	_, err := Find(context.Background(), []models.Airport{dep}, nil, testPlane(9000), models.Realism, Options{})
	if !errors.Is(err, geo.ErrInsufficientCoordinates) {
		t.Errorf("got %v", err)
	}
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	lg := log.NewTest(&buf, slog.LevelDebug)
	if _, err := Find(context.Background(), []models.Airport{dep, arr}, []models.Airport{mid, lop}, testPlane(9000), models.Realism, Options{Logger: lg}); err != nil {
		t.Fatal(err)
	}
	if out := buf.String(); !strings.Contains(out, "DEP-ARR: 2 of 2 candidates") || !strings.Contains(out, "DEP-ARR: 1 routes") {
		t.Errorf("unexpected log output %q", out)
	}
}
