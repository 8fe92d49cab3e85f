// Package catalog loads the airport and plane databases and serves
// lookups over them. A Catalog is read-only once built.
package catalog

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"route_planner/internal/models"
)

var (
	ErrMissingColumn = errors.New("missing required column")
	ErrNoAirports    = errors.New("no airports loaded")
	ErrNoPlanes      = errors.New("no planes loaded")
)

type Catalog struct {
	airports []models.Airport
	planes   []models.Plane
	byCode   map[string]int
	byName   map[string]int
}

func New(airports []models.Airport, planes []models.Plane) *Catalog {
	c := &Catalog{
		airports: airports,
		planes:   planes,
		byCode:   make(map[string]int, 3*len(airports)),
		byName:   make(map[string]int, 2*len(planes)),
	}
	for i, ap := range airports {
		for _, k := range []string{ap.ID, ap.IATA, ap.ICAO} {
			if k == "" {
				continue
			}
			// the first airport claiming a code keeps it
			if _, ok := c.byCode[strings.ToUpper(k)]; !ok {
				c.byCode[strings.ToUpper(k)] = i
			}
		}
	}
	for i, p := range planes {
		for _, k := range []string{p.ID, p.Name} {
			if k == "" {
				continue
			}
			if _, ok := c.byName[strings.ToLower(k)]; !ok {
				c.byName[strings.ToLower(k)] = i
			}
		}
	}
	return c
}

func (c *Catalog) Airports() []models.Airport {
	return c.airports
}

func (c *Catalog) Planes() []models.Plane {
	return c.planes
}

// AirportByCode matches IATA, ICAO or ID, ignoring case.
func (c *Catalog) AirportByCode(code string) (models.Airport, bool) {
	i, ok := c.byCode[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return models.Airport{}, false
	}
	return c.airports[i], true
}

// PlaneByName matches the plane name or ID, ignoring case.
func (c *Catalog) PlaneByName(name string) (models.Plane, bool) {
	i, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return models.Plane{}, false
	}
	return c.planes[i], true
}

// column names accepted for each field, in order of preference
var airportColumns = map[string][]string{
	"id":      {"id"},
	"iata":    {"iata", "iata_code"},
	"icao":    {"icao", "icao_code", "ident"},
	"name":    {"name"},
	"country": {"country", "iso_country"},
	"lat":     {"latitude", "lat", "latitude_deg"},
	"lon":     {"longitude", "lon", "lng", "longitude_deg"},
	"runway":  {"runway", "runway_ft", "rwy"},
	"market":  {"market"},
}

// LoadAirportsCSV parses an airports CSV file. Columns are matched by
// header name so extra columns are ignored.
func LoadAirportsCSV(path string) ([]models.Airport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	airports, err := ReadAirportsCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return airports, nil
}

func ReadAirportsCSV(r io.Reader) ([]models.Airport, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	headers, err := reader.Read()
	if err != nil {
		return nil, err
	}
	idx := make(map[string]int, len(airportColumns))
	for field, names := range airportColumns {
		idx[field] = -1
	columns:
		for _, n := range names {
			for i, h := range headers {
				if strings.EqualFold(strings.TrimSpace(h), n) {
					idx[field] = i
					break columns
				}
			}
		}
	}
	for _, field := range []string{"lat", "lon"} {
		if idx[field] < 0 {
			return nil, fmt.Errorf("%s: %w", field, ErrMissingColumn)
		}
	}
	if idx["id"] < 0 && idx["iata"] < 0 && idx["icao"] < 0 {
		return nil, fmt.Errorf("id, iata or icao: %w", ErrMissingColumn)
	}

	get := func(rec []string, field string) string {
		if i := idx[field]; i >= 0 && i < len(rec) {
			return strings.TrimSpace(rec[i])
		}
		return ""
	}

	var airports []models.Airport
	for line := 2; ; line++ {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}

		lat, err := strconv.ParseFloat(get(rec, "lat"), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: latitude: %w", line, err)
		}
		lon, err := strconv.ParseFloat(get(rec, "lon"), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: longitude: %w", line, err)
		}
		runway, _ := strconv.Atoi(get(rec, "runway"))
		market, _ := strconv.Atoi(get(rec, "market"))

		ap := models.Airport{
			ID:       get(rec, "id"),
			IATA:     get(rec, "iata"),
			ICAO:     get(rec, "icao"),
			Name:     get(rec, "name"),
			Country:  get(rec, "country"),
			Location: models.Coordinate{Lon: lon, Lat: lat},
			RunwayFt: runway,
			Market:   market,
		}
		if ap.ID == "" {
			ap.ID = ap.Code()
		}
		airports = append(airports, ap)
	}
	if len(airports) == 0 {
		return nil, ErrNoAirports
	}
	return airports, nil
}

// LoadPlanesJSON reads a JSON array of planes.
func LoadPlanesJSON(path string) ([]models.Plane, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	planes, err := ReadPlanesJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return planes, nil
}

func ReadPlanesJSON(r io.Reader) ([]models.Plane, error) {
	var planes []models.Plane
	if err := json.NewDecoder(r).Decode(&planes); err != nil {
		return nil, err
	}
	if len(planes) == 0 {
		return nil, ErrNoPlanes
	}
	for i := range planes {
		p := &planes[i]
		t, err := models.ParsePlaneType(string(p.Type))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.Name, err)
		}
		p.Type = t
		if p.ID == "" {
			p.ID = p.Name
		}
	}
	return planes, nil
}
