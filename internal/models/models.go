package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownGameMode  = errors.New("unknown game mode")
	ErrUnknownPlaneType = errors.New("unknown plane type")
	ErrUnknownClass     = errors.New("unknown class")
)

// Coordinate is a (longitude, latitude) pair in degrees.
type Coordinate struct {
	Lon float64 `json:"lon" yaml:"lon" msgpack:"lon"`
	Lat float64 `json:"lat" yaml:"lat" msgpack:"lat"`
}

type Airport struct {
	ID       string     `json:"id" msgpack:"id"`
	IATA     string     `json:"iata" msgpack:"iata"`
	ICAO     string     `json:"icao" msgpack:"icao"`
	Name     string     `json:"name" msgpack:"name"`
	Country  string     `json:"country" msgpack:"country"`
	Location Coordinate `json:"location" msgpack:"location"`
	RunwayFt int        `json:"runway_ft" msgpack:"runway_ft"`
	Market   int        `json:"market" msgpack:"market"`
}

// Code returns the IATA code, falling back to ICAO and then the ID.
func (a Airport) Code() string {
	switch {
	case a.IATA != "":
		return a.IATA
	case a.ICAO != "":
		return a.ICAO
	default:
		return a.ID
	}
}

type GameMode int

const (
	Realism GameMode = iota
	Easy
)

func (m GameMode) String() string {
	switch m {
	case Realism:
		return "Realism"
	case Easy:
		return "Easy"
	default:
		return fmt.Sprintf("GameMode(%d)", int(m))
	}
}

func ParseGameMode(s string) (GameMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "realism", "":
		return Realism, nil
	case "easy":
		return Easy, nil
	default:
		return Realism, fmt.Errorf("%w: %q", ErrUnknownGameMode, s)
	}
}

func (m GameMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *GameMode) UnmarshalText(b []byte) error {
	v, err := ParseGameMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

type PlaneType string

const (
	Pax   PlaneType = "pax"
	Cargo PlaneType = "cargo"
	VIP   PlaneType = "vip"
)

func ParsePlaneType(s string) (PlaneType, error) {
	switch t := PlaneType(strings.ToLower(strings.TrimSpace(s))); t {
	case Pax, Cargo, VIP:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPlaneType, s)
	}
}

type ACheck struct {
	Price         float64 `json:"price" msgpack:"price"`
	IntervalHours float64 `json:"interval_hours" msgpack:"interval_hours"`
}

type Staff struct {
	Pilots    int `json:"pilots" msgpack:"pilots"`
	Crew      int `json:"crew" msgpack:"crew"`
	Engineers int `json:"engineers" msgpack:"engineers"`
	Tech      int `json:"tech" msgpack:"tech"`
}

func (s Staff) Add(o Staff) Staff {
	return Staff{
		Pilots:    s.Pilots + o.Pilots,
		Crew:      s.Crew + o.Crew,
		Engineers: s.Engineers + o.Engineers,
		Tech:      s.Tech + o.Tech,
	}
}

func (s Staff) Scale(n int) Staff {
	return Staff{
		Pilots:    s.Pilots * n,
		Crew:      s.Crew * n,
		Engineers: s.Engineers * n,
		Tech:      s.Tech * n,
	}
}

func (s Staff) Total() int {
	return s.Pilots + s.Crew + s.Engineers + s.Tech
}

// Plane is a value snapshot of a plane model. Capacity is seats for pax/vip
// and lbs (heavy units) for cargo.
type Plane struct {
	ID       string    `json:"id" msgpack:"id"`
	Name     string    `json:"name" msgpack:"name"`
	Type     PlaneType `json:"type" msgpack:"type"`
	Capacity int       `json:"capacity" msgpack:"capacity"`
	Speed    float64   `json:"speed" msgpack:"speed"`
	Fuel     float64   `json:"fuel" msgpack:"fuel"`
	CO2      float64   `json:"co2" msgpack:"co2"`
	RunwayFt int       `json:"runway_ft" msgpack:"runway_ft"`
	Range    float64   `json:"range" msgpack:"range"`
	ACheck   ACheck    `json:"a_check" msgpack:"a_check"`
	Staff    Staff     `json:"staff" msgpack:"staff"`
	Price    *float64  `json:"price,omitempty" msgpack:"price,omitempty"`
}

func (p Plane) IsCargo() bool {
	return p.Type == Cargo
}

type Modifications struct {
	Speed bool `json:"speed" yaml:"speed"`
	Fuel  bool `json:"fuel" yaml:"fuel"`
	CO2   bool `json:"co2" yaml:"co2"`
	// Training percentages, 0-3 in game.
	FuelTraining int `json:"fuel_training" yaml:"fuel_training"`
	CO2Training  int `json:"co2_training" yaml:"co2_training"`
}

type Class int

const (
	First Class = iota
	Business
	Economy
	Large
	Heavy
)

var classNames = [...]string{"F", "J", "Y", "L", "H"}

func (c Class) String() string {
	if c < First || c > Heavy {
		return fmt.Sprintf("Class(%d)", int(c))
	}
	return classNames[c]
}

func (c Class) IsCargo() bool {
	return c == Large || c == Heavy
}

func ParseClass(s string) (Class, error) {
	for i, n := range classNames {
		if strings.EqualFold(strings.TrimSpace(s), n) {
			return Class(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownClass, s)
}

func (c Class) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Class) UnmarshalText(b []byte) error {
	v, err := ParseClass(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Demand is the daily per-class demand on one route leg. L and H are in lbs.
type Demand struct {
	F int `json:"F"`
	J int `json:"J"`
	Y int `json:"Y"`
	L int `json:"L"`
	H int `json:"H"`
}

func (d Demand) Get(c Class) int {
	switch c {
	case First:
		return d.F
	case Business:
		return d.J
	case Economy:
		return d.Y
	case Large:
		return d.L
	case Heavy:
		return d.H
	}
	return 0
}

// Configuration holds seats per class for pax planes, or large/heavy load
// for cargo planes (L in large units, H in heavy units).
type Configuration struct {
	F int `json:"F"`
	J int `json:"J"`
	Y int `json:"Y"`
	L int `json:"L"`
	H int `json:"H"`
}

func (c Configuration) Get(cl Class) int {
	switch cl {
	case First:
		return c.F
	case Business:
		return c.J
	case Economy:
		return c.Y
	case Large:
		return c.L
	case Heavy:
		return c.H
	}
	return 0
}

func (c *Configuration) Set(cl Class, v int) {
	switch cl {
	case First:
		c.F = v
	case Business:
		c.J = v
	case Economy:
		c.Y = v
	case Large:
		c.L = v
	case Heavy:
		c.H = v
	}
}

// Seats is the number of passengers carried by a full pax configuration.
func (c Configuration) Seats() int {
	return c.F + c.J + c.Y
}

// EconomyEquivalent is Y + 2J + 3F.
func (c Configuration) EconomyEquivalent() int {
	return c.Y + 2*c.J + 3*c.F
}

// HeavyEquivalent is the cargo load in heavy units.
func (c Configuration) HeavyEquivalent() int {
	return LargeToHeavy(c.L) + c.H
}

func LargeToHeavy(large int) int {
	return large * 7 / 10
}

func HeavyToLarge(heavy int) int {
	return heavy * 10 / 7
}

type Salaries struct {
	Pilot    float64 `json:"pilot" yaml:"pilot"`
	Crew     float64 `json:"crew" yaml:"crew"`
	Engineer float64 `json:"engineer" yaml:"engineer"`
	Tech     float64 `json:"tech" yaml:"tech"`
}

// ProfitOptions are the airline-wide pricing parameters. Prices are per
// 1000 units of fuel/CO2.
type ProfitOptions struct {
	FuelPrice  float64   `json:"fuel_price" yaml:"fuel_price"`
	CO2Price   float64   `json:"co2_price" yaml:"co2_price"`
	Activity   float64   `json:"activity" yaml:"activity"`
	Reputation float64   `json:"reputation" yaml:"reputation"`
	Salaries   *Salaries `json:"salaries,omitempty" yaml:"salaries,omitempty"`
	Mode       GameMode  `json:"mode" yaml:"mode"`
}

type StopoverRoute struct {
	Airports []Airport `json:"airports"`
	Distance int       `json:"distance"`
	Legs     []int     `json:"legs"`
}

func (r StopoverRoute) Stopovers() []Airport {
	if len(r.Airports) < 3 {
		return nil
	}
	return r.Airports[1 : len(r.Airports)-1]
}

// RouteUsage is the route an owned plane actually flies.
type RouteUsage struct {
	Distance float64       `json:"distance"`
	Flights  int           `json:"flights"`
	Config   Configuration `json:"config"`
}

type OwnedPlane struct {
	Plane  Plane       `json:"plane"`
	Amount int         `json:"amount"`
	Route  *RouteUsage `json:"route,omitempty"`
}
