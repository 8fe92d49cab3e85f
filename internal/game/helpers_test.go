package game

import "route_planner/internal/models"

func testPaxPlane() models.Plane {
	price := 215_000_000.0
	return models.Plane{
		ID:       "a330-300",
		Name:     "A330-300",
		Type:     models.Pax,
		Capacity: 300,
		Speed:    871,
		Fuel:     20,
		CO2:      0.15,
		RunwayFt: 8000,
		Range:    11300,
		ACheck:   models.ACheck{Price: 1_000_000, IntervalHours: 500},
		Staff:    models.Staff{Pilots: 4, Crew: 10, Engineers: 2, Tech: 4},
		Price:    &price,
	}
}

func testCargoPlane() models.Plane {
	return models.Plane{
		ID:       "b747-8f",
		Name:     "B747-8F",
		Type:     models.Cargo,
		Capacity: 100_000,
		Speed:    908,
		Fuel:     28,
		CO2:      0.16,
		RunwayFt: 10000,
		Range:    8130,
		ACheck:   models.ACheck{Price: 2_000_000, IntervalHours: 450},
		Staff:    models.Staff{Pilots: 4, Crew: 2, Engineers: 4, Tech: 6},
	}
}

func testOptions() models.ProfitOptions {
	return models.ProfitOptions{
		FuelPrice:  500,
		CO2Price:   120,
		Activity:   18,
		Reputation: 100,
		Mode:       models.Realism,
	}
}
