package report

import (
	"bytes"
	"slices"
	"testing"

	"github.com/xuri/excelize/v2"

	"route_planner/internal/game"
	"route_planner/internal/models"
)

func TestWriteFleet(t *testing.T) {
	res := game.AirlineProfitResult{
		PerPlane: []game.PlaneProfitResult{
			{Name: "A380-800", Amount: 2, Total: game.ProfitResult{Profit: 500000, Income: 900000, Expenses: 400000,
				Breakdown: game.Expenses{Fuel: 250000, CO2: 80000, Maintenance: 70000}}, ShareValueGrowth: 0.0125},
			{Name: "B747-400F", Amount: 1, Total: game.ProfitResult{Profit: 120000, Income: 300000, Expenses: 180000}},
		},
		Totals:           game.ProfitResult{Profit: 620000, Income: 1200000, Expenses: 580000},
		ShareValueGrowth: 0.0155,
	}
	staff := models.Staff{Pilots: 20, Crew: 40, Engineers: 10, Tech: 12}

	var buf bytes.Buffer
	if err := WriteFleet(&buf, res, staff); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if got := f.GetSheetList(); !slices.Equal(got, []string{FleetSheet, TotalsSheet, StaffSheet}) {
		t.Errorf("sheets %v", got)
	}

	rows, err := f.GetRows(FleetSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d fleet rows, expected header + 2", len(rows))
	}
	if rows[0][0] != "Plane" || rows[1][0] != "A380-800" || rows[1][1] != "2" || rows[1][8] != "500000" {
		t.Errorf("unexpected fleet rows %v", rows)
	}

	rows, err = f.GetRows(TotalsSheet)
	if err != nil {
		t.Fatal(err)
	}
	if rows[6][0] != "Profit" || rows[6][1] != "620000" {
		t.Errorf("unexpected totals %v", rows)
	}

	rows, err = f.GetRows(StaffSheet)
	if err != nil {
		t.Fatal(err)
	}
	if rows[4][0] != "Total" || rows[4][1] != "82" {
		t.Errorf("unexpected staff rows %v", rows)
	}
}

func TestWriteFleetEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFleet(&buf, game.AirlineProfitResult{}, models.Staff{}); err != nil {
		t.Fatal(err)
	}
	if buf.Len() == 0 {
		t.Errorf("empty workbook not written")
	}
}
