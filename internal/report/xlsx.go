// Package report exports fleet economics as spreadsheets.
package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"route_planner/internal/game"
	"route_planner/internal/models"
)

const (
	FleetSheet  = "Fleet"
	TotalsSheet = "Totals"
	StaffSheet  = "Staff"
)

// WriteFleet writes an xlsx workbook with one row per plane model, the
// fleet totals and the staff required to operate it.
func WriteFleet(w io.Writer, res game.AirlineProfitResult, staff models.Staff) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	for _, s := range []string{FleetSheet, TotalsSheet, StaffSheet} {
		if _, err := f.NewSheet(s); err != nil {
			return err
		}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	headers := []string{"Plane", "Amount", "Income", "Fuel", "CO2", "Maintenance", "Staff", "Expenses", "Profit", "Share value growth"}
	if err := f.SetSheetRow(FleetSheet, "A1", &headers); err != nil {
		return err
	}
	for i, p := range res.PerPlane {
		row := []any{
			p.Name,
			p.Amount,
			p.Total.Income,
			p.Total.Breakdown.Fuel,
			p.Total.Breakdown.CO2,
			p.Total.Breakdown.Maintenance,
			p.Total.Breakdown.Staff,
			p.Total.Expenses,
			p.Total.Profit,
			p.ShareValueGrowth,
		}
		if err := f.SetSheetRow(FleetSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}

	t := res.Totals
	totals := [][]any{
		{"Income", t.Income},
		{"Fuel", t.Breakdown.Fuel},
		{"CO2", t.Breakdown.CO2},
		{"Maintenance", t.Breakdown.Maintenance},
		{"Staff", t.Breakdown.Staff},
		{"Expenses", t.Expenses},
		{"Profit", t.Profit},
		{"Share value growth", res.ShareValueGrowth},
	}
	for i, row := range totals {
		if err := f.SetSheetRow(TotalsSheet, fmt.Sprintf("A%d", i+1), &row); err != nil {
			return err
		}
	}

	staffRows := [][]any{
		{"Pilots", staff.Pilots},
		{"Crew", staff.Crew},
		{"Engineers", staff.Engineers},
		{"Tech", staff.Tech},
		{"Total", staff.Total()},
	}
	for i, row := range staffRows {
		if err := f.SetSheetRow(StaffSheet, fmt.Sprintf("A%d", i+1), &row); err != nil {
			return err
		}
	}

	if idx, err := f.GetSheetIndex(FleetSheet); err == nil {
		f.SetActiveSheet(idx)
	}
	return f.Write(w)
}
