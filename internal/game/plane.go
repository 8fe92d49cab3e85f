package game

import (
	"fmt"

	"github.com/brunoga/deep"

	"route_planner/internal/models"
)

const (
	modSpeedFactor = 1.1
	modFuelFactor  = 0.9
	modCO2Factor   = 0.9

	easySpeedFactor       = 1.5
	easyMaintenanceFactor = 0.5

	maxTraining = 3
)

// ApplyModifications returns a copy of p with the engine modifications and
// staff training bonuses applied. p itself is left untouched.
func ApplyModifications(p models.Plane, mods models.Modifications) (models.Plane, error) {
	if mods.FuelTraining < 0 || mods.FuelTraining > maxTraining {
		return models.Plane{}, fmt.Errorf("fuel training %d%%: %w", mods.FuelTraining, ErrInvalidTraining)
	}
	if mods.CO2Training < 0 || mods.CO2Training > maxTraining {
		return models.Plane{}, fmt.Errorf("co2 training %d%%: %w", mods.CO2Training, ErrInvalidTraining)
	}

	out := deep.MustCopy(p)
	if mods.Speed {
		out.Speed *= modSpeedFactor
	}
	if mods.Fuel {
		out.Fuel *= modFuelFactor
	}
	if mods.CO2 {
		out.CO2 *= modCO2Factor
	}
	out.Fuel *= 1 - float64(mods.FuelTraining)/100
	out.CO2 *= 1 - float64(mods.CO2Training)/100
	return out, nil
}

// ForMode returns a copy of p adjusted for the game mode: easy mode flies
// 1.5x faster and pays half for A-checks.
func ForMode(p models.Plane, mode models.GameMode) models.Plane {
	out := deep.MustCopy(p)
	switch mode {
	case models.Realism:
	case models.Easy:
		out.Speed *= easySpeedFactor
		out.ACheck.Price *= easyMaintenanceFactor
	default:
		panic("unhandled game mode " + mode.String())
	}
	return out
}
