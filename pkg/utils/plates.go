package utils

import (
	"errors"
	"math"
)

var ErrInvalidQuantity = errors.New("quantity must be greater than zero")

const (
	// PlateValueINR is the per-plate value used for donations created
	// interactively. The seeder uses a randomized range instead.
	PlateValueINR = 100

	// Conversion factors into the platform's normalized plate unit.
	PlatesPerKg    = 4.0
	PlatesPerLiter = 3.0
	PiecesPerPlate = 2.0
)

// NormalizePlates converts a food quantity in the given unit into a plate
// count and its estimated value in INR. Units outside {plates, kg, liters}
// are treated as pieces. The result is deterministic; plates and value are
// computed once at donation creation and never recomputed.
func NormalizePlates(quantity float64, unit string) (totalPlates int, estimatedValueINR int, err error) {
	if quantity <= 0 {
		return 0, 0, ErrInvalidQuantity
	}

	switch unit {
	case "plates":
		totalPlates = int(math.Round(quantity))
	case "kg":
		totalPlates = int(math.Round(quantity * PlatesPerKg))
	case "liters":
		totalPlates = int(math.Round(quantity * PlatesPerLiter))
	default:
		totalPlates = int(math.Round(quantity / PiecesPerPlate))
	}

	return totalPlates, totalPlates * PlateValueINR, nil
}
