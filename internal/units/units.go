package units

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrUnknownUnit is returned when a unit token is not recognized.
var ErrUnknownUnit = errors.New("unknown unit")

// VolumeUnit selects how a part volume is entered.
type VolumeUnit string

const (
	// VolumeMM3 is a volume given directly in cubic millimeters.
	VolumeMM3 VolumeUnit = "mm3"
	// VolumeGrams is a part mass in grams, converted with the material density.
	VolumeGrams VolumeUnit = "g"
	// VolumeMeters is a filament length in meters, converted with the filament diameter.
	VolumeMeters VolumeUnit = "m"
)

// TimeUnit selects how a print time is entered.
type TimeUnit string

const (
	Hours   TimeUnit = "hours"
	Minutes TimeUnit = "minutes"
)

// ParseVolumeUnit parses a volume unit token.
func ParseVolumeUnit(raw string) (VolumeUnit, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "mm3":
		return VolumeMM3, nil
	case "g":
		return VolumeGrams, nil
	case "m":
		return VolumeMeters, nil
	default:
		return "", fmt.Errorf("%w: volume unit %q (expected mm3, g or m)", ErrUnknownUnit, raw)
	}
}

// ParseTimeUnit parses a time unit token.
func ParseTimeUnit(raw string) (TimeUnit, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "hours", "hour", "h":
		return Hours, nil
	case "minutes", "minute", "min":
		return Minutes, nil
	default:
		return "", fmt.Errorf("%w: time unit %q (expected hours or minutes)", ErrUnknownUnit, raw)
	}
}

// VolumeFromMass converts a part mass into cubic millimeters.
func VolumeFromMass(massG, densityGPerCm3 float64) (float64, error) {
	if densityGPerCm3 <= 0 {
		return 0, fmt.Errorf("density must be greater than 0, got %g", densityGPerCm3)
	}
	return (massG / densityGPerCm3) * 1000, nil
}

// VolumeFromFilamentLength returns the volume of a filament cylinder in cubic millimeters.
func VolumeFromFilamentLength(lengthM, diameterMM float64) float64 {
	radiusMM := diameterMM / 2
	return math.Pi * radiusMM * radiusMM * (lengthM * 1000)
}

// ToHours normalizes a duration given in unit to hours.
func ToHours(value float64, unit TimeUnit) (float64, error) {
	switch unit {
	case Hours:
		return value, nil
	case Minutes:
		return value / 60, nil
	default:
		return 0, fmt.Errorf("%w: time unit %q", ErrUnknownUnit, string(unit))
	}
}
