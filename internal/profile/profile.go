package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalid is returned when a profile field violates its range.
var ErrInvalid = errors.New("invalid profile")

// Category names one persisted group of records.
type Category string

const (
	Printers  Category = "printers"
	Materials Category = "materials"
	Parts     Category = "parts"
	Settings  Category = "settings"
	Results   Category = "database"
)

// SettingsKey is the record name under which global settings are stored.
const SettingsKey = "global"

// Printer describes a printer used to amortize machine wear and power draw.
type Printer struct {
	Name              string  `json:"name"`
	PurchasePrice     float64 `json:"price"`
	DepreciationHours float64 `json:"depreciation_time"`
	PowerWatts        float64 `json:"power_consumption"`
}

// ProfileName implements Named.
func (p Printer) ProfileName() string { return p.Name }

// Validate checks field ranges.
func (p Printer) Validate() error {
	if err := requireName(p.Name); err != nil {
		return err
	}
	if err := nonNegative("price", p.PurchasePrice); err != nil {
		return err
	}
	if err := positive("depreciation_time", p.DepreciationHours); err != nil {
		return err
	}
	return nonNegative("power_consumption", p.PowerWatts)
}

// Material describes a filament.
type Material struct {
	Name               string  `json:"name"`
	DensityGPerCm3     float64 `json:"density"`
	PricePer1000g      float64 `json:"price_per_1000g"`
	FilamentDiameterMM float64 `json:"filament_diameter_mm"`
}

// ProfileName implements Named.
func (m Material) ProfileName() string { return m.Name }

// Validate checks field ranges.
func (m Material) Validate() error {
	if err := m.ValidateCost(); err != nil {
		return err
	}
	return positive("filament_diameter_mm", m.FilamentDiameterMM)
}

// ValidateCost checks only the fields the cost model reads. The filament
// diameter matters only when a part volume is derived from a length.
func (m Material) ValidateCost() error {
	if err := requireName(m.Name); err != nil {
		return err
	}
	if err := positive("density", m.DensityGPerCm3); err != nil {
		return err
	}
	return nonNegative("price_per_1000g", m.PricePer1000g)
}

// UnmarshalJSON also accepts the older "filament_diameter" key.
func (m *Material) UnmarshalJSON(data []byte) error {
	type plain Material
	var raw struct {
		plain
		LegacyDiameter *float64 `json:"filament_diameter"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = Material(raw.plain)
	if m.FilamentDiameterMM == 0 && raw.LegacyDiameter != nil {
		m.FilamentDiameterMM = *raw.LegacyDiameter
	}
	return nil
}

// Part describes one printable part and the job it is printed in.
// VolumeMM3 and PrintTimeHours are already normalized.
type Part struct {
	Name                    string  `json:"name"`
	VolumeMM3               float64 `json:"volume_mm3"`
	PrintTimeHours          float64 `json:"print_time"`
	SetupTimeHours          float64 `json:"setup_time"`
	PostProcessingTimeHours float64 `json:"post_processing_time"`
	Instances               int     `json:"instances"`
}

// ProfileName implements Named.
func (p Part) ProfileName() string { return p.Name }

// Validate checks field ranges.
func (p Part) Validate() error {
	if err := requireName(p.Name); err != nil {
		return err
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"volume_mm3", p.VolumeMM3},
		{"print_time", p.PrintTimeHours},
		{"setup_time", p.SetupTimeHours},
		{"post_processing_time", p.PostProcessingTimeHours},
	} {
		if err := nonNegative(f.name, f.value); err != nil {
			return err
		}
	}
	if p.Instances < 1 {
		return fmt.Errorf("%w: instances must be at least 1, got %d", ErrInvalid, p.Instances)
	}
	return nil
}

// GlobalSettings holds the rates shared by every calculation.
type GlobalSettings struct {
	LaborCostPerHour      float64 `json:"labor_cost_per_hour"`
	ElectricityCostPerKWh float64 `json:"electricity_cost_per_kWh"`
}

// Validate checks field ranges.
func (s GlobalSettings) Validate() error {
	if err := nonNegative("labor_cost_per_hour", s.LaborCostPerHour); err != nil {
		return err
	}
	return nonNegative("electricity_cost_per_kWh", s.ElectricityCostPerKWh)
}

func requireName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}
	return nil
}

func nonNegative(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("%w: %s must be a finite value >= 0, got %v", ErrInvalid, field, v)
	}
	return nil
}

func positive(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return fmt.Errorf("%w: %s must be a finite value > 0, got %v", ErrInvalid, field, v)
	}
	return nil
}
