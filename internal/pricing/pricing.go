package pricing

import (
	"errors"
	"fmt"
	"math"

	"github.com/Simplici0/printcalc/internal/profile"
)

// ErrInvalidProfile is returned when an input profile cannot produce a finite cost.
var ErrInvalidProfile = errors.New("invalid profile")

// Breakdown contains every line item of a print job cost.
type Breakdown struct {
	MaterialCostPerInstance float64 `json:"material_cost_per_instance"`
	TotalMaterialCost       float64 `json:"total_material_cost"`
	ElectricityCost         float64 `json:"electricity_cost"`
	DepreciationCost        float64 `json:"depreciation_cost"`
	LaborCost               float64 `json:"labor_cost"`
	TotalCost               float64 `json:"total_cost"`
	WeightGPerInstance      float64 `json:"weight_g_per_instance"`
	TotalWeightG            float64 `json:"total_weight_g"`
}

// Calculate computes the cost of printing part on printer with material.
// Values are kept at full precision; use Rounded for presentation.
func Calculate(printer profile.Printer, material profile.Material, part profile.Part, settings profile.GlobalSettings) (Breakdown, error) {
	if err := validate(printer, material, part, settings); err != nil {
		return Breakdown{}, err
	}

	instances := float64(part.Instances)

	volumeCm3 := part.VolumeMM3 / 1000.0
	weightG := volumeCm3 * material.DensityGPerCm3

	materialCostPerInstance := (weightG / 1000.0) * material.PricePer1000g
	totalMaterialCost := materialCostPerInstance * instances

	totalPrintHours := part.PrintTimeHours * instances
	electricityCost := (totalPrintHours * printer.PowerWatts / 1000.0) * settings.ElectricityCostPerKWh
	depreciationCost := (printer.PurchasePrice / printer.DepreciationHours) * totalPrintHours

	// Setup is paid once per job, post-processing once per instance.
	laborCost := (part.SetupTimeHours + part.PostProcessingTimeHours*instances) * settings.LaborCostPerHour

	total := totalMaterialCost + electricityCost + depreciationCost + laborCost

	b := Breakdown{
		MaterialCostPerInstance: materialCostPerInstance,
		TotalMaterialCost:       totalMaterialCost,
		ElectricityCost:         electricityCost,
		DepreciationCost:        depreciationCost,
		LaborCost:               laborCost,
		TotalCost:               total,
		WeightGPerInstance:      weightG,
		TotalWeightG:            weightG * instances,
	}
	if !b.finite() {
		return Breakdown{}, fmt.Errorf("%w: calculation produced a non-finite value", ErrInvalidProfile)
	}
	return b, nil
}

// Rounded returns a copy with every value rounded to two decimals.
func (b Breakdown) Rounded() Breakdown {
	return Breakdown{
		MaterialCostPerInstance: round2(b.MaterialCostPerInstance),
		TotalMaterialCost:       round2(b.TotalMaterialCost),
		ElectricityCost:         round2(b.ElectricityCost),
		DepreciationCost:        round2(b.DepreciationCost),
		LaborCost:               round2(b.LaborCost),
		TotalCost:               round2(b.TotalCost),
		WeightGPerInstance:      round2(b.WeightGPerInstance),
		TotalWeightG:            round2(b.TotalWeightG),
	}
}

func (b Breakdown) finite() bool {
	for _, v := range []float64{
		b.MaterialCostPerInstance, b.TotalMaterialCost, b.ElectricityCost, b.DepreciationCost,
		b.LaborCost, b.TotalCost, b.WeightGPerInstance, b.TotalWeightG,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func validate(printer profile.Printer, material profile.Material, part profile.Part, settings profile.GlobalSettings) error {
	if printer.DepreciationHours == 0 {
		return fmt.Errorf("%w: printer %q has zero depreciation time", ErrInvalidProfile, printer.Name)
	}
	checks := []struct {
		kind string
		err  error
	}{
		{"printer", printer.Validate()},
		{"material", material.ValidateCost()},
		{"part", part.Validate()},
		{"settings", settings.Validate()},
	}
	for _, c := range checks {
		if c.err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidProfile, c.kind, c.err)
		}
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
