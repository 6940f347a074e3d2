package shell

import (
	"fmt"

	"github.com/Simplici0/printcalc/internal/profile"
	"github.com/Simplici0/printcalc/internal/prompt"
	"github.com/Simplici0/printcalc/internal/units"
)

func (s *Shell) createPrinter(reg *profile.Registry[profile.Printer]) (profile.Printer, error) {
	var (
		p   profile.Printer
		err error
	)
	if p.Name, err = prompt.Ask(s.p, "Enter a name for the new printer profile: ", uniqueName(reg, "printer")); err != nil {
		return p, err
	}
	if p.PurchasePrice, err = prompt.Ask(s.p, fmt.Sprintf("Enter the purchase price of the printer in %s: ", s.currency), prompt.Float(0)); err != nil {
		return p, err
	}
	if p.DepreciationHours, err = prompt.Ask(s.p, "Enter the depreciation time of the printer in hours: ", prompt.PositiveFloat); err != nil {
		return p, err
	}
	if p.PowerWatts, err = prompt.Ask(s.p, "Enter the power consumption of the printer in watts: ", prompt.Float(0)); err != nil {
		return p, err
	}
	return p, nil
}

func (s *Shell) createMaterial(reg *profile.Registry[profile.Material]) (profile.Material, error) {
	var (
		m   profile.Material
		err error
	)
	if m.Name, err = prompt.Ask(s.p, "Enter a name for the new material profile: ", uniqueName(reg, "material")); err != nil {
		return m, err
	}
	if m.DensityGPerCm3, err = prompt.Ask(s.p, "Enter the density of the material in g/cm^3: ", prompt.PositiveFloat); err != nil {
		return m, err
	}
	if m.PricePer1000g, err = prompt.Ask(s.p, fmt.Sprintf("Enter the price of the material per 1000g in %s: ", s.currency), prompt.Float(0)); err != nil {
		return m, err
	}
	if m.FilamentDiameterMM, err = prompt.Ask(s.p, "Enter the filament diameter in mm: ", prompt.PositiveFloat); err != nil {
		return m, err
	}
	return m, nil
}

// createPart asks for a part. The g and m volume modes convert through
// material and fail with ErrMissingDependency when it is nil or unusable.
func (s *Shell) createPart(reg *profile.Registry[profile.Part], material *profile.Material) (profile.Part, error) {
	var (
		p   profile.Part
		err error
	)
	if p.Name, err = prompt.Ask(s.p, "Enter a name for the new part profile: ", uniqueName(reg, "part")); err != nil {
		return p, err
	}

	if p.VolumeMM3, err = s.askVolume(material); err != nil {
		return profile.Part{}, err
	}

	timeUnit, err := prompt.Ask(s.p, "Enter the unit for print time (hours/minutes): ", timeUnitParser)
	if err != nil {
		return p, err
	}
	printTime, err := prompt.Ask(s.p, fmt.Sprintf("Enter the print time in %s: ", timeUnit), prompt.Float(0))
	if err != nil {
		return p, err
	}
	if p.PrintTimeHours, err = units.ToHours(printTime, timeUnit); err != nil {
		return p, err
	}

	if p.SetupTimeHours, err = prompt.Ask(s.p, "Enter the setup time in hours: ", prompt.Float(0)); err != nil {
		return p, err
	}
	if p.PostProcessingTimeHours, err = prompt.Ask(s.p, "Enter the post-processing time in hours: ", prompt.Float(0)); err != nil {
		return p, err
	}
	if p.Instances, err = prompt.Ask(s.p, "Enter the number of instances: ", prompt.PositiveInt); err != nil {
		return p, err
	}
	return p, nil
}

func (s *Shell) askVolume(material *profile.Material) (float64, error) {
	raw, err := s.p.Line("Enter the unit of volume (mm3, g, m): ")
	if err != nil {
		return 0, err
	}
	unit, err := units.ParseVolumeUnit(raw)
	if err != nil {
		s.p.Println("Invalid unit. Defaulting to cubic millimeters (mm3).")
		unit = units.VolumeMM3
	}

	switch unit {
	case units.VolumeGrams:
		if material == nil {
			return 0, fmt.Errorf("%w: a material profile is needed to convert grams to volume", ErrMissingDependency)
		}
		mass, err := prompt.Ask(s.p, "Enter the weight of the part in grams: ", prompt.Float(0))
		if err != nil {
			return 0, err
		}
		volume, err := units.VolumeFromMass(mass, material.DensityGPerCm3)
		if err != nil {
			return 0, fmt.Errorf("%w: material %q: %v", ErrMissingDependency, material.Name, err)
		}
		return volume, nil

	case units.VolumeMeters:
		if material == nil {
			return 0, fmt.Errorf("%w: a material profile is needed to convert filament length to volume", ErrMissingDependency)
		}
		if material.FilamentDiameterMM <= 0 {
			return 0, fmt.Errorf("%w: material %q has no filament diameter", ErrMissingDependency, material.Name)
		}
		length, err := prompt.Ask(s.p, "Enter the length of the filament in meters: ", prompt.Float(0))
		if err != nil {
			return 0, err
		}
		return units.VolumeFromFilamentLength(length, material.FilamentDiameterMM), nil

	default:
		return prompt.Ask(s.p, "Enter the volume of the part in cubic mm: ", prompt.Float(0))
	}
}

func timeUnitParser(raw string) (units.TimeUnit, error) {
	unit, err := units.ParseTimeUnit(raw)
	if err != nil {
		return "", prompt.Invalid("Please enter 'hours' or 'minutes'.")
	}
	return unit, nil
}
