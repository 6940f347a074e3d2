// Package shell runs the interactive cost calculation: it walks the user
// through picking or creating a printer, a material and a part, prints the
// cost breakdown and optionally archives it.
package shell

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/Simplici0/printcalc/internal/pricing"
	"github.com/Simplici0/printcalc/internal/profile"
	"github.com/Simplici0/printcalc/internal/prompt"
	"github.com/Simplici0/printcalc/internal/report"
	"github.com/Simplici0/printcalc/internal/store"
)

// ErrMissingDependency is returned by a creation flow that needs a profile
// which is not available. The flow is abandoned and nothing is saved.
var ErrMissingDependency = errors.New("missing dependency")

// Outcome is the result of one calculation run.
type Outcome struct {
	Printer   profile.Printer
	Material  profile.Material
	Part      profile.Part
	Breakdown pricing.Breakdown
	Archived  *store.Result
}

// Shell holds the collaborators of one interactive session.
type Shell struct {
	p        *prompt.Prompter
	out      io.Writer
	store    *store.Store
	logger   *zap.Logger
	currency string
}

// New returns a Shell reading answers from in and writing to out.
func New(in io.Reader, out io.Writer, st *store.Store, logger *zap.Logger, currency string) *Shell {
	return &Shell{
		p:        prompt.New(in, out),
		out:      out,
		store:    st,
		logger:   logger,
		currency: currency,
	}
}

// Run performs one calculation with settings. Errors are end of input,
// I/O failures, or pricing.ErrInvalidProfile from the cost model.
func (s *Shell) Run(settings profile.GlobalSettings) (*Outcome, error) {
	printer, err := selectOrCreate(s, "printer", s.store.Printers(), s.createPrinter, s.store.SavePrinters)
	if err != nil {
		return nil, fmt.Errorf("select printer: %w", err)
	}

	material, err := selectOrCreate(s, "material", s.store.Materials(), s.createMaterial, s.store.SaveMaterials)
	if err != nil {
		return nil, fmt.Errorf("select material: %w", err)
	}

	createPart := func(reg *profile.Registry[profile.Part]) (profile.Part, error) {
		return s.createPart(reg, &material)
	}
	part, err := selectOrCreate(s, "part", s.store.Parts(), createPart, s.store.SaveParts)
	if err != nil {
		return nil, fmt.Errorf("select part: %w", err)
	}

	breakdown, err := pricing.Calculate(printer, material, part, settings)
	if err != nil {
		s.logger.Error("cost calculation failed",
			zap.String("printer", printer.Name), zap.String("material", material.Name),
			zap.String("part", part.Name), zap.Error(err))
		return nil, fmt.Errorf("calculate costs: %w", err)
	}
	s.logger.Info("cost calculated",
		zap.String("printer", printer.Name), zap.String("material", material.Name),
		zap.String("part", part.Name), zap.Float64("total_cost", breakdown.TotalCost))

	outcome := &Outcome{Printer: printer, Material: material, Part: part, Breakdown: breakdown}

	s.p.Println()
	if err := report.Write(s.out, fmt.Sprintf("Cost details for %s (x%d)", part.Name, part.Instances), breakdown.Rounded(), s.currency); err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}
	s.p.Println()

	save, err := prompt.Ask(s.p, "Do you want to save the cost details to the database? (yes/no): ", prompt.YesNo)
	if err != nil {
		return nil, err
	}
	if save {
		// A failed write has already been logged by the store.
		if result, ok := s.store.Archive(part.Name, printer.Name, material.Name, s.currency, breakdown); ok {
			outcome.Archived = &result
			s.p.Println("Cost details saved to the database.")
		}
	}

	return outcome, nil
}

func selectOrCreate[T profile.Named](
	s *Shell,
	label string,
	reg *profile.Registry[T],
	create func(*profile.Registry[T]) (T, error),
	persist func(*profile.Registry[T]) bool,
) (T, error) {
	var zero T
	for {
		if reg.Len() == 0 {
			s.p.Printf("No %s profiles found. Please create a new one.\n", label)
		} else {
			names := reg.Names()
			s.p.Printf("Select a %s profile or create a new one:\n", label)
			for i, name := range names {
				s.p.Printf("%d: %s\n", i+1, name)
			}
			s.p.Printf("%d: Create new %s profile\n", len(names)+1, label)

			choice, err := prompt.Ask(s.p, fmt.Sprintf("Select a number (1-%d): ", len(names)+1), prompt.Choice(len(names)+1))
			if err != nil {
				return zero, err
			}
			if choice <= len(names) {
				selected, _ := reg.Get(names[choice-1])
				return selected, nil
			}
		}

		created, err := create(reg)
		if errors.Is(err, ErrMissingDependency) {
			s.logger.Warn("profile creation aborted", zap.String("category", label), zap.Error(err))
			s.p.Printf("Cannot create the %s profile: %v\n", label, err)
			continue
		}
		if err != nil {
			return zero, err
		}

		if err := reg.Add(created); err != nil {
			return zero, fmt.Errorf("add %s profile: %w", label, err)
		}
		persist(reg)
		s.logger.Info("profile created", zap.String("category", label), zap.String("name", created.ProfileName()))
		s.p.Printf("New %s profile '%s' saved.\n", label, created.ProfileName())
		return created, nil
	}
}

// uniqueName accepts a non-empty name not yet used in reg.
func uniqueName[T profile.Named](reg *profile.Registry[T], label string) prompt.Parser[string] {
	return func(raw string) (string, error) {
		name, err := prompt.NonEmpty(raw)
		if err != nil {
			return "", err
		}
		if reg.Has(name) {
			return "", prompt.Invalid("A %s profile named %q already exists.", label, name)
		}
		return name, nil
	}
}
