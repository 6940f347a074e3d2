package shell

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/Simplici0/printcalc/internal/pricing"
	"github.com/Simplici0/printcalc/internal/profile"
	"github.com/Simplici0/printcalc/internal/prompt"
	"github.com/Simplici0/printcalc/internal/store"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var defaultSettings = profile.GlobalSettings{LaborCostPerHour: 25, ElectricityCostPerKWh: 0.23}

func script(lines ...string) *strings.Reader {
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}

func newStore(t *testing.T) (*store.Store, string) {
	t.Helper()
	dir := t.TempDir()
	return store.New(store.NewFileBackend(dir), zap.NewNop()), dir
}

func TestRunCreatesEverythingAndArchives(t *testing.T) {
	st, dir := newStore(t)
	var out strings.Builder

	in := script(
		// printer
		"MK4", "1000", "500", "200",
		// material
		"PLA", "1.24", "20", "1.75",
		// part
		"bracket", "mm3", "10000", "hours", "1", "0.25", "0.1", "2",
		// archive
		"yes",
	)

	outcome, err := New(in, &out, st, zap.NewNop(), "$").Run(defaultSettings)
	require.NoError(t, err)

	assert.InDelta(t, 15.838, outcome.Breakdown.TotalCost, 1e-9)
	assert.InDelta(t, 12.4, outcome.Breakdown.WeightGPerInstance, 1e-9)
	require.NotNil(t, outcome.Archived)

	text := out.String()
	assert.Contains(t, text, "No printer profiles found. Please create a new one.")
	assert.Contains(t, text, "New part profile 'bracket' saved.")
	assert.Contains(t, text, "15.84 $")
	assert.Contains(t, text, "Cost details saved to the database.")

	assert.Equal(t, []string{"MK4"}, st.Printers().Names())
	assert.Equal(t, []string{"PLA"}, st.Materials().Names())
	assert.Equal(t, []string{"bracket"}, st.Parts().Names())

	results := st.Results()
	require.Contains(t, results, "bracket")
	assert.Equal(t, 15.84, results["bracket"].Breakdown.TotalCost)
	assert.Equal(t, "MK4", results["bracket"].Printer)

	_, err = os.Stat(filepath.Join(dir, "parts_database.json"))
	require.NoError(t, err)
}

func seedProfiles(t *testing.T, st *store.Store) {
	t.Helper()

	printers := profile.NewRegistry[profile.Printer]()
	require.NoError(t, printers.Add(profile.Printer{Name: "MK4", PurchasePrice: 1000, DepreciationHours: 500, PowerWatts: 200}))
	require.True(t, st.SavePrinters(printers))

	materials := profile.NewRegistry[profile.Material]()
	require.NoError(t, materials.Add(profile.Material{Name: "PLA", DensityGPerCm3: 1.24, PricePer1000g: 20, FilamentDiameterMM: 1.75}))
	require.True(t, st.SaveMaterials(materials))

	parts := profile.NewRegistry[profile.Part]()
	require.NoError(t, parts.Add(profile.Part{Name: "bracket", VolumeMM3: 10000, PrintTimeHours: 1, SetupTimeHours: 0.25, PostProcessingTimeHours: 0.1, Instances: 2}))
	require.True(t, st.SaveParts(parts))
}

func TestRunSelectsExistingProfiles(t *testing.T) {
	st, _ := newStore(t)
	seedProfiles(t, st)
	var out strings.Builder

	in := script(
		"9", "1", // out of range, then MK4
		"1",      // PLA
		"1",      // bracket
		"no",     // do not archive
	)

	outcome, err := New(in, &out, st, zap.NewNop(), "zł").Run(defaultSettings)
	require.NoError(t, err)

	assert.Equal(t, "MK4", outcome.Printer.Name)
	assert.Equal(t, "bracket", outcome.Part.Name)
	assert.Nil(t, outcome.Archived)
	assert.Empty(t, st.Results())

	text := out.String()
	assert.Contains(t, text, "1: MK4")
	assert.Contains(t, text, "2: Create new printer profile")
	assert.Contains(t, text, "Invalid input: Choose a number between 1 and 2.")
	assert.Contains(t, text, "15.84 zł")
}

func TestRunCreatesPartWithUnitFallbacks(t *testing.T) {
	st, _ := newStore(t)
	seedProfiles(t, st)
	var out strings.Builder

	in := script(
		"1", "1",
		"2",              // create new part
		"bracket",        // taken
		"clip",           // accepted
		"cm3",            // unknown volume unit, falls back to mm3
		"5000",           // volume
		"days",           // unknown time unit, asked again
		"minutes", "120", // 2 hours
		"0", "0", "1",
		"no",
	)

	outcome, err := New(in, &out, st, zap.NewNop(), "$").Run(defaultSettings)
	require.NoError(t, err)

	assert.Equal(t, profile.Part{Name: "clip", VolumeMM3: 5000, PrintTimeHours: 2, Instances: 1}, outcome.Part)
	assert.Equal(t, []string{"bracket", "clip"}, st.Parts().Names())

	text := out.String()
	assert.Contains(t, text, `A part profile named "bracket" already exists.`)
	assert.Contains(t, text, "Invalid unit. Defaulting to cubic millimeters (mm3).")
	assert.Contains(t, text, "Please enter 'hours' or 'minutes'.")
}

func TestRunCreatesPartFromMassAndFilamentLength(t *testing.T) {
	tests := []struct {
		name   string
		lines  []string
		volume float64
	}{
		{"grams", []string{"g", "12.4"}, 10000},
		{"meters", []string{"m", "1"}, math.Pi * 0.875 * 0.875 * 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, _ := newStore(t)
			seedProfiles(t, st)

			lines := []string{"1", "1", "2", "widget"}
			lines = append(lines, tt.lines...)
			lines = append(lines, "hours", "1", "0", "0", "1", "no")

			outcome, err := New(script(lines...), &strings.Builder{}, st, zap.NewNop(), "$").Run(defaultSettings)
			require.NoError(t, err)
			assert.InDelta(t, tt.volume, outcome.Part.VolumeMM3, 1e-9)
		})
	}
}

func TestRunReportsInvalidProfile(t *testing.T) {
	st, _ := newStore(t)
	seedProfiles(t, st)

	broken := profile.NewRegistry[profile.Printer]()
	require.NoError(t, broken.Add(profile.Printer{Name: "Worn out", PurchasePrice: 100, DepreciationHours: 0}))
	require.True(t, st.SavePrinters(broken))

	_, err := New(script("1", "1", "1"), &strings.Builder{}, st, zap.NewNop(), "$").Run(defaultSettings)
	require.ErrorIs(t, err, pricing.ErrInvalidProfile)
	assert.Empty(t, st.Results())
}

func TestRunStopsAtEndOfInput(t *testing.T) {
	st, _ := newStore(t)

	_, err := New(script("MK4", "1000"), &strings.Builder{}, st, zap.NewNop(), "$").Run(defaultSettings)
	require.ErrorIs(t, err, prompt.ErrClosed)
	assert.Equal(t, 0, st.Printers().Len(), "an unfinished profile must not be saved")
}

func TestCreatePartWithoutMaterialIsMissingDependency(t *testing.T) {
	st, _ := newStore(t)
	s := New(script("gear", "g"), &strings.Builder{}, st, zap.NewNop(), "$")

	_, err := s.createPart(profile.NewRegistry[profile.Part](), nil)
	require.ErrorIs(t, err, ErrMissingDependency)
}

func TestSelectOrCreateRetriesAfterMissingDependency(t *testing.T) {
	st, _ := newStore(t)
	var out strings.Builder
	s := New(script(
		"gear", "m", // needs a material, aborted
		"gear", "mm3", "100", "hours", "1", "0", "0", "1",
	), &out, st, zap.NewNop(), "$")

	create := func(reg *profile.Registry[profile.Part]) (profile.Part, error) {
		return s.createPart(reg, nil)
	}
	part, err := selectOrCreate(s, "part", st.Parts(), create, st.SaveParts)
	require.NoError(t, err)

	assert.Equal(t, "gear", part.Name)
	assert.Equal(t, 100.0, part.VolumeMM3)
	assert.Contains(t, out.String(), "Cannot create the part profile: missing dependency")
	assert.Equal(t, []string{"gear"}, st.Parts().Names())
}
