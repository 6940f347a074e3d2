package main

import (
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/Simplici0/printcalc/internal/config"
	"github.com/Simplici0/printcalc/internal/profile"
	"github.com/Simplici0/printcalc/internal/store"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	return config.Config{
		Store:           config.StoreSQLite,
		DataDir:         dir,
		DBPath:          filepath.Join(dir, "printcalc.db"),
		Currency:        "$",
		DefaultSettings: profile.GlobalSettings{LaborCostPerHour: 25, ElectricityCostPerKWh: 0.23},
	}
}

func TestRunFullSessionSeedsSettingsAndArchives(t *testing.T) {
	cfg := testConfig(t)

	in := strings.NewReader(strings.Join([]string{
		"MK4", "1000", "500", "200",
		"PLA", "1.24", "20", "1.75",
		"bracket", "mm3", "10000", "hours", "1", "0.25", "0.1", "2",
		"yes",
	}, "\n") + "\n")
	var out strings.Builder

	if err := run(cfg, zap.NewNop(), in, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "15.84 $") {
		t.Fatalf("expected total in output, got:\n%s", out.String())
	}

	st, err := store.Open(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer st.Close()

	settings, ok := st.Settings()
	if !ok || settings != cfg.DefaultSettings {
		t.Fatalf("expected default settings to be persisted, got %+v (ok=%v)", settings, ok)
	}
	if _, ok := st.Results()["bracket"]; !ok {
		t.Fatalf("expected archived result for bracket")
	}
}

func TestRunFailsOnTruncatedInput(t *testing.T) {
	cfg := testConfig(t)

	err := run(cfg, zap.NewNop(), strings.NewReader("MK4\n"), &strings.Builder{})
	if err == nil {
		t.Fatalf("expected error on truncated input")
	}
}
