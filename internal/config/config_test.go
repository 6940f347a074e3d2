package config

import (
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PRINTCALC_STORE",
		"PRINTCALC_DATA_DIR",
		"PRINTCALC_DB_PATH",
		"PRINTCALC_CURRENCY",
		"PRINTCALC_LOG_PATH",
		"PRINTCALC_LOG_LEVEL",
		"PRINTCALC_DEFAULT_LABOR_RATE",
		"PRINTCALC_DEFAULT_ELECTRICITY_RATE",
		"PORT",
	} {
		t.Setenv(key, "")
	}
	t.Chdir(t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Store != StoreSQLite {
		t.Fatalf("Store=%q, want %q", cfg.Store, StoreSQLite)
	}
	if cfg.DBPath != filepath.Join(".", "printcalc.db") {
		t.Fatalf("DBPath=%q", cfg.DBPath)
	}
	if cfg.Currency != "$" {
		t.Fatalf("Currency=%q, want $", cfg.Currency)
	}
	if cfg.LogPath != "profile_manager.log" {
		t.Fatalf("LogPath=%q", cfg.LogPath)
	}
	if cfg.DefaultSettings.LaborCostPerHour != 25 || cfg.DefaultSettings.ElectricityCostPerKWh != 0.23 {
		t.Fatalf("unexpected default settings: %+v", cfg.DefaultSettings)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PRINTCALC_STORE", "JSON")
	t.Setenv("PRINTCALC_DATA_DIR", "/var/lib/printcalc")
	t.Setenv("PRINTCALC_CURRENCY", "zł")
	t.Setenv("PRINTCALC_DEFAULT_LABOR_RATE", "50")
	t.Setenv("PRINTCALC_DEFAULT_ELECTRICITY_RATE", "0.86")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Store != StoreJSON {
		t.Fatalf("Store=%q, want %q", cfg.Store, StoreJSON)
	}
	if cfg.DBPath != filepath.Join("/var/lib/printcalc", "printcalc.db") {
		t.Fatalf("DBPath=%q", cfg.DBPath)
	}
	if cfg.Currency != "zł" {
		t.Fatalf("Currency=%q", cfg.Currency)
	}
	if cfg.DefaultSettings.LaborCostPerHour != 50 || cfg.DefaultSettings.ElectricityCostPerKWh != 0.86 {
		t.Fatalf("unexpected settings: %+v", cfg.DefaultSettings)
	}
}

func TestLoad_RejectsBadValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("PRINTCALC_STORE", "postgres")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown store kind")
	}

	t.Setenv("PRINTCALC_STORE", "")
	t.Setenv("PRINTCALC_DEFAULT_LABOR_RATE", "abc")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for non-numeric labor rate")
	}

	t.Setenv("PRINTCALC_DEFAULT_LABOR_RATE", "-5")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for negative labor rate")
	}
}
