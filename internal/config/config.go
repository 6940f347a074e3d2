package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Simplici0/printcalc/internal/profile"
)

// StoreKind selects the profile store backend.
type StoreKind string

const (
	StoreSQLite StoreKind = "sqlite"
	StoreJSON   StoreKind = "json"
)

const (
	defaultDataDir          = "."
	defaultDBFile           = "printcalc.db"
	defaultCurrency         = "$"
	defaultLogPath          = "profile_manager.log"
	defaultLogLevel         = "info"
	defaultPort             = "8080"
	defaultLaborRate        = 25.00
	defaultElectricityPrice = 0.23
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Store    StoreKind
	DataDir  string
	DBPath   string
	Currency string
	LogPath  string
	LogLevel string
	Port     string

	// DefaultSettings are written to the store when no global settings exist yet.
	DefaultSettings profile.GlobalSettings
}

// Load reads environment variables and returns a populated Config.
func Load() (Config, error) {
	// Best-effort: a missing .env file is fine.
	_, _ = loadDotEnv(".env")

	cfg := Config{
		Store:    StoreKind(strings.ToLower(strings.TrimSpace(os.Getenv("PRINTCALC_STORE")))),
		DataDir:  os.Getenv("PRINTCALC_DATA_DIR"),
		DBPath:   os.Getenv("PRINTCALC_DB_PATH"),
		Currency: os.Getenv("PRINTCALC_CURRENCY"),
		LogPath:  os.Getenv("PRINTCALC_LOG_PATH"),
		LogLevel: os.Getenv("PRINTCALC_LOG_LEVEL"),
		Port:     os.Getenv("PORT"),
	}

	if cfg.Store == "" {
		cfg.Store = StoreSQLite
	}
	if cfg.Store != StoreSQLite && cfg.Store != StoreJSON {
		return Config{}, fmt.Errorf("PRINTCALC_STORE must be %q or %q, got %q", StoreSQLite, StoreJSON, cfg.Store)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.DataDir, defaultDBFile)
	}
	if cfg.Currency == "" {
		cfg.Currency = defaultCurrency
	}
	if cfg.LogPath == "" {
		cfg.LogPath = defaultLogPath
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}

	var err error
	if cfg.DefaultSettings.LaborCostPerHour, err = envFloat("PRINTCALC_DEFAULT_LABOR_RATE", defaultLaborRate); err != nil {
		return Config{}, err
	}
	if cfg.DefaultSettings.ElectricityCostPerKWh, err = envFloat("PRINTCALC_DEFAULT_ELECTRICITY_RATE", defaultElectricityPrice); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func envFloat(key string, fallback float64) (float64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be numeric, got %q", key, raw)
	}
	if value < 0 {
		return 0, fmt.Errorf("%s must be >= 0, got %v", key, value)
	}
	return value, nil
}
