package store

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Simplici0/printcalc/internal/config"
	"github.com/Simplici0/printcalc/internal/db"
	"github.com/Simplici0/printcalc/internal/migrations"
)

// Open builds the Store selected by cfg. The sqlite database is created and
// migrated on first use.
func Open(cfg config.Config, logger *zap.Logger) (*Store, error) {
	switch cfg.Store {
	case config.StoreJSON:
		logger.Info("using json profile files", zap.String("dir", cfg.DataDir))
		return New(NewFileBackend(cfg.DataDir), logger), nil

	case config.StoreSQLite:
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		if err := migrations.Up(database, logger); err != nil {
			database.Close()
			return nil, err
		}
		version, err := migrations.Version(database)
		if err != nil {
			database.Close()
			return nil, err
		}
		logger.Info("using sqlite profile store",
			zap.String("path", cfg.DBPath), zap.Int64("schema_version", version))
		return New(NewSQLiteBackend(database), logger), nil

	default:
		return nil, fmt.Errorf("unknown store kind %q", cfg.Store)
	}
}
