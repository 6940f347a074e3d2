package seed

import (
	"go.uber.org/zap"

	"github.com/Simplici0/printcalc/internal/profile"
	"github.com/Simplici0/printcalc/internal/store"
)

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

// Run makes sure global settings exist, writing defaults when the store has
// none, and returns the settings to use for this run. It is idempotent.
// If the defaults cannot be persisted they are still returned.
func Run(st *store.Store, defaults profile.GlobalSettings, logger *zap.Logger) (profile.GlobalSettings, Stats) {
	if settings, ok := st.Settings(); ok {
		return settings, Stats{}
	}

	stats := Stats{}
	if st.SaveSettings(defaults) {
		stats.Inserts++
		logger.Info("wrote default global settings",
			zap.Float64("labor_cost_per_hour", defaults.LaborCostPerHour),
			zap.Float64("electricity_cost_per_kwh", defaults.ElectricityCostPerKWh))
	}
	return defaults, stats
}
