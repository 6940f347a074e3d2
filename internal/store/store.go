package store

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Simplici0/printcalc/internal/pricing"
	"github.com/Simplici0/printcalc/internal/profile"
)

// Result is a computed breakdown archived under its part name.
type Result struct {
	RunID      uuid.UUID         `json:"run_id"`
	PartName   string            `json:"part"`
	Printer    string            `json:"printer"`
	Material   string            `json:"material"`
	Currency   string            `json:"currency"`
	ComputedAt time.Time         `json:"computed_at"`
	Breakdown  pricing.Breakdown `json:"cost_details"`
}

// Store gives typed access to a Backend. Failures are logged, never returned:
// reads degrade to empty mappings and writes are dropped.
// A Store is safe for concurrent use; every category read or write holds mu.
type Store struct {
	mu      sync.Mutex
	backend Backend
	logger  *zap.Logger
	now     func() time.Time
}

// New returns a Store over backend.
func New(backend Backend, logger *zap.Logger) *Store {
	return &Store{backend: backend, logger: logger, now: time.Now}
}

// Close closes the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

// Printers loads all printer profiles.
func (s *Store) Printers() *profile.Registry[profile.Printer] {
	return loadRegistry[profile.Printer](s, profile.Printers)
}

// Materials loads all material profiles.
func (s *Store) Materials() *profile.Registry[profile.Material] {
	return loadRegistry[profile.Material](s, profile.Materials)
}

// Parts loads all part profiles.
func (s *Store) Parts() *profile.Registry[profile.Part] {
	return loadRegistry[profile.Part](s, profile.Parts)
}

// SavePrinters writes the full printer registry.
func (s *Store) SavePrinters(reg *profile.Registry[profile.Printer]) bool {
	return saveRegistry(s, profile.Printers, reg)
}

// SaveMaterials writes the full material registry.
func (s *Store) SaveMaterials(reg *profile.Registry[profile.Material]) bool {
	return saveRegistry(s, profile.Materials, reg)
}

// SaveParts writes the full part registry.
func (s *Store) SaveParts(reg *profile.Registry[profile.Part]) bool {
	return saveRegistry(s, profile.Parts, reg)
}

// Settings returns the stored global settings, if any.
func (s *Store) Settings() (profile.GlobalSettings, bool) {
	s.mu.Lock()
	records := s.load(profile.Settings)
	s.mu.Unlock()

	raw, ok := records[profile.SettingsKey]
	if !ok {
		return profile.GlobalSettings{}, false
	}

	var settings profile.GlobalSettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		s.logger.Error("failed to decode global settings", zap.Error(err))
		return profile.GlobalSettings{}, false
	}
	if err := settings.Validate(); err != nil {
		s.logger.Error("ignoring invalid global settings", zap.Error(err))
		return profile.GlobalSettings{}, false
	}
	return settings, true
}

// SaveSettings writes the global settings.
func (s *Store) SaveSettings(settings profile.GlobalSettings) bool {
	raw, err := json.Marshal(settings)
	if err != nil {
		s.logger.Error("failed to encode global settings", zap.Error(err))
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(profile.Settings, map[string]json.RawMessage{profile.SettingsKey: raw})
}

// Results loads the results archive keyed by part name. Entries written by
// the older tool hold a bare cost breakdown and are read as such.
func (s *Store) Results() map[string]Result {
	s.mu.Lock()
	records := s.load(profile.Results)
	s.mu.Unlock()

	out := make(map[string]Result, len(records))
	for name, raw := range records {
		r, err := decodeResult(raw)
		if err != nil {
			s.logger.Warn("skipping unreadable archived result", zap.String("part", name), zap.Error(err))
			continue
		}
		if r.PartName == "" {
			r.PartName = name
		}
		out[name] = r
	}
	return out
}

func decodeResult(raw json.RawMessage) (Result, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return Result{}, err
	}

	var r Result
	if _, ok := keys["cost_details"]; ok {
		err := json.Unmarshal(raw, &r)
		return r, err
	}
	err := json.Unmarshal(raw, &r.Breakdown)
	return r, err
}

// Archive stores breakdown, rounded to cents, under partName, replacing any
// earlier result for the same part.
func (s *Store) Archive(partName, printer, material, currency string, breakdown pricing.Breakdown) (Result, bool) {
	result := Result{
		RunID:      uuid.New(),
		PartName:   partName,
		Printer:    printer,
		Material:   material,
		Currency:   currency,
		ComputedAt: s.now().UTC(),
		Breakdown:  breakdown.Rounded(),
	}

	raw, err := json.Marshal(result)
	if err != nil {
		s.logger.Error("failed to encode result", zap.String("part", partName), zap.Error(err))
		return Result{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.load(profile.Results)
	records[partName] = raw
	if !s.save(profile.Results, records) {
		return Result{}, false
	}

	s.logger.Info("archived result", zap.String("part", partName), zap.Stringer("run_id", result.RunID))
	return result, true
}

func (s *Store) load(category profile.Category) map[string]json.RawMessage {
	records, err := s.backend.Load(category)
	if err != nil {
		s.logger.Error("failed to load records, using empty set",
			zap.String("category", string(category)), zap.Error(err))
		return map[string]json.RawMessage{}
	}
	return records
}

func (s *Store) save(category profile.Category, records map[string]json.RawMessage) bool {
	if err := s.backend.Save(category, records); err != nil {
		s.logger.Error("failed to save records",
			zap.String("category", string(category)), zap.Error(err))
		return false
	}
	return true
}

func loadRegistry[T profile.Named](s *Store, category profile.Category) *profile.Registry[T] {
	s.mu.Lock()
	records := s.load(category)
	s.mu.Unlock()

	reg := profile.NewRegistry[T]()
	for name, raw := range records {
		var p T
		if err := json.Unmarshal(raw, &p); err != nil {
			s.logger.Warn("skipping unreadable profile",
				zap.String("category", string(category)), zap.String("name", name), zap.Error(err))
			continue
		}
		if p.ProfileName() != name {
			s.logger.Warn("skipping profile stored under a different name",
				zap.String("category", string(category)), zap.String("key", name), zap.String("name", p.ProfileName()))
			continue
		}
		if err := reg.Add(p); err != nil {
			s.logger.Warn("skipping profile", zap.String("category", string(category)), zap.Error(err))
		}
	}
	return reg
}

func saveRegistry[T profile.Named](s *Store, category profile.Category, reg *profile.Registry[T]) bool {
	records := make(map[string]json.RawMessage, reg.Len())
	for _, p := range reg.All() {
		raw, err := json.Marshal(p)
		if err != nil {
			s.logger.Error("failed to encode profile",
				zap.String("category", string(category)), zap.String("name", p.ProfileName()), zap.Error(err))
			return false
		}
		records[p.ProfileName()] = raw
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(category, records)
}
