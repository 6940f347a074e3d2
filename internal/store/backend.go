package store

import (
	"encoding/json"
	"errors"

	"github.com/Simplici0/printcalc/internal/profile"
)

// ErrUnavailable marks a store read or write that failed because of I/O or
// malformed content. Callers of Store never see it: it is logged and the
// operation degrades to an empty mapping or a dropped write.
var ErrUnavailable = errors.New("store unavailable")

// Backend persists whole categories of named JSON records.
// Load of a category that was never saved returns an empty mapping.
// Save replaces the category's previous content.
type Backend interface {
	Load(category profile.Category) (map[string]json.RawMessage, error)
	Save(category profile.Category, records map[string]json.RawMessage) error
	Close() error
}
