package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Simplici0/printcalc/internal/profile"
)

var fileNames = map[profile.Category]string{
	profile.Printers:  "printer_profiles.json",
	profile.Materials: "material_profiles.json",
	profile.Parts:     "part_profiles.json",
	profile.Settings:  "global_settings.json",
	profile.Results:   "parts_database.json",
}

// FileBackend keeps one indented JSON file per category in a directory.
// Settings are a single flat object rather than a name-keyed mapping.
type FileBackend struct {
	dir string
}

// NewFileBackend returns a backend rooted at dir.
func NewFileBackend(dir string) *FileBackend {
	return &FileBackend{dir: dir}
}

// Path returns the file that holds category.
func (b *FileBackend) Path(category profile.Category) (string, error) {
	name, ok := fileNames[category]
	if !ok {
		return "", fmt.Errorf("unknown category %q", category)
	}
	return filepath.Join(b.dir, name), nil
}

// Load implements Backend.
func (b *FileBackend) Load(category profile.Category) (map[string]json.RawMessage, error) {
	path, err := b.Path(category)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, fmt.Errorf("%w: read %s: %v", ErrUnavailable, path, err)
	}

	if category == profile.Settings {
		var probe map[string]any
		if err := json.Unmarshal(data, &probe); err != nil {
			return nil, fmt.Errorf("%w: parse %s: %v", ErrUnavailable, path, err)
		}
		if len(probe) == 0 {
			return map[string]json.RawMessage{}, nil
		}
		return map[string]json.RawMessage{profile.SettingsKey: json.RawMessage(data)}, nil
	}

	records := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrUnavailable, path, err)
	}
	return records, nil
}

// Save implements Backend.
func (b *FileBackend) Save(category profile.Category, records map[string]json.RawMessage) error {
	path, err := b.Path(category)
	if err != nil {
		return err
	}

	var v any = records
	if category == profile.Settings {
		v = records[profile.SettingsKey]
	}
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrUnavailable, category, err)
	}

	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return fmt.Errorf("%w: create %s: %v", ErrUnavailable, b.dir, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrUnavailable, path, err)
	}
	return nil
}

// Close implements Backend.
func (b *FileBackend) Close() error { return nil }
