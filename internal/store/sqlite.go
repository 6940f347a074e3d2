package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Simplici0/printcalc/internal/profile"
)

// SQLiteBackend keeps every category in the records table.
type SQLiteBackend struct {
	db *sql.DB
}

// NewSQLiteBackend wraps a migrated database.
func NewSQLiteBackend(db *sql.DB) *SQLiteBackend {
	return &SQLiteBackend{db: db}
}

// Load implements Backend.
func (b *SQLiteBackend) Load(category profile.Category) (map[string]json.RawMessage, error) {
	rows, err := b.db.Query(`
		SELECT name, payload
		FROM records
		WHERE category = ?
		ORDER BY name
	`, string(category))
	if err != nil {
		return nil, fmt.Errorf("%w: query %s: %v", ErrUnavailable, category, err)
	}
	defer rows.Close()

	records := make(map[string]json.RawMessage)
	for rows.Next() {
		var name, payload string
		if err := rows.Scan(&name, &payload); err != nil {
			return nil, fmt.Errorf("%w: scan %s: %v", ErrUnavailable, category, err)
		}
		records[name] = json.RawMessage(payload)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate %s: %v", ErrUnavailable, category, err)
	}

	return records, nil
}

// Save implements Backend.
func (b *SQLiteBackend) Save(category profile.Category, records map[string]json.RawMessage) error {
	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: begin save %s: %v", ErrUnavailable, category, err)
	}

	if _, err := tx.Exec(`DELETE FROM records WHERE category = ?`, string(category)); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%w: clear %s: %v", ErrUnavailable, category, err)
	}

	for name, payload := range records {
		if _, err := tx.Exec(`
			INSERT INTO records (category, name, payload)
			VALUES (?, ?, ?)
		`, string(category), name, string(payload)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("%w: insert %s/%s: %v", ErrUnavailable, category, name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit save %s: %v", ErrUnavailable, category, err)
	}
	return nil
}

// Close implements Backend.
func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}
