// internal/storage/sqlite.go
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"logdeck/internal/engine"
)

// Store persists per-service view preferences in a sqlite database under
// the user's home directory. Log lines are never written here.
type Store struct {
	db *sql.DB
}

// Open creates the data directory and database if missing.
func Open() (*Store, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	dataDir := filepath.Join(homeDir, ".logdeck")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return OpenPath(filepath.Join(dataDir, "logdeck.db"))
}

// OpenPath opens the database at an explicit path.
func OpenPath(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS service_prefs (
		service TEXT PRIMARY KEY,
		tail INTEGER NOT NULL,
		level TEXT NOT NULL,
		text_filter TEXT NOT NULL,
		container_override TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);
	`
	_, err := db.Exec(schema)
	return err
}

// LoadPrefs returns the stored preferences for a service, reporting ok
// false when none exist.
func (s *Store) LoadPrefs(service string) (engine.Prefs, bool, error) {
	row := s.db.QueryRow(`
		SELECT tail, level, text_filter, container_override
		FROM service_prefs WHERE service = ?`, service)

	p := engine.Prefs{Service: service}
	err := row.Scan(&p.Tail, &p.Level, &p.TextFilter, &p.ContainerOverride)
	if err == sql.ErrNoRows {
		return engine.Prefs{}, false, nil
	}
	if err != nil {
		return engine.Prefs{}, false, err
	}
	return p, true, nil
}

// SavePrefs upserts the preferences for a service.
func (s *Store) SavePrefs(p engine.Prefs) error {
	_, err := s.db.Exec(`
		INSERT INTO service_prefs (service, tail, level, text_filter, container_override, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(service) DO UPDATE SET
			tail = excluded.tail,
			level = excluded.level,
			text_filter = excluded.text_filter,
			container_override = excluded.container_override,
			updated_at = excluded.updated_at`,
		p.Service, p.Tail, p.Level, p.TextFilter, p.ContainerOverride, time.Now().Unix())
	return err
}

var _ engine.PrefsStore = (*Store)(nil)

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
