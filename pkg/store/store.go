// Package store provides SQLite-backed persistence for scene presets and
// session state, so parameter edits survive restarts.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/df07/go-blackhole-raytracer/pkg/scene"
)

// sessionKey is the single row used for last-session restore
const sessionKey = "lastScene"

// Store wraps a SQLite connection for preset persistence
type Store struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	slog.Info("preset store opened", "path", path)
	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS presets (
		name TEXT PRIMARY KEY,
		scene_json TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS session (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);`

	_, err := s.conn.Exec(schema)
	return err
}

// SavePreset stores a scene under its name, replacing any existing preset.
// Invalid parameter sets are rejected here: the store is the boundary
// where external input enters.
func (s *Store) SavePreset(sc *scene.Scene) error {
	if sc.Name == "" {
		return errors.New("preset name must not be empty")
	}
	if err := sc.Params.Validate(); err != nil {
		return fmt.Errorf("invalid preset %q: %w", sc.Name, err)
	}

	data, err := json.Marshal(sc)
	if err != nil {
		return fmt.Errorf("marshal preset: %w", err)
	}

	_, err = s.conn.Exec(
		`INSERT INTO presets (name, scene_json, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET scene_json=excluded.scene_json, updated_at=excluded.updated_at`,
		sc.Name, string(data), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save preset: %w", err)
	}

	slog.Info("preset saved", "name", sc.Name)
	return nil
}

// LoadPreset loads a stored preset by name
func (s *Store) LoadPreset(name string) (*scene.Scene, error) {
	var data string
	err := s.conn.Get(&data, `SELECT scene_json FROM presets WHERE name = ?`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("preset %q not found", name)
	}
	if err != nil {
		return nil, fmt.Errorf("load preset: %w", err)
	}

	var sc scene.Scene
	if err := json.Unmarshal([]byte(data), &sc); err != nil {
		return nil, fmt.Errorf("unmarshal preset %q: %w", name, err)
	}
	return &sc, nil
}

// ListPresets returns stored preset names, most recently updated first
func (s *Store) ListPresets() ([]string, error) {
	var names []string
	err := s.conn.Select(&names, `SELECT name FROM presets ORDER BY updated_at DESC, name`)
	if err != nil {
		return nil, fmt.Errorf("list presets: %w", err)
	}
	return names, nil
}

// DeletePreset removes a stored preset
func (s *Store) DeletePreset(name string) error {
	result, err := s.conn.Exec(`DELETE FROM presets WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete preset: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("preset %q not found", name)
	}
	return nil
}

// SaveSession records the scene to restore on next startup
func (s *Store) SaveSession(sc *scene.Scene) error {
	data, err := json.Marshal(sc)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	_, err = s.conn.Exec(
		`INSERT INTO session (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		sessionKey, string(data))
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// LoadSession returns the last saved scene, or nil when no session exists
func (s *Store) LoadSession() (*scene.Scene, error) {
	var data string
	err := s.conn.Get(&data, `SELECT value FROM session WHERE key = ?`, sessionKey)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var sc scene.Scene
	if err := json.Unmarshal([]byte(data), &sc); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &sc, nil
}
