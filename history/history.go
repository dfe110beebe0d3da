// Package history persists connection events in a local SQLite
// database. Recording is best effort: the tray keeps working when the
// database is unavailable, events are simply not kept.
package history

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"nordvpn-indicator/common"
)

// Event is one recorded connection event.
type Event struct {
	ID        string
	Timestamp time.Time
	Kind      string
	Detail    string
}

// Store wraps the event database.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS events (
	id        TEXT PRIMARY KEY,
	timestamp INTEGER NOT NULL,
	kind      TEXT NOT NULL,
	detail    TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_events_timestamp ON events(timestamp);
`

// Open opens (or creates) the event database at path and applies the
// schema. Pass ":memory:" for an in-memory database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	// Single connection avoids SQLITE_BUSY between the recorder and
	// readers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// DefaultPath returns the on-disk location of the history database.
func DefaultPath() (string, error) {
	dataDir, err := common.GetDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, common.HistoryFileName), nil
}

// Add inserts one event with a fresh id and the current time.
func (s *Store) Add(kind, detail string) error {
	if s.db == nil {
		return common.ErrHistoryClosed
	}
	_, err := s.db.Exec(
		`INSERT INTO events (id, timestamp, kind, detail) VALUES (?, ?, ?, ?)`,
		uuid.NewString(), time.Now().Unix(), kind, detail)
	if err != nil {
		return fmt.Errorf("recording %s event: %w", kind, err)
	}
	return nil
}

// Record implements the client's recorder hook. Failures are logged,
// never surfaced.
func (s *Store) Record(kind, detail string) {
	if err := s.Add(kind, detail); err != nil {
		common.LogWarn("history: %v", err)
	}
}

// Recent returns up to limit events, newest first.
func (s *Store) Recent(limit int) ([]Event, error) {
	if s.db == nil {
		return nil, common.ErrHistoryClosed
	}
	rows, err := s.db.Query(
		`SELECT id, timestamp, kind, detail FROM events ORDER BY timestamp DESC, id DESC LIMIT ?`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var event Event
		var unix int64
		if err := rows.Scan(&event.ID, &unix, &event.Kind, &event.Detail); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		event.Timestamp = time.Unix(unix, 0)
		events = append(events, event)
	}
	return events, rows.Err()
}

// Prune removes events older than the retention window.
func (s *Store) Prune() error {
	if s.db == nil {
		return common.ErrHistoryClosed
	}
	cutoff := time.Now().Add(-common.HistoryRetention).Unix()
	_, err := s.db.Exec(`DELETE FROM events WHERE timestamp < ?`, cutoff)
	if err != nil {
		return fmt.Errorf("pruning history: %w", err)
	}
	return nil
}

// Close closes the database. Further calls report ErrHistoryClosed.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
