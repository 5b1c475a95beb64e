package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const currentVersion = 1

// SessionApp is the pseudo-app counting the whole session. It is always
// tracked and always counted as active.
const SessionApp = "pc"

const dateColumn = "date"

type Store struct {
	db    *sql.DB
	clock Clock
}

// Option customizes a Store.
type Option func(*Store)

// WithClock sets the clock that decides which calendar day is "today".
func WithClock(c Clock) Option {
	return func(s *Store) {
		s.clock = c
	}
}

// New opens (or creates) the SQLite database at dbPath and ensures the schema.
func New(dbPath string, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, clock: RealClock{}}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory(opts ...Option) (*Store, error) {
	return New(":memory:", opts...)
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Today is the current calendar day according to the store's clock.
func (s *Store) Today() time.Time {
	now := s.clock.Now()
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}

func (s *Store) location() *time.Location {
	return s.clock.Now().Location()
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

// migrateV1 creates the usage table with only the session column. Tracked
// apps are added later as extra columns.
func (s *Store) migrateV1() error {
	ddl := `
	CREATE TABLE IF NOT EXISTS usage (
		date TEXT PRIMARY KEY,
		` + quoteIdent(SessionApp) + ` INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS settings (
		attribute TEXT PRIMARY KEY,
		value     TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS notifications (
		app     TEXT PRIMARY KEY,
		minutes INTEGER NOT NULL
	);
	`
	_, err := s.db.Exec(ddl)
	return err
}

// DefaultDBPath returns <user config dir>/apptime/apptime.db, or apptime.db in
// the current directory when the config dir cannot be resolved.
func DefaultDBPath() string {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "apptime.db"
	}
	return filepath.Join(cfg, "apptime", "apptime.db")
}
