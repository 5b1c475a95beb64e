package store

import (
	"database/sql"
	"fmt"
	"strings"
)

// quoteIdent quotes a column name for interpolation into DDL/DML.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// columns lists the usage table columns in declaration order, date included.
func (s *Store) columns() ([]string, error) {
	rows, err := s.db.Query(`PRAGMA table_info(usage)`)
	if err != nil {
		return nil, fmt.Errorf("table info: %w", err)
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var (
			cid     int
			name    string
			typ     string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk); err != nil {
			return nil, err
		}
		cols = append(cols, name)
	}
	return cols, rows.Err()
}

// TrackedApps returns the tracked app names in registry order. The session
// app comes first. A usage table that does not lead with the date column
// fails with ErrConfigMismatch.
func (s *Store) TrackedApps() ([]string, error) {
	cols, err := s.columns()
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 || cols[0] != dateColumn {
		return nil, fmt.Errorf("usage columns %v: %w", cols, ErrConfigMismatch)
	}
	return cols[1:], nil
}

// lookupApp returns the stored spelling of name. SQLite column names are
// case-insensitive, so the match is too.
func (s *Store) lookupApp(name string) (string, bool, error) {
	apps, err := s.TrackedApps()
	if err != nil {
		return "", false, err
	}
	for _, a := range apps {
		if strings.EqualFold(a, name) {
			return a, true, nil
		}
	}
	return "", false, nil
}

// HasApp reports whether name is tracked.
func (s *Store) HasApp(name string) (bool, error) {
	_, ok, err := s.lookupApp(name)
	return ok, err
}

// AddApp starts tracking name. Existing rows get 0 for the new column.
func (s *Store) AddApp(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("add app %q: %w", name, ErrInvalidName)
	}
	if strings.EqualFold(name, dateColumn) {
		return fmt.Errorf("add app %q: %w", name, ErrDuplicateColumn)
	}

	_, exists, err := s.lookupApp(name)
	if err != nil {
		return fmt.Errorf("add app %q: %w", name, err)
	}
	if exists {
		return fmt.Errorf("add app %q: %w", name, ErrDuplicateColumn)
	}

	query := fmt.Sprintf(`ALTER TABLE usage ADD COLUMN %s INTEGER NOT NULL DEFAULT 0`, quoteIdent(name))
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("add app %q: %w", name, err)
	}
	return nil
}

// RemoveApp stops tracking name, dropping its history and notification rule.
func (s *Store) RemoveApp(name string) error {
	if strings.EqualFold(name, dateColumn) || strings.EqualFold(name, SessionApp) {
		return fmt.Errorf("remove app %q: %w", name, ErrProtectedColumn)
	}

	stored, exists, err := s.lookupApp(name)
	if err != nil {
		return fmt.Errorf("remove app %q: %w", name, err)
	}
	if !exists {
		return fmt.Errorf("remove app %q: %w", name, ErrUnknownColumn)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin remove app: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(fmt.Sprintf(`ALTER TABLE usage DROP COLUMN %s`, quoteIdent(stored))); err != nil {
		return fmt.Errorf("drop column %q: %w", stored, err)
	}
	if _, err := tx.Exec(`DELETE FROM notifications WHERE app = ?`, stored); err != nil {
		return fmt.Errorf("delete notification %q: %w", stored, err)
	}
	return tx.Commit()
}
