package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
)

const (
	AttrState       = "state"
	AttrStorageSize = "storage_size"

	StateOn  = "on"
	StateOff = "off"

	DefaultStorageSize = 28
)

// GetSetting returns the value of attr and whether it is set.
func (s *Store) GetSetting(attr string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE attribute = ?`, attr).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get setting %q: %w", attr, err)
	}
	return value, true, nil
}

func (s *Store) SetSetting(attr, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (attribute, value) VALUES (?, ?) ON CONFLICT(attribute) DO UPDATE SET value = excluded.value`,
		attr, value,
	)
	if err != nil {
		return fmt.Errorf("set setting %q: %w", attr, err)
	}
	return nil
}

func (s *Store) DeleteSetting(attr string) error {
	_, err := s.db.Exec(`DELETE FROM settings WHERE attribute = ?`, attr)
	if err != nil {
		return fmt.Errorf("delete setting %q: %w", attr, err)
	}
	return nil
}

func (s *Store) AllSettings() ([]Setting, error) {
	rows, err := s.db.Query(`SELECT attribute, value FROM settings ORDER BY attribute`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var st Setting
		if err := rows.Scan(&st.Attribute, &st.Value); err != nil {
			return nil, err
		}
		settings = append(settings, st)
	}
	return settings, rows.Err()
}

// LoadSettings reads the typed settings, falling back to defaults for
// missing or unparsable values.
func (s *Store) LoadSettings() (Settings, error) {
	settings := Settings{State: StateOn, StorageSize: DefaultStorageSize}

	state, ok, err := s.GetSetting(AttrState)
	if err != nil {
		return settings, err
	}
	if ok && (state == StateOn || state == StateOff) {
		settings.State = state
	}

	size, ok, err := s.GetSetting(AttrStorageSize)
	if err != nil {
		return settings, err
	}
	if ok {
		if n, err := strconv.Atoi(size); err == nil && n > 0 {
			settings.StorageSize = n
		}
	}
	return settings, nil
}

// SetState switches sampling on or off.
func (s *Store) SetState(state string) error {
	if state != StateOn && state != StateOff {
		return fmt.Errorf("state %q: %w", state, ErrInvalidValue)
	}
	return s.SetSetting(AttrState, state)
}

// SwitchState flips the sampling state and returns the new one. An unset
// state counts as on.
func (s *Store) SwitchState() (string, error) {
	settings, err := s.LoadSettings()
	if err != nil {
		return "", err
	}
	next := StateOn
	if settings.Active() {
		next = StateOff
	}
	if err := s.SetState(next); err != nil {
		return "", err
	}
	return next, nil
}

// SetStorageSize sets the retention window in days.
func (s *Store) SetStorageSize(days int) error {
	if days < 1 {
		return fmt.Errorf("storage size %d: %w", days, ErrInvalidValue)
	}
	return s.SetSetting(AttrStorageSize, strconv.Itoa(days))
}
