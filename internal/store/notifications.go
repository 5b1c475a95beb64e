package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// SetNotification creates or replaces the threshold for app.
func (s *Store) SetNotification(app string, minutes int) error {
	stored, ok, err := s.lookupApp(app)
	if err != nil {
		return fmt.Errorf("set notification: %w", err)
	}
	if !ok {
		return fmt.Errorf("set notification %q: %w", app, ErrUnknownColumn)
	}
	if minutes < 1 {
		return fmt.Errorf("set notification %q to %d minutes: %w", app, minutes, ErrInvalidValue)
	}

	_, err = s.db.Exec(
		`INSERT INTO notifications (app, minutes) VALUES (?, ?) ON CONFLICT(app) DO UPDATE SET minutes = excluded.minutes`,
		stored, minutes,
	)
	if err != nil {
		return fmt.Errorf("set notification %q: %w", app, err)
	}
	return nil
}

func (s *Store) DeleteNotification(app string) error {
	res, err := s.db.Exec(`DELETE FROM notifications WHERE app = ? COLLATE NOCASE`, app)
	if err != nil {
		return fmt.Errorf("delete notification %q: %w", app, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("delete notification %q: %w", app, ErrNotFound)
	}
	return nil
}

// Notification returns the rule for app, or nil when none is set.
func (s *Store) Notification(app string) (*NotificationRule, error) {
	r := &NotificationRule{}
	err := s.db.QueryRow(
		`SELECT app, minutes FROM notifications WHERE app = ? COLLATE NOCASE`, app,
	).Scan(&r.App, &r.Minutes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get notification %q: %w", app, err)
	}
	return r, nil
}

func (s *Store) Notifications() ([]NotificationRule, error) {
	rows, err := s.db.Query(`SELECT app, minutes FROM notifications ORDER BY app`)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var rules []NotificationRule
	for rows.Next() {
		var r NotificationRule
		if err := rows.Scan(&r.App, &r.Minutes); err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, rows.Err()
}
