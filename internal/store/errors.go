package store

import "errors"

var (
	// ErrDuplicateColumn is returned when adding an app that is already
	// tracked, or one named like the date key.
	ErrDuplicateColumn = errors.New("app already tracked")
	// ErrProtectedColumn is returned when removing the date key or the
	// session app.
	ErrProtectedColumn = errors.New("column cannot be removed")
	// ErrUnknownColumn is returned for apps that are not tracked.
	ErrUnknownColumn = errors.New("app not tracked")
	ErrInvalidName   = errors.New("invalid app name")

	// ErrConfigMismatch means the usage row and the column list disagree.
	// Under a single writer this indicates a corrupted database.
	ErrConfigMismatch = errors.New("usage columns do not match the tracked apps")

	ErrNotFound     = errors.New("not found")
	ErrInvalidValue = errors.New("invalid value")
)
