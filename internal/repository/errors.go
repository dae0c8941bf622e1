package repository

import "errors"

var (
	// ErrNotFound is returned when no row matches the requested key. For games
	// the key always includes the owner id, so a row owned by another user is
	// reported the same way as a missing one.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert violates a uniqueness constraint.
	ErrDuplicate = errors.New("record already exists")
)
