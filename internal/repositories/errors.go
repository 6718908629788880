package repositories

import "errors"

var (
	// ErrNotFound is returned when no row matches the lookup, including
	// ownership-scoped lookups that match a row owned by someone else.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint is violated.
	ErrDuplicate = errors.New("duplicate record")
	// ErrOwnerMissing is returned when a row references a user that no longer exists.
	ErrOwnerMissing = errors.New("owner does not exist")
)
