package store

import "errors"

var (
	// ErrNotFound is returned by Get when no item exists at the requested key.
	// It distinguishes "absent" from transport or service failures.
	ErrNotFound = errors.New("eventapi: item not found")

	// ErrMissingKey is returned by Put when the item does not carry its own
	// PK and SK attributes.
	ErrMissingKey = errors.New("eventapi: item is missing PK or SK")
)
