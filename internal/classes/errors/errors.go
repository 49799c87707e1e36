package errors

import "errors"

var (
	ErrNotFound = errors.New("class not found")

	ErrCapacityExhausted = errors.New("no available slots remaining")

	ErrDuplicateID = errors.New("class id already exists")

	// ErrNotDecremented is returned by Restore when available slots are
	// already at total capacity, i.e. there is no decrement to undo.
	ErrNotDecremented = errors.New("available slots already at total capacity")
)
