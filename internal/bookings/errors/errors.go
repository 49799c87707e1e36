package errors

import "errors"

var (
	ErrClassNotFound = errors.New("class not found")

	ErrClassFull = errors.New("class is full")

	ErrDuplicateBooking = errors.New("class already booked by this client")
)

// Error codes surfaced to the API layer so conflict kinds stay
// distinguishable.
const (
	CodeClassFull        = "CLASS_FULL"
	CodeDuplicateBooking = "DUPLICATE_BOOKING"
)
