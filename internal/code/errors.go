package code

import "errors"

var (
	// ErrMalformed indicates a code with the wrong length, prefix or characters.
	ErrMalformed = errors.New("malformed code")

	// ErrCollision indicates a well-formed code that is already allocated.
	ErrCollision = errors.New("code already allocated")

	// ErrUnavailable indicates the availability check itself failed.
	// The code is treated as taken.
	ErrUnavailable = errors.New("availability check failed")

	// ErrAttemptsExhausted indicates allocation ran out of attempts.
	ErrAttemptsExhausted = errors.New("attempts exhausted")

	// ErrConfigDefect indicates a missing or conflicting kind configuration.
	ErrConfigDefect = errors.New("kind configuration defect")
)
