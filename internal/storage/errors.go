package storage

import "errors"

var (
	// ErrValidation marks missing or malformed caller input. Never retried.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidTransition marks a state-machine precondition violation,
	// e.g. accepting a quote that is already accepted or rejected. Kept
	// distinct from generic failure so clients can show "already processed".
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrTxFailed marks an atomic commit that could not complete. No partial
	// state is ever visible, so the caller may safely retry.
	ErrTxFailed = errors.New("transaction failed")
)
