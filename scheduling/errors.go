package scheduling

import "errors"

var (
	// ErrValidation marks malformed input to a create or update operation.
	ErrValidation = errors.New("validation error")
	// ErrNotFound marks an operation referencing an unknown id.
	ErrNotFound = errors.New("not found")
	// ErrInvalidState marks a transition not permitted by the state machine.
	ErrInvalidState = errors.New("invalid state")
	// ErrConflict marks a duplicate active booking for a member/class pair
	// or a capacity conflict during promotion.
	ErrConflict = errors.New("conflict")
)
