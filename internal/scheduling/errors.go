package scheduling

import "errors"

// Error taxonomy for scheduling operations. Handlers map these onto HTTP
// statuses with errors.Is; everything else is treated as an internal error.
var (
	ErrValidation      = errors.New("validation failed")
	ErrUnauthorized    = errors.New("caller is not authorized for this intervention")
	ErrNotFound        = errors.New("not found")
	ErrAlreadyResolved = errors.New("another slot is already accepted for this intervention")
	ErrConflict        = errors.New("operation conflicts with the intervention's current state")
)
