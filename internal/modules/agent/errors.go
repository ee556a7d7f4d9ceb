package agent

import "errors"

var (
	ErrValidation  = errors.New("validation error")
	ErrNotFound    = errors.New("not_found")
	ErrForbidden   = errors.New("forbidden")
	ErrNotVerified = errors.New("Only verified users can register as agents")
	ErrAgentLimit  = errors.New("agent listing limit reached")
)
