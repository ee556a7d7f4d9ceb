package admin

import "errors"

var (
	ErrValidation     = errors.New("validation error")
	ErrNotFound       = errors.New("not_found")
	ErrForbidden      = errors.New("forbidden")
	ErrRequestPending = errors.New("a request of this kind is already awaiting review")
	ErrAlreadyGranted = errors.New("the requested status is already granted")
	ErrOwnerOnly      = errors.New("only the owner may resolve admin requests")
	ErrRequestClosed  = errors.New("request already resolved")
	ErrCannotModerate = errors.New("insufficient privileges over the target account")
)
