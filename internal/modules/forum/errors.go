package forum

import "errors"

var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("not_found")
	ErrForbidden    = errors.New("forbidden")
	ErrBanned       = errors.New("banned users cannot post")
	ErrThreadLocked = errors.New("thread is locked")
)
