package apperrors

import "errors"

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotFound       = errors.New("not found")
	ErrProfileExists  = errors.New("profile already exists")
	ErrUnknownBackend = errors.New("unknown storage backend")
	ErrNoUser         = errors.New("no user selected")
)
