package models

import "errors"

// Sentinel errors for common failure conditions
var (
	ErrNotFound       = errors.New("resource not found")
	ErrConflict       = errors.New("resource already exists")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrBadRequest     = errors.New("bad request")
	ErrUnprocessable  = errors.New("unprocessable entity")
	ErrInternalServer = errors.New("internal server error")

	// Login errors
	ErrInvalidCredentials = errors.New("wrong email or password")
	ErrRateLimited        = errors.New("too many failed login attempts")
)
