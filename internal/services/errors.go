package services

import "errors"

// The user-visible failure kinds. Every error returned by the services wraps
// one of these, so handlers map to a status code with errors.Is instead of
// string matching.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
