package services

import "errors"

// Failure kinds the handlers translate to HTTP statuses. Everything the
// service returns wraps one of these or is a storage error.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)
