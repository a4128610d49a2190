package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist or is not visible to the calling user.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, target index below 1).
// It is raised before any database call is issued.
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrNoSession is returned when an operation is attempted without an
// authenticated user id. It is a hard precondition failure raised before any
// database call. Handlers should map this to HTTP 401.
var ErrNoSession = errors.New("auth session missing")
