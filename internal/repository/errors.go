package repository

import "errors"

// Domain errors surfaced by the repositories. Handlers translate these
// to HTTP status codes; storage-engine errors stay inside.
var (
	ErrNotFound   = errors.New("record not found")
	ErrEmailTaken = errors.New("email already registered")
)
