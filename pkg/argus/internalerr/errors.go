package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrEmptyInput    = errors.New("empty input record set")
	ErrMissingAuthor = errors.New("post has no author id")
	ErrNotFound      = errors.New("not found")
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrUnresolved    = errors.New("location unresolved")
)
