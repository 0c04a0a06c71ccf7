package errors

import (
	"errors"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrEmptyPassword    = errors.New("password must not be empty or whitespace")
	ErrConflict         = errors.New("conditional update lost to a concurrent writer")
	ErrLineageCorrupted = errors.New("refresh token lineage exceeds maximum walk depth")
	ErrInvalidPageToken = errors.New("invalid page token")
)
