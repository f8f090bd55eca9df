package task

import "errors"

// Error kinds surfaced to the user. Operations wrap them with context, so
// match with errors.Is.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNoArguments  = errors.New("no arguments provided")
	ErrTaskNotFound = errors.New("task not found")
	ErrParse        = errors.New("parse error")
	ErrIO           = errors.New("i/o failure")

	// ErrStoreNotFound marks a load that found no store file. It is wrapped
	// together with ErrIO.
	ErrStoreNotFound = errors.New("store file not found")
)
