package model

import "errors"

var (
	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = errors.New("not found")
	// ErrNotValid is returned when a resource is not valid.
	ErrNotValid = errors.New("not valid")
	// ErrAlreadyStarted is returned when a run-once resource is started again.
	ErrAlreadyStarted = errors.New("already started")
	// ErrStopped is returned when an operation reaches a resource that has been stopped.
	ErrStopped = errors.New("stopped")
)
