package domain

import "errors"

var (
	// ErrUnauthenticated is returned when an operation requires an
	// authenticated user and none is present.
	ErrUnauthenticated = errors.New("no authenticated user")

	// ErrGenerationInProgress is returned by Send while a completion
	// request is already outstanding for the store.
	ErrGenerationInProgress = errors.New("a response is already being generated")
)
