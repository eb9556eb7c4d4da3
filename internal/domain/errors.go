package domain

import "errors"

var (
	// ErrNotConnected indicates a store operation was invoked before Connect
	ErrNotConnected = errors.New("session store is not connected")

	// ErrNoRepository indicates Connect was handed a nil repository
	ErrNoRepository = errors.New("session repository is nil")
)
