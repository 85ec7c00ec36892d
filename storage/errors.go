package storage

import "errors"

// Common storage errors.
var (
	// ErrNotFound is returned when no stored knowledge graph matches the
	// requested ID, or when the store is empty.
	ErrNotFound = errors.New("knowledge graph not found")
)
