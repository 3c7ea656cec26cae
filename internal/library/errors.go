package library

import "errors"

var (
	// ErrNotFound reports that no record matches the requested id.
	ErrNotFound = errors.New("not found")
	// ErrClosed reports an operation against a closed store.
	ErrClosed = errors.New("library store is closed")
	// ErrLocked reports that another photovault instance holds the library lock.
	ErrLocked = errors.New("library is locked by another photovault instance")
)
