package dataset

import "errors"

var (
	// ErrKeyNotFound indicates Archive.Get was asked for a name it does not hold.
	ErrKeyNotFound = errors.New("dataset: key not found")

	// ErrUnreadable indicates a file that exists but cannot be decoded.
	ErrUnreadable = errors.New("dataset: unreadable input")

	// ErrEmpty indicates an input with no rows or no samples.
	ErrEmpty = errors.New("dataset: empty input")
)
