package shared

import (
	"errors"
	"fmt"
)

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Collection errors
	ErrPlaylistNotFound = fmt.Errorf("playlist not found")

	// Resource errors
	ErrAllocation = fmt.Errorf("allocation failed")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)

// FatalError marks a failure after which the collection must not be used again.
//
// Hosts release what they hold and terminate; nothing retries or recovers.
type FatalError struct {
	Op  string // Operation that failed, e.g. "add song"
	Err error  // Underlying cause, usually [ErrAllocation]
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("fatal: %s: %v", e.Op, e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// IsFatal reports whether err carries a [FatalError] anywhere in its chain.
func IsFatal(err error) bool {
	var fe *FatalError
	return errors.As(err, &fe)
}
