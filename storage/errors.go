package storage

import (
	"fmt"

	"github.com/skipor/tiercache/internal/util"
)

// Error is storage operation failure, that left storage consistent.
// Operation can be retried.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string     { return fmt.Sprintf("storage %s: %v", e.Op, e.Err) }
func (e *Error) Underlying() error { return e.Err }
func (e *Error) Unwrap() error     { return e.Err }

// InconsistentError means that storage data and its index disagree,
// and Path should be taken care of manually.
// Redundant error means that index is correct, but stale file at Path was not deleted.
type InconsistentError struct {
	Path      string
	Redundant bool
	Err       error
}

func (e *InconsistentError) Error() string {
	kind := "inconsistent"
	if e.Redundant {
		kind = "redundant"
	}
	return fmt.Sprintf("storage %s file %q: %v", kind, e.Path, e.Err)
}

func (e *InconsistentError) Underlying() error { return e.Err }
func (e *InconsistentError) Unwrap() error     { return e.Err }

// IsInconsistent reports whether err chain contains *InconsistentError.
func IsInconsistent(err error) bool {
	return util.As(err, func(err error) bool {
		_, ok := err.(*InconsistentError)
		return ok
	})
}

// IsRedundant reports whether err chain contains redundant *InconsistentError.
func IsRedundant(err error) bool {
	return util.As(err, func(err error) bool {
		e, ok := err.(*InconsistentError)
		return ok && e.Redundant
	})
}
