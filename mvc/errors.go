package mvc

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrInvalidArgument is returned when a required argument is nil or
	// otherwise unusable (nil discriminator, non-comparable discriminator,
	// nil display handle, nil trackable).
	ErrInvalidArgument = errors.New("mvc: invalid argument")

	// ErrDuplicateKey is the category of errors returned when a model is
	// created under a key that already has a live entry.
	// Match with errors.Is; the concrete error is *DuplicateKeyError.
	ErrDuplicateKey = errors.New("mvc: duplicate model key")

	// ErrNotFound is the category of errors returned when no live model
	// exists for a key. The concrete error is *NotFoundError.
	ErrNotFound = errors.New("mvc: model not found")

	// ErrAlreadyBound is the category of errors returned when binding a
	// display handle that already has an active binding.
	// The concrete error is *AlreadyBoundError.
	ErrAlreadyBound = errors.New("mvc: display handle already bound")
)

// DuplicateKeyError is returned by Create when the key is already occupied.
type DuplicateKeyError struct{ Key Key }

// Error implements the error interface.
func (e *DuplicateKeyError) Error() string {
	// Example: mvc: model "arena.Session" with key "" has already been created
	return "mvc: model " + strconv.Quote(e.Key.Type().Name()) +
		" with key " + quoteDisc(e.Key.Discriminator()) + " has already been created"
}

// Is reports whether target is ErrDuplicateKey.
func (e *DuplicateKeyError) Is(target error) bool { return target == ErrDuplicateKey }

// NotFoundError is returned by Get when no live model exists for the key.
type NotFoundError struct{ Key Key }

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	// Example: mvc: model "arena.Player" with key "p1" has not been created yet
	return "mvc: model " + strconv.Quote(e.Key.Type().Name()) +
		" with key " + quoteDisc(e.Key.Discriminator()) + " has not been created yet"
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// AlreadyBoundError is returned by Bind when the handle already has a binding.
type AlreadyBoundError struct{ Handle any }

// Error implements the error interface.
func (e *AlreadyBoundError) Error() string {
	return fmt.Sprintf("mvc: display handle %T is already bound", e.Handle)
}

// Is reports whether target is ErrAlreadyBound.
func (e *AlreadyBoundError) Is(target error) bool { return target == ErrAlreadyBound }

// CreateError wraps an error returned by a model's OnCreate hook.
// The model is not left in the registry when this error is returned.
type CreateError struct {
	Key Key
	Err error
}

// Error implements the error interface.
func (e *CreateError) Error() string {
	return "mvc: create " + e.Key.String() + ": " + e.Err.Error()
}

// Unwrap returns the hook's error.
func (e *CreateError) Unwrap() error { return e.Err }

// invalidArgument builds an ErrInvalidArgument with the offending name attached.
func invalidArgument(name, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidArgument, name, reason)
}

func quoteDisc(disc any) string {
	if s, ok := disc.(string); ok {
		return strconv.Quote(s)
	}
	return fmt.Sprintf("%v", disc)
}
