package provider

import (
	"errors"
	"fmt"
)

// ErrUnavailable matches every provider failure: transport errors,
// non-2xx responses, malformed payloads, and timeouts.
var ErrUnavailable = errors.New("provider unavailable")

// ErrMissingContact indicates an adapter was constructed without the
// operator contact address its provider requires.
var ErrMissingContact = errors.New("contact address is required")

// UnavailableError wraps a single failed provider call.
type UnavailableError struct {
	Provider string
	Err      error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Provider, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrUnavailable) true for every UnavailableError.
func (e *UnavailableError) Is(target error) bool {
	return target == ErrUnavailable
}

// IsUnavailable reports whether err is a contained provider failure.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
