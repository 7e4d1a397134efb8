package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrOptionNotFound indicates no option is registered under the name.
	ErrOptionNotFound = errors.New("option not found")

	// ErrTypeMismatch indicates an option was accessed at the wrong type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrUnsupportedFormat indicates the config file extension is not
	// a supported format.
	ErrUnsupportedFormat = errors.New("unsupported config format")
)

// TypeError is returned when a typed option access fails.
type TypeError struct {
	// Name is the option name.
	Name string
	// Expected is the requested type name.
	Expected string
}

// Error implements the error interface.
func (e *TypeError) Error() string {
	return fmt.Sprintf("type error for option %s: not a scalar of type %s", e.Name, e.Expected)
}

// Is implements error matching for TypeError.
func (e *TypeError) Is(target error) bool {
	return target == ErrTypeMismatch
}
