package option

import "errors"

// Errors returned when constructing options.
var (
	// ErrNoEntries indicates a compound option was built with an empty schema.
	ErrNoEntries = errors.New("compound option needs at least one entry")

	// ErrEmptyPrefix indicates an entry with an empty flat-key prefix.
	ErrEmptyPrefix = errors.New("entry prefix must not be empty")

	// ErrBadTypeHint indicates a type hint outside plain, dict and tuple.
	ErrBadTypeHint = errors.New("invalid type hint")
)
