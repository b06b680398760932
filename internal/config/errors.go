package config

import "errors"

// Errors returned by configuration operations.
var (
	// ErrUnknownOption indicates the option name is not defined.
	ErrUnknownOption = errors.New("unknown option")

	// ErrInvalidValue indicates a value does not parse as its option's type.
	ErrInvalidValue = errors.New("invalid value")

	// ErrInvalidConfig indicates values that parse individually but are
	// unusable together, such as an empty hint character set.
	ErrInvalidConfig = errors.New("invalid configuration")
)
