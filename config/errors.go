package config

import "errors"

var (
	// ErrInvalidConfig indicates a configuration that fails validation.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrConfigNotFound indicates an explicitly requested file that does not exist.
	ErrConfigNotFound = errors.New("config file not found")
)
