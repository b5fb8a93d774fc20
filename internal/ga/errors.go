package ga

import "errors"

var (
	// ErrInvalidConfiguration is returned when population size, genome length,
	// mutation rate or operator settings are out of range.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrSelectionExhausted means selection was asked to pick from an empty population.
	ErrSelectionExhausted = errors.New("selection exhausted")

	// ErrTerminated is returned by Step once the engine has finished.
	ErrTerminated = errors.New("engine terminated")
)
