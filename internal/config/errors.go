package config

import (
	"errors"
	"fmt"
)

var (
	// ErrSettingNotFound is returned for a key that names no setting.
	ErrSettingNotFound = errors.New("unknown setting")

	// ErrTypeMismatch is returned when a value has the wrong type for its key.
	ErrTypeMismatch = errors.New("wrong value type")

	// ErrValidationFailed matches every *ValidationError.
	ErrValidationFailed = errors.New("invalid setting")

	// ErrUnknownFormat is returned for a settings file with an unsupported extension.
	ErrUnknownFormat = errors.New("unsupported settings file type")
)

// ParseError reports a settings file that could not be decoded.
type ParseError struct {
	File   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot read settings from %s: %s", e.File, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError reports a numeric setting outside its allowed range.
type ValidationError struct {
	Key      string
	Value    int
	Min, Max int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s must be between %d and %d, got %d", e.Key, e.Min, e.Max, e.Value)
}

// Is makes errors.Is(err, ErrValidationFailed) true.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// TypeError reports a value that does not fit the type of its key.
type TypeError struct {
	Key  string
	Want string
	Got  string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s wants a %s value, got %s", e.Key, e.Want, e.Got)
}

// Is makes errors.Is(err, ErrTypeMismatch) true.
func (e *TypeError) Is(target error) bool {
	return target == ErrTypeMismatch
}
