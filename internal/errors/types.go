package errors

import (
	"errors"
	"fmt"
)

// ConfigError reports a missing or malformed piece of configuration: an
// environment key, a task specification field or a weighting policy.
type ConfigError struct {
	Field   string // offending key or spec field, e.g. "SHOP2_URL"
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	switch {
	case e.Field != "" && e.Message != "":
		return fmt.Sprintf("config error: %s: %s", e.Field, e.Message)
	case e.Message != "":
		return "config error: " + e.Message
	case e.Err != nil:
		return fmt.Sprintf("config error: %s: %v", e.Field, e.Err)
	default:
		return "config error: " + e.Field
	}
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError builds a ConfigError for field with a formatted message.
func NewConfigError(field, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// MissingField reports that a required field or key is absent.
func MissingField(field string) *ConfigError {
	return &ConfigError{Field: field, Message: "is required"}
}

// UnsupportedTypeError is returned when a checkpoint type has no evaluator.
type UnsupportedTypeError struct {
	Type string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported checkpoint type %q", e.Type)
}

// IsConfigError reports whether err wraps a ConfigError.
func IsConfigError(err error) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr)
}

// IsUnsupportedType reports whether err wraps an UnsupportedTypeError.
func IsUnsupportedType(err error) bool {
	var typeErr *UnsupportedTypeError
	return errors.As(err, &typeErr)
}

// IsFatal reports whether err must abort task setup instead of degrading
// the score. Both authoring defects and routing gaps are fatal.
func IsFatal(err error) bool {
	return IsConfigError(err) || IsUnsupportedType(err)
}
