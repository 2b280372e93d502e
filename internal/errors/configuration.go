package errors

import (
	"errors"
	"fmt"
)

// ConfigurationError reports a question configuration the engine cannot
// grade against. It signals a caller bug, not a student mistake.
type ConfigurationError struct {
	QuestionID uint   `json:"question_id,omitempty"`
	Field      string `json:"field,omitempty"`
	Message    string `json:"message"`
	Err        error  `json:"-"`
}

func (ce *ConfigurationError) Error() string {
	prefix := "invalid question configuration"
	if ce.QuestionID != 0 {
		prefix = fmt.Sprintf("invalid configuration for question %d", ce.QuestionID)
	}
	if ce.Field != "" {
		return fmt.Sprintf("%s: %s %s", prefix, ce.Field, ce.Message)
	}
	return fmt.Sprintf("%s: %s", prefix, ce.Message)
}

func (ce *ConfigurationError) Unwrap() error {
	return ce.Err
}

// NewConfigurationError creates a configuration error
func NewConfigurationError(field, message string) *ConfigurationError {
	return &ConfigurationError{
		Field:   field,
		Message: message,
	}
}

// WrapConfigurationError attaches a question id and cause to a configuration error
func WrapConfigurationError(questionID uint, err error) *ConfigurationError {
	var ce *ConfigurationError
	if errors.As(err, &ce) {
		wrapped := *ce
		wrapped.QuestionID = questionID
		return &wrapped
	}
	return &ConfigurationError{
		QuestionID: questionID,
		Message:    err.Error(),
		Err:        err,
	}
}

// IsConfigurationError checks whether err carries a ConfigurationError
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}
