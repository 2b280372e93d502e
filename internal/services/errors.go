package services

import (
	"errors"
	"fmt"

	apperrors "github.com/SAP-F-2025/grading-service/internal/errors"
	"github.com/SAP-F-2025/grading-service/internal/repositories"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrValidationFailed = errors.New("validation failed")

	// Question specific errors
	ErrQuestionNotFound      = repositories.ErrQuestionNotFound
	ErrQuestionTypeMismatch  = errors.New("answer submitted for a different question type")
	ErrInvalidQuestionConfig = errors.New("invalid question configuration")

	// Batch specific errors
	ErrEmptyBatch    = errors.New("batch contains no submissions")
	ErrBatchTooLarge = errors.New("batch exceeds maximum size")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// BusinessRuleError describes a rejected request. Err is the sentinel it
// wraps, so errors.Is still matches ErrQuestionTypeMismatch and friends.
type BusinessRuleError struct {
	Rule    string                 `json:"rule"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
	Err     error                  `json:"-"`
}

func (bre *BusinessRuleError) Error() string {
	return fmt.Sprintf("business rule violation (%s): %s", bre.Rule, bre.Message)
}

func (bre *BusinessRuleError) Unwrap() error {
	return bre.Err
}

// ===== ERROR HELPERS =====

func NewBusinessRuleError(sentinel error, rule, message string, context map[string]interface{}) *BusinessRuleError {
	return &BusinessRuleError{
		Rule:    rule,
		Message: message,
		Context: context,
		Err:     sentinel,
	}
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrQuestionNotFound)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) {
		return true
	}
	var ve apperrors.ValidationErrors
	return errors.As(err, &ve)
}

// IsConfiguration checks if error stems from a misconfigured question
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrInvalidQuestionConfig) || apperrors.IsConfigurationError(err)
}

// IsBusinessRule checks if error represents a business rule violation
func IsBusinessRule(err error) bool {
	var bre *BusinessRuleError
	return errors.As(err, &bre) ||
		errors.Is(err, ErrQuestionTypeMismatch) ||
		errors.Is(err, ErrEmptyBatch) ||
		errors.Is(err, ErrBatchTooLarge)
}
