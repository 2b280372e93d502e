package validator

import (
	"fmt"

	"github.com/SAP-F-2025/grading-service/internal/errors"
	"github.com/SAP-F-2025/grading-service/internal/models"
	"github.com/go-playground/validator/v10"
)

// QuestionValidator handles question-specific validation
type QuestionValidator struct {
	structValidator *validator.Validate
}

// NewQuestionValidator creates a new question validator
func NewQuestionValidator(structValidator *validator.Validate) *QuestionValidator {
	if structValidator == nil {
		structValidator = newStructValidator()
	}
	return &QuestionValidator{structValidator: structValidator}
}

// ValidateConfig runs struct tag checks followed by the per-type rules.
// Failures are reported as *errors.ConfigurationError.
func (v *QuestionValidator) ValidateConfig(config models.QuestionConfig) error {
	config = models.ResolveConfig(config)
	if config == nil {
		return errors.NewConfigurationError("config", "cannot be nil")
	}

	if err := v.structValidator.Struct(config); err != nil {
		if errs := ToValidationErrors(err); len(errs) > 0 {
			return &errors.ConfigurationError{Field: errs[0].Field, Message: errs[0].Message, Err: errs}
		}
		return &errors.ConfigurationError{Message: err.Error(), Err: err}
	}

	switch c := config.(type) {
	case models.NumericConfig:
		return v.validateNumericConfig(c)
	case models.SequenceConfig:
		return v.validateSequenceConfig(c)
	case models.RatingConfig:
		return v.validateRatingConfig(c)
	case models.DropdownConfig:
		return v.validateDropdownConfig(c)
	default:
		return errors.NewConfigurationError("config", fmt.Sprintf("unsupported config type %T", config))
	}
}

// Private validation methods for each question type

func (v *QuestionValidator) validateNumericConfig(c models.NumericConfig) error {
	if c.MinValue != nil && c.MaxValue != nil {
		if *c.MinValue > *c.MaxValue {
			return errors.NewConfigurationError("min_value", "cannot be greater than max_value")
		}
		if c.CorrectAnswer < *c.MinValue || c.CorrectAnswer > *c.MaxValue {
			return errors.NewConfigurationError("correct_answer", "must lie within min_value and max_value")
		}
	}
	return nil
}

func (v *QuestionValidator) validateSequenceConfig(c models.SequenceConfig) error {
	if len(c.CorrectSequence) != len(c.Items) {
		return errors.NewConfigurationError("correct_sequence", "must include all items exactly once")
	}

	itemIDs := make(map[string]bool)
	for _, item := range c.Items {
		if itemIDs[item.ID] {
			return errors.NewConfigurationError("items", fmt.Sprintf("contain duplicate id: %s", item.ID))
		}
		itemIDs[item.ID] = true
	}

	orderIDs := make(map[string]bool)
	for _, id := range c.CorrectSequence {
		if !itemIDs[id] {
			return errors.NewConfigurationError("correct_sequence", fmt.Sprintf("references non-existent item: %s", id))
		}
		if orderIDs[id] {
			return errors.NewConfigurationError("correct_sequence", fmt.Sprintf("contains duplicate item: %s", id))
		}
		orderIDs[id] = true
	}

	return nil
}

func (v *QuestionValidator) validateRatingConfig(c models.RatingConfig) error {
	if c.ExpectedRating != nil && (*c.ExpectedRating < c.RatingMin || *c.ExpectedRating > c.RatingMax) {
		return errors.NewConfigurationError("expected_rating", fmt.Sprintf("must be between %d and %d", c.RatingMin, c.RatingMax))
	}
	if n := len(c.RatingLabels); n > 0 && n != c.RatingMax-c.RatingMin+1 {
		return errors.NewConfigurationError("rating_labels", fmt.Sprintf("must have one label per rating (%d)", c.RatingMax-c.RatingMin+1))
	}
	return nil
}

func (v *QuestionValidator) validateDropdownConfig(c models.DropdownConfig) error {
	correct := 0
	seen := make(map[string]bool)
	for _, opt := range c.Options {
		if opt.IsCorrect {
			correct++
		}
		if seen[opt.Text] {
			return errors.NewConfigurationError("options", fmt.Sprintf("contain duplicate text: %s", opt.Text))
		}
		seen[opt.Text] = true
	}

	if correct != 1 {
		return errors.NewConfigurationError("options", "must flag exactly one correct option")
	}
	return nil
}
