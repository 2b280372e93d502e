package services

import (
	"errors"
	"fmt"
	"testing"

	apperrors "github.com/SAP-F-2025/grading-service/internal/errors"
	"github.com/SAP-F-2025/grading-service/internal/repositories"
	"github.com/stretchr/testify/assert"
)

func TestErrorHelpers(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		notFound      bool
		validation    bool
		configuration bool
		businessRule  bool
	}{
		{name: "repository not found", err: fmt.Errorf("load: %w", repositories.NewNotFoundError(3)), notFound: true},
		{name: "validation errors", err: apperrors.ValidationErrors{{Field: "question_id", Message: "is required"}}, validation: true},
		{name: "configuration", err: apperrors.NewConfigurationError("options", "bad"), configuration: true},
		{name: "config sentinel", err: fmt.Errorf("%w: x", ErrInvalidQuestionConfig), configuration: true},
		{name: "type mismatch", err: fmt.Errorf("%w: x", ErrQuestionTypeMismatch), businessRule: true},
		{name: "business rule", err: NewBusinessRuleError(ErrBatchTooLarge, "max_batch_size", "too big", nil), businessRule: true},
		{name: "plain", err: errors.New("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.notFound, IsNotFound(tt.err))
			assert.Equal(t, tt.validation, IsValidation(tt.err))
			assert.Equal(t, tt.configuration, IsConfiguration(tt.err))
			assert.Equal(t, tt.businessRule, IsBusinessRule(tt.err))
		})
	}
}

func TestBusinessRuleError_UnwrapsSentinel(t *testing.T) {
	err := fmt.Errorf("grade: %w", NewBusinessRuleError(ErrQuestionTypeMismatch, "question_type", "question 3 is rating, not numeric",
		map[string]interface{}{"question_id": uint(3)}))

	assert.ErrorIs(t, err, ErrQuestionTypeMismatch)
	assert.NotErrorIs(t, err, ErrBatchTooLarge)

	var bre *BusinessRuleError
	assert.ErrorAs(t, err, &bre)
	assert.Equal(t, "question_type", bre.Rule)
	assert.Equal(t, "business rule violation (question_type): question 3 is rating, not numeric", bre.Error())
}
