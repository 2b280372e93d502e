package errors

import (
	"fmt"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("selected_option", "is required", "")

	assert.Equal(t, "selected_option", err.Field)
	assert.Equal(t, "validation error on field 'selected_option': is required", err.Error())
}

func TestValidationErrors_Error(t *testing.T) {
	tests := []struct {
		name string
		errs ValidationErrors
		want string
	}{
		{name: "empty", want: "validation failed"},
		{name: "single", errs: ValidationErrors{{Field: "question_id", Message: "is required"}}, want: "validation failed: question_id is required"},
		{name: "many", errs: ValidationErrors{{Field: "a"}, {Field: "b"}}, want: "validation failed: 2 field errors"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.errs.Error())
		})
	}
}

func TestToValidationErrors(t *testing.T) {
	type scale struct {
		Min      int     `validate:"min=1"`
		Max      int     `validate:"gtfield=Min"`
		MaxScore float64 `validate:"gt=0"`
		Kind     string  `validate:"oneof=stars numbers"`
	}

	err := validator.New().Struct(scale{Kind: "slider"})
	require.Error(t, err)

	errs := ToValidationErrors(fmt.Errorf("wrapped: %w", err))
	require.Len(t, errs, 4)

	assert.Equal(t, ValidationError{Field: "Min", Message: "must be at least 1", Value: 0, Rule: "min"}, errs[0])
	assert.Equal(t, "must be greater than Min", errs[1].Message)
	assert.Equal(t, "must be greater than 0", errs[2].Message)
	assert.Equal(t, "must be one of: stars numbers", errs[3].Message)
}

func TestToValidationErrors_OtherErrors(t *testing.T) {
	assert.Nil(t, ToValidationErrors(nil))
	assert.Nil(t, ToValidationErrors(NewValidationError("f", "m", nil)))
}
