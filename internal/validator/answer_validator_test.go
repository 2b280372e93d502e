package validator

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/SAP-F-2025/grading-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func TestValidateNumericInput(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		min, max *float64
		valid    bool
		value    float64
		errMsg   string
	}{
		{name: "empty", raw: "", errMsg: "Please enter a number"},
		{name: "whitespace", raw: "   \t", errMsg: "Please enter a number"},
		{name: "garbage", raw: "abc", errMsg: "Please enter a valid number"},
		{name: "nan", raw: "NaN", errMsg: "Please enter a valid number"},
		{name: "infinity", raw: "Inf", errMsg: "Please enter a valid number"},
		{name: "plain", raw: " 9.81 ", valid: true, value: 9.81},
		{name: "exponent", raw: "1e3", valid: true, value: 1000},
		{name: "below min", raw: "-1", min: floatPtr(0), errMsg: "Value must be at least 0"},
		{name: "above max", raw: "12.5", max: floatPtr(10.25), errMsg: "Value must be at most 10.25"},
		{name: "on bounds", raw: "10", min: floatPtr(10), max: floatPtr(10), valid: true, value: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateNumericInput(tt.raw, tt.min, tt.max)
			assert.Equal(t, tt.valid, result.IsValid)
			assert.Equal(t, tt.errMsg, result.Error)
			if tt.valid {
				require.NotNil(t, result.Value)
				assert.Equal(t, tt.value, *result.Value)
			} else {
				assert.Nil(t, result.Value)
			}
		})
	}
}

func TestValidateNumericAnswer(t *testing.T) {
	assert.True(t, ValidateNumericAnswer(3.5, nil, nil).IsValid)
	assert.True(t, ValidateNumericAnswer(7, nil, nil).IsValid)
	assert.True(t, ValidateNumericAnswer("4.2", nil, nil).IsValid)
	assert.True(t, ValidateNumericAnswer(models.NumericAnswer{Type: models.QuestionNumeric, Value: 2}, nil, nil).IsValid)
	assert.True(t, ValidateNumericAnswer(json.RawMessage(`{"type":"numeric","value":1.5}`), nil, nil).IsValid)

	assert.Equal(t, MsgEnterValidNumber, ValidateNumericAnswer(math.NaN(), nil, nil).Error)
	assert.Equal(t, MsgEnterValidNumber, ValidateNumericAnswer([]string{"1"}, nil, nil).Error)
	assert.Equal(t, MsgEnterValidNumber, ValidateNumericAnswer(map[string]interface{}{"type": "rating", "value": 1.0}, nil, nil).Error)
	assert.Equal(t, MsgEnterNumber, ValidateNumericAnswer(nil, nil, nil).Error)
	assert.Equal(t, "Value must be at most 5", ValidateNumericAnswer(6.0, nil, floatPtr(5)).Error)
}

func TestValidateSequenceAnswer(t *testing.T) {
	correct := []string{"a", "b", "c"}

	tests := []struct {
		name   string
		raw    interface{}
		valid  bool
		errMsg string
	}{
		{name: "string slice", raw: []string{"c", "a", "b"}, valid: true},
		{name: "typed answer", raw: models.SequenceAnswer{Type: models.QuestionSequence, Sequence: []string{"a", "b", "c"}}, valid: true},
		{name: "typed pointer", raw: &models.SequenceAnswer{Sequence: []string{"b", "a", "c"}}, valid: true},
		{name: "decoded json", raw: map[string]interface{}{"type": "sequence", "sequence": []interface{}{"a", "c", "b"}}, valid: true},
		{name: "raw json", raw: []byte(`{"type":"sequence","sequence":["a","b","c"]}`), valid: true},
		{name: "wrong tag", raw: map[string]interface{}{"type": "dropdown", "sequence": []interface{}{"a"}}, errMsg: "Invalid answer type: expected sequence"},
		{name: "non string element", raw: []interface{}{"a", 2.0, "c"}, errMsg: "Invalid answer format: expected a sequence of item ids"},
		{name: "scalar", raw: "a,b,c", errMsg: "Invalid answer format: expected a sequence of item ids"},
		{name: "too short", raw: []string{"a", "b"}, errMsg: "Sequence must contain exactly 3 items"},
		{name: "duplicate", raw: []string{"a", "a", "b"}, errMsg: "Sequence contains duplicate item: a"},
		{name: "foreign id", raw: []string{"a", "b", "z"}, errMsg: "Sequence contains unknown item: z"},
		{name: "broken json", raw: []byte(`{"sequence":`), errMsg: "Invalid answer format: expected a sequence of item ids"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateSequenceAnswer(tt.raw, correct)
			assert.Equal(t, tt.valid, result.IsValid)
			assert.Equal(t, tt.errMsg, result.Error)
			if tt.valid {
				assert.Len(t, result.Answer.Sequence, len(correct))
				assert.Equal(t, models.QuestionSequence, result.Answer.Type)
			}
		})
	}
}

func TestValidateSequenceAnswer_DoesNotAliasInput(t *testing.T) {
	input := []string{"b", "a"}
	result := ValidateSequenceAnswer(input, []string{"a", "b"})
	require.True(t, result.IsValid)

	result.Answer.Sequence[0] = "x"
	assert.Equal(t, "b", input[0])
}

func TestValidateRatingAnswer(t *testing.T) {
	tests := []struct {
		name   string
		raw    interface{}
		valid  bool
		rating int
		errMsg string
	}{
		{name: "int", raw: 3, valid: true, rating: 3},
		{name: "json number", raw: 5.0, valid: true, rating: 5},
		{name: "typed", raw: models.RatingAnswer{Rating: 1}, valid: true, rating: 1},
		{name: "decoded json", raw: map[string]interface{}{"type": "rating", "rating": 4.0}, valid: true, rating: 4},
		{name: "fractional", raw: 3.5, errMsg: "Rating must be a whole number"},
		{name: "below", raw: 0, errMsg: "Rating must be between 1 and 5"},
		{name: "above", raw: 6, errMsg: "Rating must be between 1 and 5"},
		{name: "string", raw: "4", errMsg: "Invalid answer format: expected a rating"},
		{name: "huge whole number", raw: 1e20, errMsg: "Invalid answer format: expected a rating"},
		{name: "huge negative", raw: map[string]interface{}{"type": "rating", "rating": -1e20}, errMsg: "Invalid answer format: expected a rating"},
		{name: "missing field", raw: map[string]interface{}{"type": "rating"}, errMsg: "Invalid answer format: expected a rating"},
		{name: "wrong tag", raw: map[string]interface{}{"type": "numeric", "rating": 4.0}, errMsg: "Invalid answer type: expected rating"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateRatingAnswer(tt.raw, 1, 5)
			assert.Equal(t, tt.valid, result.IsValid)
			assert.Equal(t, tt.errMsg, result.Error)
			if tt.valid {
				assert.Equal(t, tt.rating, result.Answer.Rating)
			}
		})
	}
}

func TestValidateDropdownAnswer(t *testing.T) {
	tests := []struct {
		name   string
		raw    interface{}
		valid  bool
		errMsg string
	}{
		{name: "typed", raw: models.DropdownAnswer{Type: models.QuestionDropdown, SelectedOption: "Paris"}, valid: true},
		{name: "decoded json", raw: map[string]interface{}{"type": "dropdown", "selected_option": "Paris"}, valid: true},
		{name: "camel case key", raw: map[string]interface{}{"type": "dropdown", "selectedOption": "Paris"}, valid: true},
		{name: "raw json", raw: json.RawMessage(`{"type":"dropdown","selected_option":"Rome"}`), valid: true},
		{name: "missing tag", raw: models.DropdownAnswer{SelectedOption: "Paris"}, errMsg: "Invalid answer type: expected dropdown"},
		{name: "wrong tag", raw: map[string]interface{}{"type": "rating", "selected_option": "Paris"}, errMsg: "Invalid answer type: expected dropdown"},
		{name: "blank selection", raw: models.DropdownAnswer{Type: models.QuestionDropdown, SelectedOption: "  "}, errMsg: "Selected option is required"},
		{name: "bare string", raw: "Paris", errMsg: "Invalid answer format: expected a dropdown answer"},
		{name: "nil", raw: nil, errMsg: "Answer is required"},
		{name: "nil pointer", raw: (*models.DropdownAnswer)(nil), errMsg: "Answer is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateDropdownAnswer(tt.raw)
			assert.Equal(t, tt.valid, result.IsValid)
			assert.Equal(t, tt.errMsg, result.Error)
		})
	}
}
