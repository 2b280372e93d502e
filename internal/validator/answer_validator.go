package validator

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/SAP-F-2025/grading-service/internal/models"
	"github.com/go-playground/validator/v10"
)

// Numeric input messages shown to students.
const (
	MsgEnterNumber      = "Please enter a number"
	MsgEnterValidNumber = "Please enter a valid number"
)

// NumericInputResult is the outcome of parsing a numeric answer.
type NumericInputResult struct {
	IsValid bool     `json:"is_valid"`
	Value   *float64 `json:"value,omitempty"`
	Error   string   `json:"error,omitempty"`
}

type SequenceAnswerValidation struct {
	IsValid bool                  `json:"is_valid"`
	Answer  models.SequenceAnswer `json:"answer"`
	Error   string                `json:"error,omitempty"`
}

type RatingAnswerValidation struct {
	IsValid bool                `json:"is_valid"`
	Answer  models.RatingAnswer `json:"answer"`
	Error   string              `json:"error,omitempty"`
}

type DropdownAnswerValidation struct {
	IsValid bool                  `json:"is_valid"`
	Answer  models.DropdownAnswer `json:"answer"`
	Error   string                `json:"error,omitempty"`
}

// AnswerValidator checks the shape of raw student answers before grading.
// Raw answers may be the typed answer structs, pointers to them, decoded
// JSON (map[string]interface{}), raw JSON bytes, or a bare value.
type AnswerValidator struct {
	structValidator *validator.Validate
}

// NewAnswerValidator creates an answer validator sharing the given struct validator
func NewAnswerValidator(structValidator *validator.Validate) *AnswerValidator {
	if structValidator == nil {
		structValidator = newStructValidator()
	}
	return &AnswerValidator{structValidator: structValidator}
}

var defaultAnswerValidator = sync.OnceValue(func() *AnswerValidator {
	return NewAnswerValidator(nil)
})

// ===== NUMERIC =====

// ValidateNumericInput parses a raw text input and enforces optional bounds.
func ValidateNumericInput(raw string, minValue, maxValue *float64) NumericInputResult {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return NumericInputResult{Error: MsgEnterNumber}
	}

	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return NumericInputResult{Error: MsgEnterValidNumber}
	}
	return checkNumericValue(value, minValue, maxValue)
}

// ValidateNumericAnswer accepts a number, a numeric string, or a
// NumericAnswer and applies the same rules as ValidateNumericInput.
func ValidateNumericAnswer(raw interface{}, minValue, maxValue *float64) NumericInputResult {
	raw = decodeRaw(raw)
	switch v := raw.(type) {
	case nil:
		return NumericInputResult{Error: MsgEnterNumber}
	case string:
		return ValidateNumericInput(v, minValue, maxValue)
	case models.NumericAnswer:
		if v.Type != "" && v.Type != models.QuestionNumeric {
			return NumericInputResult{Error: MsgEnterValidNumber}
		}
		return checkNumericValue(v.Value, minValue, maxValue)
	case *models.NumericAnswer:
		if v == nil {
			return NumericInputResult{Error: MsgEnterNumber}
		}
		return ValidateNumericAnswer(*v, minValue, maxValue)
	case map[string]interface{}:
		if !tagMatches(v, models.QuestionNumeric) {
			return NumericInputResult{Error: MsgEnterValidNumber}
		}
		value, ok := v["value"]
		if !ok {
			return NumericInputResult{Error: MsgEnterNumber}
		}
		if _, nested := value.(map[string]interface{}); nested {
			return NumericInputResult{Error: MsgEnterValidNumber}
		}
		return ValidateNumericAnswer(value, minValue, maxValue)
	}

	if f, ok := toFloat(raw); ok {
		return checkNumericValue(f, minValue, maxValue)
	}
	return NumericInputResult{Error: MsgEnterValidNumber}
}

func checkNumericValue(value float64, minValue, maxValue *float64) NumericInputResult {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return NumericInputResult{Error: MsgEnterValidNumber}
	}
	if minValue != nil && value < *minValue {
		return NumericInputResult{Error: fmt.Sprintf("Value must be at least %s", formatNumber(*minValue))}
	}
	if maxValue != nil && value > *maxValue {
		return NumericInputResult{Error: fmt.Sprintf("Value must be at most %s", formatNumber(*maxValue))}
	}
	return NumericInputResult{IsValid: true, Value: &value}
}

// ===== SEQUENCE =====

// ValidateSequenceAnswer checks that raw is a sequence holding every id of
// correctSequence exactly once.
func ValidateSequenceAnswer(raw interface{}, correctSequence []string) SequenceAnswerValidation {
	sequence, errMsg := extractSequence(decodeRaw(raw))
	if errMsg != "" {
		return SequenceAnswerValidation{Error: errMsg}
	}

	answer := models.SequenceAnswer{Type: models.QuestionSequence, Sequence: sequence}
	if len(sequence) != len(correctSequence) {
		return SequenceAnswerValidation{
			Answer: answer,
			Error:  fmt.Sprintf("Sequence must contain exactly %d items", len(correctSequence)),
		}
	}

	expected := make(map[string]bool, len(correctSequence))
	for _, id := range correctSequence {
		expected[id] = true
	}
	seen := make(map[string]bool, len(sequence))
	for _, id := range sequence {
		if !expected[id] {
			return SequenceAnswerValidation{Answer: answer, Error: fmt.Sprintf("Sequence contains unknown item: %s", id)}
		}
		if seen[id] {
			return SequenceAnswerValidation{Answer: answer, Error: fmt.Sprintf("Sequence contains duplicate item: %s", id)}
		}
		seen[id] = true
	}

	return SequenceAnswerValidation{IsValid: true, Answer: answer}
}

func extractSequence(raw interface{}) ([]string, string) {
	const invalidFormat = "Invalid answer format: expected a sequence of item ids"

	switch v := raw.(type) {
	case []string:
		return append([]string(nil), v...), ""
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, e := range v {
			s, ok := e.(string)
			if !ok {
				return nil, invalidFormat
			}
			out = append(out, s)
		}
		return out, ""
	case models.SequenceAnswer:
		if v.Type != "" && v.Type != models.QuestionSequence {
			return nil, "Invalid answer type: expected sequence"
		}
		if v.Sequence == nil {
			return nil, invalidFormat
		}
		return append([]string(nil), v.Sequence...), ""
	case *models.SequenceAnswer:
		if v == nil {
			return nil, invalidFormat
		}
		return extractSequence(*v)
	case map[string]interface{}:
		if !tagMatches(v, models.QuestionSequence) {
			return nil, "Invalid answer type: expected sequence"
		}
		return extractSequence(v["sequence"])
	default:
		return nil, invalidFormat
	}
}

// ===== RATING =====

// ValidateRatingAnswer checks that raw holds a whole-number rating inside
// [ratingMin, ratingMax].
func ValidateRatingAnswer(raw interface{}, ratingMin, ratingMax int) RatingAnswerValidation {
	rating, errMsg := extractRating(decodeRaw(raw))
	if errMsg != "" {
		return RatingAnswerValidation{Error: errMsg}
	}

	answer := models.RatingAnswer{Type: models.QuestionRating, Rating: rating}
	if rating < ratingMin || rating > ratingMax {
		return RatingAnswerValidation{
			Answer: answer,
			Error:  fmt.Sprintf("Rating must be between %d and %d", ratingMin, ratingMax),
		}
	}
	return RatingAnswerValidation{IsValid: true, Answer: answer}
}

func extractRating(raw interface{}) (int, string) {
	const invalidFormat = "Invalid answer format: expected a rating"

	switch v := raw.(type) {
	case models.RatingAnswer:
		if v.Type != "" && v.Type != models.QuestionRating {
			return 0, "Invalid answer type: expected rating"
		}
		return v.Rating, ""
	case *models.RatingAnswer:
		if v == nil {
			return 0, invalidFormat
		}
		return extractRating(*v)
	case map[string]interface{}:
		if !tagMatches(v, models.QuestionRating) {
			return 0, "Invalid answer type: expected rating"
		}
		inner, ok := v["rating"]
		if !ok {
			return 0, invalidFormat
		}
		if _, nested := inner.(map[string]interface{}); nested {
			return 0, invalidFormat
		}
		return extractRating(inner)
	}

	f, ok := toFloat(raw)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, invalidFormat
	}
	if f != math.Trunc(f) {
		return 0, "Rating must be a whole number"
	}
	if math.Abs(f) > math.MaxInt32 {
		return 0, invalidFormat
	}
	return int(f), ""
}

// ===== DROPDOWN =====

// ValidateDropdownAnswer checks raw with the package default validator.
func ValidateDropdownAnswer(raw interface{}) DropdownAnswerValidation {
	return defaultAnswerValidator().ValidateDropdown(raw)
}

// ValidateDropdown requires a dropdown type tag and a non-blank selection.
func (v *AnswerValidator) ValidateDropdown(raw interface{}) DropdownAnswerValidation {
	var answer models.DropdownAnswer

	switch a := decodeRaw(raw).(type) {
	case models.DropdownAnswer:
		answer = a
	case *models.DropdownAnswer:
		if a == nil {
			return DropdownAnswerValidation{Error: "Answer is required"}
		}
		answer = *a
	case map[string]interface{}:
		tag, _ := a["type"].(string)
		selected, ok := a["selected_option"].(string)
		if !ok {
			selected, _ = a["selectedOption"].(string)
		}
		answer = models.DropdownAnswer{Type: models.QuestionType(tag), SelectedOption: selected}
	case nil:
		return DropdownAnswerValidation{Error: "Answer is required"}
	default:
		return DropdownAnswerValidation{Error: "Invalid answer format: expected a dropdown answer"}
	}

	check := answer
	check.SelectedOption = strings.TrimSpace(check.SelectedOption)
	if err := v.structValidator.Struct(check); err != nil {
		return DropdownAnswerValidation{Answer: answer, Error: dropdownErrorMessage(err)}
	}
	return DropdownAnswerValidation{IsValid: true, Answer: answer}
}

func dropdownErrorMessage(err error) string {
	errs := ToValidationErrors(err)
	if len(errs) == 0 {
		return err.Error()
	}
	switch errs[0].Field {
	case "type":
		return "Invalid answer type: expected dropdown"
	case "selected_option":
		return "Selected option is required"
	default:
		return fmt.Sprintf("%s %s", errs[0].Field, errs[0].Message)
	}
}

// ===== HELPERS =====

// decodeRaw turns JSON bytes into generic values; other inputs pass through.
func decodeRaw(raw interface{}) interface{} {
	var data []byte
	switch v := raw.(type) {
	case json.RawMessage:
		data = v
	case []byte:
		data = v
	default:
		return raw
	}

	var decoded interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return struct{}{}
	}
	return decoded
}

// tagMatches reports whether a decoded answer carries the expected type
// tag. An absent tag is accepted; dropdown answers require it through
// struct validation instead.
func tagMatches(m map[string]interface{}, expected models.QuestionType) bool {
	tag, ok := m["type"]
	if !ok {
		return true
	}
	s, ok := tag.(string)
	return ok && models.QuestionType(s) == expected
}

func toFloat(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
