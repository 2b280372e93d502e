package validator

import (
	"testing"

	apperrors "github.com/SAP-F-2025/grading-service/internal/errors"
	"github.com/SAP-F-2025/grading-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func TestQuestionValidator_ValidateConfig(t *testing.T) {
	v := New().Question()

	tests := []struct {
		name    string
		config  models.QuestionConfig
		field   string
		wantErr bool
	}{
		{
			name:   "numeric ok",
			config: models.NumericConfig{CorrectAnswer: 9.8, Tolerance: 0.2, DecimalPlaces: 1, MinValue: floatPtr(0), MaxValue: floatPtr(20)},
		},
		{
			name:    "numeric negative tolerance",
			config:  models.NumericConfig{CorrectAnswer: 1, Tolerance: -1},
			field:   "tolerance",
			wantErr: true,
		},
		{
			name:    "numeric too many decimals",
			config:  models.NumericConfig{CorrectAnswer: 1, DecimalPlaces: 11},
			field:   "decimal_places",
			wantErr: true,
		},
		{
			name:    "numeric inverted bounds",
			config:  models.NumericConfig{CorrectAnswer: 1, MinValue: floatPtr(5), MaxValue: floatPtr(2)},
			field:   "min_value",
			wantErr: true,
		},
		{
			name:    "numeric answer outside bounds",
			config:  models.NumericConfig{CorrectAnswer: 30, MinValue: floatPtr(0), MaxValue: floatPtr(20)},
			field:   "correct_answer",
			wantErr: true,
		},
		{
			name: "sequence ok",
			config: models.SequenceConfig{
				Items:           []models.SequenceItem{{ID: "a", Text: "First"}, {ID: "b", Text: "Second"}},
				CorrectSequence: []string{"b", "a"},
			},
		},
		{
			name: "sequence missing item",
			config: models.SequenceConfig{
				Items:           []models.SequenceItem{{ID: "a", Text: "First"}, {ID: "b", Text: "Second"}, {ID: "c", Text: "Third"}},
				CorrectSequence: []string{"a", "b"},
			},
			field:   "correct_sequence",
			wantErr: true,
		},
		{
			name: "sequence duplicate",
			config: models.SequenceConfig{
				Items:           []models.SequenceItem{{ID: "a", Text: "First"}, {ID: "b", Text: "Second"}},
				CorrectSequence: []string{"a", "a"},
			},
			field:   "correct_sequence",
			wantErr: true,
		},
		{
			name: "sequence single item",
			config: models.SequenceConfig{
				Items:           []models.SequenceItem{{ID: "a", Text: "First"}},
				CorrectSequence: []string{"a"},
			},
			field:   "items",
			wantErr: true,
		},
		{
			name:   "rating ok",
			config: models.RatingConfig{RatingMin: 1, RatingMax: 5, RatingType: models.RatingStars},
		},
		{
			name:    "rating max not above min",
			config:  models.RatingConfig{RatingMin: 5, RatingMax: 5, RatingType: models.RatingStars},
			field:   "rating_max",
			wantErr: true,
		},
		{
			name:    "rating unknown type",
			config:  models.RatingConfig{RatingMin: 1, RatingMax: 5, RatingType: "slider"},
			field:   "rating_type",
			wantErr: true,
		},
		{
			name:    "rating expected outside scale",
			config:  models.RatingConfig{RatingMin: 1, RatingMax: 5, RatingType: models.RatingNumbers, ExpectedRating: intPtr(7)},
			field:   "expected_rating",
			wantErr: true,
		},
		{
			name:    "rating label count",
			config:  models.RatingConfig{RatingMin: 1, RatingMax: 3, RatingType: models.RatingLikert, RatingLabels: []string{"No", "Yes"}},
			field:   "rating_labels",
			wantErr: true,
		},
		{
			name: "dropdown ok",
			config: models.DropdownConfig{Options: []models.DropdownOption{
				{Text: "Paris", IsCorrect: true}, {Text: "Rome"},
			}},
		},
		{
			name: "dropdown no correct option",
			config: models.DropdownConfig{Options: []models.DropdownOption{
				{Text: "Paris"}, {Text: "Rome"},
			}},
			field:   "options",
			wantErr: true,
		},
		{
			name: "dropdown two correct options",
			config: models.DropdownConfig{Options: []models.DropdownOption{
				{Text: "Paris", IsCorrect: true}, {Text: "Rome", IsCorrect: true},
			}},
			field:   "options",
			wantErr: true,
		},
		{
			name:   "numeric pointer ok",
			config: &models.NumericConfig{CorrectAnswer: 1, Tolerance: 0.5},
		},
		{
			name:    "dropdown pointer no correct option",
			config:  &models.DropdownConfig{Options: []models.DropdownOption{{Text: "Paris"}, {Text: "Rome"}}},
			field:   "options",
			wantErr: true,
		},
		{
			name:    "typed nil rating",
			config:  (*models.RatingConfig)(nil),
			field:   "config",
			wantErr: true,
		},
		{
			name:    "nil config",
			config:  nil,
			field:   "config",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateConfig(tt.config)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var ce *apperrors.ConfigurationError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.field, ce.Field)
		})
	}
}
