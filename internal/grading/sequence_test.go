package grading

import (
	"testing"

	"github.com/SAP-F-2025/grading-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradeSequenceQuestion(t *testing.T) {
	correct := []string{"a", "b", "c"}

	tests := []struct {
		name      string
		raw       interface{}
		partial   bool
		isCorrect bool
		score     float64
		errMsg    string
	}{
		{name: "perfect", raw: []string{"a", "b", "c"}, partial: true, isCorrect: true, score: 1},
		{name: "perfect without partial", raw: []string{"a", "b", "c"}, isCorrect: true, score: 1},
		{name: "reversed", raw: []string{"c", "b", "a"}, partial: true, score: 1.0 / 3},
		{name: "reversed without partial", raw: []string{"c", "b", "a"}, score: 0},
		{name: "rotated", raw: []string{"b", "c", "a"}, partial: true, score: 2.0 / 3},
		{name: "invalid length", raw: []string{"a", "b"}, partial: true, errMsg: "Sequence must contain exactly 3 items"},
		{name: "invalid type", raw: 12, partial: true, errMsg: "Invalid answer format: expected a sequence of item ids"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GradeSequenceQuestion(tt.raw, correct, tt.partial)
			assert.Equal(t, tt.isCorrect, result.IsCorrect)
			assert.InDelta(t, tt.score, result.Score, 1e-9)
			assert.Equal(t, tt.errMsg, result.Error)
			assert.Equal(t, correct, result.CorrectSequence)
			assert.GreaterOrEqual(t, result.Score, 0.0)
			assert.LessOrEqual(t, result.Score, 1.0)
		})
	}
}

func TestGradeSequenceQuestion_Breakdown(t *testing.T) {
	result := GradeSequenceQuestion([]string{"b", "c", "a"}, []string{"a", "b", "c"}, true)

	require.NotNil(t, result.Breakdown)
	require.NotNil(t, result.PartialCredit)
	assert.InDelta(t, 0.0, result.Breakdown.Positional, 1e-9)
	assert.InDelta(t, 2.0/3, result.Breakdown.LCS, 1e-9)
	assert.InDelta(t, 0.5, result.Breakdown.Adjacency, 1e-9)
	assert.InDelta(t, 2.0/3, *result.PartialCredit, 1e-9)
	assert.Equal(t, "Partially correct. You earned 67% credit for the order of your items.", result.Feedback)
}

func TestGradeSequenceQuestion_Idempotent(t *testing.T) {
	raw := map[string]interface{}{"type": "sequence", "sequence": []interface{}{"c", "a", "b"}}
	first := GradeSequenceQuestion(raw, []string{"a", "b", "c"}, true)
	second := GradeSequenceQuestion(raw, []string{"a", "b", "c"}, true)
	assert.Equal(t, first, second)
}

func TestScoreSequence(t *testing.T) {
	scores := ScoreSequence([]string{"c", "b", "a"}, []string{"a", "b", "c"})
	assert.Equal(t, models.SequenceScores{Positional: 1.0 / 3, LCS: 1.0 / 3, Adjacency: 0}, scores)
	assert.Equal(t, models.SequenceScores{}, ScoreSequence(nil, nil))
}

func TestGenerateSequenceFeedback(t *testing.T) {
	correct := []string{"a", "b", "c"}
	labels := map[string]string{"a": "Boil water", "b": "Add tea"}

	assert.Equal(t, "Perfect! All items are in the correct order.",
		GenerateSequenceFeedback(correct, correct, 1, labels))
	assert.Equal(t, "You placed 1 of 3 items in the correct position. The correct order is: Boil water → Add tea → c",
		GenerateSequenceFeedback([]string{"c", "b", "a"}, correct, 1.0/3, labels))
	assert.Equal(t, "The correct order is: a → b → c",
		GenerateSequenceFeedback([]string{"c", "b", "a"}, correct, 0, nil))
}
