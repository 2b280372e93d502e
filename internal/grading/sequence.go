package grading

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/SAP-F-2025/grading-service/internal/models"
	"github.com/SAP-F-2025/grading-service/internal/similarity"
	"github.com/SAP-F-2025/grading-service/internal/validator"
)

// GradeSequenceQuestion validates raw against correctSequence and grades the
// ordering. With partial credit the awarded score is the best of the
// positional, LCS and adjacency heuristics.
func GradeSequenceQuestion(raw interface{}, correctSequence []string, allowPartialCredit bool) models.SequenceResult {
	result := models.SequenceResult{
		CorrectSequence: append([]string(nil), correctSequence...),
		UserSequence:    []string{},
	}

	validation := validator.ValidateSequenceAnswer(raw, correctSequence)
	if validation.Answer.Sequence != nil {
		result.UserSequence = validation.Answer.Sequence
	}
	if !validation.IsValid {
		result.Error = validation.Error
		result.Feedback = validation.Error
		return result
	}

	user := validation.Answer.Sequence
	if slices.Equal(user, correctSequence) {
		result.IsCorrect = true
		result.Score = 1
		result.Feedback = "Perfect! All items are in the correct order."
		return result
	}

	if !allowPartialCredit {
		result.Feedback = "Incorrect. The items are not in the correct order."
		return result
	}

	scores := ScoreSequence(user, correctSequence)
	best := scores.Best()
	if best <= 0 {
		result.Feedback = "Incorrect. The items are not in the correct order."
		return result
	}

	result.Score = best
	result.PartialCredit = &best
	result.Breakdown = &scores
	result.Feedback = fmt.Sprintf("Partially correct. You earned %d%% credit for the order of your items.", int(math.Round(best*100)))
	return result
}

// ScoreSequence computes the three partial-credit heuristics for user
// against correct. It does not validate its input.
func ScoreSequence(user, correct []string) models.SequenceScores {
	n := len(correct)
	if n == 0 {
		return models.SequenceScores{}
	}

	scores := models.SequenceScores{
		Positional: float64(similarity.PositionalMatches(user, correct)) / float64(n),
		LCS:        float64(similarity.LongestCommonSubsequence(user, correct)) / float64(n),
	}
	if n >= 2 {
		scores.Adjacency = float64(similarity.AdjacentPairMatches(user, correct)) / float64(n-1)
	}
	return scores
}

// GenerateSequenceFeedback describes how user compares with correct. Labels
// optionally map item ids to display text; unknown ids render as the id.
func GenerateSequenceFeedback(user, correct []string, score float64, labels map[string]string) string {
	correctOrder := renderSequence(correct, labels)

	switch {
	case score >= 1:
		return "Perfect! All items are in the correct order."
	case score <= 0:
		return fmt.Sprintf("The correct order is: %s", correctOrder)
	default:
		placed := similarity.PositionalMatches(user, correct)
		return fmt.Sprintf("You placed %d of %d items in the correct position. The correct order is: %s",
			placed, len(correct), correctOrder)
	}
}

func renderSequence(ids []string, labels map[string]string) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		if label, ok := labels[id]; ok && label != "" {
			parts[i] = label
		} else {
			parts[i] = id
		}
	}
	return strings.Join(parts, " → ")
}
