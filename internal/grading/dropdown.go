package grading

import (
	"fmt"
	"math"
	"strings"

	"github.com/SAP-F-2025/grading-service/internal/models"
	"github.com/SAP-F-2025/grading-service/internal/similarity"
	"github.com/SAP-F-2025/grading-service/internal/validator"
)

const (
	// PartialCreditThreshold is the similarity a near miss must exceed.
	PartialCreditThreshold = 0.80
	// largeOptionSet is the option count above which feedback changes tone.
	largeOptionSet = 5
)

// DropdownOptions tunes dropdown grading. The zero value matches
// case-insensitively, gives no partial credit and scores out of 1.
type DropdownOptions struct {
	CaseSensitive      bool
	AllowPartialCredit bool
	MaxScore           float64
}

// GradeDropdownQuestion validates and grades a dropdown selection.
func GradeDropdownQuestion(cfg models.DropdownConfig, raw interface{}, opts DropdownOptions) models.DropdownResult {
	maxScore := opts.MaxScore
	if maxScore <= 0 {
		maxScore = 1
	}

	correct := cfg.CorrectOption()
	result := models.DropdownResult{
		MaxScore:      maxScore,
		CorrectOption: correct,
		GradingDetails: models.DropdownGradingDetails{
			MatchType:   models.MatchNone,
			AnswerType:  models.OutcomeIncorrect,
			OptionCount: len(cfg.Options),
		},
	}

	validation := validator.ValidateDropdownAnswer(raw)
	result.SelectedOption = validation.Answer.SelectedOption
	if !validation.IsValid {
		result.Error = validation.Error
		result.Feedback = fmt.Sprintf("Invalid answer: %s", validation.Error)
		return result
	}

	selected := validation.Answer.SelectedOption
	if optionsMatch(selected, correct, opts.CaseSensitive) {
		result.IsCorrect = true
		result.Score = maxScore
		result.GradingDetails.MatchType = models.MatchExact
		result.GradingDetails.AnswerType = models.OutcomeCorrect
		result.Feedback = fmt.Sprintf("Correct! %q is the right answer.", selected)
		return result
	}

	if opts.AllowPartialCredit {
		sim := optionSimilarity(selected, correct, opts.CaseSensitive)
		if sim > PartialCreditThreshold {
			result.Score = roundTo(maxScore*sim, 2)
			result.PartialCredit = true
			result.GradingDetails.AnswerType = models.OutcomePartial
			result.GradingDetails.Similarity = &sim
			result.Feedback = fmt.Sprintf("Close! You selected %q, but the correct answer is %q (%d%% similar). Partial credit awarded.",
				selected, correct, int(math.Round(sim*100)))
			return result
		}
	}

	result.Feedback = incorrectDropdownFeedback(selected, correct, len(cfg.Options))
	return result
}

func optionsMatch(selected, correct string, caseSensitive bool) bool {
	if caseSensitive {
		return selected == correct
	}
	return strings.EqualFold(selected, correct)
}

func optionSimilarity(selected, correct string, caseSensitive bool) float64 {
	if caseSensitive {
		return similarity.LevenshteinSimilarity(selected, correct)
	}
	return similarity.LevenshteinSimilarity(strings.ToLower(selected), strings.ToLower(correct))
}

func incorrectDropdownFeedback(selected, correct string, optionCount int) string {
	feedback := fmt.Sprintf("Incorrect. You selected %q, but the correct answer is %q.", selected, correct)
	if optionCount > largeOptionSet {
		return feedback + " There are many similar options here, so review the material carefully before trying again."
	}
	return feedback + " Review the options and try again."
}

func roundTo(v float64, places int) float64 {
	return RoundHalfAwayFromZero(v, places)
}
