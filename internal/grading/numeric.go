package grading

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/SAP-F-2025/grading-service/internal/models"
)

// toleranceULPs is the slack, in units in the last place of the larger
// operand, that absorbs binary representation error (9.6 against 9.8±0.2).
const toleranceULPs = 4

// GradeNumericQuestion grades a numeric answer against a tolerance window.
// The score is binary.
func GradeNumericQuestion(userAnswer float64, cfg models.NumericConfig) models.NumericResult {
	places := clampDecimalPlaces(cfg.DecimalPlaces)
	tolerance := math.Max(cfg.Tolerance, 0)

	result := models.NumericResult{
		UserAnswer:    RoundHalfAwayFromZero(userAnswer, places),
		CorrectAnswer: RoundHalfAwayFromZero(cfg.CorrectAnswer, places),
	}

	if math.IsNaN(userAnswer) || math.IsInf(userAnswer, 0) {
		result.Error = "Please enter a valid number"
		result.Feedback = result.Error
		return result
	}

	result.IsCorrect = withinTolerance(userAnswer, cfg.CorrectAnswer, tolerance)
	if result.IsCorrect {
		result.Score = 1
	}
	result.Feedback = numericFeedback(result, cfg.Unit, tolerance, places)
	return result
}

func withinTolerance(answer, expected, tolerance float64) bool {
	return math.Abs(answer-expected) <= tolerance+toleranceULPs*ulp(math.Max(math.Abs(answer), math.Abs(expected)))
}

func ulp(x float64) float64 {
	return math.Nextafter(x, math.Inf(1)) - x
}

func numericFeedback(result models.NumericResult, unit *string, tolerance float64, places int) string {
	user := formatWithUnit(FormatFixed(result.UserAnswer, places), unit)
	correct := formatWithUnit(FormatFixed(result.CorrectAnswer, places), unit)

	if result.IsCorrect {
		return fmt.Sprintf("Correct! Your answer: %s. Correct answer: %s.", user, correct)
	}

	feedback := fmt.Sprintf("Incorrect. Your answer: %s. Correct answer: %s.", user, correct)
	if tolerance > 0 {
		window := formatWithUnit(strconv.FormatFloat(tolerance, 'f', -1, 64), unit)
		feedback += fmt.Sprintf(" Answers within ±%s were accepted.", window)
	}
	return feedback
}

// RoundHalfAwayFromZero rounds v to the given number of decimal places;
// ties move away from zero (2.5 -> 3, -2.5 -> -3).
func RoundHalfAwayFromZero(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}

// FormatFixed renders v with exactly places decimals after rounding half
// away from zero.
func FormatFixed(v float64, places int) string {
	return strconv.FormatFloat(RoundHalfAwayFromZero(v, places), 'f', places, 64)
}

func formatWithUnit(value string, unit *string) string {
	if unit == nil {
		return value
	}
	u := strings.TrimSpace(*unit)
	if u == "" {
		return value
	}
	return value + " " + u
}

func clampDecimalPlaces(places int) int {
	return min(max(places, 0), 10)
}
