package grading

import (
	"slices"

	"github.com/SAP-F-2025/grading-service/internal/models"
)

const commonIncorrectLimit = 5

// CalculateRatingStatistics summarises raw ratings. Mode lists every value
// tied for the highest count, ascending.
func CalculateRatingStatistics(ratings []int) models.RatingStatistics {
	stats := models.RatingStatistics{
		Mode:         []int{},
		Distribution: map[int]int{},
		Total:        len(ratings),
	}
	if len(ratings) == 0 {
		return stats
	}

	sum := 0
	for _, r := range ratings {
		sum += r
		stats.Distribution[r]++
	}
	stats.Average = roundTo(float64(sum)/float64(len(ratings)), 2)

	sorted := slices.Clone(ratings)
	slices.Sort(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		stats.Median = float64(sorted[mid-1]+sorted[mid]) / 2
	} else {
		stats.Median = float64(sorted[mid])
	}

	highest := 0
	for _, count := range stats.Distribution {
		highest = max(highest, count)
	}
	for value, count := range stats.Distribution {
		if count == highest {
			stats.Mode = append(stats.Mode, value)
		}
	}
	slices.Sort(stats.Mode)

	return stats
}

// GenerateDropdownStatistics aggregates dropdown results. Correct, partial
// and incorrect counts are disjoint. Incorrect selections are ranked by
// count, ties keeping first-seen order.
func GenerateDropdownStatistics(results []models.DropdownResult) models.DropdownStatistics {
	stats := models.DropdownStatistics{
		TotalAttempts:          len(results),
		CommonIncorrectAnswers: []models.IncorrectAnswerCount{},
	}
	if len(results) == 0 {
		return stats
	}

	var totalScore float64
	counts := make(map[string]int)
	var order []string

	for _, r := range results {
		totalScore += r.Score
		switch {
		case r.IsCorrect:
			stats.CorrectAnswers++
			continue
		case r.PartialCredit:
			stats.PartialCreditAnswers++
		default:
			stats.IncorrectAnswers++
		}

		if r.SelectedOption == "" {
			continue
		}
		if _, seen := counts[r.SelectedOption]; !seen {
			order = append(order, r.SelectedOption)
		}
		counts[r.SelectedOption]++
	}

	stats.AverageScore = roundTo(totalScore/float64(len(results)), 2)
	stats.AccuracyRate = roundTo(float64(stats.CorrectAnswers)/float64(len(results))*100, 2)

	slices.SortStableFunc(order, func(a, b string) int {
		return counts[b] - counts[a]
	})
	for _, option := range order[:min(len(order), commonIncorrectLimit)] {
		stats.CommonIncorrectAnswers = append(stats.CommonIncorrectAnswers, models.IncorrectAnswerCount{
			Option: option,
			Count:  counts[option],
		})
	}

	return stats
}

// SummarizeOutcomes aggregates engine outcomes of any question type.
func SummarizeOutcomes(outcomes []*models.GradingOutcome) models.OutcomeSummary {
	summary := models.OutcomeSummary{ByType: map[models.QuestionType]int{}}
	for _, o := range outcomes {
		if o == nil {
			continue
		}
		summary.Total++
		summary.ByType[o.QuestionType]++
		summary.TotalScore += o.Score
		summary.MaxScore += o.MaxScore
		if o.IsCorrect {
			summary.Correct++
		}
		if !o.Valid {
			summary.Invalid++
		}
	}
	if summary.Total > 0 {
		summary.AverageScore = roundTo(summary.TotalScore/float64(summary.Total), 2)
	}
	if summary.MaxScore > 0 {
		summary.Percentage = roundTo(summary.TotalScore/summary.MaxScore*100, 2)
	}
	summary.TotalScore = roundTo(summary.TotalScore, 2)
	return summary
}
