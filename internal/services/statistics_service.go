package services

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/SAP-F-2025/grading-service/internal/grading"
	"github.com/SAP-F-2025/grading-service/internal/models"
	"github.com/SAP-F-2025/grading-service/internal/utils"
	"github.com/xuri/excelize/v2"
)

// StatisticsService aggregates graded answers for reporting
type StatisticsService interface {
	RatingStatistics(ratings []int) models.RatingStatistics
	DropdownStatistics(results []models.DropdownResult) models.DropdownStatistics
	OutcomeSummary(outcomes []*models.GradingOutcome) models.OutcomeSummary
	// BuildReport groups outcomes per question and computes every statistic.
	BuildReport(title string, outcomes []*models.GradingOutcome) *StatisticsReport
	ExportStatisticsWorkbook(ctx context.Context, report *StatisticsReport) ([]byte, error)
}

type StatisticsReport struct {
	Title     string                             `json:"title"`
	Summary   models.OutcomeSummary              `json:"summary"`
	Ratings   map[uint]models.RatingStatistics   `json:"ratings"`
	Dropdowns map[uint]models.DropdownStatistics `json:"dropdowns"`
}

type statisticsService struct {
	logger utils.Logger
}

func NewStatisticsService(logger utils.Logger) StatisticsService {
	return &statisticsService{logger: logger.With("service", "statistics")}
}

func (s *statisticsService) RatingStatistics(ratings []int) models.RatingStatistics {
	return grading.CalculateRatingStatistics(ratings)
}

func (s *statisticsService) DropdownStatistics(results []models.DropdownResult) models.DropdownStatistics {
	return grading.GenerateDropdownStatistics(results)
}

func (s *statisticsService) OutcomeSummary(outcomes []*models.GradingOutcome) models.OutcomeSummary {
	return grading.SummarizeOutcomes(outcomes)
}

func (s *statisticsService) BuildReport(title string, outcomes []*models.GradingOutcome) *StatisticsReport {
	ratings := make(map[uint][]int)
	dropdowns := make(map[uint][]models.DropdownResult)

	for _, o := range outcomes {
		if o == nil {
			continue
		}
		switch r := o.Result.(type) {
		case models.RatingResult:
			// Invalid ratings carry no usable value.
			if r.Error == "" {
				ratings[o.QuestionID] = append(ratings[o.QuestionID], r.UserRating)
			}
		case models.DropdownResult:
			dropdowns[o.QuestionID] = append(dropdowns[o.QuestionID], r)
		}
	}

	report := &StatisticsReport{
		Title:     title,
		Summary:   grading.SummarizeOutcomes(outcomes),
		Ratings:   make(map[uint]models.RatingStatistics, len(ratings)),
		Dropdowns: make(map[uint]models.DropdownStatistics, len(dropdowns)),
	}
	for id, values := range ratings {
		report.Ratings[id] = grading.CalculateRatingStatistics(values)
	}
	for id, results := range dropdowns {
		report.Dropdowns[id] = grading.GenerateDropdownStatistics(results)
	}
	return report
}

// ===== WORKBOOK EXPORT =====

const (
	summarySheet   = "Summary"
	ratingsSheet   = "Ratings"
	dropdownsSheet = "Dropdowns"
)

func (s *statisticsService) ExportStatisticsWorkbook(ctx context.Context, report *StatisticsReport) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("%w: report is required", ErrValidationFailed)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	if err := writeSummarySheet(f, report); err != nil {
		return nil, err
	}
	if err := writeRatingsSheet(f, report.Ratings); err != nil {
		return nil, err
	}
	if err := writeDropdownsSheet(f, report.Dropdowns); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	s.logger.InfoContext(ctx, "Exported statistics workbook",
		"title", report.Title,
		"rating_questions", len(report.Ratings),
		"dropdown_questions", len(report.Dropdowns))
	return buf.Bytes(), nil
}

func writeSummarySheet(f *excelize.File, report *StatisticsReport) error {
	summary := report.Summary
	rows := [][]interface{}{
		{"Report", report.Title},
		{"Metric", "Value"},
		{"Total Answers", summary.Total},
		{"Correct Answers", summary.Correct},
		{"Invalid Answers", summary.Invalid},
		{"Total Score", summary.TotalScore},
		{"Max Score", summary.MaxScore},
		{"Average Score", summary.AverageScore},
		{"Percentage", summary.Percentage},
	}

	types := make([]string, 0, len(summary.ByType))
	for t := range summary.ByType {
		types = append(types, string(t))
	}
	slices.Sort(types)
	for _, t := range types {
		rows = append(rows, []interface{}{"Answers (" + t + ")", summary.ByType[models.QuestionType(t)]})
	}

	return writeRows(f, summarySheet, rows)
}

func writeRatingsSheet(f *excelize.File, stats map[uint]models.RatingStatistics) error {
	if _, err := f.NewSheet(ratingsSheet); err != nil {
		return fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	rows := [][]interface{}{{"Question ID", "Responses", "Average", "Median", "Mode", "Distribution"}}
	for _, id := range sortedKeys(stats) {
		st := stats[id]
		rows = append(rows, []interface{}{id, st.Total, st.Average, st.Median, joinInts(st.Mode), formatDistribution(st.Distribution)})
	}
	return writeRows(f, ratingsSheet, rows)
}

func writeDropdownsSheet(f *excelize.File, stats map[uint]models.DropdownStatistics) error {
	if _, err := f.NewSheet(dropdownsSheet); err != nil {
		return fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	rows := [][]interface{}{{"Question ID", "Attempts", "Correct", "Partial Credit", "Incorrect", "Average Score", "Accuracy %", "Common Incorrect Answers"}}
	for _, id := range sortedKeys(stats) {
		st := stats[id]
		common := make([]string, len(st.CommonIncorrectAnswers))
		for i, c := range st.CommonIncorrectAnswers {
			common[i] = fmt.Sprintf("%s (%d)", c.Option, c.Count)
		}
		rows = append(rows, []interface{}{
			id, st.TotalAttempts, st.CorrectAnswers, st.PartialCreditAnswers, st.IncorrectAnswers,
			st.AverageScore, st.AccuracyRate, strings.Join(common, ", "),
		})
	}
	return writeRows(f, dropdownsSheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func sortedKeys[V any](m map[uint]V) []uint {
	keys := make([]uint, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}

// formatDistribution renders "value:count" pairs in ascending value order.
func formatDistribution(distribution map[int]int) string {
	values := make([]int, 0, len(distribution))
	for v := range distribution {
		values = append(values, v)
	}
	slices.Sort(values)

	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%d:%d", v, distribution[v])
	}
	return strings.Join(parts, ", ")
}
