package grading

import (
	"fmt"

	apperrors "github.com/SAP-F-2025/grading-service/internal/errors"
	"github.com/SAP-F-2025/grading-service/internal/models"
	"github.com/SAP-F-2025/grading-service/internal/validator"
)

// Engine routes a question to the grader for its config type. It holds
// only read-only defaults and is safe for concurrent use.
type Engine struct {
	dropdown DropdownOptions
}

type Option func(*Engine)

// WithDropdownOptions sets the options used for dropdown questions.
func WithDropdownOptions(opts DropdownOptions) Option {
	return func(e *Engine) { e.dropdown = opts }
}

// NewEngine creates an engine with the given options.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{dropdown: DropdownOptions{MaxScore: 1}}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Grade validates raw against the question and grades it. Invalid answers
// produce a zero-score outcome; an error is returned only when the
// question itself cannot be graded: a nil question, a missing or unknown
// config, or a dropdown without a correct option. Pointer configs are
// graded like their value form.
func (e *Engine) Grade(q *models.Question, raw interface{}) (*models.GradingOutcome, error) {
	if q == nil {
		return nil, apperrors.NewConfigurationError("question", "is required")
	}

	outcome := &models.GradingOutcome{
		QuestionID: q.ID,
		MaxScore:   1,
	}

	switch cfg := models.ResolveConfig(q.Config).(type) {
	case models.NumericConfig:
		outcome.QuestionType = models.QuestionNumeric
		r := e.gradeNumeric(cfg, raw)
		outcome.IsCorrect, outcome.Score, outcome.Feedback = r.IsCorrect, r.Score, r.Feedback
		outcome.Valid = r.Error == ""
		outcome.Result = r
	case models.SequenceConfig:
		outcome.QuestionType = models.QuestionSequence
		r := GradeSequenceQuestion(raw, cfg.CorrectSequence, cfg.AllowPartialCredit)
		if r.Error == "" {
			r.Feedback = sequenceOutcomeFeedback(r, cfg.Labels())
		}
		outcome.IsCorrect, outcome.Score, outcome.Feedback = r.IsCorrect, r.Score, r.Feedback
		outcome.Valid = r.Error == ""
		outcome.Result = r
	case models.RatingConfig:
		outcome.QuestionType = models.QuestionRating
		r := GradeRatingQuestion(raw, cfg.RatingMin, cfg.RatingMax, cfg.RatingType, RatingOptionsFromConfig(cfg))
		outcome.IsCorrect, outcome.Score, outcome.Feedback = r.IsCorrect, r.Score, r.Feedback
		outcome.Valid = r.Error == ""
		outcome.Result = r
	case models.DropdownConfig:
		outcome.QuestionType = models.QuestionDropdown
		if cfg.CorrectOption() == "" {
			return nil, &apperrors.ConfigurationError{QuestionID: q.ID, Field: "options", Message: "no correct option defined"}
		}
		r := GradeDropdownQuestion(cfg, raw, e.dropdown)
		outcome.IsCorrect, outcome.Score, outcome.Feedback = r.IsCorrect, r.Score, r.Feedback
		outcome.MaxScore = r.MaxScore
		outcome.Valid = r.Error == ""
		outcome.Result = r
	case nil:
		return nil, &apperrors.ConfigurationError{QuestionID: q.ID, Field: "config", Message: "is required"}
	default:
		return nil, &apperrors.ConfigurationError{
			QuestionID: q.ID,
			Field:      "config",
			Message:    fmt.Sprintf("unsupported config type %T", cfg),
		}
	}

	return outcome, nil
}

func (e *Engine) gradeNumeric(cfg models.NumericConfig, raw interface{}) models.NumericResult {
	validation := validator.ValidateNumericAnswer(raw, cfg.MinValue, cfg.MaxValue)
	if !validation.IsValid {
		places := clampDecimalPlaces(cfg.DecimalPlaces)
		return models.NumericResult{
			Feedback:      validation.Error,
			Error:         validation.Error,
			CorrectAnswer: RoundHalfAwayFromZero(cfg.CorrectAnswer, places),
		}
	}
	return GradeNumericQuestion(*validation.Value, cfg)
}

// sequenceOutcomeFeedback appends the labelled correct order to the
// grader's verdict when the answer was not perfect.
func sequenceOutcomeFeedback(r models.SequenceResult, labels map[string]string) string {
	if r.IsCorrect {
		return r.Feedback
	}
	return r.Feedback + " " + GenerateSequenceFeedback(r.UserSequence, r.CorrectSequence, r.Score, labels)
}
