package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/SAP-F-2025/grading-service/internal/errors"
	"github.com/SAP-F-2025/grading-service/internal/events"
	"github.com/SAP-F-2025/grading-service/internal/grading"
	"github.com/SAP-F-2025/grading-service/internal/models"
	"github.com/SAP-F-2025/grading-service/internal/repositories"
	"github.com/SAP-F-2025/grading-service/internal/utils"
	"github.com/SAP-F-2025/grading-service/internal/validator"
	"golang.org/x/sync/errgroup"
)

// GradingService grades student answers against stored questions
type GradingService interface {
	GradeAnswer(ctx context.Context, questionID uint, answer interface{}) (*models.GradingOutcome, error)
	GradeSubmission(ctx context.Context, submission *AnswerSubmission) (*models.GradingOutcome, error)
	// GradeBatch grades independent submissions. Per-item failures are
	// reported in the result and do not fail the batch.
	GradeBatch(ctx context.Context, submissions []AnswerSubmission) (*BatchResult, error)
}

// AnswerSubmission is one answer to grade. ExpectedType, when set, must
// match the stored question's type.
type AnswerSubmission struct {
	SubmissionID string              `json:"submission_id"`
	QuestionID   uint                `json:"question_id" validate:"required"`
	ExpectedType models.QuestionType `json:"expected_type,omitempty" validate:"omitempty,question_type"`
	Answer       interface{}         `json:"answer" validate:"-"`
}

type BatchItemError struct {
	Index        int    `json:"index"`
	SubmissionID string `json:"submission_id,omitempty"`
	QuestionID   uint   `json:"question_id"`
	Error        string `json:"error"`
}

// BatchResult holds one outcome slot per submission; failed slots are nil.
type BatchResult struct {
	Outcomes []*models.GradingOutcome `json:"outcomes"`
	Errors   []BatchItemError         `json:"errors,omitempty"`
	Summary  models.OutcomeSummary    `json:"summary"`
}

type GradingServiceConfig struct {
	// StrictQuestionConfig refuses to grade questions that fail config
	// validation. Otherwise they are graded with a warning.
	StrictQuestionConfig bool
	BatchConcurrency     int
	MaxBatchSize         int
}

type gradingService struct {
	questions repositories.QuestionRepository
	engine    *grading.Engine
	validator *validator.Validator
	publisher events.EventPublisher
	logger    utils.Logger
	opLogger  *ServiceLogger
	config    GradingServiceConfig
	now       func() time.Time
}

// NewGradingService wires the grading service. publisher may be nil.
func NewGradingService(
	questions repositories.QuestionRepository,
	engine *grading.Engine,
	validator *validator.Validator,
	publisher events.EventPublisher,
	logger utils.Logger,
	config GradingServiceConfig,
) GradingService {
	if config.BatchConcurrency <= 0 {
		config.BatchConcurrency = 1
	}
	if config.MaxBatchSize <= 0 {
		config.MaxBatchSize = 500
	}

	logger = logger.With("service", "grading")
	return &gradingService{
		questions: questions,
		engine:    engine,
		validator: validator,
		publisher: publisher,
		logger:    logger,
		opLogger:  NewServiceLogger(utils.ToSlogLogger(logger), LogConfig{Service: "grading-service", Component: "grading"}),
		config:    config,
		now:       time.Now,
	}
}

func (s *gradingService) GradeAnswer(ctx context.Context, questionID uint, answer interface{}) (*models.GradingOutcome, error) {
	return s.GradeSubmission(ctx, &AnswerSubmission{QuestionID: questionID, Answer: answer})
}

func (s *gradingService) GradeSubmission(ctx context.Context, submission *AnswerSubmission) (outcome *models.GradingOutcome, err error) {
	if submission == nil {
		return nil, fmt.Errorf("%w: submission is required", ErrValidationFailed)
	}
	done := s.opLogger.TimeOperation(ctx, "grade_answer", submission.QuestionID)
	defer func() { done(err) }()

	if err := s.validator.ValidateStruct(submission); err != nil {
		if errs := apperrors.ToValidationErrors(err); len(errs) > 0 {
			s.opLogger.LogValidationError(ctx, "grade_answer", errs)
			return nil, errs
		}
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	question, err := s.questions.GetByID(ctx, submission.QuestionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load question %d: %w", submission.QuestionID, err)
	}

	if submission.ExpectedType != "" && question.Type() != submission.ExpectedType {
		return nil, NewBusinessRuleError(ErrQuestionTypeMismatch, "question_type",
			fmt.Sprintf("question %d is %s, not %s", question.ID, question.Type(), submission.ExpectedType),
			map[string]interface{}{"question_id": question.ID, "expected_type": submission.ExpectedType})
	}

	if err := s.checkQuestionConfig(ctx, question); err != nil {
		return nil, err
	}

	outcome, err = s.engine.Grade(question, submission.Answer)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidQuestionConfig, apperrors.WrapConfigurationError(question.ID, err))
	}

	s.logger.LogGrading(ctx, outcome.QuestionID, string(outcome.QuestionType), outcome.Score, outcome.Valid,
		"submission_id", submission.SubmissionID)
	s.publish(ctx, events.NewOutcomeEvent(outcome, submission.SubmissionID, s.now()))

	return outcome, nil
}

func (s *gradingService) GradeBatch(ctx context.Context, submissions []AnswerSubmission) (*BatchResult, error) {
	if len(submissions) == 0 {
		return nil, ErrEmptyBatch
	}
	if len(submissions) > s.config.MaxBatchSize {
		return nil, NewBusinessRuleError(ErrBatchTooLarge, "max_batch_size",
			fmt.Sprintf("%d submissions, limit %d", len(submissions), s.config.MaxBatchSize),
			map[string]interface{}{"submissions": len(submissions), "limit": s.config.MaxBatchSize})
	}

	outcomes := make([]*models.GradingOutcome, len(submissions))
	itemErrs := make([]error, len(submissions))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.BatchConcurrency)
	for i := range submissions {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				itemErrs[i] = err
				return nil
			}
			outcomes[i], itemErrs[i] = s.GradeSubmission(gctx, &submissions[i])
			return nil
		})
	}
	_ = g.Wait()

	result := &BatchResult{Outcomes: outcomes}
	for i, err := range itemErrs {
		if err == nil {
			continue
		}
		result.Errors = append(result.Errors, BatchItemError{
			Index:        i,
			SubmissionID: submissions[i].SubmissionID,
			QuestionID:   submissions[i].QuestionID,
			Error:        err.Error(),
		})
	}
	result.Summary = grading.SummarizeOutcomes(outcomes)

	s.logger.InfoContext(ctx, "Batch graded",
		"submissions", len(submissions),
		"failed", len(result.Errors),
		"correct", result.Summary.Correct)
	s.publish(ctx, events.NewBatchCompletedEvent(result.Summary, len(result.Errors), s.now()))

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("batch grading interrupted: %w", err)
	}
	return result, nil
}

// checkQuestionConfig enforces config validation in strict mode and only
// logs it otherwise.
func (s *gradingService) checkQuestionConfig(ctx context.Context, question *models.Question) error {
	err := s.validator.Question().ValidateConfig(question.Config)
	if err == nil {
		return nil
	}

	configErr := apperrors.WrapConfigurationError(question.ID, err)
	if s.config.StrictQuestionConfig || models.ResolveConfig(question.Config) == nil {
		s.logger.WarnContext(ctx, "Refusing to grade misconfigured question",
			"question_id", question.ID, "field", configErr.Field, "error", configErr.Message)
		return fmt.Errorf("%w: %w", ErrInvalidQuestionConfig, configErr)
	}

	s.logger.WarnContext(ctx, "Grading question with invalid configuration",
		"question_id", question.ID, "field", configErr.Field, "error", configErr.Message)
	return nil
}

func (s *gradingService) publish(ctx context.Context, event *events.GradingEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishGradingEvent(ctx, event); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.LogError(err, "Failed to publish grading event", "event_type", event.Type, "event_id", event.ID)
	}
}
