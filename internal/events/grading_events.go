package events

import (
	"time"

	"github.com/SAP-F-2025/grading-service/internal/models"
	"github.com/google/uuid"
)

// EventType represents different types of grading events
type EventType string

const (
	EventAnswerGraded   EventType = "grading.answer_graded"
	EventInvalidAnswer  EventType = "grading.invalid_answer"
	EventBatchCompleted EventType = "grading.batch_completed"
)

const (
	eventSource  = "grading-service"
	eventVersion = "1.0"
)

// GradingEvent is the envelope for every published grading event
type GradingEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Event payloads

type AnswerGradedEvent struct {
	QuestionID   uint                `json:"question_id"`
	QuestionType models.QuestionType `json:"question_type"`
	SubmissionID string              `json:"submission_id,omitempty"`
	IsCorrect    bool                `json:"is_correct"`
	Score        float64             `json:"score"`
	MaxScore     float64             `json:"max_score"`
	GradedAt     time.Time           `json:"graded_at"`
}

type InvalidAnswerEvent struct {
	QuestionID   uint                `json:"question_id"`
	QuestionType models.QuestionType `json:"question_type"`
	SubmissionID string              `json:"submission_id,omitempty"`
	Reason       string              `json:"reason"`
	GradedAt     time.Time           `json:"graded_at"`
}

type BatchCompletedEvent struct {
	Summary     models.OutcomeSummary `json:"summary"`
	Failed      int                   `json:"failed"`
	CompletedAt time.Time             `json:"completed_at"`
}

// Event factory functions

// NewOutcomeEvent builds an answer_graded or invalid_answer event from an
// engine outcome.
func NewOutcomeEvent(outcome *models.GradingOutcome, submissionID string, gradedAt time.Time) *GradingEvent {
	if !outcome.Valid {
		return newEvent(EventInvalidAnswer, InvalidAnswerEvent{
			QuestionID:   outcome.QuestionID,
			QuestionType: outcome.QuestionType,
			SubmissionID: submissionID,
			Reason:       outcome.Feedback,
			GradedAt:     gradedAt,
		})
	}

	return newEvent(EventAnswerGraded, AnswerGradedEvent{
		QuestionID:   outcome.QuestionID,
		QuestionType: outcome.QuestionType,
		SubmissionID: submissionID,
		IsCorrect:    outcome.IsCorrect,
		Score:        outcome.Score,
		MaxScore:     outcome.MaxScore,
		GradedAt:     gradedAt,
	})
}

func NewBatchCompletedEvent(summary models.OutcomeSummary, failed int, completedAt time.Time) *GradingEvent {
	return newEvent(EventBatchCompleted, BatchCompletedEvent{
		Summary:     summary,
		Failed:      failed,
		CompletedAt: completedAt,
	})
}

func newEvent(eventType EventType, data interface{}) *GradingEvent {
	return &GradingEvent{
		ID:        GenerateEventID(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}

// GenerateEventID returns a random UUID string.
func GenerateEventID() string {
	return uuid.NewString()
}
