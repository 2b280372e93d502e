package events

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/SAP-F-2025/grading-service/internal/models"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewOutcomeEvent(t *testing.T) {
	gradedAt := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	event := NewOutcomeEvent(&models.GradingOutcome{
		QuestionID: 4, QuestionType: models.QuestionDropdown, IsCorrect: true, Score: 2, MaxScore: 2, Valid: true,
	}, "sub-1", gradedAt)

	assert.Equal(t, EventAnswerGraded, event.Type)
	assert.Equal(t, "grading-service", event.Source)
	_, err := uuid.Parse(event.ID)
	assert.NoError(t, err)
	assert.Equal(t, AnswerGradedEvent{
		QuestionID: 4, QuestionType: models.QuestionDropdown, SubmissionID: "sub-1",
		IsCorrect: true, Score: 2, MaxScore: 2, GradedAt: gradedAt,
	}, event.Data)

	invalid := NewOutcomeEvent(&models.GradingOutcome{
		QuestionID: 5, QuestionType: models.QuestionRating, Feedback: "Rating must be between 1 and 5",
	}, "", gradedAt)
	assert.Equal(t, EventInvalidAnswer, invalid.Type)
	assert.Equal(t, "Rating must be between 1 and 5", invalid.Data.(InvalidAnswerEvent).Reason)
	assert.NotEqual(t, event.ID, invalid.ID)
}

func TestWatermillEventPublisher_Publish(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 1}, watermill.NopLogger{})
	defer pubSub.Close()

	messages, err := pubSub.Subscribe(context.Background(), "grading-events")
	require.NoError(t, err)

	publisher := NewWatermillEventPublisher(pubSub, "grading-events", discardLogger())
	event := NewBatchCompletedEvent(models.OutcomeSummary{Total: 2, Correct: 1}, 0, time.Now())
	require.NoError(t, publisher.PublishGradingEvent(context.Background(), event))

	select {
	case msg := <-messages:
		msg.Ack()
		assert.Equal(t, event.ID, msg.UUID)
		assert.Equal(t, string(EventBatchCompleted), msg.Metadata.Get("event_type"))
		assert.Equal(t, "grading-service", msg.Metadata.Get("source"))

		var decoded map[string]interface{}
		require.NoError(t, json.Unmarshal(msg.Payload, &decoded))
		assert.Equal(t, "grading.batch_completed", decoded["type"])
	case <-time.After(time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestWatermillEventPublisher_PublishAfterClose(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	publisher := NewWatermillEventPublisher(pubSub, "grading-events", discardLogger())
	require.NoError(t, publisher.Close())

	err := publisher.PublishGradingEvent(context.Background(), NewBatchCompletedEvent(models.OutcomeSummary{}, 0, time.Now()))
	assert.ErrorContains(t, err, "failed to publish grading event")
}

func TestNewKafkaEventPublisher_RequiresBrokers(t *testing.T) {
	_, err := NewKafkaEventPublisher(PublisherConfig{TopicName: "grading-events", Logger: discardLogger()})
	assert.Error(t, err)
}

func TestMockEventPublisher(t *testing.T) {
	mock := NewMockEventPublisher(discardLogger())
	event := NewBatchCompletedEvent(models.OutcomeSummary{}, 1, time.Now())

	require.NoError(t, mock.PublishGradingEvent(context.Background(), event))
	require.Len(t, mock.GetPublishedEvents(), 1)
	assert.Equal(t, event.ID, mock.GetPublishedEvents()[0].ID)

	mock.ClearEvents()
	assert.Empty(t, mock.GetPublishedEvents())
	assert.NoError(t, mock.Close())
}
