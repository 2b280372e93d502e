package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(buf *bytes.Buffer) Logger {
	return NewSlogLogger(slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" WARN ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestSlogLogger_LogGrading(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf)

	logger.LogGrading(context.Background(), 7, "dropdown", 0, false, "error", "Selected option is required")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "Answer graded", entry["msg"])
	assert.Equal(t, float64(7), entry["question_id"])
	assert.Equal(t, "dropdown", entry["question_type"])
	assert.Equal(t, false, entry["valid"])
	assert.Equal(t, "Selected option is required", entry["error"])
}

func TestSlogLogger_WithAndLogError(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf).With("component", "grading")

	logger.LogError(errors.New("boom"), "Failed to publish event", "question_id", 3)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "grading", entry["component"])
}

func TestToSlogLogger(t *testing.T) {
	base := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	assert.Same(t, base, ToSlogLogger(FromSlogLogger(base)))
}
