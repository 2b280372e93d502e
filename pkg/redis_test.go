package pkg

import (
	"context"
	"testing"

	"github.com/SAP-F-2025/grading-service/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestNewRedisClient_InvalidURL(t *testing.T) {
	_, err := NewRedisClient(context.Background(), &config.Config{RedisURL: "not a url"})
	assert.ErrorContains(t, err, "invalid redis url")
}
