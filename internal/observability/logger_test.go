package observability

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/couchcryptid/shelter-directory/internal/config"
)

func TestNewLogger_Level(t *testing.T) {
	logger := NewLogger(&config.Config{LogLevel: "warn", LogFormat: "text"})

	assert.False(t, logger.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, logger.Enabled(context.Background(), slog.LevelWarn))
}

func TestNewLogger_JSONHandler(t *testing.T) {
	logger := NewLogger(&config.Config{LogLevel: "debug", LogFormat: "json"})

	_, ok := logger.Handler().(*slog.JSONHandler)
	assert.True(t, ok)
	assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))
}
