package logging

import (
	"bytes"
	"churn-shield/internal/config"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	t.Run("json encoding respects level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := newLogger(config.LoggerConfig{Level: "warn", Encoding: "json"}, &buf)

		logger.Info("hidden")
		logger.Warn("visible", "component", "test")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "visible", entry["msg"])
		assert.Equal(t, "test", entry["component"])
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		var buf bytes.Buffer
		logger := newLogger(config.LoggerConfig{Level: "chatty"}, &buf)

		assert.True(t, logger.Enabled(context.Background(), slog.LevelInfo))
		assert.False(t, logger.Enabled(context.Background(), slog.LevelDebug))
	})

	t.Run("text encoding", func(t *testing.T) {
		var buf bytes.Buffer
		logger := newLogger(config.LoggerConfig{Level: "debug", Encoding: "text"}, &buf)

		logger.Debug("hello")
		assert.Contains(t, buf.String(), "msg=hello")
	})
}
