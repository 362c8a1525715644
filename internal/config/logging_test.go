package config

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, LoggingConfig{}.SlogLevel(false))
	assert.Equal(t, slog.LevelWarn, LoggingConfig{Level: LogLevelWarn}.SlogLevel(false))
	assert.Equal(t, slog.LevelDebug, LoggingConfig{Level: LogLevelError}.SlogLevel(true))
}

func TestNewLoggerFormats(t *testing.T) {
	var buf bytes.Buffer
	LoggingConfig{Level: LogLevelInfo, Format: LogFormatJSON}.NewLogger(&buf, false).Info("hello", "step", "configure")
	assert.Contains(t, buf.String(), `"step":"configure"`)

	buf.Reset()
	LoggingConfig{Level: LogLevelInfo, Format: LogFormatText}.NewLogger(&buf, false).Debug("hidden")
	assert.Empty(t, buf.String())
}
