package logging_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/makebuild-code/slidenav/internal/logging"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"  WARN ": slog.LevelWarn,
		"bogus":   slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for raw, want := range cases {
		assert.Equal(t, want, logging.ParseLevel(raw), "raw=%q", raw)
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	assert.NotPanics(t, func() {
		logger.Info("message", "key", "value")
		logger.Error("failure", "err", "boom")
	})
}
