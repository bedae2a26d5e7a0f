package main

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/quiz-report-relay/internal/config"
)

func TestNewLoggerAppliesConfiguredLevel(t *testing.T) {
	var buf strings.Builder
	logger := newLogger(config.Config{AppName: "relay", AppEnv: "test", LogLevel: "warn"}, &buf)

	require.Equal(t, zerolog.WarnLevel, logger.GetLevel())
	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), `"service":"relay"`)
}

func TestNewLoggerWarnsOnUnknownLevel(t *testing.T) {
	var buf strings.Builder
	logger := newLogger(config.Config{LogLevel: "chatty"}, &buf)

	assert.Equal(t, zerolog.TraceLevel, logger.GetLevel())
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), `"log_level":"chatty"`)
	assert.Contains(t, buf.String(), "unknown log level")
}

func TestNewLoggerEmptyLevelKeepsDefault(t *testing.T) {
	var buf strings.Builder
	logger := newLogger(config.Config{}, &buf)

	assert.Empty(t, buf.String())
	logger.Debug().Msg("debug line")
	assert.Contains(t, buf.String(), "debug line")
}
