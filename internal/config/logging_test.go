package config

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerParsesLevel(t *testing.T) {
	logger := NewLogger(LoggingConfig{Level: "WARN", Format: "json"})
	require.Equal(t, zerolog.WarnLevel, logger.GetLevel())
}

func TestNewLoggerFallsBackToInfo(t *testing.T) {
	logger := NewLogger(LoggingConfig{Level: "chatty", Format: "console"})
	require.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}
