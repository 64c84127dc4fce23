package logger

import (
	"testing"

	"binance-order-ledger/internal/config"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	testCases := []struct {
		name        string
		cfg         config.Logger
		enabled     zapcore.Level
		disabled    zapcore.Level
		expectError bool
	}{
		{name: "Console debug", cfg: config.Logger{Level: "debug", Format: "console"}, enabled: zapcore.DebugLevel, disabled: zapcore.DebugLevel - 1},
		{name: "JSON warn", cfg: config.Logger{Level: "warn", Format: "json"}, enabled: zapcore.WarnLevel, disabled: zapcore.InfoLevel},
		{name: "Empty level defaults to info", cfg: config.Logger{}, enabled: zapcore.InfoLevel, disabled: zapcore.DebugLevel},
		{name: "Invalid level", cfg: config.Logger{Level: "loud"}, expectError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			log, err := NewLogger(tc.cfg)
			if tc.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.True(t, log.Core().Enabled(tc.enabled))
			assert.False(t, log.Core().Enabled(tc.disabled))
		})
	}
}
