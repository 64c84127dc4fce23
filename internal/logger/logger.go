package logger

import (
	"fmt"

	"binance-order-ledger/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger creates a new zap.Logger from the logger configuration.
// "json" selects the production encoder, anything else the console one.
func NewLogger(cfg config.Logger) (*zap.Logger, error) {
	level := cfg.Level
	if level == "" {
		level = "info"
	}
	logLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	var zcfg zap.Config
	if cfg.Format == "json" {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}

	zcfg.Level = zap.NewAtomicLevelAt(logLevel)
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return zcfg.Build(zap.Fields(zap.String("service", "order-ledger")))
}
