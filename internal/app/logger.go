package app

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nomanmujahid1144/tudva-sub002/internal/config"
)

// NewLogger builds the process logger from the loaded configuration: JSON
// output in production, colored console output everywhere else. Every entry
// carries the environment it was emitted from.
func NewLogger(cfg *config.Config) *zap.Logger {
	var zc zap.Config

	if cfg.Environment == "production" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zc.OutputPaths = []string{"stdout"}

	logger, err := zc.Build()
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}

	return logger.With(zap.String("env", cfg.Environment))
}
