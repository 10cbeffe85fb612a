// Package logger builds the zap loggers used across the server.
// Construction happens once in main and the SugaredLogger is passed
// down explicitly; there is no package-level mutable state.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a SugaredLogger. jsonOutput selects machine-readable JSON
// lines; otherwise output is the human console encoding.
func New(jsonOutput bool) (*zap.SugaredLogger, error) {
	if jsonOutput {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
		l, err := cfg.Build()
		if err != nil {
			return nil, err
		}
		return l.Sugar(), nil
	}

	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(os.Stdout),
		zap.InfoLevel,
	)
	return zap.New(core).Sugar(), nil
}

// Nop returns a logger that discards everything. Used in tests and by
// components that accept a nil logger.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
