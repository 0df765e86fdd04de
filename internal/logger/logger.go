package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"tallyclank/internal/config"
)

// New builds the process logger from config. An unknown level falls back
// to info rather than failing, so a typo in TC_LOG_LEVEL cannot keep the
// service from booting.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if err := level.Set(strings.ToLower(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	enc := zap.NewProductionEncoderConfig()
	// The sync job logs one line per run with inserted/updated counts;
	// RFC3339 timestamps keep those lines matchable against the
	// last_success_at column when debugging a stale feed.
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	if cfg.Encoding == "console" {
		enc = zap.NewDevelopmentEncoderConfig()
	}

	zc := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		Development:       cfg.Development,
		Encoding:          cfg.Encoding,
		DisableCaller:     cfg.DisableCaller,
		DisableStacktrace: cfg.DisableStacktrace,
		EncoderConfig:     enc,
		OutputPaths:       []string{"stdout"},
		ErrorOutputPaths:  []string{"stderr"},
	}
	if cfg.Sampling {
		// The 15s poller makes identical lines at a steady rate; sampling
		// keeps repeated no-change runs from drowning the sync summaries.
		zc.Sampling = &zap.SamplingConfig{
			Initial:    100,
			Thereafter: 100,
		}
	}

	return zc.Build()
}
