// Package logger builds the zap logger and the structured fields shared across the pipeline.
package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects the encoding, level and destination of the pipeline logger.
type Options struct {
	JSON  bool
	Debug bool
	// Output is a zap sink path. Empty means stderr, which keeps stdout free for ranked output.
	Output string
}

// New builds the pipeline logger. Messages name the pipeline step, so the message key is "step".
func New(opts Options) (*zap.Logger, error) {
	output := strings.TrimSpace(opts.Output)
	if output == "" {
		output = "stderr"
	}

	encoding := "console"
	if opts.JSON {
		encoding = "json"
	}

	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if opts.Debug {
		level.SetLevel(zapcore.DebugLevel)
	}

	cfg := zap.Config{
		Encoding:          encoding,
		Level:             level,
		DisableStacktrace: !opts.Debug,
		OutputPaths:       []string{output},
		ErrorOutputPaths:  []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey:   "step",
			LevelKey:     "level",
			TimeKey:      "time",
			CallerKey:    "caller",
			EncodeLevel:  zapcore.LowercaseLevelEncoder,
			EncodeTime:   zapcore.RFC3339TimeEncoder,
			EncodeCaller: zapcore.ShortCallerEncoder,
		},
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger for %s: %w", output, err)
	}
	return logger, nil
}

// TruncateForLog shortens s to limit runes, appending an ellipsis when truncated.
func TruncateForLog(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
