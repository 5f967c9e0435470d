package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldProvider names the sentiment provider behind a log entry.
	FieldProvider = "ai_provider"
	// FieldModel names the model used by the provider.
	FieldModel = "ai_model"

	FieldFilter    = "filter"
	FieldInitial   = "initial"
	FieldDropped   = "dropped"
	FieldLeft      = "left"
	FieldPostingID = "posting_id"
	FieldCompany   = "company"
)

type StringField struct {
	Key   string
	Value string
}

// StringFields converts key/value pairs into zap fields, trimming whitespace and
// omitting entries with an empty key or value.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches fields to logger. A nil logger becomes a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

func CommonFields(provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}

func WithCommonFields(logger *zap.Logger, provider, model string) *zap.Logger {
	return WithFields(logger, CommonFields(provider, model)...)
}

// StepFields describes the counters of one filtering step.
func StepFields(filter string, initial, dropped, left int) []zap.Field {
	return []zap.Field{
		zap.String(FieldFilter, filter),
		zap.Int(FieldInitial, initial),
		zap.Int(FieldDropped, dropped),
		zap.Int(FieldLeft, left),
	}
}

// PostingFields identifies a posting in log entries, skipping blank values.
func PostingFields(id, company string) []zap.Field {
	return StringFields(
		StringField{Key: FieldPostingID, Value: id},
		StringField{Key: FieldCompany, Value: company},
	)
}
