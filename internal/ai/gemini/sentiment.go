package gemini

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/job-shortlist/internal/logger"
	"github.com/spigell/job-shortlist/internal/sentiment"
)

const (
	providerName        = "gemini"
	defaultMaxLogLength = 200
)

const systemPrompt = `You rate the emotional tone of a text.
Reply with a single JSON object and nothing else: {"polarity": <number>}.
The number lies in [-1, 1]: -1 is very negative, 0 is neutral, 1 is very positive.`

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
	Model() string
}

// Sentiment is a sentiment.Analyzer backed by Gemini. Failed requests fall back to a local analyzer.
type Sentiment struct {
	ctx       context.Context
	generator contentGenerator
	fallback  sentiment.Analyzer
	logger    *zap.Logger
	maxLogLen int

	cacheMu sync.RWMutex
	cache   map[string]float64
}

// NewSentiment binds the analyzer to ctx, which bounds every request it makes.
// A nil fallback means the default lexicon.
func NewSentiment(ctx context.Context, generator contentGenerator, fallback sentiment.Analyzer, log *zap.Logger, maxLogLength int) *Sentiment {
	if fallback == nil {
		fallback = sentiment.NewLexicon(nil)
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Sentiment{
		ctx:       ctx,
		generator: generator,
		fallback:  fallback,
		logger:    logger.WithCommonFields(log, providerName, generator.Model()),
		maxLogLen: maxLogLength,
		cache:     make(map[string]float64),
	}
}

func (s *Sentiment) Polarity(text string) float64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}

	key := hashText(text)

	s.cacheMu.RLock()
	cached, ok := s.cache[key]
	s.cacheMu.RUnlock()
	if ok {
		return cached
	}

	polarity, err := s.Evaluate(s.ctx, text)
	if err != nil {
		s.logger.Warn("gemini sentiment failed, using fallback analyzer",
			zap.String("text_preview", logger.TruncateForLog(text, s.maxLogLen)),
			zap.Error(err),
		)
		return sentiment.Clamp(s.fallback.Polarity(text))
	}

	s.cacheMu.Lock()
	s.cache[key] = polarity
	s.cacheMu.Unlock()

	return polarity
}

// Evaluate asks Gemini for the polarity of text without caching or fallback.
func (s *Sentiment) Evaluate(ctx context.Context, text string) (float64, error) {
	s.logger.Debug("gemini sentiment request",
		zap.Int("text_length", utf8.RuneCountInString(text)),
		zap.String("text_preview", logger.TruncateForLog(text, s.maxLogLen)),
	)

	raw, err := s.generator.GenerateContent(ctx, systemPrompt, text)
	if err != nil {
		return 0, err
	}

	s.logger.Debug("gemini sentiment response",
		zap.String("response_preview", logger.TruncateForLog(raw, s.maxLogLen)),
	)

	return parseResponse(raw)
}

func hashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

func parseResponse(raw string) (float64, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return 0, fmt.Errorf("parse gemini response: %w", err)
	}

	polarity := coerceFloat(data["polarity"])
	if math.IsNaN(polarity) || math.IsInf(polarity, 0) {
		return 0, errors.New("gemini response has no numeric polarity")
	}

	return sentiment.Clamp(polarity), nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return math.NaN()
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}
