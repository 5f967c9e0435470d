package cmd

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/job-shortlist/internal/ai/gemini"
	"github.com/spigell/job-shortlist/internal/categorize"
	"github.com/spigell/job-shortlist/internal/filtering"
	"github.com/spigell/job-shortlist/internal/logger"
	"github.com/spigell/job-shortlist/internal/ranking"
	"github.com/spigell/job-shortlist/internal/secrets"
	"github.com/spigell/job-shortlist/internal/sentiment"
)

const geminiAPIKeyEnv = "GEMINI_API_KEY"

func filteringConfig(config *Config) *filtering.Config {
	cfg := &filtering.Config{ExcludeFile: config.ExcludeFile}
	if config.Dedup != nil {
		cfg.DedupThreshold = config.Dedup.Threshold
	}
	if config.Exclude != nil {
		cfg.Companies = config.Exclude.Companies
	}
	if config.Categorize != nil {
		cfg.Workers = config.Categorize.Workers
	}
	return cfg
}

func newCategorizer(config *Config) (*categorize.Categorizer, error) {
	if config.Categorize == nil {
		return categorize.New()
	}
	return categorize.New(config.Categorize.Tables...)
}

func newRanker(config *Config) (*ranking.Ranker, error) {
	var overrides map[string]float64
	if config.Ranking != nil {
		overrides = config.Ranking.Weights
	}

	weights, err := ranking.ParseWeights(overrides)
	if err != nil {
		return nil, err
	}
	return ranking.New(weights)
}

func newAnalyzer(ctx context.Context, cfg *SentimentConfig, log *zap.Logger) (sentiment.Analyzer, error) {
	if cfg == nil {
		return sentiment.NewLexicon(nil), nil
	}

	lexicon := sentiment.NewLexicon(cfg.Lexicon)

	switch provider := strings.ToLower(strings.TrimSpace(cfg.Provider)); provider {
	case "", "lexicon":
		return lexicon, nil
	case "gemini":
		gcfg := cfg.Gemini
		if gcfg == nil {
			gcfg = &GeminiConfig{}
		}

		apiKey, err := secrets.Load(secrets.Source{
			Name:  "gemini api key",
			Value: gcfg.APIKey,
			File:  gcfg.APIKeyFile,
			Env:   geminiAPIKeyEnv,
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set sentiment.gemini.api-key-file or %s)", err, geminiAPIKeyEnv)
		}

		genLogger := logger.WithFields(log, zap.Int("ai_retry_attempts", gcfg.MaxRetries))

		generator, err := gemini.NewGenerator(ctx, apiKey, gcfg.Model, gcfg.MaxRetries, genLogger)
		if err != nil {
			return nil, err
		}

		return gemini.NewSentiment(ctx, generator, lexicon, log, gcfg.MaxLogLength), nil
	default:
		return nil, fmt.Errorf("unsupported sentiment provider: %s", cfg.Provider)
	}
}
