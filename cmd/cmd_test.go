package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spigell/job-shortlist/internal/matching"
	"github.com/spigell/job-shortlist/internal/ranking"
	"github.com/spigell/job-shortlist/internal/sentiment"
)

const sampleConfig = `
input: postings.yaml
profile: profile.json
top-n: 5
exclude-file: exclude.json
dedup:
  threshold: 0.9
exclude:
  companies: [Globex]
ranking:
  weights:
    skills: 0.5
categorize:
  workers: 3
  tables:
    - name: work_location
      policy: first
      default: unspecified
      rules:
        - label: remote
          patterns: ['\bdistributed\b']
sentiment:
  provider: lexicon
  lexicon:
    thrilling: 0.9
`

func loadConfig(t *testing.T, content string) *Config {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.SetConfigType("yaml")
	require.NoError(t, viper.ReadConfig(bytes.NewBufferString(content)))

	config, err := getConfig()
	require.NoError(t, err)
	return config
}

func TestGetConfig(t *testing.T) {
	config := loadConfig(t, sampleConfig)

	assert.Equal(t, "postings.yaml", config.Input)
	assert.Equal(t, 5, config.TopN)

	fcfg := filteringConfig(config)
	assert.Equal(t, 0.9, fcfg.DedupThreshold)
	assert.Equal(t, []string{"Globex"}, fcfg.Companies)
	assert.Equal(t, "exclude.json", fcfg.ExcludeFile)
	assert.Equal(t, 3, fcfg.Workers)

	ranker, err := newRanker(config)
	require.NoError(t, err)
	assert.Equal(t, 0.5, ranker.Weights().Skills)
	assert.Equal(t, ranking.DefaultWeights().Salary, ranker.Weights().Salary)

	categorizer, err := newCategorizer(config)
	require.NoError(t, err)
	assert.Equal(t, "remote", categorizer.Categorize("fully distributed team").WorkLocation)

	analyzer, err := newAnalyzer(context.Background(), config.Sentiment, zap.NewNop())
	require.NoError(t, err)
	assert.InDelta(t, 0.9, analyzer.Polarity("thrilling"), 1e-9)
}

func TestEmptyConfigUsesDefaults(t *testing.T) {
	config := loadConfig(t, "input: postings.json\n")

	fcfg := filteringConfig(config)
	assert.Zero(t, fcfg.DedupThreshold)
	assert.Empty(t, fcfg.Companies)

	ranker, err := newRanker(config)
	require.NoError(t, err)
	assert.Equal(t, ranking.DefaultWeights(), ranker.Weights())

	_, err = newCategorizer(config)
	require.NoError(t, err)

	analyzer, err := newAnalyzer(context.Background(), config.Sentiment, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &sentiment.Lexicon{}, analyzer)
}

func TestConfigErrors(t *testing.T) {
	config := loadConfig(t, "ranking:\n  weights:\n    vibes: 1\n")
	_, err := newRanker(config)
	require.ErrorIs(t, err, ranking.ErrInvalidWeight)

	_, err = newAnalyzer(context.Background(), &SentimentConfig{Provider: "oracle"}, zap.NewNop())
	require.ErrorContains(t, err, "unsupported sentiment provider")

	t.Setenv(geminiAPIKeyEnv, "")
	_, err = newAnalyzer(context.Background(), &SentimentConfig{Provider: "gemini"}, zap.NewNop())
	require.ErrorContains(t, err, geminiAPIKeyEnv)
}

func TestMenuItems(t *testing.T) {
	assert.NotContains(t, menuItems(""), PromptAppendToExcludeFile)

	items := menuItems("exclude.json")
	assert.Contains(t, items, PromptAppendToExcludeFile)
	assert.Equal(t, PromptExit, items[len(items)-1])
}

func TestScoreFile(t *testing.T) {
	dir := t.TempDir()
	jsonProfile := filepath.Join(dir, "profile.json")
	yamlProfile := filepath.Join(dir, "profile.yaml")
	require.NoError(t, os.WriteFile(jsonProfile, []byte(`{"skills": ["go"], "remote_preference": true}`), 0o600))
	require.NoError(t, os.WriteFile(yamlProfile, []byte("skills: [go]\nremote_preference: true\n"), 0o600))

	scorer := matching.New(nil)
	description := "Remote Go role.\nSkills: go, sql"

	fromJSON, err := scoreFile(scorer, description, jsonProfile)
	require.NoError(t, err)
	fromYAML, err := scoreFile(scorer, description, yamlProfile)
	require.NoError(t, err)

	assert.Equal(t, fromJSON, fromYAML)
	assert.Len(t, fromJSON.Reasons, 4)

	_, err = scoreFile(scorer, description, filepath.Join(dir, "missing.json"))
	require.Error(t, err)
}
