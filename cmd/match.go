package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/job-shortlist/internal/logger"
	"github.com/spigell/job-shortlist/internal/matching"
	"github.com/spigell/job-shortlist/internal/profile"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score a single job description against a profile",
	Run: func(cmd *cobra.Command, _ []string) {
		match(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().String("job", "", "text file with the job description")
	matchCmd.Flags().String("profile", "", "profile document (JSON or YAML)")
	matchCmd.MarkFlagRequired("job")
	matchCmd.MarkFlagRequired("profile")
}

func match(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(logger.Options{
		JSON:   viper.GetBool("json"),
		Debug:  viper.GetBool("debug"),
		Output: viper.GetString("log-output"),
	})
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	jobFile, _ := cmd.Flags().GetString("job")
	profileFile, _ := cmd.Flags().GetString("profile")

	description, err := os.ReadFile(jobFile)
	if err != nil {
		logger.Fatal("reading job description", zap.String("job", jobFile), zap.Error(err))
	}

	analyzer, err := newAnalyzer(ctx, config.Sentiment, logger)
	if err != nil {
		logger.Fatal("building sentiment analyzer", zap.Error(err))
	}

	result, err := scoreFile(matching.New(analyzer), string(description), profileFile)
	if err != nil {
		logger.Fatal("matching", zap.String("profile", profileFile), zap.Error(err))
	}

	data, _ := json.MarshalIndent(result, "", "  ")
	fmt.Fprintln(os.Stdout, string(data))
}

// scoreFile matches against a JSON profile document directly and loads YAML ones first.
func scoreFile(scorer *matching.Scorer, description, profileFile string) (*matching.Result, error) {
	switch strings.ToLower(filepath.Ext(profileFile)) {
	case ".yaml", ".yml":
		p, err := profile.LoadFile(profileFile)
		if err != nil {
			return nil, err
		}
		return scorer.Match(description, p), nil
	default:
		data, err := os.ReadFile(profileFile)
		if err != nil {
			return nil, err
		}
		return scorer.MatchJSON(description, data)
	}
}
