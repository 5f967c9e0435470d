package cmd

import (
	"errors"
	"io/fs"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/job-shortlist/internal/categorize"
)

const (
	app       = "job-shortlist"
	envPrefix = "JOB_SHORTLIST"
)

type Config struct {
	Input       string            `mapstructure:"input"`
	Profile     string            `mapstructure:"profile"`
	TopN        int               `mapstructure:"top-n"`
	ExcludeFile string            `mapstructure:"exclude-file"`
	Dedup       *DedupConfig      `mapstructure:"dedup"`
	Exclude     *ExcludeConfig    `mapstructure:"exclude"`
	Ranking     *RankingConfig    `mapstructure:"ranking"`
	Categorize  *CategorizeConfig `mapstructure:"categorize"`
	Sentiment   *SentimentConfig  `mapstructure:"sentiment"`
}

type DedupConfig struct {
	Threshold float64 `mapstructure:"threshold"`
}

type ExcludeConfig struct {
	Companies []string `mapstructure:"companies"`
}

type RankingConfig struct {
	Weights map[string]float64 `mapstructure:"weights"`
}

type CategorizeConfig struct {
	Workers int                    `mapstructure:"workers"`
	Tables  []categorize.RuleTable `mapstructure:"tables"`
}

type SentimentConfig struct {
	// Provider is "lexicon" (default) or "gemini".
	Provider string             `mapstructure:"provider"`
	Lexicon  map[string]float64 `mapstructure:"lexicon"`
	Gemini   *GeminiConfig      `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "job-shortlist cleans, tags and ranks job postings against your profile",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is job-shortlist.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("log-output", "stderr", "where to write logs: stderr, stdout or a file path")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("log-output", rootCmd.PersistentFlags().Lookup("log-output"))
}

func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env: %v", err)
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	// Only run needs a config file; match and version work from flags alone.
	if runCmd.CalledAs() == "" && matchCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
	}

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	switch {
	case err == nil:
	case errors.As(err, &notFound) && runCmd.CalledAs() == "":
	default:
		// We can't proceed if the config file parsed with error.
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return config, err
	}
	if config == nil {
		config = &Config{}
	}

	return config, nil
}
