package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/job-shortlist/internal/filtering"
	"github.com/spigell/job-shortlist/internal/logger"
	"github.com/spigell/job-shortlist/internal/matching"
	"github.com/spigell/job-shortlist/internal/posting"
	"github.com/spigell/job-shortlist/internal/profile"
	"github.com/spigell/job-shortlist/internal/ranking"
)

const (
	PromptPrint               = "Print ranked jobs"
	PromptReportByCompany     = "Report by companies"
	PromptExplainMatch        = "Explain match scores"
	PromptJobsToFile          = "Dump ranked jobs to file"
	PromptAppendToExcludeFile = "Append ranked jobs to exclude file"
	PromptExit                = "Exit"
)

var errExit = errors.New("exit requested")

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Clean, tag and rank the postings from the configured input",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("auto-approve", "y", false, "print the ranked document without the interactive menu")
	runCmd.Flags().StringP("exclude-file", "e", "", "file with postings to exclude. Default is unset.")
	runCmd.Flags().IntP("top-n", "n", 0, "keep only the best n postings (0 keeps all)")

	viper.BindPFlag("exclude-file", runCmd.Flags().Lookup("exclude-file"))
	viper.BindPFlag("top-n", runCmd.Flags().Lookup("top-n"))
}

// shortlist is what the interactive menu works on.
type shortlist struct {
	document *ranking.Document
	profile  *profile.Profile
	scorer   *matching.Scorer
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
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

	logger.Info("starting the job-shortlist", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if strings.TrimSpace(config.Input) == "" || strings.TrimSpace(config.Profile) == "" {
		logger.Fatal("input and profile files are required",
			zap.String("hint", "set input and profile in job-shortlist.yaml or JOB_SHORTLIST_INPUT / JOB_SHORTLIST_PROFILE"),
		)
	}

	postings, err := posting.LoadFile(config.Input)
	if err != nil {
		logger.Fatal("loading postings", zap.String("input", config.Input), zap.Error(err))
	}
	logger.Info("loaded postings", zap.Int("count", postings.Len()))

	userProfile, err := profile.LoadFile(config.Profile)
	if err != nil {
		logger.Fatal("loading profile", zap.String("profile", config.Profile), zap.Error(err))
	}

	categorizer, err := newCategorizer(config)
	if err != nil {
		logger.Fatal("building categorizer", zap.Error(err))
	}

	ranker, err := newRanker(config)
	if err != nil {
		logger.Fatal("building ranker", zap.Error(err))
	}

	analyzer, err := newAnalyzer(ctx, config.Sentiment, logger)
	if err != nil {
		logger.Fatal("building sentiment analyzer", zap.Error(err))
	}

	steps := filtering.Default()
	filtered, err := filtering.Run(ctx, filteringConfig(config), filtering.Deps{
		Logger:      logger,
		Categorizer: categorizer,
	}, steps, postings)
	if err != nil {
		logger.Fatal("filtering failed", zap.Error(err))
	}

	for _, status := range filtering.Describe(steps) {
		logger.Debug("filter status",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.Any("details", status.Details),
		)
	}

	if filtered.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no postings left after filters"))
		return
	}

	list := &shortlist{
		document: ranker.Document(filtered.Items, userProfile, config.TopN),
		profile:  userProfile,
		scorer:   matching.New(analyzer),
	}

	if cmd.Flag("auto-approve").Value.String() == "true" {
		if err := printDocument(list.document); err != nil {
			logger.Fatal("printing ranked jobs", zap.Error(err))
		}
		return
	}

	for {
		logger.Info("current shortlist", zap.Int("count", len(list.document.RankedJobs)))

		prompt := promptui.Select{
			Label: "What next?",
			Items: menuItems(config.ExcludeFile),
		}

		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, logger, config, list); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func menuItems(excludeFile string) []string {
	items := []string{PromptPrint, PromptReportByCompany, PromptExplainMatch, PromptJobsToFile}
	if strings.TrimSpace(excludeFile) != "" {
		items = append(items, PromptAppendToExcludeFile)
	}
	return append(items, PromptExit)
}

func handleAction(action string, logger *zap.Logger, config *Config, list *shortlist) error {
	postings := list.document.Postings()

	switch action {
	case PromptPrint:
		return printDocument(list.document)
	case PromptReportByCompany:
		pretty, _ := json.MarshalIndent(postings.ReportByCompany(), "", "  ")
		logger.Info(string(pretty), zap.Int("postings count", postings.Len()))
		return nil
	case PromptExplainMatch:
		for _, p := range postings.Items {
			result := list.scorer.Match(p.Description, list.profile)
			logger.Info("match score",
				zap.String("posting_id", p.ID),
				zap.String("company", p.Company),
				zap.String("title", p.Title),
				zap.Int("score", result.Score),
				zap.Strings("reasons", result.Reasons),
			)
		}
		return nil
	case PromptJobsToFile:
		filename, err := postings.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptAppendToExcludeFile:
		excluded, err := posting.GetExcludedFromFile(config.ExcludeFile)
		if err != nil {
			return err
		}

		excluded.Append(postings.ToExcluded(time.Now()))

		if err := excluded.ToFile(config.ExcludeFile); err != nil {
			return err
		}
		logger.Info("appended to exclude file", zap.String("filename", config.ExcludeFile), zap.Int("count", postings.Len()))
		return errExit
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func printDocument(doc *ranking.Document) error {
	data, err := doc.JSON()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, string(data))
	return err
}
