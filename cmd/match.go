package cmd

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/jobmate/internal/logger"
	"github.com/spigell/jobmate/internal/matcher"
	"github.com/spigell/jobmate/internal/report"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score a resume against a job description from an input file",
	Run: func(cmd *cobra.Command, _ []string) {
		runMatch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringP("input", "i", "", "yaml or json file with resume-text (or resume-file), job-description and job-skills")
	matchCmd.Flags().BoolP("summary", "s", false, "print a readable summary instead of json")
	matchCmd.MarkFlagRequired("input")
}

func runMatch(cmd *cobra.Command) {
	// Logs go to stderr so stdout carries only the report.
	l, err := logger.Build(logger.Options{
		JSON:    viper.GetBool("json"),
		Debug:   viper.GetBool("debug"),
		Outputs: []string{"stderr"},
	})
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer l.Sync()

	config, err := getConfig()
	if err != nil {
		l.Fatal("getting a config", zap.Error(err))
	}

	var in MatchInput
	path, _ := cmd.Flags().GetString("input")
	if err := readInput(path, &in); err != nil {
		l.Fatal("reading match input", zap.Error(err))
	}

	input, err := in.Input()
	if err != nil {
		l.Fatal("invalid match input", zap.Error(err))
	}

	l.Debug("matching",
		zap.String("job_title", input.JobTitle),
		zap.String("resume_preview", logger.TruncateForLog(input.ResumeText, config.AI.Gemini.MaxLogLength)),
	)

	m, err := matcher.New(matcher.WithStrategy(config.Matcher.Strategy))
	if err != nil {
		l.Fatal("building matcher", zap.Error(err))
	}

	res, err := m.Match(input)
	if err != nil {
		l.Fatal("matching", zap.Error(err))
	}

	if summary, _ := cmd.Flags().GetBool("summary"); summary {
		fmt.Println(report.MatchReply(res))
		return
	}

	pretty, _ := json.MarshalIndent(res, "", "  ")
	fmt.Println(string(pretty))
}
