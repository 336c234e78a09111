package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/jobmate/internal/logger"
	"github.com/spigell/jobmate/internal/report"
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict next career roles, learning path and salary growth",
	Run: func(cmd *cobra.Command, _ []string) {
		runPredict(cmd)
	},
}

func init() {
	rootCmd.AddCommand(predictCmd)

	addPredictFlags(predictCmd)
}

func addPredictFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("input", "i", "", "yaml or json file with role, skills, experience-years, education and certifications")
	cmd.Flags().StringP("role", "r", "", "current role")
	cmd.Flags().StringSlice("skills", nil, "comma separated skills")
	cmd.Flags().Float64("experience", 0, "years of experience")
	cmd.Flags().String("education", "", "highest education, e.g. bachelor")
	cmd.Flags().StringSlice("certifications", nil, "comma separated certifications")
	cmd.Flags().BoolP("summary", "s", false, "print a readable summary instead of json")
}

func runPredict(cmd *cobra.Command) {
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

	in, err := predictInput(cmd)
	if err != nil {
		l.Fatal("reading predict input", zap.Error(err))
	}

	_, p, err := buildEngines(config, l)
	if err != nil {
		l.Fatal("building engines", zap.Error(err))
	}

	if strings.TrimSpace(in.Role) == "" {
		if !isTerminal(os.Stdin) {
			l.Fatal("current role is required", zap.String("hint", "pass --role or set role in the input file"))
		}

		in.Role, err = pickRole(p.Reference().KnownRoles())
		if err != nil {
			l.Fatal("choosing a role", zap.Error(err))
		}
	}

	prediction := p.Predict(in.Request())

	if summary, _ := cmd.Flags().GetBool("summary"); summary {
		fmt.Println(report.CareerReply(prediction))
		return
	}

	pretty, _ := json.MarshalIndent(prediction, "", "  ")
	fmt.Println(string(pretty))
}

// predictInput reads the input file first; flags that were set override it.
func predictInput(cmd *cobra.Command) (*PredictInput, error) {
	in := &PredictInput{}

	if path, _ := cmd.Flags().GetString("input"); path != "" {
		if err := readInput(path, in); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("role") {
		in.Role, _ = flags.GetString("role")
	}
	if flags.Changed("skills") {
		in.Skills, _ = flags.GetStringSlice("skills")
	}
	if flags.Changed("experience") {
		in.ExperienceYears, _ = flags.GetFloat64("experience")
	}
	if flags.Changed("education") {
		in.Education, _ = flags.GetString("education")
	}
	if flags.Changed("certifications") {
		in.Certifications, _ = flags.GetStringSlice("certifications")
	}

	if in.ExperienceYears < 0 {
		return nil, errors.New("experience must not be negative")
	}

	return in, nil
}

func pickRole(roles []string) (string, error) {
	prompt := promptui.Select{
		Label: "Choose your current role and press ENTER",
		Items: roles,
		Size:  10,
		Searcher: func(input string, index int) bool {
			return strings.Contains(roles[index], strings.ToLower(strings.TrimSpace(input)))
		},
	}

	_, role, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return role, nil
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
