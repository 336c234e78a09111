package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/spigell/jobmate/internal/career"
	"github.com/spigell/jobmate/internal/docparse"
	"github.com/spigell/jobmate/internal/matcher"
)

// MatchInput is the file format of the match command.
type MatchInput struct {
	ResumeText         string   `mapstructure:"resume-text"`
	ResumeFile         string   `mapstructure:"resume-file"`
	JobDescription     string   `mapstructure:"job-description"`
	JobSkills          []string `mapstructure:"job-skills"`
	RequiredExperience float64  `mapstructure:"required-experience"`
	JobTitle           string   `mapstructure:"job-title"`
}

// PredictInput is the file format of the predict command.
type PredictInput struct {
	Role            string   `mapstructure:"role"`
	Skills          []string `mapstructure:"skills"`
	ExperienceYears float64  `mapstructure:"experience-years"`
	Education       string   `mapstructure:"education"`
	Certifications  []string `mapstructure:"certifications"`
}

// readInput loads a yaml or json file with its own viper instance so the
// process config stays untouched.
func readInput(path string, dst any) error {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading input %q: %w", path, err)
	}

	return decodeInput(v.AllSettings(), dst)
}

func decodeInput(raw map[string]any, dst any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		WeaklyTypedInput: true,
		Result:           dst,
	})
	if err != nil {
		return err
	}

	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("decoding input: %w", err)
	}
	return nil
}

// Input converts the file contents into a matcher input. A resume file, when
// given, replaces the inline resume text.
func (in *MatchInput) Input() (matcher.Input, error) {
	text := in.ResumeText

	if path := strings.TrimSpace(in.ResumeFile); path != "" {
		kind, err := docparse.DetectKind(path, "")
		if err != nil {
			return matcher.Input{}, err
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return matcher.Input{}, fmt.Errorf("reading resume file: %w", err)
		}

		text, err = docparse.Extract(kind, data)
		if err != nil {
			return matcher.Input{}, fmt.Errorf("extracting %q: %w", path, err)
		}
	}

	if strings.TrimSpace(text) == "" {
		return matcher.Input{}, fmt.Errorf("resume-text or resume-file is required")
	}
	if strings.TrimSpace(in.JobDescription) == "" {
		return matcher.Input{}, fmt.Errorf("job-description is required")
	}

	return matcher.Input{
		ResumeText:         text,
		JobDescription:     in.JobDescription,
		JobSkills:          in.JobSkills,
		RequiredExperience: in.RequiredExperience,
		JobTitle:           in.JobTitle,
	}, nil
}

// Request converts the file contents into a career request.
func (in *PredictInput) Request() career.Request {
	return career.Request{
		CurrentRole:     in.Role,
		Skills:          in.Skills,
		ExperienceYears: in.ExperienceYears,
		Education:       in.Education,
		Certifications:  in.Certifications,
	}
}
