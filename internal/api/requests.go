package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
)

const maxJSONBodyBytes = 1 << 20

// ExplainMatchRequest is the body of POST /api/ml/explain-match.
type ExplainMatchRequest struct {
	UserID             string   `json:"userId"`
	JobID              string   `json:"jobId"`
	ResumeText         string   `json:"resumeText"`
	JobDescription     string   `json:"jobDescription"`
	JobSkills          []string `json:"jobSkills"`
	RequiredExperience float64  `json:"requiredExperience"`
	JobTitle           string   `json:"jobTitle"`
	ConversationID     string   `json:"conversationId"`
}

func (r *ExplainMatchRequest) validate() error {
	if strings.TrimSpace(r.ResumeText) == "" {
		return invalid("resumeText", "is required")
	}
	if strings.TrimSpace(r.JobDescription) == "" {
		return invalid("jobDescription", "is required")
	}
	// An explicit empty list means the job asks for no skills.
	if r.JobSkills == nil {
		return invalid("jobSkills", "is required")
	}
	if r.RequiredExperience < 0 {
		return invalid("requiredExperience", "must not be negative")
	}
	return nil
}

// ATSScoreRequest is the body of POST /api/ml/ats-score.
type ATSScoreRequest struct {
	ResumeText string   `json:"resumeText"`
	JobSkills  []string `json:"jobSkills"`
}

func (r *ATSScoreRequest) validate() error {
	if strings.TrimSpace(r.ResumeText) == "" {
		return invalid("resumeText", "is required")
	}
	return nil
}

// CareerPathRequest is the body of POST /api/ml/career-path.
type CareerPathRequest struct {
	CurrentRole     string   `json:"currentRole"`
	Skills          []string `json:"skills"`
	ExperienceYears float64  `json:"experienceYears"`
	Education       string   `json:"education"`
	Certifications  []string `json:"certifications"`
}

func (r *CareerPathRequest) validate() error {
	if strings.TrimSpace(r.CurrentRole) == "" {
		return invalid("currentRole", "is required")
	}
	if r.ExperienceYears < 0 {
		return invalid("experienceYears", "must not be negative")
	}
	return nil
}

// ChatRequest is the body of POST /api/ml/chat. Résumé, job and profile
// fields are optional context for the detected intent.
type ChatRequest struct {
	UserID         string `json:"userId"`
	Message        string `json:"message"`
	ConversationID string `json:"conversationId"`

	ResumeText         string   `json:"resumeText"`
	JobDescription     string   `json:"jobDescription"`
	JobSkills          []string `json:"jobSkills"`
	RequiredExperience float64  `json:"requiredExperience"`
	JobTitle           string   `json:"jobTitle"`

	CurrentRole     string   `json:"currentRole"`
	Skills          []string `json:"skills"`
	ExperienceYears float64  `json:"experienceYears"`
	Education       string   `json:"education"`
	Certifications  []string `json:"certifications"`
}

func (r *ChatRequest) validate() error {
	if strings.TrimSpace(r.Message) == "" {
		return invalid("message", "is required")
	}
	if r.RequiredExperience < 0 {
		return invalid("requiredExperience", "must not be negative")
	}
	if r.ExperienceYears < 0 {
		return invalid("experienceYears", "must not be negative")
	}
	return nil
}

type validator interface {
	validate() error
}

// decode reads a bounded JSON body into dst and validates it.
func decode(w http.ResponseWriter, r *http.Request, dst validator) error {
	body := http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	defer body.Close()

	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return &statusError{status: http.StatusRequestEntityTooLarge, message: "request body too large"}
		case errors.Is(err, io.EOF):
			return invalid("", "request body is empty")
		default:
			return invalid("", "malformed JSON body: "+err.Error())
		}
	}

	return dst.validate()
}
