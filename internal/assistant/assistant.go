// Package assistant answers chat messages about job matches and careers.
package assistant

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/jobmate/internal/career"
	"github.com/spigell/jobmate/internal/logger"
	"github.com/spigell/jobmate/internal/matcher"
	"github.com/spigell/jobmate/internal/report"
)

// Intent is what the user is asking for.
type Intent string

const (
	IntentExplainMatch   Intent = "explain_match"
	IntentCareerGuidance Intent = "career_guidance"
	IntentGeneral        Intent = "general"
)

const (
	defaultMaxLogLength = 200

	helpText = "Hi! I can explain a job match, score your resume for ATS screening, " +
		"and suggest your next career moves. Share your resume and a job description, " +
		"or tell me your current role."
	missingMatchDataText = "To explain why a job did or did not match, send your resume text, " +
		"the job description and the job's required skills with your message."
)

var (
	explainKeywords = []string{"why", "reject", "shortlist", "match", "explain", "not selected"}
	careerKeywords  = []string{"career", "growth", "grow", "next role", "next step", "after", "promotion", "path"}
)

// Generator produces free-form answers.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Request is one chat message with the optional profile data it may refer to.
type Request struct {
	UserID         string
	Message        string
	ConversationID string

	ResumeText         string
	JobDescription     string
	JobSkills          []string
	RequiredExperience float64
	JobTitle           string

	CurrentRole     string
	Skills          []string
	ExperienceYears float64
	Education       string
	Certifications  []string
}

func (r Request) hasMatchData() bool {
	return strings.TrimSpace(r.ResumeText) != "" && strings.TrimSpace(r.JobDescription) != ""
}

// Reply is the assistant answer. Details carries the structured result the
// answer was composed from, if any.
type Reply struct {
	Response       string `json:"response"`
	Intent         Intent `json:"intent"`
	ConversationID string `json:"conversationId"`
	Details        any    `json:"details,omitempty"`
}

// Assistant routes messages to the matcher, the predictor or a generator.
type Assistant struct {
	matcher   *matcher.Matcher
	predictor *career.Predictor
	generator Generator
	model     string
	logger    *zap.Logger
	newID     func() string
	maxLogLen int
}

// Option configures an Assistant.
type Option func(*Assistant)

// WithGenerator enables AI answers for general questions.
func WithGenerator(g Generator, model string) Option {
	return func(a *Assistant) {
		a.generator = g
		a.model = model
	}
}

// WithIDGenerator replaces the conversation id source.
func WithIDGenerator(fn func() string) Option {
	return func(a *Assistant) {
		if fn != nil {
			a.newID = fn
		}
	}
}

// WithMaxLogLength bounds message previews in debug logs.
func WithMaxLogLength(n int) Option {
	return func(a *Assistant) {
		if n > 0 {
			a.maxLogLen = n
		}
	}
}

// New builds an Assistant.
func New(m *matcher.Matcher, p *career.Predictor, log *zap.Logger, opts ...Option) *Assistant {
	a := &Assistant{
		matcher:   m,
		predictor: p,
		logger:    logger.WithFields(log),
		newID:     func() string { return "conv_" + uuid.NewString() },
		maxLogLen: defaultMaxLogLength,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// DetectIntent classifies a message. Explanations need résumé and job data;
// without it an explanation request still resolves to explain_match so the
// caller can be asked for the missing fields.
func DetectIntent(req Request) Intent {
	msg := strings.ToLower(req.Message)

	explain := containsAny(msg, explainKeywords)
	if explain && req.hasMatchData() {
		return IntentExplainMatch
	}
	if containsAny(msg, careerKeywords) || strings.TrimSpace(req.CurrentRole) != "" {
		return IntentCareerGuidance
	}
	if explain {
		return IntentExplainMatch
	}
	return IntentGeneral
}

// Reply answers a message. Only a failing match computation is an error;
// generator failures fall back to the built-in help text.
func (a *Assistant) Reply(ctx context.Context, req Request) (*Reply, error) {
	intent := DetectIntent(req)
	reply := &Reply{Intent: intent, ConversationID: strings.TrimSpace(req.ConversationID)}
	if reply.ConversationID == "" {
		reply.ConversationID = a.newID()
	}

	log := a.logger.With(
		zap.String(logger.FieldIntent, string(intent)),
		zap.String(logger.FieldConversation, reply.ConversationID),
	)
	log.Debug("chat message received",
		zap.Int("message_length", utf8.RuneCountInString(req.Message)),
		zap.String("message_preview", logger.TruncateForLog(req.Message, a.maxLogLen)),
	)

	switch intent {
	case IntentExplainMatch:
		if !req.hasMatchData() {
			reply.Response = missingMatchDataText
			return reply, nil
		}

		res, err := a.matcher.Match(matcher.Input{
			ResumeText:         req.ResumeText,
			JobDescription:     req.JobDescription,
			JobSkills:          req.JobSkills,
			RequiredExperience: req.RequiredExperience,
			JobTitle:           req.JobTitle,
		})
		if err != nil {
			return nil, fmt.Errorf("explain match: %w", err)
		}
		reply.Response = report.MatchReply(res)
		reply.Details = res

	case IntentCareerGuidance:
		prediction := a.predictor.Predict(career.Request{
			CurrentRole:     req.CurrentRole,
			Skills:          req.Skills,
			ExperienceYears: req.ExperienceYears,
			Education:       req.Education,
			Certifications:  req.Certifications,
		})
		reply.Response = report.CareerReply(prediction)
		reply.Details = prediction

	default:
		reply.Response = a.general(ctx, log, req.Message)
	}

	return reply, nil
}

func (a *Assistant) general(ctx context.Context, log *zap.Logger, message string) string {
	if a.generator == nil || strings.TrimSpace(message) == "" {
		return helpText
	}

	log = logger.WithFields(log, logger.AIFields("gemini", a.model)...)

	answer, err := a.generator.GenerateContent(ctx, buildPrompt(message))
	if err != nil {
		log.Warn("ai answer failed, using help text", zap.Error(err))
		return helpText
	}

	log.Debug("ai answer generated",
		zap.Int("response_length", utf8.RuneCountInString(answer)),
		zap.String("response_preview", logger.TruncateForLog(answer, a.maxLogLen)),
	)
	return answer
}

func buildPrompt(message string) string {
	return "You are a concise career assistant for software professionals. " +
		"Answer in at most five sentences. If the question needs a resume or a job description, " +
		"say which one to provide.\n\nQuestion: " + strings.TrimSpace(message)
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
