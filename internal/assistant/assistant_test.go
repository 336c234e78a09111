package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/jobmate/internal/career"
	"github.com/spigell/jobmate/internal/matcher"
)

type stubGenerator struct {
	answer string
	err    error
	prompt string
}

func (s *stubGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.answer, s.err
}

type stubClassifier struct{}

func (stubClassifier) PredictRoles(career.Features, int) []career.RoleProbability {
	return []career.RoleProbability{{Role: "senior developer", Probability: 0.55}}
}

func newAssistant(t *testing.T, log *zap.Logger, opts ...Option) *Assistant {
	t.Helper()

	m, err := matcher.New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p, err := career.NewPredictor(stubClassifier{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	opts = append([]Option{WithIDGenerator(func() string { return "conv_test" })}, opts...)
	return New(m, p, log, opts...)
}

func TestDetectIntent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		req    Request
		expect Intent
	}{
		{
			name:   "explanation with data",
			req:    Request{Message: "Why was I rejected?", ResumeText: "r", JobDescription: "j"},
			expect: IntentExplainMatch,
		},
		{
			name:   "explanation without data",
			req:    Request{Message: "Why wasn't I shortlisted?"},
			expect: IntentExplainMatch,
		},
		{
			name:   "career keyword",
			req:    Request{Message: "How can I grow my career?"},
			expect: IntentCareerGuidance,
		},
		{
			name:   "current role given",
			req:    Request{Message: "Hello", CurrentRole: "QA Engineer"},
			expect: IntentCareerGuidance,
		},
		{
			name:   "general",
			req:    Request{Message: "Hello there"},
			expect: IntentGeneral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := DetectIntent(tt.req); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestReplyExplainMatchRequiresFields(t *testing.T) {
	t.Parallel()

	a := newAssistant(t, zap.NewNop())
	reply, err := a.Reply(context.Background(), Request{UserID: "u1", Message: "Why wasn't I shortlisted?"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if reply.Intent != IntentExplainMatch || !strings.Contains(reply.Response, "To explain why") {
		t.Fatalf("unexpected reply: %+v", reply)
	}
	if reply.ConversationID != "conv_test" || reply.Details != nil {
		t.Fatalf("unexpected reply metadata: %+v", reply)
	}
}

func TestReplyExplainMatchWithData(t *testing.T) {
	t.Parallel()

	a := newAssistant(t, zap.NewNop())
	reply, err := a.Reply(context.Background(), Request{
		Message:            "Why was I rejected?",
		ConversationID:     "conv_existing",
		ResumeText:         "Experienced Python developer with 3 years experience. Familiar with Docker and AWS.",
		JobDescription:     "Senior Python developer required with Docker, Kubernetes, AWS. 5 years experience.",
		JobSkills:          []string{"python", "docker", "kubernetes", "aws"},
		RequiredExperience: 5,
		JobTitle:           "Senior Python Developer",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if reply.Intent != IntentExplainMatch || !strings.Contains(reply.Response, "Resume score") {
		t.Fatalf("unexpected reply: %+v", reply)
	}
	if reply.ConversationID != "conv_existing" {
		t.Fatalf("expected conversation id echoed, got %q", reply.ConversationID)
	}

	res, ok := reply.Details.(*matcher.Result)
	if !ok {
		t.Fatalf("expected match result details, got %T", reply.Details)
	}
	if len(res.MissingSkills) != 1 || res.MissingSkills[0] != "kubernetes" {
		t.Fatalf("unexpected missing skills: %v", res.MissingSkills)
	}
}

func TestReplyExplainMatchPropagatesErrors(t *testing.T) {
	t.Parallel()

	a := newAssistant(t, zap.NewNop())
	_, err := a.Reply(context.Background(), Request{Message: "why?", ResumeText: "the", JobDescription: "of"})
	if !errors.Is(err, matcher.ErrEmptyVocabulary) {
		t.Fatalf("expected ErrEmptyVocabulary, got %v", err)
	}
}

func TestReplyCareerGuidance(t *testing.T) {
	t.Parallel()

	a := newAssistant(t, zap.NewNop())
	reply, err := a.Reply(context.Background(), Request{
		Message:         "What should I do after Java Developer?",
		CurrentRole:     "Java Developer",
		Skills:          []string{"java"},
		ExperienceYears: 3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if reply.Intent != IntentCareerGuidance || !strings.Contains(reply.Response, "Suggested next roles") {
		t.Fatalf("unexpected reply: %+v", reply)
	}

	prediction, ok := reply.Details.(*career.Prediction)
	if !ok {
		t.Fatalf("expected prediction details, got %T", reply.Details)
	}
	if len(prediction.LearningPath) == 0 {
		t.Fatalf("expected a learning path")
	}
}

func TestReplyGeneral(t *testing.T) {
	t.Parallel()

	t.Run("help text without generator", func(t *testing.T) {
		t.Parallel()

		reply, err := newAssistant(t, zap.NewNop()).Reply(context.Background(), Request{Message: "hello"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if reply.Intent != IntentGeneral || reply.Response != helpText {
			t.Fatalf("unexpected reply: %+v", reply)
		}
	})

	t.Run("generator answer", func(t *testing.T) {
		t.Parallel()

		gen := &stubGenerator{answer: "Build a portfolio."}
		reply, err := newAssistant(t, zap.NewNop(), WithGenerator(gen, "gemini-test")).Reply(context.Background(), Request{Message: "hello"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if reply.Response != "Build a portfolio." {
			t.Fatalf("unexpected response: %q", reply.Response)
		}
		if !strings.HasSuffix(gen.prompt, "Question: hello") {
			t.Fatalf("unexpected prompt: %q", gen.prompt)
		}
	})

	t.Run("generator failure falls back", func(t *testing.T) {
		t.Parallel()

		core, observed := observer.New(zapcore.WarnLevel)
		gen := &stubGenerator{err: errors.New("quota exceeded")}
		a := newAssistant(t, zap.New(core), WithGenerator(gen, "gemini-test"))

		reply, err := a.Reply(context.Background(), Request{Message: "hello"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if reply.Response != helpText {
			t.Fatalf("expected help text fallback, got %q", reply.Response)
		}

		entries := observed.All()
		if len(entries) != 1 {
			t.Fatalf("expected one warning, got %d", len(entries))
		}
		ctx := entries[0].ContextMap()
		if ctx["ai_model"] != "gemini-test" || ctx["intent"] != "general" {
			t.Fatalf("unexpected log fields: %v", ctx)
		}
	})
}

func TestDefaultConversationID(t *testing.T) {
	t.Parallel()

	m, err := matcher.New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p, err := career.NewPredictor(stubClassifier{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reply, err := New(m, p, nil).Reply(context.Background(), Request{Message: "hello"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(reply.ConversationID, "conv_") || len(reply.ConversationID) != len("conv_")+36 {
		t.Fatalf("unexpected conversation id %q", reply.ConversationID)
	}
}
