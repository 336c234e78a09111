package gemini

import (
	"context"
	"errors"
	"testing"
	"time"

	"google.golang.org/genai"
)

type fakeModels struct {
	responses []*genai.GenerateContentResponse
	errs      []error
	calls     int
	prompts   []string
	models    []string
}

func (f *fakeModels) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	i := f.calls
	f.calls++
	f.models = append(f.models, model)
	for _, c := range contents {
		for _, p := range c.Parts {
			f.prompts = append(f.prompts, p.Text)
		}
	}
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	if i < len(f.responses) {
		return f.responses[i], nil
	}
	return nil, errors.New("unexpected call")
}

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{}
	for _, p := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: content}}}
}

func TestGenerateContentJoinsParts(t *testing.T) {
	t.Parallel()

	fake := &fakeModels{responses: []*genai.GenerateContentResponse{textResponse(" Learn Kubernetes. ", "", "Then apply.")}}
	g := newGenerator(fake, "", 1)

	got, err := g.GenerateContent(context.Background(), "  how do I grow?  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Learn Kubernetes.\nThen apply." {
		t.Fatalf("unexpected text: %q", got)
	}
	if fake.models[0] != defaultModel || fake.prompts[0] != "how do I grow?" {
		t.Fatalf("unexpected request: model=%v prompts=%v", fake.models, fake.prompts)
	}
	if g.Model() != defaultModel {
		t.Fatalf("unexpected model %q", g.Model())
	}
}

func TestGenerateContentRetries(t *testing.T) {
	t.Parallel()

	fake := &fakeModels{
		errs:      []error{errors.New("unavailable"), nil},
		responses: []*genai.GenerateContentResponse{nil, textResponse("ok")},
	}
	g := newGenerator(fake, "gemini-pro", 2)

	got, err := g.GenerateContent(context.Background(), "hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" || fake.calls != 2 {
		t.Fatalf("expected success on second attempt, got %q after %d calls", got, fake.calls)
	}
}

func TestGenerateContentErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		fake   *fakeModels
		prompt string
	}{
		{name: "empty prompt", fake: &fakeModels{}, prompt: "  "},
		{name: "empty response", fake: &fakeModels{responses: []*genai.GenerateContentResponse{textResponse("  ")}}, prompt: "hi"},
		{name: "all attempts fail", fake: &fakeModels{errs: []error{errors.New("a"), errors.New("b")}}, prompt: "hi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := newGenerator(tt.fake, "m", 2).GenerateContent(context.Background(), tt.prompt); err == nil {
				t.Fatalf("expected error")
			}
		})
	}

	var nilGen *Generator
	if _, err := nilGen.GenerateContent(context.Background(), "hi"); err == nil {
		t.Fatalf("expected error for nil generator")
	}
}

func TestGenerateContentHonorsContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fake := &fakeModels{}
	if _, err := newGenerator(fake, "m", 3).GenerateContent(ctx, "hi"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if fake.calls != 0 {
		t.Fatalf("expected no calls after cancellation, got %d", fake.calls)
	}
}

func TestNewGeneratorRequiresKey(t *testing.T) {
	t.Parallel()

	if _, err := NewGenerator(context.Background(), "  ", "", 1); err == nil {
		t.Fatalf("expected error for empty api key")
	}
}

func TestWaitFor(t *testing.T) {
	t.Parallel()

	if err := waitFor(context.Background(), 0); err != nil {
		t.Fatalf("expected immediate return, got %v", err)
	}
	if err := waitFor(context.Background(), time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := waitFor(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
