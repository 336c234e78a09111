// Package gemini answers free-form career questions with the Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

const (
	// Provider is the name used in log fields.
	Provider = "gemini"

	defaultModel       = "gemini-2.5-flash"
	defaultTemperature = float32(0.4)
	maxOutputTokens    = 1024
	retryBackoff       = 500 * time.Millisecond
)

type modelClient interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Generator wraps the Google GenAI client for single prompt answers.
type Generator struct {
	models    modelClient
	modelName string
	attempts  int
	backoff   time.Duration
}

// NewGenerator creates a Generator for the Gemini API backend.
func NewGenerator(ctx context.Context, apiKey, model string, attempts int) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	g := newGenerator(client.Models, model, attempts)
	g.backoff = retryBackoff
	return g, nil
}

func newGenerator(models modelClient, model string, attempts int) *Generator {
	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	if attempts < 1 {
		attempts = 1
	}
	return &Generator{models: models, modelName: model, attempts: attempts}
}

// GenerateContent sends the prompt and returns the joined text parts of the
// response. Failed calls are retried until attempts run out or ctx ends.
func (g *Generator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if g == nil || g.models == nil {
		return "", errors.New("gemini generator is not initialized")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	temperature := defaultTemperature
	cfg := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: maxOutputTokens,
	}

	var lastErr error
	for attempt := 1; attempt <= g.attempts; attempt++ {
		if attempt > 1 {
			if err := waitFor(ctx, g.backoff*time.Duration(attempt-1)); err != nil {
				return "", fmt.Errorf("generate content: %w", err)
			}
		}
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("generate content: %w", err)
		}

		resp, err := g.models.GenerateContent(ctx, g.modelName, genai.Text(prompt), cfg)
		if err != nil {
			lastErr = err
			continue
		}

		return responseText(resp)
	}

	return "", fmt.Errorf("generate content after %d attempts: %w", g.attempts, lastErr)
}

// Model returns the configured model name.
func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.modelName
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", errors.New("gemini api returned nil response")
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}

	return output, nil
}

// waitFor sleeps for d unless ctx ends first.
func waitFor(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
