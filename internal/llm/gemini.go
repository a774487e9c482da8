package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultTimeout = 30 * time.Second

// GeminiConfig holds tunables for the Gemini-backed client.
type GeminiConfig struct {
	APIKey      string
	Model       string
	Temperature float32
	Timeout     time.Duration
	Retries     int
}

// Gemini implements Client on top of the Google Generative AI API.
type Gemini struct {
	model   *genai.GenerativeModel
	client  *genai.Client
	timeout time.Duration
	retries int
}

// NewGemini builds a Gemini client. The system prompt is attached as a
// system instruction so every request carries the assistant persona.
func NewGemini(ctx context.Context, cfg GeminiConfig) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key cannot be empty")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.SetTemperature(cfg.Temperature)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(SystemPrompt)},
	}

	return &Gemini{
		model:   model,
		client:  client,
		timeout: cfg.Timeout,
		retries: cfg.Retries,
	}, nil
}

// Generate sends the context and question to Gemini with a per-attempt
// timeout and a bounded number of retries. Expiry of an attempt counts as
// a recoverable failure; expiry of the parent context ends the loop.
func (g *Gemini) Generate(ctx context.Context, contextText, question string) (string, error) {
	prompt := fmt.Sprintf("context:\n%s\n\nquestion:\n%s", contextText, question)

	var lastErr error
	for attempt := 0; attempt <= g.retries; attempt++ {
		if ctx.Err() != nil {
			break
		}

		attemptCtx, cancel := context.WithTimeout(ctx, g.timeout)
		resp, err := g.model.GenerateContent(attemptCtx, genai.Text(prompt))
		cancel()
		if err != nil {
			lastErr = err
			slog.WarnContext(ctx, "Gemini call failed",
				"attempt", attempt+1,
				"error", err,
				"component", "llm")
			continue
		}

		text := responseText(resp)
		if text == "" {
			lastErr = fmt.Errorf("empty candidate response")
			continue
		}
		return text, nil
	}

	return "", fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
}

// Close releases the underlying API connection.
func (g *Gemini) Close() error {
	return g.client.Close()
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var out string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out += string(text)
		}
	}
	return out
}
