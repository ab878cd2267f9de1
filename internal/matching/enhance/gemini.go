// internal/matching/enhance/gemini.go
package enhance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	_ "embed"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

//go:embed prompt.md
var promptTemplate string

// contentGenerator is the slice of the genai client the provider needs.
type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// GeminiProvider asks a Gemini model for the enhancement JSON object.
type GeminiProvider struct {
	generator contentGenerator
}

func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	g, err := newGenaiGenerator(ctx, apiKey, model)
	if err != nil {
		return nil, err
	}
	return &GeminiProvider{generator: g}, nil
}

func (p *GeminiProvider) Name() string { return "gemini" }

func (p *GeminiProvider) Complete(ctx context.Context, summary Summary) ([]byte, error) {
	profileJSON, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal summary: %w", err)
	}

	raw, err := p.generator.GenerateContent(ctx, buildPrompt(string(profileJSON)))
	if err != nil {
		return nil, err
	}
	return []byte(extractJSON(raw)), nil
}

func buildPrompt(profileJSON string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Candidate summary:\n{{PROFILE_JSON}}\n\nJSON Response:"
	}
	return strings.ReplaceAll(template, "{{PROFILE_JSON}}", profileJSON)
}

// extractJSON strips Markdown fences models sometimes add despite the prompt.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	return strings.TrimSpace(strings.Trim(raw, "`"))
}

type genaiGenerator struct {
	client *genai.Client
	model  string
}

func newGenaiGenerator(ctx context.Context, apiKey, model string) (*genaiGenerator, error) {
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

	if model = strings.TrimSpace(model); model == "" {
		model = defaultGeminiModel
	}
	return &genaiGenerator{client: client, model: model}, nil
}

func (g *genaiGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	cfg := &genai.GenerateContentConfig{ResponseMIMEType: "application/json"}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil || strings.TrimSpace(part.Text) == "" {
				continue
			}
			builder.WriteString(part.Text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}
	return output, nil
}
