// Package profiler turns a rule-based analysis into a short persona narrative
// using Gemini. It never changes the analysis itself.
package profiler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/BerylCAtieno/segment-persona-agent/internal/config"
	"github.com/BerylCAtieno/segment-persona-agent/internal/models"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ErrEmptyNarrative is returned when Gemini answers without usable text.
var ErrEmptyNarrative = errors.New("no narrative generated")

type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiClient(ctx context.Context, cfg config.GeminiConfig) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.SetTemperature(cfg.Temperature)
	model.SetTopP(cfg.TopP)
	model.SetMaxOutputTokens(cfg.MaxOutputTokens)

	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

func (g *GeminiClient) Close() error {
	return g.client.Close()
}

// DescribePersona asks Gemini for a short narrative about the persona and
// its top strategies.
func (g *GeminiClient) DescribePersona(ctx context.Context, result models.AnalysisResult) (string, error) {
	prompt := BuildNarrativePrompt(result)

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return narrativeText(resp)
}

func narrativeText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyNarrative
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}

	narrative := CleanNarrative(b.String())
	if narrative == "" {
		return "", ErrEmptyNarrative
	}
	return narrative, nil
}

// CleanNarrative strips the markdown fences and stray whitespace the model
// sometimes wraps around plain text.
func CleanNarrative(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```text")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.Join(strings.Fields(text), " ")
}

// BuildNarrativePrompt renders the persona and ranked approaches into the
// instruction sent to the model.
func BuildNarrativePrompt(result models.AnalysisResult) string {
	persona := result.Persona

	var b strings.Builder
	b.WriteString("You are an expert marketing strategist. Write ONE short paragraph (3-4 sentences) describing the customer persona below ")
	b.WriteString("and why the listed strategies fit them. Use plain text only, no markdown, no lists, and do not invent numbers.\n\n")

	fmt.Fprintf(&b, "Persona: %s\n", persona.Name)
	b.WriteString("Traits:\n")
	for _, trait := range persona.Traits {
		fmt.Fprintf(&b, "- %s\n", trait)
	}
	b.WriteString("Pain points:\n")
	for _, pain := range persona.PainPoints {
		fmt.Fprintf(&b, "- %s\n", pain)
	}

	b.WriteString("Recommended strategies, highest priority first:\n")
	for i, approach := range result.Approaches {
		fmt.Fprintf(&b, "%d. %s (%s). Expected conversion lift %g-%g%%, retention lift %g-%g%%.\n",
			i+1, approach.Title, approach.Reason,
			approach.ExpectedImpact.ConversionLiftPctMin, approach.ExpectedImpact.ConversionLiftPctMax,
			approach.ExpectedImpact.RetentionLiftPctMin, approach.ExpectedImpact.RetentionLiftPctMax)
	}

	return b.String()
}
