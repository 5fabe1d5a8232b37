package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"intern-match/internal/config"
	"intern-match/internal/usecase"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

const systemPrompt = `You are a career assistant for students looking for internships.
Answer briefly and concretely. When the student's profile is given, tailor the
advice to their education level, skills and interests. Do not invent internship
postings or application results.`

var ErrMissingAPIKey = errors.New("gemini api key is required")

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini answers chat turns through the Gemini API.
type Gemini struct {
	models contentGenerator
	model  string
}

func NewGemini(ctx context.Context, cfg config.GeminiConfig) (*Gemini, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return newGemini(client.Models, cfg.Model), nil
}

func newGemini(models contentGenerator, model string) *Gemini {
	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	return &Gemini{models: models, model: model}
}

func (g *Gemini) Name() string { return "gemini" }

func (g *Gemini) Respond(ctx context.Context, req usecase.ChatRequest) (string, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
	}
	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(buildPrompt(req)), cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return responseText(resp)
}

func buildPrompt(req usecase.ChatRequest) string {
	var b strings.Builder
	if p := req.Profile; p != nil {
		b.WriteString("Student profile:\n")
		if p.EducationLevel != "" {
			fmt.Fprintf(&b, "- Education level: %s\n", p.EducationLevel)
		}
		if p.FieldOfStudy != "" {
			fmt.Fprintf(&b, "- Field of study: %s\n", p.FieldOfStudy)
		}
		if len(p.Skills) > 0 {
			fmt.Fprintf(&b, "- Skills: %s\n", strings.Join(p.Skills, ", "))
		}
		if len(p.Interests) > 0 {
			fmt.Fprintf(&b, "- Interests: %s\n", strings.Join(p.Interests, ", "))
		}
		if len(p.PreferredLocations) > 0 {
			fmt.Fprintf(&b, "- Preferred locations: %s\n", strings.Join(p.PreferredLocations, ", "))
		}
		b.WriteString("\n")
	}
	b.WriteString("Question: ")
	b.WriteString(req.Query)
	return b.String()
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", errors.New("gemini api returned no response")
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
		// first usable candidate wins
		if builder.Len() > 0 {
			break
		}
	}
	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}
	return output, nil
}

var _ usecase.Responder = (*Gemini)(nil)
