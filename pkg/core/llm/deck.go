package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DeckSlide is one slide of the structured deck outline.
type DeckSlide struct {
	SlideNumber  int      `json:"slideNumber"`
	Title        string   `json:"title"`
	BulletPoints []string `json:"bulletPoints"`
}

// deckSchema constrains the model output to an array of slides so the
// response parses without any repair pass.
var deckSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"slideNumber": {Type: genai.TypeInteger},
			"title":       {Type: genai.TypeString},
			"bulletPoints": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
		},
		Required: []string{"slideNumber", "title", "bulletPoints"},
	},
}

// GenerateDeckOutline produces a five-slide internal deck outline from an
// existing analysis text, using a typed response schema instead of
// free-form markdown.
func GenerateDeckOutline(ctx context.Context, modelName, companyName, analysis string) ([]DeckSlide, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	defer client.Close()

	if modelName == "" {
		modelName = defaultGeminiModel
	}
	model := client.GenerativeModel(modelName)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = deckSchema

	prompt := fmt.Sprintf(`Act as a junior investment banking analyst. Based on the following analysis of %s, create a concise 5-slide pitch deck outline for an internal meeting.
The slides should cover: 1. Executive Summary, 2. Financial Performance, 3. Recent Developments & News, 4. Valuation Rationale, 5. Recommendation & Next Steps.

Analysis:
%s`, companyName, analysis)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("deck outline generation failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("deck outline response was empty")
	}

	var raw string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			raw += string(text)
		}
	}

	var slides []DeckSlide
	if err := json.Unmarshal([]byte(raw), &slides); err != nil {
		return nil, fmt.Errorf("parse deck outline: %w", err)
	}
	return slides, nil
}
