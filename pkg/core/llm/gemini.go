package llm

import (
	"context"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

// GeminiProvider calls the Gemini API through the official GenAI SDK.
// Search-grounded responses carry their web citations appended as a
// markdown Sources section.
type GeminiProvider struct {
	Model string
}

var _ Provider = (*GeminiProvider)(nil)

func (p *GeminiProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create GenAI client: %w", err)
	}

	model := p.Model
	if model == "" {
		model = defaultGeminiModel
	}
	if val, ok := options["model"].(string); ok && val != "" {
		model = val
	}

	result, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), p.buildConfig(systemPrompt, options))
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}

	return withCitations(result), nil
}

func (p *GeminiProvider) buildConfig(systemPrompt string, options map[string]interface{}) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0.1)),
	}

	if val, ok := options["response_format"].(map[string]interface{}); ok && val["type"] == "json_object" {
		config.ResponseMIMEType = "application/json"
	}

	if systemPrompt != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		}
	}

	if val, ok := options["google_search"].(bool); ok && val {
		config.Tools = []*genai.Tool{
			{GoogleSearchRetrieval: &genai.GoogleSearchRetrieval{}},
		}
	}
	return config
}

// withCitations appends grounding sources to the response text when search
// grounding produced any.
func withCitations(result *genai.GenerateContentResponse) string {
	text := result.Text()
	if len(result.Candidates) == 0 {
		return text
	}
	cand := result.Candidates[0]
	if cand.GroundingMetadata == nil {
		return text
	}

	var citations []string
	for _, chunk := range cand.GroundingMetadata.GroundingChunks {
		if chunk.Web != nil {
			citations = append(citations, fmt.Sprintf("[%s](%s)", chunk.Web.Title, chunk.Web.URI))
		}
	}
	if len(citations) == 0 {
		return text
	}
	return fmt.Sprintf("%s\n\n**Sources:**\n%s", text, strings.Join(citations, "\n"))
}
