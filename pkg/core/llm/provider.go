// Package llm abstracts the chat-model providers behind a single interface
// so the analysis engine never depends on a specific vendor SDK.
package llm

import "context"

// Provider is a chat-completion backend.
//
// Recognized option keys:
//
//	"model"           string: override the provider's default model
//	"google_search"   bool: enable search grounding (Gemini only)
//	"response_format" map with {"type": "json_object"}: request raw JSON
type Provider interface {
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
}
