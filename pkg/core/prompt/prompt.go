// Package prompt provides a centralized prompt library for LLM interactions.
// Prompts are defined in JSON files and loaded at runtime, so wording can
// change without a rebuild.
package prompt

// Template represents a reusable prompt with metadata.
type Template struct {
	ID             string     `json:"id"`                   // Unique identifier (e.g., "analysis.swot")
	Name           string     `json:"name"`                 // Human-readable name
	Category       string     `json:"category"`             // Category (analysis, lbo, ...)
	Description    string     `json:"description"`          // Description of prompt purpose
	SystemPrompt   string     `json:"system_prompt"`        // The system prompt content
	UserPromptTmpl string     `json:"user_prompt_template"` // Go template for the user prompt
	Variables      []Variable `json:"variables"`            // Variables used in the template
	Version        string     `json:"version"`              // Version for tracking changes
}

// Variable defines a variable used in a prompt template.
type Variable struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// Context holds runtime values for prompt rendering.
type Context struct {
	Variables map[string]interface{}
}

// NewContext creates a new rendering context.
func NewContext() *Context {
	return &Context{Variables: make(map[string]interface{})}
}

// Set adds a variable to the context.
func (c *Context) Set(key string, value interface{}) *Context {
	c.Variables[key] = value
	return c
}
