package prompt_test

import (
	"os"
	"path/filepath"
	"testing"

	"pitchly/pkg/core/prompt"
)

func writePromptFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestLoadFromDirectory(t *testing.T) {
	base := t.TempDir()
	writePromptFile(t, base, "prompts/analysis/swot.json", `{
		"name": "SWOT Analysis",
		"system_prompt": "You are a senior equity research analyst.",
		"user_prompt_template": "Generate a SWOT analysis for {{.CompanyName}}."
	}`)
	writePromptFile(t, base, "prompts/lbo/assumptions.json", `{
		"id": "lbo.assumptions",
		"system_prompt": "You are a private equity analyst."
	}`)

	reg := prompt.Get()
	reg.Clear()
	if err := prompt.LoadFromDirectory(base); err != nil {
		t.Fatalf("LoadFromDirectory: %v", err)
	}

	if reg.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", reg.Count())
	}

	// ID and category derived from the path when omitted.
	pt, err := reg.GetPrompt("analysis.swot")
	if err != nil {
		t.Fatalf("GetPrompt: %v", err)
	}
	if pt.Category != "analysis" {
		t.Errorf("Category = %q, want analysis", pt.Category)
	}

	ctx := prompt.NewContext().Set("CompanyName", "Tesla, Inc.")
	rendered, err := prompt.RenderUserPrompt(pt, ctx)
	if err != nil {
		t.Fatalf("RenderUserPrompt: %v", err)
	}
	if rendered != "Generate a SWOT analysis for Tesla, Inc.." {
		t.Errorf("rendered = %q", rendered)
	}

	if _, err := prompt.GetLBOPrompt("assumptions"); err != nil {
		t.Errorf("GetLBOPrompt: %v", err)
	}
	if _, err := reg.GetPrompt("analysis.missing"); err == nil {
		t.Error("expected error for unknown prompt")
	}
}

func TestRegisterRejectsEmptyID(t *testing.T) {
	reg := prompt.Get()
	if err := reg.Register(&prompt.Template{}); err == nil {
		t.Error("expected error for empty ID")
	}
}
