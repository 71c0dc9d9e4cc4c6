package agent_test

import (
	"os"
	"path/filepath"
	"testing"

	"pitchly/pkg/core/agent"
)

func TestLoadConfig_MissingFileDefaults(t *testing.T) {
	cfg := agent.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if cfg.ActiveProvider != "gemini" {
		t.Errorf("ActiveProvider = %q, want gemini", cfg.ActiveProvider)
	}
}

func TestLoadConfig_ParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models.yaml")
	content := `active_provider: deepseek
agents:
  lbo_modeler:
    provider: gemini
    description: Structured deal assumption generation
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg := agent.LoadConfig(path)
	if cfg.ActiveProvider != "deepseek" {
		t.Errorf("ActiveProvider = %q, want deepseek", cfg.ActiveProvider)
	}
	if cfg.Agents["lbo_modeler"].Provider != "gemini" {
		t.Errorf("lbo_modeler provider = %q, want gemini", cfg.Agents["lbo_modeler"].Provider)
	}
}

func TestManager_ProviderRouting(t *testing.T) {
	mgr := agent.NewManager(agent.Config{
		ActiveProvider: "deepseek",
		Agents: map[string]agent.AgentConfig{
			"lbo_modeler": {Provider: "gemini"},
		},
	})

	if p := mgr.GetProviderByName("gemini"); p == nil {
		t.Fatal("gemini provider should be registered")
	}
	if p := mgr.GetProviderByName("unknown"); p != nil {
		t.Error("unknown provider should be nil")
	}

	// Agent override beats the global provider.
	override := mgr.GetProvider("lbo_modeler")
	global := mgr.GetProvider("narrative")
	if override == global {
		t.Error("expected agent override to route to a different provider")
	}
}

func TestManager_SwitchProvider(t *testing.T) {
	mgr := agent.NewManager(agent.Config{ActiveProvider: "gemini"})

	if err := mgr.SetGlobalProvider("deepseek"); err != nil {
		t.Fatalf("SetGlobalProvider: %v", err)
	}
	if got := mgr.GetActiveProvider(); got != "deepseek" {
		t.Errorf("GetActiveProvider = %q, want deepseek", got)
	}
	if err := mgr.SetGlobalProvider("claude"); err == nil {
		t.Error("expected error for unregistered provider")
	}
}
