package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaultsWhenFileAbsent(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	if cfg.LLMTimeout() != 180*time.Second {
		t.Fatalf("timeout = %v", cfg.LLMTimeout())
	}
	if cfg.RoleLabel("architect") != "GPT-4 (Architect)" {
		t.Fatalf("architect label = %q", cfg.RoleLabel("architect"))
	}
	// unknown roles fall back to the role name
	if cfg.RoleLabel("intern") != "intern" {
		t.Fatalf("unknown role label = %q", cfg.RoleLabel("intern"))
	}
}

func TestLoadOverridesFromFile(t *testing.T) {
	dir := t.TempDir()
	data := []byte(`llm:
  base_url: http://localhost:11434/v1
  model: llama3
roles:
  architect: Local Llama (Architect)
narration:
  delay_ms: 0
`)
	if err := os.WriteFile(filepath.Join(dir, "cityline.yml"), data, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LLM.Model != "llama3" {
		t.Fatalf("model = %q", cfg.LLM.Model)
	}
	if cfg.RoleLabel("architect") != "Local Llama (Architect)" {
		t.Fatalf("architect label = %q", cfg.RoleLabel("architect"))
	}
	// untouched roles keep defaults
	if cfg.RoleLabel("qa") != "Mistral (QA)" {
		t.Fatalf("qa label = %q", cfg.RoleLabel("qa"))
	}
	if cfg.Narration.DelayMS != 0 {
		t.Fatalf("delay = %d", cfg.Narration.DelayMS)
	}
}

func TestFromYAMLRejectsBrokenConfig(t *testing.T) {
	if _, err := FromYAML([]byte("llm:\n  base_url: \"\"\n")); err == nil {
		t.Fatal("expected validation error for empty base_url")
	}
	if _, err := FromYAML([]byte(":::not yaml")); err == nil {
		t.Fatal("expected parse error")
	}
}
