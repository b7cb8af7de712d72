package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cognicore/kwscout/pkg/kwscout/intent"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kwscout.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
suggest:
  base_url: "https://suggest.test/complete"
  timeout_seconds: 5
metrics:
  endpoint: "https://metrics.test/v1/keywords"
  country: "de"
  currency: "eur"
llm:
  base_url: "https://api.test/v1/chat/completions"
  api_key: "k"
  model: "gpt-test"
expand:
  alphabet: "ab"
  question_words: ["how"]
  prepositions: ["for"]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Suggest.BaseURL != "https://suggest.test/complete" || cfg.Suggest.TimeoutSeconds != 5 {
		t.Fatalf("suggest config wrong: %+v", cfg.Suggest)
	}
	if cfg.Metrics.Country != "de" || cfg.Metrics.Currency != "eur" {
		t.Fatalf("metrics config wrong: %+v", cfg.Metrics)
	}
	if cfg.LLM.Model != "gpt-test" {
		t.Fatalf("llm config wrong: %+v", cfg.LLM)
	}

	comp := cfg.Components()
	if comp.Suggest.HTTPClient == nil {
		t.Fatal("timeout not applied to suggest client")
	}
	queries := comp.Expander.Queries("x", true, true, true)
	// 1 bare + 2 alphabet + 2 question + 1 preposition
	if len(queries) != 6 {
		t.Fatalf("custom modifier sets not applied, got %d queries", len(queries))
	}
}

func TestLoad_DefaultsPreserved(t *testing.T) {
	path := writeConfig(t, `
llm:
  model: "gpt-test"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Metrics.Country != "us" || cfg.Metrics.Currency != "usd" {
		t.Fatalf("defaults lost: %+v", cfg.Metrics)
	}

	comp := cfg.Components()
	if got := len(comp.Expander.Queries("x", true, true, true)); got != 69 {
		t.Fatalf("default expansion produced %d queries, want 69", got)
	}
	if got := comp.Classifier.Classify("buy shoes"); got.Intent != intent.Transactional {
		t.Fatalf("default rules not applied: %+v", got)
	}
}

func TestLoad_CustomRules(t *testing.T) {
	path := writeConfig(t, `
rules:
  - terms: ["login", "dashboard"]
    intent: "Navigational"
    funnel_stage: "Decision"
    content_type: "Product Page"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	comp := cfg.Components()
	if got := comp.Classifier.Classify("acme dashboard"); got.Intent != intent.Navigational {
		t.Fatalf("custom rule not applied: %+v", got)
	}
	// Custom rule tables replace the defaults entirely.
	if got := comp.Classifier.Classify("buy shoes"); got.Intent != intent.Informational {
		t.Fatalf("expected fallback for unlisted terms: %+v", got)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "suggest: ["},
		{"rule without terms", "rules:\n  - intent: \"Commercial\"\n"},
		{"unknown intent", "rules:\n  - terms: [\"x\"]\n    intent: \"Curious\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			if _, err := Load(path); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error")
	}
}
