// Package config loads engine configuration from YAML and constructs the
// configured components. Modifier word lists and the intent rule table are
// configuration data, not hidden globals, so deployments and tests can
// substitute their own sets.
package config

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/kwscout/internal/llm"
	"github.com/cognicore/kwscout/pkg/kwscout/expand"
	"github.com/cognicore/kwscout/pkg/kwscout/intent"
	"github.com/cognicore/kwscout/pkg/kwscout/internalerr"
	"github.com/cognicore/kwscout/pkg/kwscout/metrics"
	"github.com/cognicore/kwscout/pkg/kwscout/suggest"
)

// Config is the full engine configuration.
type Config struct {
	Suggest SuggestConfig `yaml:"suggest"`
	Metrics MetricsConfig `yaml:"metrics"`
	LLM     LLMConfig     `yaml:"llm"`
	Expand  ExpandConfig  `yaml:"expand"`
	Rules   []RuleConfig  `yaml:"rules"`
}

// SuggestConfig configures the autocomplete client.
type SuggestConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// MetricsConfig configures the keyword-metrics client. The API key is
// supplied per request, not here.
type MetricsConfig struct {
	Endpoint string `yaml:"endpoint"`
	Country  string `yaml:"country"`
	Currency string `yaml:"currency"`
}

// LLMConfig configures the completion-service client.
type LLMConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
}

// ExpandConfig overrides the query-modifier sets.
type ExpandConfig struct {
	Alphabet      string   `yaml:"alphabet"`
	QuestionWords []string `yaml:"question_words"`
	Prepositions  []string `yaml:"prepositions"`
}

// RuleConfig is one intent classification rule. Rules are evaluated in file
// order, first match wins.
type RuleConfig struct {
	Terms       []string `yaml:"terms"`
	Intent      string   `yaml:"intent"`
	FunnelStage string   `yaml:"funnel_stage"`
	ContentType string   `yaml:"content_type"`
}

// Default returns a configuration with all built-in defaults.
func Default() Config {
	return Config{
		Metrics: MetricsConfig{Country: "us", Currency: "usd"},
	}
}

// Load reads a YAML config file. Missing file paths are an error; use
// Default() when running without a config file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	for i, rule := range c.Rules {
		if len(rule.Terms) == 0 {
			return fmt.Errorf("config: rule %d has no terms: %w", i, internalerr.ErrInvalidConfig)
		}
		switch intent.Intent(rule.Intent) {
		case intent.Informational, intent.Commercial, intent.Transactional, intent.Navigational:
		default:
			return fmt.Errorf("config: rule %d has unknown intent %q: %w", i, rule.Intent, internalerr.ErrInvalidConfig)
		}
	}
	return nil
}

// Components holds the constructed engine dependencies.
type Components struct {
	Suggest    *suggest.Client
	Metrics    *metrics.Client
	LLM        *llm.Client
	Expander   *expand.Expander
	Classifier *intent.Classifier
}

// Components constructs clients and pure components from the config.
func (c Config) Components() *Components {
	sg := &suggest.Client{BaseURL: c.Suggest.BaseURL}
	if c.Suggest.TimeoutSeconds > 0 {
		sg.HTTPClient = &http.Client{Timeout: time.Duration(c.Suggest.TimeoutSeconds) * time.Second}
	}

	classifier := intent.Default()
	if len(c.Rules) > 0 {
		rules := make([]intent.Rule, len(c.Rules))
		for i, rc := range c.Rules {
			rules[i] = intent.Rule{
				Terms: rc.Terms,
				Result: intent.Analysis{
					Intent:      intent.Intent(rc.Intent),
					FunnelStage: intent.FunnelStage(rc.FunnelStage),
					ContentType: rc.ContentType,
				},
			}
		}
		classifier = intent.New(rules, intent.DefaultResult)
	}

	return &Components{
		Suggest: sg,
		Metrics: &metrics.Client{
			Endpoint: c.Metrics.Endpoint,
			Country:  c.Metrics.Country,
			Currency: c.Metrics.Currency,
		},
		LLM: &llm.Client{
			BaseURL: c.LLM.BaseURL,
			APIKey:  c.LLM.APIKey,
			Model:   c.LLM.Model,
		},
		Expander: expand.New(expand.Config{
			Alphabet:      c.Expand.Alphabet,
			QuestionWords: c.Expand.QuestionWords,
			Prepositions:  c.Expand.Prepositions,
		}),
		Classifier: classifier,
	}
}
