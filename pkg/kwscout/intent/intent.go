// Package intent classifies the search intent behind a keyword string.
package intent

import (
	"regexp"
	"strings"
)

// Intent is the dominant search intent of a keyword.
type Intent string

const (
	Informational Intent = "Informational"
	Commercial    Intent = "Commercial"
	Transactional Intent = "Transactional"
	Navigational  Intent = "Navigational"
)

// FunnelStage is where the searcher sits in the purchase funnel.
type FunnelStage string

const (
	Awareness     FunnelStage = "Awareness"
	Consideration FunnelStage = "Consideration"
	Decision      FunnelStage = "Decision"
)

// Analysis is the classification result for one keyword.
type Analysis struct {
	Intent      Intent
	FunnelStage FunnelStage
	ContentType string
}

// Rule pairs a term list with the classification it yields. Rules are
// evaluated top to bottom, first match wins; ordering encodes precedence
// (purchase signals outrank comparison signals outrank informational ones,
// e.g. "best price" is Transactional, not Commercial).
type Rule struct {
	Terms  []string
	Result Analysis
}

// DefaultRules is the built-in rule table.
var DefaultRules = []Rule{
	{
		Terms: []string{"buy", "price", "cost", "cheap", "discount", "coupon", "deal", "sale", "order", "purchase"},
		Result: Analysis{
			Intent:      Transactional,
			FunnelStage: Decision,
			ContentType: "Product Page",
		},
	},
	{
		Terms: []string{"best", "top", "vs", "versus", "review", "comparison", "guide", "best of"},
		Result: Analysis{
			Intent:      Commercial,
			FunnelStage: Consideration,
			ContentType: "Comparison Page",
		},
	},
	{
		Terms: []string{"how", "what", "who", "where", "why", "when", "tutorial", "tips", "ideas", "examples", "learn", "meaning", "definition"},
		Result: Analysis{
			Intent:      Informational,
			FunnelStage: Awareness,
			ContentType: "Blog Post",
		},
	},
}

// DefaultResult applies when no rule matches.
var DefaultResult = Analysis{
	Intent:      Informational,
	FunnelStage: Awareness,
	ContentType: "Blog Post",
}

type compiledRule struct {
	pattern *regexp.Regexp
	result  Analysis
}

// Classifier evaluates an ordered rule list against keywords.
type Classifier struct {
	rules    []compiledRule
	fallback Analysis
}

// New compiles a classifier from the given rules. Terms match on word
// boundaries so "vs" does not fire inside "canvas". Pass DefaultRules for
// the standard table.
func New(rules []Rule, fallback Analysis) *Classifier {
	c := &Classifier{fallback: fallback}
	for _, rule := range rules {
		if len(rule.Terms) == 0 {
			continue
		}
		quoted := make([]string, len(rule.Terms))
		for i, term := range rule.Terms {
			quoted[i] = regexp.QuoteMeta(term)
		}
		pattern := regexp.MustCompile(`\b(` + strings.Join(quoted, "|") + `)\b`)
		c.rules = append(c.rules, compiledRule{pattern: pattern, result: rule.Result})
	}
	return c
}

// Default returns a classifier with the built-in rule table.
func Default() *Classifier {
	return New(DefaultRules, DefaultResult)
}

// Classify maps a keyword to its intent, funnel stage and suggested content
// type. Pure function of the input: no I/O, no caching.
func (c *Classifier) Classify(keyword string) Analysis {
	lowered := strings.ToLower(keyword)
	for _, rule := range c.rules {
		if rule.pattern.MatchString(lowered) {
			return rule.result
		}
	}
	return c.fallback
}
