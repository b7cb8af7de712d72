// Package kwscout is a keyword research engine: it expands seed phrases into
// a large candidate set via query-modifier strategies, pulls autocomplete
// suggestions and optional volume/CPC/competition metrics from external
// services, and classifies and scores every candidate.
package kwscout

import (
	"context"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/cognicore/kwscout/pkg/kwscout/expand"
	"github.com/cognicore/kwscout/pkg/kwscout/intent"
	"github.com/cognicore/kwscout/pkg/kwscout/metrics"
	"github.com/cognicore/kwscout/pkg/kwscout/scoring"
)

// Suggester fetches autocomplete suggestions for a query.
type Suggester interface {
	Fetch(ctx context.Context, query string) ([]string, error)
}

// MetricsProvider fetches raw metrics for a batch of keywords.
type MetricsProvider interface {
	Lookup(ctx context.Context, keywords []string, apiKey string) (map[string]metrics.Keyword, error)
}

// MatchType filters candidates against the original seed list.
type MatchType string

const (
	MatchBroad  MatchType = "broad"
	MatchPhrase MatchType = "phrase"
	MatchExact  MatchType = "exact"
)

// Engine is the keyword discovery facade.
type Engine struct {
	suggest    Suggester
	metrics    MetricsProvider
	expander   *expand.Expander
	classifier *intent.Classifier
}

// Options configures an Engine instance. Expander and Classifier fall back
// to defaults when nil.
type Options struct {
	Suggest    Suggester
	Metrics    MetricsProvider
	Expander   *expand.Expander
	Classifier *intent.Classifier
}

// New creates an Engine with the given dependencies.
func New(opts Options) *Engine {
	e := &Engine{
		suggest:    opts.Suggest,
		metrics:    opts.Metrics,
		expander:   opts.Expander,
		classifier: opts.Classifier,
	}
	if e.expander == nil {
		e.expander = expand.New(expand.Config{})
	}
	if e.classifier == nil {
		e.classifier = intent.Default()
	}
	return e
}

// DiscoverRequest configures one discovery run. Seeds is a raw
// comma-separated string. An empty APIKey skips the metrics stage entirely.
type DiscoverRequest struct {
	Seeds        string
	Deep         bool
	Questions    bool
	Prepositions bool
	MatchType    MatchType
	APIKey       string
}

// KeywordResult is one output row of a discovery run. Metric-derived fields
// are all zero when no metrics were available for the keyword; that is valid
// output, not an error state.
type KeywordResult struct {
	Keyword           string
	Volume            int
	Difficulty        int
	CPC               string
	Trend             []float64
	Intent            intent.Intent
	FunnelStage       intent.FunnelStage
	ContentType       string
	CTREstimate       float64
	TrafficPotential  int
	BuyerIntentScore  int
	MonetizationScore int
}

// Discover runs the full candidate pipeline: expansion, concurrent
// suggestion fan-out per seed, exact-string dedup, match-type filtering,
// sequential metrics batches and per-candidate enrichment. External-service
// failures degrade the affected unit and never abort the run; the only
// returned error is context cancellation.
func (e *Engine) Discover(ctx context.Context, req DiscoverRequest) ([]KeywordResult, error) {
	seeds := expand.SplitSeeds(req.Seeds)
	if len(seeds) == 0 {
		return nil, nil
	}

	candidates := e.collectCandidates(ctx, seeds, req)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	candidates = filterByMatchType(candidates, seeds, req.MatchType)

	lookup := e.fetchMetrics(ctx, candidates, req.APIKey)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := make([]KeywordResult, 0, len(candidates))
	for _, keyword := range candidates {
		results = append(results, e.enrich(keyword, lookup))
	}
	return results, nil
}

// collectCandidates fans out all queries for one seed concurrently, joins
// them, then moves to the next seed. The dedup set is only written after
// each seed's fetches have all resolved, so no locking is needed around it.
// A failing query contributes nothing; the pipeline never invents keywords.
func (e *Engine) collectCandidates(ctx context.Context, seeds []string, req DiscoverRequest) []string {
	seen := make(map[string]struct{})
	var candidates []string

	for _, seed := range seeds {
		queries := e.expander.Queries(seed, req.Deep, req.Questions, req.Prepositions)
		batches := make([][]string, len(queries))

		var g errgroup.Group
		for i, query := range queries {
			i, query := i, query
			g.Go(func() error {
				suggestions, err := e.suggest.Fetch(ctx, query)
				if err != nil {
					return nil
				}
				batches[i] = suggestions
				return nil
			})
		}
		g.Wait()

		for _, batch := range batches {
			for _, keyword := range batch {
				if keyword == "" {
					continue
				}
				if _, ok := seen[keyword]; ok {
					continue
				}
				seen[keyword] = struct{}{}
				candidates = append(candidates, keyword)
			}
		}
	}
	return candidates
}

// filterByMatchType evaluates candidates against the original seed list,
// not the expanded queries.
func filterByMatchType(candidates, seeds []string, matchType MatchType) []string {
	if matchType != MatchPhrase && matchType != MatchExact {
		return candidates
	}

	lowered := make([]string, len(seeds))
	for i, seed := range seeds {
		lowered[i] = strings.ToLower(seed)
	}

	var kept []string
	for _, candidate := range candidates {
		lc := strings.ToLower(candidate)
		for _, seed := range lowered {
			if matchType == MatchExact && lc == seed {
				kept = append(kept, candidate)
				break
			}
			if matchType == MatchPhrase && strings.Contains(lc, seed) {
				kept = append(kept, candidate)
				break
			}
		}
	}
	return kept
}

// fetchMetrics issues metrics batches of at most metrics.MaxBatch keywords,
// strictly one at a time: the endpoint is a shared rate-limited resource. A
// failed batch yields no entries for its keywords and the remaining batches
// still run.
func (e *Engine) fetchMetrics(ctx context.Context, candidates []string, apiKey string) map[string]metrics.Keyword {
	lookup := make(map[string]metrics.Keyword)
	if apiKey == "" || len(candidates) == 0 || e.metrics == nil {
		return lookup
	}

	for start := 0; start < len(candidates); start += metrics.MaxBatch {
		end := start + metrics.MaxBatch
		if end > len(candidates) {
			end = len(candidates)
		}

		batch, err := e.metrics.Lookup(ctx, candidates[start:end], apiKey)
		if err != nil {
			continue
		}
		for keyword, row := range batch {
			lookup[keyword] = row
		}
	}
	return lookup
}

func (e *Engine) enrich(keyword string, lookup map[string]metrics.Keyword) KeywordResult {
	analysis := e.classifier.Classify(keyword)

	raw := lookup[keyword]
	derived := scoring.Derive(raw.Volume, raw.CPC.Value, analysis.Intent)

	trend := make([]float64, len(raw.Trend))
	for i, point := range raw.Trend {
		trend[i] = point.Value
	}

	return KeywordResult{
		Keyword:           keyword,
		Volume:            raw.Volume,
		Difficulty:        scoring.Difficulty(raw.Competition),
		CPC:               strconv.FormatFloat(raw.CPC.Value, 'f', 2, 64),
		Trend:             trend,
		Intent:            analysis.Intent,
		FunnelStage:       analysis.FunnelStage,
		ContentType:       analysis.ContentType,
		CTREstimate:       derived.CTREstimate,
		TrafficPotential:  derived.TrafficPotential,
		BuyerIntentScore:  derived.BuyerIntentScore,
		MonetizationScore: derived.MonetizationScore,
	}
}
