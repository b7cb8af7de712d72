package kwscout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/cognicore/kwscout/pkg/kwscout/expand"
	"github.com/cognicore/kwscout/pkg/kwscout/intent"
	"github.com/cognicore/kwscout/pkg/kwscout/metrics"
)

// fakeSuggester serves canned suggestions per query and records calls.
type fakeSuggester struct {
	mu      sync.Mutex
	byQuery map[string][]string
	failOn  map[string]bool
	calls   []string
}

func (f *fakeSuggester) Fetch(ctx context.Context, query string) ([]string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, query)
	f.mu.Unlock()

	if f.failOn[query] {
		return nil, errors.New("suggest down")
	}
	return f.byQuery[query], nil
}

// fakeMetrics records each batch it receives.
type fakeMetrics struct {
	batches [][]string
	rows    map[string]metrics.Keyword
	failOn  int // 1-based batch index to fail, 0 = never
}

func (f *fakeMetrics) Lookup(ctx context.Context, keywords []string, apiKey string) (map[string]metrics.Keyword, error) {
	f.batches = append(f.batches, append([]string(nil), keywords...))
	if f.failOn == len(f.batches) {
		return nil, errors.New("metrics down")
	}
	out := make(map[string]metrics.Keyword)
	for _, kw := range keywords {
		if row, ok := f.rows[kw]; ok {
			out[kw] = row
		}
	}
	return out, nil
}

func TestDiscover_Dedup(t *testing.T) {
	sg := &fakeSuggester{byQuery: map[string][]string{
		"shoes":     {"running shoes", "buy shoes", "running shoes"},
		"shoes for": {"running shoes", "shoes for kids"},
	}}
	eng := New(Options{
		Suggest:  sg,
		Expander: expand.New(expand.Config{Prepositions: []string{"for"}}),
	})

	results, err := eng.Discover(context.Background(), DiscoverRequest{Seeds: "shoes", Prepositions: true})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	seen := make(map[string]int)
	for _, r := range results {
		seen[r.Keyword]++
	}
	for kw, n := range seen {
		if n > 1 {
			t.Fatalf("keyword %q appears %d times", kw, n)
		}
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3 unique: %+v", len(results), seen)
	}
}

func TestDiscover_FailingQueryDoesNotAbortSeed(t *testing.T) {
	sg := &fakeSuggester{
		byQuery: map[string][]string{
			"coffee":     {"coffee beans"},
			"coffee for": {"coffee for beginners"},
		},
		failOn: map[string]bool{"coffee vs": true},
	}
	eng := New(Options{
		Suggest:  sg,
		Expander: expand.New(expand.Config{Prepositions: []string{"for", "vs"}}),
	})

	results, err := eng.Discover(context.Background(), DiscoverRequest{Seeds: "coffee", Prepositions: true})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
}

func TestDiscover_NeverInventsKeywords(t *testing.T) {
	sg := &fakeSuggester{byQuery: map[string][]string{}}
	eng := New(Options{Suggest: sg})

	results, err := eng.Discover(context.Background(), DiscoverRequest{Seeds: "anything, at all"})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("no suggestions returned, but got %d results", len(results))
	}
}

func TestDiscover_EmptySeeds(t *testing.T) {
	eng := New(Options{Suggest: &fakeSuggester{}})

	results, err := eng.Discover(context.Background(), DiscoverRequest{Seeds: " , "})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if results != nil {
		t.Fatalf("expected nil results, got %v", results)
	}
}

func TestDiscover_MatchTypes(t *testing.T) {
	suggestions := []string{"shoes", "running shoes", "Shoes", "sneakers"}

	tests := []struct {
		name      string
		matchType MatchType
		want      []string
	}{
		{"exact", MatchExact, []string{"shoes", "Shoes"}},
		{"phrase", MatchPhrase, []string{"shoes", "running shoes", "Shoes"}},
		{"broad", MatchBroad, suggestions},
		{"absent", "", suggestions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sg := &fakeSuggester{byQuery: map[string][]string{"shoes": suggestions}}
			eng := New(Options{Suggest: sg})

			results, err := eng.Discover(context.Background(), DiscoverRequest{
				Seeds:     "shoes",
				MatchType: tt.matchType,
			})
			if err != nil {
				t.Fatalf("Discover: %v", err)
			}

			var got []string
			for _, r := range results {
				got = append(got, r.Keyword)
			}
			if fmt.Sprint(got) != fmt.Sprint(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDiscover_MetricsBatching(t *testing.T) {
	var suggestions []string
	for i := 0; i < 101; i++ {
		suggestions = append(suggestions, fmt.Sprintf("keyword %03d", i))
	}
	sg := &fakeSuggester{byQuery: map[string][]string{"kw": suggestions}}
	mt := &fakeMetrics{rows: map[string]metrics.Keyword{}}
	eng := New(Options{Suggest: sg, Metrics: mt})

	if _, err := eng.Discover(context.Background(), DiscoverRequest{Seeds: "kw", APIKey: "key"}); err != nil {
		t.Fatalf("Discover: %v", err)
	}

	if len(mt.batches) != 3 {
		t.Fatalf("got %d metrics calls, want 3", len(mt.batches))
	}
	for i, want := range []int{50, 50, 1} {
		if len(mt.batches[i]) != want {
			t.Fatalf("batch %d has %d keywords, want %d", i, len(mt.batches[i]), want)
		}
	}
}

func TestDiscover_NoAPIKeySkipsMetrics(t *testing.T) {
	sg := &fakeSuggester{byQuery: map[string][]string{"kw": {"keyword one"}}}
	mt := &fakeMetrics{}
	eng := New(Options{Suggest: sg, Metrics: mt})

	results, err := eng.Discover(context.Background(), DiscoverRequest{Seeds: "kw"})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(mt.batches) != 0 {
		t.Fatalf("metrics must not be called without an API key, got %d calls", len(mt.batches))
	}

	r := results[0]
	if r.Volume != 0 || r.Difficulty != 0 || r.CPC != "0.00" || r.TrafficPotential != 0 {
		t.Fatalf("expected zeroed metrics fields, got %+v", r)
	}
}

func TestDiscover_FailedBatchDoesNotAbortRemaining(t *testing.T) {
	var suggestions []string
	for i := 0; i < 60; i++ {
		suggestions = append(suggestions, fmt.Sprintf("keyword %02d", i))
	}
	rows := map[string]metrics.Keyword{
		"keyword 55": {Keyword: "keyword 55", Volume: 700},
	}
	sg := &fakeSuggester{byQuery: map[string][]string{"kw": suggestions}}
	mt := &fakeMetrics{rows: rows, failOn: 1}
	eng := New(Options{Suggest: sg, Metrics: mt})

	results, err := eng.Discover(context.Background(), DiscoverRequest{Seeds: "kw", APIKey: "key"})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(mt.batches) != 2 {
		t.Fatalf("got %d metrics calls, want 2", len(mt.batches))
	}

	byKeyword := make(map[string]KeywordResult)
	for _, r := range results {
		byKeyword[r.Keyword] = r
	}
	// First batch failed: zeroed fields, still present in output.
	if got := byKeyword["keyword 01"]; got.Volume != 0 {
		t.Fatalf("failed-batch keyword should be zeroed: %+v", got)
	}
	// Second batch succeeded.
	if got := byKeyword["keyword 55"]; got.Volume != 700 {
		t.Fatalf("second batch lost: %+v", got)
	}
}

func TestDiscover_Enrichment(t *testing.T) {
	sg := &fakeSuggester{byQuery: map[string][]string{"shoes": {"buy shoes"}}}
	mt := &fakeMetrics{rows: map[string]metrics.Keyword{
		"buy shoes": {
			Keyword:     "buy shoes",
			Volume:      1000,
			CPC:         metrics.Money{Currency: "$", Value: 6.0},
			Competition: 0.5,
			Trend:       []metrics.TrendPoint{{Value: 900}, {Value: 1100}},
		},
	}}
	eng := New(Options{Suggest: sg, Metrics: mt})

	results, err := eng.Discover(context.Background(), DiscoverRequest{Seeds: "shoes", APIKey: "key"})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}

	r := results[0]
	if r.Intent != intent.Transactional || r.FunnelStage != intent.Decision || r.ContentType != "Product Page" {
		t.Fatalf("classification wrong: %+v", r)
	}
	if r.Volume != 1000 || r.Difficulty != 50 || r.CPC != "6.00" {
		t.Fatalf("raw metrics wrong: %+v", r)
	}
	if r.CTREstimate != 32.0 || r.TrafficPotential != 320 {
		t.Fatalf("traffic wrong: %+v", r)
	}
	if r.BuyerIntentScore != 100 || r.MonetizationScore != 80 {
		t.Fatalf("scores wrong: %+v", r)
	}
	if len(r.Trend) != 2 || r.Trend[1] != 1100 {
		t.Fatalf("trend wrong: %+v", r.Trend)
	}
}

func TestDiscover_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sg := &fakeSuggester{byQuery: map[string][]string{"kw": {"keyword"}}}
	eng := New(Options{Suggest: sg})

	if _, err := eng.Discover(ctx, DiscoverRequest{Seeds: "kw"}); err == nil {
		t.Fatal("expected context error")
	}
}
