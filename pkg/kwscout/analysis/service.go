// Package analysis runs single-keyword AI deep dives and incremental content
// ideation against a chat-completion service, enforcing a strict JSON
// contract with a repair pass and safe degradation.
package analysis

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/kwscout/pkg/kwscout/internalerr"
	"github.com/cognicore/kwscout/pkg/kwscout/store"
)

// Completer is the completion-service boundary. internal/llm.Client
// satisfies it.
type Completer interface {
	Chat(ctx context.Context, system, user string) (string, error)
}

// Result is the structured outcome of a keyword analysis. Field names match
// the JSON contract the model is instructed to follow.
type Result struct {
	SearchIntent       string              `json:"searchIntent"`
	TargetAudience     string              `json:"targetAudience"`
	ContentIdeas       []store.ContentIdea `json:"contentIdeas"`
	SecondaryKeywords  []string            `json:"secondaryKeywords"`
	DifficultyAnalysis string              `json:"difficultyAnalysis"`
	MonetizationIdeas  []string            `json:"monetizationIdeas"`
}

// FallbackResult is returned when the model output cannot be parsed as JSON
// even after repair. It is a clearly-labeled degraded record, never an error.
func FallbackResult() Result {
	return Result{
		SearchIntent:       "Could not parse AI response. Try again.",
		TargetAudience:     "Unknown",
		ContentIdeas:       []store.ContentIdea{},
		SecondaryKeywords:  []string{},
		DifficultyAnalysis: "Analysis failed",
		MonetizationIdeas:  []string{},
	}
}

// Service orchestrates prompt building, completion calls, parsing and
// persistence. One completion call is in flight per invocation; there is no
// batching for language-model calls.
type Service struct {
	llm     Completer
	store   store.Store
	now     func() time.Time
	entropy *ulid.MonotonicEntropy
}

// New creates a Service. The store may be nil, in which case results are
// not persisted.
func New(llm Completer, st store.Store) *Service {
	return &Service{
		llm:     llm,
		store:   st,
		now:     time.Now,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Analyze asks the completion service for a structured analysis of one
// keyword. The owner id is a hard precondition, checked before any external
// call. Completion transport/auth failures are returned as errors; malformed
// model output degrades to FallbackResult. On success the record is
// persisted; a persistence failure is logged and never surfaced.
func (s *Service) Analyze(ctx context.Context, ownerID, keyword string) (Result, error) {
	if ownerID == "" {
		return Result{}, fmt.Errorf("analysis: owner id required: %w", internalerr.ErrUnauthorized)
	}

	content, err := s.llm.Chat(ctx, systemPrompt, analysisPrompt(keyword))
	if err != nil {
		return Result{}, fmt.Errorf("analysis: completion: %w", err)
	}

	var res Result
	if err := decodeLenient(content, &res); err != nil {
		if errors.Is(err, internalerr.ErrMalformedOutput) {
			return FallbackResult(), nil
		}
		return Result{}, err
	}

	s.persist(ctx, ownerID, keyword, res)
	return res, nil
}

func (s *Service) persist(ctx context.Context, ownerID, keyword string, res Result) {
	if s.store == nil {
		return
	}

	rec := store.AnalysisRecord{
		ID:                 ulid.MustNew(ulid.Timestamp(s.now()), s.entropy).String(),
		OwnerID:            ownerID,
		Keyword:            keyword,
		SearchIntent:       res.SearchIntent,
		TargetAudience:     res.TargetAudience,
		ContentIdeas:       res.ContentIdeas,
		SecondaryKeywords:  res.SecondaryKeywords,
		DifficultyAnalysis: res.DifficultyAnalysis,
		MonetizationIdeas:  res.MonetizationIdeas,
		CreatedAt:          s.now(),
	}
	if err := s.store.InsertAnalysis(ctx, rec); err != nil {
		log.Printf("analysis: persist %q failed: %v", keyword, err)
	}
}

// ideaCount is how many new ideas an expansion call requests.
const ideaCount = 3

// ExpandIdeas asks for ideaCount new content ideas that do not duplicate the
// supplied existing titles. Ideation must always produce something
// actionable: any completion or parse failure yields a deterministic
// fallback derived from the keyword. Only a missing owner id is an error.
func (s *Service) ExpandIdeas(ctx context.Context, ownerID, keyword string, existing []string) ([]store.ContentIdea, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("analysis: owner id required: %w", internalerr.ErrUnauthorized)
	}

	content, err := s.llm.Chat(ctx, systemPrompt, ideasPrompt(keyword, existing, ideaCount))
	if err != nil {
		return fallbackIdeas(keyword), nil
	}

	var payload struct {
		ContentIdeas []store.ContentIdea `json:"contentIdeas"`
	}
	if err := decodeLenient(content, &payload); err != nil {
		return fallbackIdeas(keyword), nil
	}
	if len(payload.ContentIdeas) == 0 {
		return fallbackIdeas(keyword), nil
	}
	return payload.ContentIdeas, nil
}

func fallbackIdeas(keyword string) []store.ContentIdea {
	return []store.ContentIdea{
		{Title: "Guide to " + keyword, Type: "Blog Post"},
		{Title: keyword + " Explained", Type: "Video"},
		{Title: "Top 10 " + keyword + " Tips", Type: "Listicle"},
	}
}
