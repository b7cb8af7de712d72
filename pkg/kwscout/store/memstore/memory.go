package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/cognicore/kwscout/pkg/kwscout/store"
)

// Store is an in-memory implementation of store.Store for tests and
// ephemeral runs.
type Store struct {
	mu      sync.RWMutex
	records map[string]store.AnalysisRecord
	order   []string
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{records: make(map[string]store.AnalysisRecord)}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// InsertAnalysis stores a record keyed by ID.
func (s *Store) InsertAnalysis(ctx context.Context, rec store.AnalysisRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[rec.ID]; !ok {
		s.order = append(s.order, rec.ID)
	}
	s.records[rec.ID] = copyRecord(rec)
	return nil
}

// GetAnalysis returns a record by ID.
func (s *Store) GetAnalysis(ctx context.Context, id string) (store.AnalysisRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if rec, ok := s.records[id]; ok {
		return copyRecord(rec), true, nil
	}
	return store.AnalysisRecord{}, false, nil
}

// AnalysesByOwner returns an owner's records, newest first.
func (s *Store) AnalysesByOwner(ctx context.Context, ownerID string, limit int) ([]store.AnalysisRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}

	var results []store.AnalysisRecord
	for _, id := range s.order {
		rec := s.records[id]
		if rec.OwnerID == ownerID {
			results = append(results, copyRecord(rec))
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func copyRecord(rec store.AnalysisRecord) store.AnalysisRecord {
	out := rec
	out.ContentIdeas = append([]store.ContentIdea(nil), rec.ContentIdeas...)
	out.SecondaryKeywords = append([]string(nil), rec.SecondaryKeywords...)
	out.MonetizationIdeas = append([]string(nil), rec.MonetizationIdeas...)
	return out
}
