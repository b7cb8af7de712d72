package store

import (
	"context"
	"time"
)

// Store persists AI keyword-analysis records. There is no update or delete
// path; records are insert-only.
type Store interface {
	Close() error

	InsertAnalysis(ctx context.Context, rec AnalysisRecord) error
	GetAnalysis(ctx context.Context, id string) (AnalysisRecord, bool, error)
	AnalysesByOwner(ctx context.Context, ownerID string, limit int) ([]AnalysisRecord, error)
}

// ContentIdea is one suggested piece of content for a keyword.
type ContentIdea struct {
	Title string `json:"title"`
	Type  string `json:"type"`
}

// AnalysisRecord is a persisted AI keyword analysis.
type AnalysisRecord struct {
	ID                 string
	OwnerID            string
	Keyword            string
	SearchIntent       string
	TargetAudience     string
	ContentIdeas       []ContentIdea
	SecondaryKeywords  []string
	DifficultyAnalysis string
	MonetizationIdeas  []string
	CreatedAt          time.Time
}
