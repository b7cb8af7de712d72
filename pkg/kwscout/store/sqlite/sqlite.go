package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/kwscout/pkg/kwscout/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// Open opens a SQLite database with WAL mode enabled and initializes the
// schema.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS analyses (
	id TEXT PRIMARY KEY,
	owner_id TEXT NOT NULL,
	keyword TEXT NOT NULL,
	search_intent TEXT,
	target_audience TEXT,
	content_ideas TEXT,
	secondary_keywords TEXT,
	difficulty_analysis TEXT,
	monetization_ideas TEXT,
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_analyses_owner ON analyses(owner_id, created_at);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// InsertAnalysis stores an analysis record. Nested slices are stored as
// JSON text columns.
func (s *sqliteStore) InsertAnalysis(ctx context.Context, rec store.AnalysisRecord) error {
	ideas, err := json.Marshal(rec.ContentIdeas)
	if err != nil {
		return fmt.Errorf("encode content ideas: %w", err)
	}
	secondary, err := json.Marshal(rec.SecondaryKeywords)
	if err != nil {
		return fmt.Errorf("encode secondary keywords: %w", err)
	}
	monetization, err := json.Marshal(rec.MonetizationIdeas)
	if err != nil {
		return fmt.Errorf("encode monetization ideas: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO analyses (id, owner_id, keyword, search_intent, target_audience,
	content_ideas, secondary_keywords, difficulty_analysis, monetization_ideas, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.OwnerID, rec.Keyword, rec.SearchIntent, rec.TargetAudience,
		string(ideas), string(secondary), rec.DifficultyAnalysis, string(monetization),
		rec.CreatedAt.UTC().Format(time.RFC3339Nano))
	return err
}

// GetAnalysis returns a record by ID.
func (s *sqliteStore) GetAnalysis(ctx context.Context, id string) (store.AnalysisRecord, bool, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, owner_id, keyword, search_intent, target_audience,
	content_ideas, secondary_keywords, difficulty_analysis, monetization_ideas, created_at
FROM analyses WHERE id = ?`, id)

	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return store.AnalysisRecord{}, false, nil
	}
	if err != nil {
		return store.AnalysisRecord{}, false, err
	}
	return rec, true, nil
}

// AnalysesByOwner returns an owner's records, newest first.
func (s *sqliteStore) AnalysesByOwner(ctx context.Context, ownerID string, limit int) ([]store.AnalysisRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT id, owner_id, keyword, search_intent, target_audience,
	content_ideas, secondary_keywords, difficulty_analysis, monetization_ideas, created_at
FROM analyses WHERE owner_id = ?
ORDER BY created_at DESC LIMIT ?`, ownerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []store.AnalysisRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, rec)
	}
	return results, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (store.AnalysisRecord, error) {
	var rec store.AnalysisRecord
	var ideas, secondary, monetization, createdAt string

	if err := row.Scan(&rec.ID, &rec.OwnerID, &rec.Keyword, &rec.SearchIntent,
		&rec.TargetAudience, &ideas, &secondary, &rec.DifficultyAnalysis,
		&monetization, &createdAt); err != nil {
		return store.AnalysisRecord{}, err
	}

	if err := json.Unmarshal([]byte(ideas), &rec.ContentIdeas); err != nil {
		return store.AnalysisRecord{}, fmt.Errorf("decode content ideas: %w", err)
	}
	if err := json.Unmarshal([]byte(secondary), &rec.SecondaryKeywords); err != nil {
		return store.AnalysisRecord{}, fmt.Errorf("decode secondary keywords: %w", err)
	}
	if err := json.Unmarshal([]byte(monetization), &rec.MonetizationIdeas); err != nil {
		return store.AnalysisRecord{}, fmt.Errorf("decode monetization ideas: %w", err)
	}

	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return store.AnalysisRecord{}, fmt.Errorf("parse created_at: %w", err)
	}
	rec.CreatedAt = ts

	return rec, nil
}
