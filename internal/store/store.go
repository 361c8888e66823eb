// Package store provides PostgreSQL persistence for grammar check
// results. Results are stored as documents: the issue list lives in a
// JSONB column keyed by a generated UUID.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/grammar-checker/internal/check"
)

// Store wraps a PostgreSQL connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// CheckRecord is a persisted grammar check result.
type CheckRecord struct {
	ID            uuid.UUID     `json:"id"`
	OriginalText  string        `json:"original_text"`
	CorrectedText string        `json:"corrected_text"`
	Issues        []check.Issue `json:"issues"`
	Score         int           `json:"score"`
	CreatedAt     time.Time     `json:"created_at"`
}

// Connect establishes a connection pool to the database.
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// SaveCheck persists one completed grammar check and returns the generated
// document ID.
func (s *Store) SaveCheck(ctx context.Context, originalText string, result *check.Result) (uuid.UUID, error) {
	issues, err := json.Marshal(result.Issues)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal issues: %w", err)
	}

	var id uuid.UUID
	err = s.pool.QueryRow(ctx,
		`INSERT INTO grammar_checks (original_text, corrected_text, issues, score)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		originalText, result.CorrectedText, issues, result.Score,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save check result: %w", err)
	}
	return id, nil
}

// GetCheck retrieves a persisted check by ID. Returns nil without error
// when no record exists.
func (s *Store) GetCheck(ctx context.Context, id uuid.UUID) (*CheckRecord, error) {
	var (
		record CheckRecord
		issues []byte
	)
	err := s.pool.QueryRow(ctx,
		`SELECT id, original_text, corrected_text, issues, score, created_at
		 FROM grammar_checks WHERE id = $1`,
		id,
	).Scan(&record.ID, &record.OriginalText, &record.CorrectedText, &issues, &record.Score, &record.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get check %s: %w", id, err)
	}

	if err := json.Unmarshal(issues, &record.Issues); err != nil {
		return nil, fmt.Errorf("failed to unmarshal issues for check %s: %w", id, err)
	}
	return &record, nil
}
