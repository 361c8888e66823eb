package store

import (
	"context"
	"fmt"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS grammar_checks (
	id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
	original_text text NOT NULL,
	corrected_text text NOT NULL,
	issues jsonb NOT NULL DEFAULT '[]',
	score int NOT NULL CHECK (score >= 0 AND score <= 100),
	created_at timestamptz NOT NULL DEFAULT NOW()
)`

// EnsureSchema creates the grammar_checks table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, createTableSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
