package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
)

// eventTables share one sequence; see ent/schema.EventMixin.
var eventTables = []string{tableAnswerEvents, tableAttemptEvents, tableLLMEvents}

// sequenceCounter hands out the global event sequence. The value lives in a
// one-row table so it survives restarts and is never reused.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter creates the counter row and moves it past any sequence
// already present in the event tables, so a reset or hand-edited counter
// cannot hand out a duplicate.
func newSequenceCounter(ctx context.Context, db *sql.DB) (*sequenceCounter, error) {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS global_sequence (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			next_val INTEGER NOT NULL
		)`,
		`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`,
		`UPDATE global_sequence SET next_val = MAX(next_val, (` + maxSequenceQuery() + `) + 1) WHERE id = 1`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return nil, fmt.Errorf("init event sequence: %w", err)
		}
	}
	return &sequenceCounter{db: db}, nil
}

func maxSequenceQuery() string {
	parts := make([]string, len(eventTables))
	for i, t := range eventTables {
		parts[i] = "SELECT COALESCE(MAX(sequence), 0) AS s FROM " + t
	}
	return "SELECT MAX(s) FROM (" + strings.Join(parts, " UNION ALL ") + ")"
}

// Next reserves and returns one sequence number.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next event sequence: %w", err)
	}
	return seq, nil
}
