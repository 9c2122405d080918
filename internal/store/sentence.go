package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var sentenceColumns = []string{
	"item_id", "position", "level", "category", "source", "target", "note", "fetched_at",
}

// sentenceBatch keeps each insert well under SQLite's bound parameter limit.
const sentenceBatch = 500

// sentenceRepo implements SentenceRepo. The cache holds exactly one set.
type sentenceRepo struct {
	db *sql.DB
}

func (r *sentenceRepo) ReplaceSentences(ctx context.Context, items []CachedSentenceData) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	query, args := builder().Delete(tableCachedSentences).Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear sentence cache: %w", err)
	}

	now := time.Now().UTC()
	for start := 0; start < len(items); start += sentenceBatch {
		end := min(start+sentenceBatch, len(items))
		ins := builder().Insert(tableCachedSentences).Columns(sentenceColumns...)
		for i := start; i < end; i++ {
			it := items[i]
			ins.Values(it.ItemID, i, it.Level, it.Category, it.Source, it.Target, it.Note, now)
		}
		query, args = ins.Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("write sentence cache: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit sentence cache: %w", err)
	}
	return nil
}

func (r *sentenceRepo) LoadSentences(ctx context.Context) ([]CachedSentenceData, time.Time, error) {
	query, args := builder().Select(sentenceColumns...).
		From(entsql.Table(tableCachedSentences)).
		OrderBy("position").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("query sentence cache: %w", err)
	}
	defer rows.Close()

	var (
		out       []CachedSentenceData
		fetchedAt time.Time
	)
	for rows.Next() {
		var (
			d   CachedSentenceData
			pos int
			at  time.Time
		)
		if err := rows.Scan(&d.ItemID, &pos, &d.Level, &d.Category, &d.Source, &d.Target, &d.Note, &at); err != nil {
			return nil, time.Time{}, fmt.Errorf("scan cached sentence: %w", err)
		}
		if at.After(fetchedAt) {
			fetchedAt = at
		}
		out = append(out, d)
	}
	return out, fetchedAt, rows.Err()
}
