package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo backed by the global sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

// insertEvent assigns the next sequence number and appends a row to table.
func (r *eventRepo) insertEvent(ctx context.Context, table string, columns []string, values ...any) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	cols := append([]string{"sequence", "timestamp"}, columns...)
	vals := append([]any{seqNum, time.Now().UTC()}, values...)
	query, args := builder().Insert(table).Columns(cols...).Values(vals...).Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return err
	}
	return nil
}

// eventSelector selects columns from an event table filtered by opts,
// newest first.
func eventSelector(table string, columns []string, opts QueryOpts) *entsql.Selector {
	cols := append([]string{"id", "sequence", "timestamp"}, columns...)
	sel := builder().Select(cols...).
		From(entsql.Table(table)).
		OrderBy(entsql.Desc("sequence"))

	var preds []*entsql.Predicate
	if opts.After > 0 {
		preds = append(preds, entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("timestamp", opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("timestamp", opts.To.UTC()))
	}
	if opts.Mode != "" && table != tableLLMEvents {
		preds = append(preds, entsql.EQ("mode", opts.Mode))
	}
	if opts.AttemptID != "" && table != tableLLMEvents {
		preds = append(preds, entsql.EQ("attempt_id", opts.AttemptID))
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	return sel
}

var answerColumns = []string{
	"attempt_id", "mode", "level", "item_id", "phase", "cycle",
	"expected", "given", "correct", "mistake", "time_ms",
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	err := r.insertEvent(ctx, tableAnswerEvents, answerColumns,
		data.AttemptID, data.Mode, data.Level, data.ItemID, data.Phase, data.Cycle,
		data.Expected, data.Given, data.Correct, data.Mistake, data.TimeMs,
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAnswerEvents(ctx context.Context, opts QueryOpts) ([]AnswerEventRecord, error) {
	query, args := eventSelector(tableAnswerEvents, answerColumns, opts).Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}
	defer rows.Close()

	var out []AnswerEventRecord
	for rows.Next() {
		var e AnswerEventRecord
		if err := rows.Scan(&e.ID, &e.Sequence, &e.Timestamp,
			&e.AttemptID, &e.Mode, &e.Level, &e.ItemID, &e.Phase, &e.Cycle,
			&e.Expected, &e.Given, &e.Correct, &e.Mistake, &e.TimeMs,
		); err != nil {
			return nil, fmt.Errorf("scan answer event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *eventRepo) MissedItems(ctx context.Context, mode string, limit int) ([]MissedItemStat, error) {
	misses := "SUM(CASE WHEN `correct` THEN 0 ELSE 1 END)"
	sel := builder().Select(
		"item_id",
		entsql.As("MAX(level)", "level"),
		entsql.As(entsql.Count("*"), "answers"),
		entsql.As(misses, "misses"),
		entsql.As("MAX(expected)", "expected"),
	).
		From(entsql.Table(tableAnswerEvents)).
		GroupBy("item_id").
		Having(entsql.GT("misses", 0)).
		OrderBy(entsql.Desc("misses"), "item_id")
	if mode != "" {
		sel.Where(entsql.EQ("mode", mode))
	}
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query missed items: %w", err)
	}
	defer rows.Close()

	var out []MissedItemStat
	for rows.Next() {
		var st MissedItemStat
		if err := rows.Scan(&st.ItemID, &st.Level, &st.Answers, &st.Misses, &st.Expected); err != nil {
			return nil, fmt.Errorf("scan missed item: %w", err)
		}
		out = append(out, st)
	}
	return out, rows.Err()
}
