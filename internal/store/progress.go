package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var progressColumns = []string{
	"mode", "level", "completed", "total_items", "correct_count", "unlocked", "updated_at",
}

// progressRepo implements ProgressRepo with ent's SQL builders.
type progressRepo struct {
	db *sql.DB
}

func (r *progressRepo) GetProgress(ctx context.Context, mode string, level int) (*LevelProgressData, error) {
	query, args := builder().Select(progressColumns...).
		From(entsql.Table(tableLevelProgress)).
		Where(entsql.And(entsql.EQ("mode", mode), entsql.EQ("level", level))).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query progress: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	d, err := scanProgress(rows)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *progressRepo) UpsertProgress(ctx context.Context, data LevelProgressData) error {
	query, args := builder().Insert(tableLevelProgress).
		Columns(progressColumns...).
		Values(data.Mode, data.Level, data.Completed, data.TotalItems, data.CorrectCount, data.Unlocked, time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns("mode", "level"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert progress: %w", err)
	}
	return nil
}

func (r *progressRepo) UnlockLevel(ctx context.Context, mode string, level, totalItems int) error {
	now := time.Now().UTC()
	query, args := builder().Insert(tableLevelProgress).
		Columns(progressColumns...).
		Values(mode, level, false, totalItems, 0, true, now).
		OnConflict(
			entsql.ConflictColumns("mode", "level"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				u.Set("unlocked", true)
				u.Set("updated_at", now)
			}),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("unlock level: %w", err)
	}
	return nil
}

func (r *progressRepo) ListProgress(ctx context.Context, mode string) ([]LevelProgressData, error) {
	sel := builder().Select(progressColumns...).
		From(entsql.Table(tableLevelProgress)).
		OrderBy("level", "mode")
	if mode != "" {
		sel.Where(entsql.EQ("mode", mode))
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	defer rows.Close()

	var out []LevelProgressData
	for rows.Next() {
		d, err := scanProgress(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *progressRepo) ResetProgress(ctx context.Context, mode string, level int) error {
	upd := builder().Update(tableLevelProgress).
		Set("completed", false).
		Set("correct_count", 0).
		Set("updated_at", time.Now().UTC())
	if p := progressFilter(mode, level); p != nil {
		upd.Where(p)
	}
	query, args := upd.Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	return nil
}

func (r *progressRepo) DeleteProgress(ctx context.Context, mode string) error {
	del := builder().Delete(tableLevelProgress)
	if p := progressFilter(mode, 0); p != nil {
		del.Where(p)
	}
	query, args := del.Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete progress: %w", err)
	}
	return nil
}

// progressFilter matches mode and level, treating zero values as wildcards.
func progressFilter(mode string, level int) *entsql.Predicate {
	var preds []*entsql.Predicate
	if mode != "" {
		preds = append(preds, entsql.EQ("mode", mode))
	}
	if level > 0 {
		preds = append(preds, entsql.EQ("level", level))
	}
	switch len(preds) {
	case 0:
		return nil
	case 1:
		return preds[0]
	default:
		return entsql.And(preds...)
	}
}

func scanProgress(rows *sql.Rows) (LevelProgressData, error) {
	var d LevelProgressData
	if err := rows.Scan(&d.Mode, &d.Level, &d.Completed, &d.TotalItems, &d.CorrectCount, &d.Unlocked, &d.UpdatedAt); err != nil {
		return d, fmt.Errorf("scan progress: %w", err)
	}
	return d, nil
}
