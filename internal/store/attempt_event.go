package store

import (
	"context"
	"fmt"
)

var attemptColumns = []string{
	"attempt_id", "mode", "level", "action", "total_items", "missed", "cycle",
}

func (r *eventRepo) AppendAttemptEvent(ctx context.Context, data AttemptEventData) error {
	err := r.insertEvent(ctx, tableAttemptEvents, attemptColumns,
		data.AttemptID, data.Mode, data.Level, data.Action, data.TotalItems, data.Missed, data.Cycle,
	)
	if err != nil {
		return fmt.Errorf("save attempt event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAttemptEvents(ctx context.Context, opts QueryOpts) ([]AttemptEventRecord, error) {
	query, args := eventSelector(tableAttemptEvents, attemptColumns, opts).Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempt events: %w", err)
	}
	defer rows.Close()

	var out []AttemptEventRecord
	for rows.Next() {
		var e AttemptEventRecord
		if err := rows.Scan(&e.ID, &e.Sequence, &e.Timestamp,
			&e.AttemptID, &e.Mode, &e.Level, &e.Action, &e.TotalItems, &e.Missed, &e.Cycle,
		); err != nil {
			return nil, fmt.Errorf("scan attempt event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
