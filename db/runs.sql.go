package db

import (
	"context"
	"time"
)

const insertRun = `-- name: InsertRun :one
INSERT INTO runs (id, source, started_at, total_records, valid_events, rejected_records, alert_count)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING id, source, started_at, total_records, valid_events, rejected_records, alert_count
`

type InsertRunParams struct {
	ID              string
	Source          string
	StartedAt       time.Time
	TotalRecords    int64
	ValidEvents     int64
	RejectedRecords int64
	AlertCount      int64
}

func (q *Queries) InsertRun(ctx context.Context, arg InsertRunParams) (Run, error) {
	row := q.db.QueryRowContext(ctx, insertRun,
		arg.ID,
		arg.Source,
		arg.StartedAt,
		arg.TotalRecords,
		arg.ValidEvents,
		arg.RejectedRecords,
		arg.AlertCount,
	)
	var i Run
	err := row.Scan(
		&i.ID,
		&i.Source,
		&i.StartedAt,
		&i.TotalRecords,
		&i.ValidEvents,
		&i.RejectedRecords,
		&i.AlertCount,
	)
	return i, err
}

const listRuns = `-- name: ListRuns :many
SELECT id, source, started_at, total_records, valid_events, rejected_records, alert_count
FROM runs
ORDER BY started_at DESC
LIMIT ? OFFSET ?
`

type ListRunsParams struct {
	Limit  int64
	Offset int64
}

func (q *Queries) ListRuns(ctx context.Context, arg ListRunsParams) ([]Run, error) {
	rows, err := q.db.QueryContext(ctx, listRuns, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Run
	for rows.Next() {
		var i Run
		if err := rows.Scan(
			&i.ID,
			&i.Source,
			&i.StartedAt,
			&i.TotalRecords,
			&i.ValidEvents,
			&i.RejectedRecords,
			&i.AlertCount,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
