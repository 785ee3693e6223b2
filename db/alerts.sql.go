package db

import (
	"context"
	"time"
)

const insertAlert = `-- name: InsertAlert :one
INSERT INTO alerts (run_id, service, alert_at)
VALUES (?, ?, ?)
RETURNING id, run_id, service, alert_at
`

type InsertAlertParams struct {
	RunID   string
	Service string
	AlertAt time.Time
}

func (q *Queries) InsertAlert(ctx context.Context, arg InsertAlertParams) (Alert, error) {
	row := q.db.QueryRowContext(ctx, insertAlert, arg.RunID, arg.Service, arg.AlertAt)
	var i Alert
	err := row.Scan(
		&i.ID,
		&i.RunID,
		&i.Service,
		&i.AlertAt,
	)
	return i, err
}

const listAlerts = `-- name: ListAlerts :many
SELECT id, run_id, service, alert_at
FROM alerts
ORDER BY alert_at DESC
LIMIT ? OFFSET ?
`

type ListAlertsParams struct {
	Limit  int64
	Offset int64
}

func (q *Queries) ListAlerts(ctx context.Context, arg ListAlertsParams) ([]Alert, error) {
	rows, err := q.db.QueryContext(ctx, listAlerts, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Alert
	for rows.Next() {
		var i Alert
		if err := rows.Scan(
			&i.ID,
			&i.RunID,
			&i.Service,
			&i.AlertAt,
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

const listAlertsByService = `-- name: ListAlertsByService :many
SELECT id, run_id, service, alert_at
FROM alerts
WHERE service = ?
ORDER BY alert_at DESC
LIMIT ? OFFSET ?
`

type ListAlertsByServiceParams struct {
	Service string
	Limit   int64
	Offset  int64
}

func (q *Queries) ListAlertsByService(ctx context.Context, arg ListAlertsByServiceParams) ([]Alert, error) {
	rows, err := q.db.QueryContext(ctx, listAlertsByService, arg.Service, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Alert
	for rows.Next() {
		var i Alert
		if err := rows.Scan(
			&i.ID,
			&i.RunID,
			&i.Service,
			&i.AlertAt,
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
