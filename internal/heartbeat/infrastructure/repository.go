package infrastructure

import (
	"context"

	"kestrel-v0/db"
	"kestrel-v0/internal/heartbeat/domain"
)

// defaultListLimit caps unbounded list queries
const defaultListLimit = 100

// Repository implements the monitoring audit store using SQLite
type Repository struct {
	readDB  *db.Queries
	writeDB *db.Queries
}

// NewRepository creates a new SQLite audit repository
func NewRepository(readDB *db.Queries, writeDB *db.Queries) *Repository {
	return &Repository{
		readDB:  readDB,
		writeDB: writeDB,
	}
}

// InsertRun records a monitoring pass
func (r *Repository) InsertRun(ctx context.Context, run domain.Run) error {
	_, err := r.writeDB.InsertRun(ctx, db.InsertRunParams{
		ID:              run.ID,
		Source:          run.Source,
		StartedAt:       run.StartedAt,
		TotalRecords:    int64(run.TotalRecords),
		ValidEvents:     int64(run.ValidEvents),
		RejectedRecords: int64(run.RejectedRecords),
		AlertCount:      int64(run.AlertCount),
	})
	return err
}

// InsertAlert records an alert emitted by a pass
func (r *Repository) InsertAlert(ctx context.Context, runID string, alert domain.Alert) error {
	_, err := r.writeDB.InsertAlert(ctx, db.InsertAlertParams{
		RunID:   runID,
		Service: alert.Service,
		AlertAt: alert.AlertAt,
	})
	return err
}

// ListRuns returns recorded passes, newest first
func (r *Repository) ListRuns(ctx context.Context, filters domain.RunFilters) ([]domain.Run, error) {
	limit := filters.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := r.readDB.ListRuns(ctx, db.ListRunsParams{
		Limit:  int64(limit),
		Offset: int64(filters.Offset),
	})
	if err != nil {
		return nil, err
	}

	runs := make([]domain.Run, len(rows))
	for i, row := range rows {
		runs[i] = domain.Run{
			ID:              row.ID,
			Source:          row.Source,
			StartedAt:       row.StartedAt,
			TotalRecords:    int(row.TotalRecords),
			ValidEvents:     int(row.ValidEvents),
			RejectedRecords: int(row.RejectedRecords),
			AlertCount:      int(row.AlertCount),
		}
	}

	return runs, nil
}

// ListAlerts returns recorded alerts, newest first, optionally filtered by
// service
func (r *Repository) ListAlerts(ctx context.Context, filters domain.AlertFilters) ([]domain.StoredAlert, error) {
	limit := filters.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	var rows []db.Alert
	var err error
	if filters.Service != nil {
		rows, err = r.readDB.ListAlertsByService(ctx, db.ListAlertsByServiceParams{
			Service: *filters.Service,
			Limit:   int64(limit),
			Offset:  int64(filters.Offset),
		})
	} else {
		rows, err = r.readDB.ListAlerts(ctx, db.ListAlertsParams{
			Limit:  int64(limit),
			Offset: int64(filters.Offset),
		})
	}
	if err != nil {
		return nil, err
	}

	alerts := make([]domain.StoredAlert, len(rows))
	for i, row := range rows {
		alerts[i] = domain.StoredAlert{
			Alert: domain.NewAlert(row.Service, row.AlertAt),
			RunID: row.RunID,
		}
	}

	return alerts, nil
}
