package domain

import (
	"context"
	"time"
)

// Run records what one monitoring pass saw and concluded. Runs are an audit
// trail only; no detector state survives between passes.
type Run struct {
	ID              string
	Source          string
	StartedAt       time.Time
	TotalRecords    int
	ValidEvents     int
	RejectedRecords int
	AlertCount      int
}

// StoredAlert is an alert together with the run that emitted it.
type StoredAlert struct {
	Alert
	RunID string
}

// RunFilters defines filtering options for listing runs
type RunFilters struct {
	Limit  int
	Offset int
}

// AlertFilters defines filtering options for listing stored alerts
type AlertFilters struct {
	Service *string
	Limit   int
	Offset  int
}

// Repository defines the interface for the monitoring audit store
type Repository interface {
	InsertRun(ctx context.Context, run Run) error
	InsertAlert(ctx context.Context, runID string, alert Alert) error
	ListRuns(ctx context.Context, filters RunFilters) ([]Run, error)
	ListAlerts(ctx context.Context, filters AlertFilters) ([]StoredAlert, error)
}
