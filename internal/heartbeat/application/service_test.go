package application

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"kestrel-v0/internal/heartbeat/domain"
)

func mustParse(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := domain.ParseTimestamp(value)
	if err != nil {
		t.Fatalf("bad fixture timestamp %q: %v", value, err)
	}
	return ts
}

// mockRepository is a mock implementation of domain.Repository
type mockRepository struct {
	runs   []domain.Run
	alerts []domain.StoredAlert
	err    error
}

func (m *mockRepository) InsertRun(ctx context.Context, run domain.Run) error {
	if m.err != nil {
		return m.err
	}
	m.runs = append(m.runs, run)
	return nil
}

func (m *mockRepository) InsertAlert(ctx context.Context, runID string, alert domain.Alert) error {
	if m.err != nil {
		return m.err
	}
	m.alerts = append(m.alerts, domain.StoredAlert{Alert: alert, RunID: runID})
	return nil
}

func (m *mockRepository) ListRuns(ctx context.Context, filters domain.RunFilters) ([]domain.Run, error) {
	return m.runs, m.err
}

func (m *mockRepository) ListAlerts(ctx context.Context, filters domain.AlertFilters) ([]domain.StoredAlert, error) {
	return m.alerts, m.err
}

func newTestService(t *testing.T, repo domain.Repository) *Service {
	t.Helper()
	detector, err := domain.NewDetector(60, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return NewService(&captureLogger{}, detector, repo)
}

func TestService_MonitorRecords(t *testing.T) {
	repo := &mockRepository{}
	service := newTestService(t, repo)

	records := []any{
		map[string]any{"service": "email", "timestamp": "2025-08-04T10:00:00Z"},
		map[string]any{"service": "email", "timestamp": "2025-08-04T10:01:00Z"},
		map[string]any{"service": "email", "timestamp": "2025-08-04T10:02:00Z"},
		map[string]any{"service": "email", "timestamp": "2025-08-04T10:06:00Z"},
		"not a dict",
	}

	result := service.MonitorRecords(context.Background(), "test", records)

	if result.TotalRecords != 5 || result.ValidEvents != 4 || result.RejectedRecords != 1 {
		t.Errorf("unexpected counts: %+v", result)
	}
	if len(result.Alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(result.Alerts))
	}
	if got := result.Alerts[0].FormatAlertAt(); got != "2025-08-04T10:05:00Z" {
		t.Errorf("expected alert at 2025-08-04T10:05:00Z, got %s", got)
	}
	if result.RunID == "" {
		t.Error("expected a run ID")
	}

	// Pass recorded in the audit store
	if len(repo.runs) != 1 {
		t.Fatalf("expected 1 recorded run, got %d", len(repo.runs))
	}
	run := repo.runs[0]
	if run.ID != result.RunID || run.Source != "test" || run.AlertCount != 1 {
		t.Errorf("unexpected recorded run: %+v", run)
	}
	if len(repo.alerts) != 1 || repo.alerts[0].RunID != result.RunID {
		t.Errorf("unexpected recorded alerts: %+v", repo.alerts)
	}
}

func TestService_MonitorRecords_NilRepo(t *testing.T) {
	service := newTestService(t, nil)

	result := service.MonitorRecords(context.Background(), "test", []any{
		map[string]any{"service": "solo", "timestamp": "2025-08-04T10:00:00Z"},
	})

	if len(result.Alerts) != 0 {
		t.Errorf("expected no alerts, got %v", result.Alerts)
	}
}

func TestService_MonitorRecords_AuditFailureDoesNotFailPass(t *testing.T) {
	repo := &mockRepository{err: errors.New("disk full")}
	service := newTestService(t, repo)

	result := service.MonitorRecords(context.Background(), "test", []any{
		map[string]any{"service": "worker", "timestamp": "2025-08-04T10:00:00Z"},
		map[string]any{"service": "worker", "timestamp": "2025-08-04T10:04:00Z"},
	})

	if len(result.Alerts) != 1 {
		t.Errorf("expected the pass to succeed despite audit failure, got %+v", result)
	}
}

func TestService_MonitorFile_MissingFile(t *testing.T) {
	service := newTestService(t, nil)

	result := service.MonitorFile(context.Background(), filepath.Join(t.TempDir(), "missing.json"))

	if result.TotalRecords != 0 || len(result.Alerts) != 0 {
		t.Errorf("expected empty pass for missing file, got %+v", result)
	}
}

func TestService_MonitorFile_MalformedTopLevel(t *testing.T) {
	service := newTestService(t, nil)

	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte(`"not a batch"`), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	result := service.MonitorFile(context.Background(), path)

	if result.TotalRecords != 0 || len(result.Alerts) != 0 {
		t.Errorf("expected empty pass for malformed source, got %+v", result)
	}
}

func TestService_MonitorBatch(t *testing.T) {
	service := newTestService(t, nil)

	body := `[
		{"service": "worker", "timestamp": "2025-08-04T10:00:00Z"},
		{"service": "worker", "timestamp": "2025-08-04T10:04:00Z"}
	]`

	result, err := service.MonitorBatch(context.Background(), "api", []byte(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(result.Alerts))
	}

	_, err = service.MonitorBatch(context.Background(), "api", []byte(`{bad json`))
	if !errors.Is(err, ErrSourceMalformed) {
		t.Fatalf("expected ErrSourceMalformed, got %v", err)
	}
}

func TestWriterReporter_Report(t *testing.T) {
	tests := []struct {
		name   string
		result *PassResult
		want   []string
	}{
		{
			name:   "healthy",
			result: &PassResult{Alerts: []domain.Alert{}},
			want:   []string{"all services are healthy"},
		},
		{
			name: "alerts",
			result: &PassResult{Alerts: []domain.Alert{
				domain.NewAlert("email", mustParse(t, "2025-08-04T10:05:00Z")),
			}},
			want: []string{"alerts triggered: 1", `"service": "email"`, `"alert_at": "2025-08-04T10:05:00Z"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			reporter := NewWriterReporter(&buf)

			if err := reporter.Report(tt.result); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			out := buf.String()
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("report %q missing %q", out, want)
				}
			}
		})
	}
}
