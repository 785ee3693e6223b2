package validation

import (
	"errors"
	"strings"
	"testing"
)

func TestValidationError(t *testing.T) {
	tests := []struct {
		name     string
		problems map[string]string
		path     []string
		wantMsg  string
	}{
		{
			name: "single problem",
			problems: map[string]string{
				"expected_interval_seconds": "expected interval should be more than zero",
			},
			path:    []string{"detector"},
			wantMsg: "validation errors found in 'detector'",
		},
		{
			name: "multiple problems",
			problems: map[string]string{
				"expected_interval_seconds": "expected interval should be more than zero",
				"allowed_misses":            "allowed misses should be more than zero",
			},
			path:    []string{"detector"},
			wantMsg: "validation errors found in 'detector'",
		},
		{
			name:     "joined path",
			problems: map[string]string{"field": "problem"},
			path:     []string{"config", "detector"},
			wantMsg:  "validation errors found in 'config.detector'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewValidationError(tt.problems, tt.path...)

			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("expected message containing %q, got %q", tt.wantMsg, err.Error())
			}

			for field, problem := range tt.problems {
				if !strings.Contains(err.Error(), field) || !strings.Contains(err.Error(), problem) {
					t.Errorf("expected message to mention %s: %s, got %q", field, problem, err.Error())
				}
			}
		})
	}
}

func TestValidationError_Is(t *testing.T) {
	err := NewValidationError(map[string]string{"field": "problem"}, "detector")

	var target *ValidationError
	if !errors.As(err, &target) {
		t.Error("expected errors.As to match *ValidationError")
	}

	other := NewValidationError(map[string]string{}, "other")
	if !errors.Is(err, other) {
		t.Error("expected errors.Is to match any *ValidationError")
	}
}

func TestValidationError_PrependPath(t *testing.T) {
	err := NewValidationError(map[string]string{"field": "problem"}, "detector")
	err.PrependPath("kestrel")

	if err.Path != "kestrel.detector" {
		t.Errorf("expected path 'kestrel.detector', got %q", err.Path)
	}
}
