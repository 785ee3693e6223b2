package application

import (
	"encoding/json"
	"fmt"
	"io"
)

// Reporter consumes the outcome of a monitoring pass for display
type Reporter interface {
	Report(result *PassResult) error
}

// WriterReporter writes a human-readable pass report to an io.Writer
type WriterReporter struct {
	w io.Writer
}

// NewWriterReporter creates a reporter writing to w
func NewWriterReporter(w io.Writer) *WriterReporter {
	return &WriterReporter{w: w}
}

func (r *WriterReporter) Report(result *PassResult) error {
	if len(result.Alerts) == 0 {
		_, err := fmt.Fprintln(r.w, "no alerts - all services are healthy")
		return err
	}

	fmt.Fprintf(r.w, "alerts triggered: %d\n", len(result.Alerts))
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(result.Alerts)
}
