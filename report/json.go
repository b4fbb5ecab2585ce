package report

import (
	"encoding/json"
	"io"
)

// JSONFormatter writes the report as a JSON document.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Name returns the formatter name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// Description returns the formatter description.
func (f *JSONFormatter) Description() string {
	return "JSON document"
}

// Format writes the report.
func (f *JSONFormatter) Format(w io.Writer, r *Report, opts Options) error {
	enc := json.NewEncoder(w)
	if !opts.Compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(NewDocument(r))
}
