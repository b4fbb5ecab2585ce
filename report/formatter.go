// Package report renders capability summaries.
// Formatters convert a Report to a specific output format (text, json, yaml, toml).
package report

import (
	"io"
	"slices"
	"strings"

	"github.com/wippyai/wasm-caps/capability"
	"github.com/wippyai/wasm-caps/errors"
)

// Report is the input handed to every formatter.
type Report struct {
	Summary    *capability.Summary
	Source     string
	Violations []errors.Violation
}

// Formatter converts a report to a specific output format.
type Formatter interface {
	// Name returns the formatter name (e.g., "text", "json").
	Name() string

	// Description returns a human-readable description.
	Description() string

	// Format writes the report.
	Format(w io.Writer, r *Report, opts Options) error
}

// Options configures formatting behavior.
type Options struct {
	// Verbose lists the member symbols of every resource bucket.
	Verbose bool

	// Color enables lipgloss styling in the text format.
	Color bool

	// Compact minimizes whitespace (json only).
	Compact bool
}

var formatters = map[string]Formatter{}

func register(f Formatter) {
	formatters[f.Name()] = f
}

func init() {
	register(NewTextFormatter())
	register(NewJSONFormatter())
	register(NewYAMLFormatter())
	register(NewTOMLFormatter())
}

// Get returns a formatter by name, case-insensitively.
func Get(name string) (Formatter, error) {
	f, ok := formatters[strings.ToLower(name)]
	if !ok {
		e := errors.NotFound(errors.PhaseReport, "format", name)
		e.Detail += " (available: " + strings.Join(Names(), ", ") + ")"
		e.Value = name
		return nil, e
	}
	return f, nil
}

// Names returns the registered formatter names, sorted.
func Names() []string {
	names := make([]string, 0, len(formatters))
	for n := range formatters {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Render looks up the named formatter and writes the report with it.
func Render(w io.Writer, format string, r *Report, opts Options) error {
	f, err := Get(format)
	if err != nil {
		return err
	}
	return f.Format(w, r, opts)
}
