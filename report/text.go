package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/wasm-caps/capability"
)

var (
	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA"))

	countStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	resourceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	symbolStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
)

// verboseHeadings are printed above each resource bucket's symbols.
var verboseHeadings = map[capability.Bucket]string{
	capability.FileSystem:  "File system calls:",
	capability.Environment: "Environment system calls:",
	capability.Process:     "Process system calls:",
	capability.Network:     "Network system calls:",
}

// TextFormatter writes the human readable report.
type TextFormatter struct{}

// NewTextFormatter creates a new text formatter.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

// Name returns the formatter name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Description returns the formatter description.
func (f *TextFormatter) Description() string {
	return "Human readable summary"
}

// Format writes the report.
func (f *TextFormatter) Format(w io.Writer, r *Report, opts Options) error {
	bw := bufio.NewWriter(w)
	p := &printer{w: bw, color: opts.Color}
	s := r.Summary

	if r.Source != "" {
		p.line(p.style(headingStyle, r.Source))
	}

	total := s.Total()
	p.line(fmt.Sprintf("There %s %s total external API call%s.",
		toBe(total), p.style(countStyle, fmt.Sprint(total)), plural(total)))

	if wasi := s.WASICount(); wasi > 0 {
		p.line("This binary is expecting a WASI compliant runtime.")
		p.line(fmt.Sprintf("\tThe binary uses %s WASI call%s",
			p.style(countStyle, fmt.Sprint(wasi)), plural(wasi)))

		p.line("\tThe following system resource types are used:")
		var types []string
		for _, b := range s.ResourceTypes() {
			types = append(types, p.style(resourceStyle, b.Label()))
		}
		p.line("\t\t" + strings.Join(types, ", "))

		if opts.Verbose {
			for _, b := range s.ResourceTypes() {
				p.line("\t" + p.style(headingStyle, verboseHeadings[b]))
				for _, id := range s.IDs(b) {
					p.line("\t\t" + p.style(symbolStyle, id))
				}
			}
		}

		if n := s.Count(capability.UnknownWasiSymbol); n > 0 {
			p.line(fmt.Sprintf("There %s %s unknown wasi sys call%s:",
				toBe(n), p.style(warnStyle, fmt.Sprint(n)), plural(n)))
			for _, id := range s.IDs(capability.UnknownWasiSymbol) {
				p.line("\t" + id)
			}
		}
	}

	if s.Count(capability.UnknownNamespace) > 0 {
		p.line(p.style(headingStyle, "Unknown imports:"))
		for _, id := range s.IDs(capability.UnknownNamespace) {
			p.line("\t" + id)
		}
	}

	if len(r.Violations) > 0 {
		p.line(p.style(warnStyle, "Policy violations:"))
		for _, v := range r.Violations {
			p.line(fmt.Sprintf("\t%s: %s (%s)", v.Bucket, v.Import, v.Reason))
		}
	}

	if p.err != nil {
		return p.err
	}
	return bw.Flush()
}

type printer struct {
	w     io.Writer
	err   error
	color bool
}

func (p *printer) line(s string) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintln(p.w, s)
}

func (p *printer) style(st lipgloss.Style, s string) string {
	if !p.color {
		return s
	}
	return st.Render(s)
}

func toBe(n int) string {
	if n == 1 {
		return "is"
	}
	return "are"
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
