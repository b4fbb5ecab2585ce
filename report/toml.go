package report

import (
	"io"

	"github.com/pelletier/go-toml/v2"
)

// TOMLFormatter writes the report as a TOML document.
type TOMLFormatter struct{}

// NewTOMLFormatter creates a new TOML formatter.
func NewTOMLFormatter() *TOMLFormatter {
	return &TOMLFormatter{}
}

// Name returns the formatter name.
func (f *TOMLFormatter) Name() string {
	return "toml"
}

// Description returns the formatter description.
func (f *TOMLFormatter) Description() string {
	return "TOML document"
}

// Format writes the report.
func (f *TOMLFormatter) Format(w io.Writer, r *Report, _ Options) error {
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	return enc.Encode(NewDocument(r))
}
