package report

import (
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLFormatter writes the report as a YAML document.
type YAMLFormatter struct{}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter() *YAMLFormatter {
	return &YAMLFormatter{}
}

// Name returns the formatter name.
func (f *YAMLFormatter) Name() string {
	return "yaml"
}

// Description returns the formatter description.
func (f *YAMLFormatter) Description() string {
	return "YAML document"
}

// Format writes the report.
func (f *YAMLFormatter) Format(w io.Writer, r *Report, _ Options) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(NewDocument(r))
}
