package report

import (
	"github.com/wippyai/wasm-caps/capability"
)

// Document is the serializable form of a report shared by the structured
// formatters. Bucket fields are always present, empty when unused.
type Document struct {
	Source            string      `json:"source,omitempty" yaml:"source,omitempty" toml:"source,omitempty"`
	ResourceTypes     []string    `json:"resource_types" yaml:"resource_types" toml:"resource_types"`
	FileSystem        []Import    `json:"file_system" yaml:"file_system" toml:"file_system"`
	Environment       []Import    `json:"environment" yaml:"environment" toml:"environment"`
	Process           []Import    `json:"process" yaml:"process" toml:"process"`
	Network           []Import    `json:"network" yaml:"network" toml:"network"`
	UnknownWasiSymbol []Import    `json:"unknown_wasi_symbol" yaml:"unknown_wasi_symbol" toml:"unknown_wasi_symbol"`
	UnknownNamespace  []Import    `json:"unknown_namespace" yaml:"unknown_namespace" toml:"unknown_namespace"`
	Violations        []Violation `json:"violations,omitempty" yaml:"violations,omitempty" toml:"violations,omitempty"`
	Total             int         `json:"total" yaml:"total" toml:"total"`
	WASI              int         `json:"wasi" yaml:"wasi" toml:"wasi"`
}

// Import is one classified import.
type Import struct {
	ID        string `json:"id" yaml:"id" toml:"id"`
	Namespace string `json:"namespace" yaml:"namespace" toml:"namespace"`
	Symbol    string `json:"symbol" yaml:"symbol" toml:"symbol"`
	Kind      string `json:"kind" yaml:"kind" toml:"kind"`
}

// Violation is one policy rejection.
type Violation struct {
	Namespace string `json:"namespace" yaml:"namespace" toml:"namespace"`
	Symbol    string `json:"symbol" yaml:"symbol" toml:"symbol"`
	Bucket    string `json:"bucket" yaml:"bucket" toml:"bucket"`
	Reason    string `json:"reason" yaml:"reason" toml:"reason"`
}

// NewDocument converts a report into its serializable form.
func NewDocument(r *Report) *Document {
	s := r.Summary
	doc := &Document{
		Source:            r.Source,
		Total:             s.Total(),
		WASI:              s.WASICount(),
		ResourceTypes:     []string{},
		FileSystem:        imports(s, capability.FileSystem),
		Environment:       imports(s, capability.Environment),
		Process:           imports(s, capability.Process),
		Network:           imports(s, capability.Network),
		UnknownWasiSymbol: imports(s, capability.UnknownWasiSymbol),
		UnknownNamespace:  imports(s, capability.UnknownNamespace),
	}
	for _, b := range s.ResourceTypes() {
		doc.ResourceTypes = append(doc.ResourceTypes, b.String())
	}
	for _, v := range r.Violations {
		doc.Violations = append(doc.Violations, Violation{
			Namespace: v.Import.Namespace,
			Symbol:    v.Import.Symbol,
			Bucket:    v.Bucket,
			Reason:    v.Reason,
		})
	}
	return doc
}

func imports(s *capability.Summary, b capability.Bucket) []Import {
	entries := s.Entries(b)
	out := make([]Import, 0, len(entries))
	for _, e := range entries {
		out = append(out, Import{
			ID:        e.ID(),
			Namespace: e.Namespace,
			Symbol:    e.Symbol,
			Kind:      e.Kind.String(),
		})
	}
	return out
}
