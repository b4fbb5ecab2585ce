package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Is and As forward to the standard library so callers need only one errors import.
func Is(err, target error) bool { return stderrors.Is(err, target) }

func As(err error, target any) bool { return stderrors.As(err, target) }

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseRead     Phase = "read"     // reading the module from disk
	PhaseDecode   Phase = "decode"   // binary to import records
	PhaseClassify Phase = "classify" // records to capability summary
	PhaseConfig   Phase = "config"   // policy and flag loading
	PhasePolicy   Phase = "policy"   // policy evaluation
	PhaseVerify   Phase = "verify"   // cross-check against wazero
	PhaseReport   Phase = "report"   // output rendering
)

// Kind categorizes the error
type Kind string

const (
	KindBadHeader             Kind = "bad_header"
	KindTruncatedSection      Kind = "truncated_section"
	KindUnexpectedEOF         Kind = "unexpected_eof"
	KindSectionLengthMismatch Kind = "section_length_mismatch"
	KindInvalidUTF8           Kind = "invalid_utf8"
	KindUnknownImportKind     Kind = "unknown_import_kind"
	KindOverflow              Kind = "overflow"
	KindInvalidData           Kind = "invalid_data"
	KindInvalidInput          Kind = "invalid_input"
	KindUnsupported           Kind = "unsupported"
	KindNotFound              Kind = "not_found"
	KindPolicyViolation       Kind = "policy_violation"
	KindMismatch              Kind = "mismatch"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value   any
	Cause   error
	Phase   Phase
	Kind    Kind
	Section string
	Detail  string
	Path    []string
	Offset  int
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Section != "" {
		b.WriteString(" in ")
		b.WriteString(e.Section)
		b.WriteString(" section")
	}

	if e.Offset > 0 {
		fmt.Fprintf(&b, " (offset %d)", e.Offset)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Section sets the name of the section being decoded
func (b *Builder) Section(name string) *Builder {
	b.err.Section = name
	return b
}

// Offset sets the byte offset into the module
func (b *Builder) Offset(off int) *Builder {
	b.err.Offset = off
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Read creates the error surfaced when the module cannot be read
func Read(path string, cause error) *Error {
	return &Error{
		Phase:  PhaseRead,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("cannot read input %q", path),
		Cause:  cause,
	}
}

// ImportKey identifies a single import by namespace and symbol
type ImportKey struct {
	Namespace string // e.g., "wasi_unstable"
	Symbol    string // e.g., "fd_write"
}

func (k ImportKey) String() string {
	if k.Symbol == "" {
		return k.Namespace
	}
	return k.Namespace + "#" + k.Symbol
}

// PolicyViolationError is returned when a module uses capabilities an
// operator policy denies.
type PolicyViolationError struct {
	Violations []Violation
}

// Violation is a single import rejected by policy.
type Violation struct {
	Import ImportKey
	Bucket string
	Reason string
}

// Error groups violations by bucket, preserving first-seen order.
func (e *PolicyViolationError) Error() string {
	if len(e.Violations) == 0 {
		return "[policy] policy_violation: no violations specified"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d import(s) violate policy:\n", len(e.Violations))

	byBucket := make(map[string][]Violation)
	var order []string
	for _, v := range e.Violations {
		if _, exists := byBucket[v.Bucket]; !exists {
			order = append(order, v.Bucket)
		}
		byBucket[v.Bucket] = append(byBucket[v.Bucket], v)
	}

	for _, bucket := range order {
		b.WriteString("\n  ")
		b.WriteString(bucket)
		b.WriteString(":\n")
		for _, v := range byBucket[bucket] {
			b.WriteString("    - ")
			b.WriteString(v.Import.String())
			if v.Reason != "" {
				b.WriteString(" (")
				b.WriteString(v.Reason)
				b.WriteByte(')')
			}
			b.WriteByte('\n')
		}
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// Is reports whether target matches this error type
func (e *PolicyViolationError) Is(target error) bool {
	if _, ok := target.(*PolicyViolationError); ok {
		return true
	}
	if t, ok := target.(*Error); ok {
		return t.Phase == PhasePolicy && t.Kind == KindPolicyViolation
	}
	return false
}
