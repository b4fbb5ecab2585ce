// Package errors provides structured error types for wasm-caps.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the section being decoded, the byte offset and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindSectionLengthMismatch).
//		Section("import").
//		Offset(42).
//		Detail("declared %d bytes, consumed %d", 10, 12).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NotFound(errors.PhaseReport, "format", name)
//	err := errors.Read(path, cause)
//
// All errors implement the standard error interface and support errors.Is/As.
// Two *Error values match under errors.Is when Phase and Kind are equal.
package errors
