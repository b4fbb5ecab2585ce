// Package wasm decodes the import table of WebAssembly binary modules.
//
// The decoder validates the 8-byte header, then walks the top-level section
// stream using only the generic (id, size) framing. Every section other than
// the import section is skipped by its declared length, so modules using any
// post-MVP proposal can be inspected as long as their imports use the four
// baseline kinds.
//
// # Decoding
//
//	data, _ := os.ReadFile("module.wasm")
//	imports, err := wasm.DecodeImports(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, imp := range imports {
//	    fmt.Printf("%s %s (%s)\n", imp.Module, imp.Name, imp.Kind)
//	}
//
// Kind-specific payloads (type index, table and memory limits, global type)
// are consumed only far enough to advance the cursor.
//
// # Errors
//
// All failures are *errors.Error values in the decode phase. Match them
// against the package sentinels:
//
//	errors.Is(err, wasm.ErrBadHeader)
//	errors.Is(err, wasm.ErrTruncatedSection)
//	errors.Is(err, wasm.ErrUnexpectedEOF)
//	errors.Is(err, wasm.ErrSectionLengthMismatch)
//	errors.Is(err, wasm.ErrInvalidText)
//	errors.Is(err, wasm.ErrUnknownImportKind)
//
// Length fields are always checked against the remaining input before any
// read or allocation.
//
// # Encoding
//
// Module.Encode builds small binaries containing a type section, an import
// section and arbitrary raw sections. It is used to produce fixtures:
//
//	m := &wasm.Module{
//	    Types:   []wasm.FuncType{{}},
//	    Imports: []wasm.ImportEntry{wasm.FuncImport("wasi_unstable", "fd_write", 0)},
//	}
//	data := m.Encode()
package wasm
