// Package verify cross-checks decoded imports against wazero.
//
// wazero compiles the module with full validation and reports its imported
// functions and memories. Those are compared in order with the records the
// decoder produced. Tables and globals are not exposed by wazero and are
// not compared.
package verify

import (
	"context"

	"github.com/tetratelabs/wazero"
	"go.uber.org/zap"

	"github.com/wippyai/wasm-caps/errors"
	"github.com/wippyai/wasm-caps/wasm"
)

// Config holds configuration for a Verifier.
type Config struct {
	// MemoryLimitPages caps the memory a module may declare, in 64KB pages.
	// 0 means the wazero default.
	MemoryLimitPages uint32

	// Interpreter selects the interpreter instead of the compiler backend.
	// Compilation is skipped entirely, which is faster for one-shot checks.
	Interpreter bool
}

// Verifier holds a wazero runtime used only for compilation.
type Verifier struct {
	runtime wazero.Runtime
}

// New creates a verifier. A nil config uses the interpreter with defaults.
func New(ctx context.Context, cfg *Config) *Verifier {
	if cfg == nil {
		cfg = &Config{Interpreter: true}
	}

	var rc wazero.RuntimeConfig
	if cfg.Interpreter {
		rc = wazero.NewRuntimeConfigInterpreter()
	} else {
		rc = wazero.NewRuntimeConfig()
	}
	if cfg.MemoryLimitPages > 0 {
		rc = rc.WithMemoryLimitPages(cfg.MemoryLimitPages)
	}

	return &Verifier{runtime: wazero.NewRuntimeWithConfig(ctx, rc)}
}

// Close releases the underlying runtime.
func (v *Verifier) Close(ctx context.Context) error {
	return v.runtime.Close(ctx)
}

// Check compiles data and compares wazero's view of its imports with the
// decoded records.
func (v *Verifier) Check(ctx context.Context, data []byte, imports []wasm.Import) error {
	compiled, err := v.runtime.CompileModule(ctx, data)
	if err != nil {
		e := errors.InvalidData(errors.PhaseVerify, nil, "wazero rejected module")
		e.Cause = err
		return e
	}
	defer compiled.Close(ctx)

	var runtimeFuncs, runtimeMems []wasm.Import
	for _, fn := range compiled.ImportedFunctions() {
		mod, name, _ := fn.Import()
		runtimeFuncs = append(runtimeFuncs, wasm.Import{Module: mod, Name: name, Kind: wasm.ImportFunc})
	}
	for _, mem := range compiled.ImportedMemories() {
		mod, name, _ := mem.Import()
		runtimeMems = append(runtimeMems, wasm.Import{Module: mod, Name: name, Kind: wasm.ImportMemory})
	}

	wasm.Logger().Debug("verify",
		zap.Int("funcs", len(runtimeFuncs)),
		zap.Int("memories", len(runtimeMems)))

	if err := compare(wasm.ImportFunc, filter(imports, wasm.ImportFunc), runtimeFuncs); err != nil {
		return err
	}
	return compare(wasm.ImportMemory, filter(imports, wasm.ImportMemory), runtimeMems)
}

// Check verifies data with a throwaway interpreter runtime.
func Check(ctx context.Context, data []byte, imports []wasm.Import) error {
	v := New(ctx, nil)
	defer v.Close(ctx)
	return v.Check(ctx, data, imports)
}

func filter(imports []wasm.Import, kind wasm.ImportKind) []wasm.Import {
	var out []wasm.Import
	for _, imp := range imports {
		if imp.Kind == kind {
			out = append(out, imp)
		}
	}
	return out
}

func compare(kind wasm.ImportKind, decoded, runtime []wasm.Import) error {
	if len(decoded) != len(runtime) {
		return errors.New(errors.PhaseVerify, errors.KindMismatch).
			Detail("decoded %d %s imports, wazero reports %d", len(decoded), kind, len(runtime)).
			Build()
	}
	for i := range decoded {
		d, r := decoded[i], runtime[i]
		if d.Module != r.Module || d.Name != r.Name {
			return errors.New(errors.PhaseVerify, errors.KindMismatch).
				Path(d.Module, d.Name).
				Detail("%s import %d: decoded %s, wazero reports %s", kind, i, d.Key(), r.Key()).
				Value(i).
				Build()
		}
	}
	return nil
}
