package wasmcaps

import (
	"github.com/wippyai/wasm-caps/capability"
	"github.com/wippyai/wasm-caps/wasm"
)

// Inspect decodes the import section of a core module and classifies every
// import. A decode error is returned as is and no summary is produced.
func Inspect(data []byte) (*capability.Summary, error) {
	imports, err := wasm.DecodeImports(data)
	if err != nil {
		return nil, err
	}
	return capability.Classify(imports), nil
}
