package wasmcaps_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wasmcaps "github.com/wippyai/wasm-caps"
	"github.com/wippyai/wasm-caps/capability"
	"github.com/wippyai/wasm-caps/errors"
	"github.com/wippyai/wasm-caps/wasm"
)

func sampleModule() []byte {
	m := &wasm.Module{
		Types: []wasm.FuncType{{Params: []byte{wasm.ValI32}}},
		Imports: []wasm.ImportEntry{
			wasm.FuncImport("wasi_unstable", "fd_write", 0),
			wasm.FuncImport("wasi_unstable", "sched_yield", 0),
			wasm.FuncImport("env", "custom_log", 0),
			wasm.FuncImport("wasi_unstable", "sock_accept", 0),
		},
		Sections: []wasm.RawSection{{ID: wasm.SectionCustom, Data: []byte{0x01, 'x', 0xde, 0xad}}},
	}
	return m.Encode()
}

func TestInspect(t *testing.T) {
	s, err := wasmcaps.Inspect(sampleModule())
	require.NoError(t, err)

	assert.Equal(t, 4, s.Total())
	assert.Equal(t, []string{"fd_write"}, s.IDs(capability.FileSystem))
	assert.Equal(t, []string{"sched_yield"}, s.IDs(capability.Process))
	assert.Equal(t, []string{"sock_accept"}, s.IDs(capability.UnknownWasiSymbol))
	assert.Equal(t, []string{"env#custom_log"}, s.IDs(capability.UnknownNamespace))
}

func TestInspectDecodeErrorYieldsNoSummary(t *testing.T) {
	data := sampleModule()
	s, err := wasmcaps.Inspect(data[:len(data)-3])

	require.Error(t, err)
	assert.Nil(t, s)
	assert.True(t, errors.Is(err, wasm.ErrTruncatedSection), "got %v", err)
}

func TestInspectNoImports(t *testing.T) {
	s, err := wasmcaps.Inspect((&wasm.Module{}).Encode())
	require.NoError(t, err)
	assert.Zero(t, s.Total())
}

func TestInspectConcurrent(t *testing.T) {
	data := sampleModule()
	want, err := wasmcaps.Inspect(data)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]*capability.Summary, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = wasmcaps.Inspect(data)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}
