// Package wasmcaps reports which host capabilities a WebAssembly module
// expects, by decoding its import table and classifying each import.
//
// # Architecture Overview
//
//	wasmcaps/            Inspect: decode + classify in one call
//	├── wasm/            Import section decoder over untrusted bytes
//	├── capability/      Fixed WASI capability taxonomy and Summary
//	├── policy/          Operator policies evaluated against a Summary
//	├── report/          Text, JSON, YAML and TOML renderers
//	├── verify/          Cross-check of decoded imports against wazero
//	├── errors/          Structured error types
//	└── cmd/wasm-caps/   Command line tool
//
// # Quick Start
//
//	data, err := os.ReadFile("module.wasm")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	summary, err := wasmcaps.Inspect(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println(summary.Total(), summary.ResourceTypes())
//
// # Taxonomy
//
// Imports from the wasi_unstable namespace are classified by symbol into
// file system, environment, process and network buckets. Unrecognized WASI
// symbols and imports from any other namespace are kept in two unknown
// buckets, so a well-formed module never fails classification.
//
// # Concurrency
//
// Inspect holds no shared state and may be called concurrently on
// independent buffers.
package wasmcaps
