package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/wasm-caps/report"
	"github.com/wippyai/wasm-caps/wasm"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func sampleModule() []byte {
	m := &wasm.Module{
		Types: []wasm.FuncType{{}},
		Imports: []wasm.ImportEntry{
			wasm.FuncImport("wasi_unstable", "fd_write", 0),
			wasm.FuncImport("wasi_unstable", "sock_send", 0),
			wasm.FuncImport("env", "custom_log", 0),
		},
	}
	return m.Encode()
}

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := execute(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestExecuteText(t *testing.T) {
	path := writeFile(t, "app.wasm", sampleModule())

	code, out, errOut := run(t, path)
	require.Equal(t, exitOK, code, errOut)
	assert.Contains(t, out, "There are 3 total external API calls.\n")
	assert.Contains(t, out, "\t\tfile system, network\n")
	assert.Contains(t, out, "Unknown imports:\n\tenv#custom_log\n")
	assert.NotContains(t, out, "File system calls:")
}

func TestExecuteVerbose(t *testing.T) {
	path := writeFile(t, "app.wasm", sampleModule())

	code, out, _ := run(t, "-v", path)
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "\tFile system calls:\n\t\tfd_write\n")
	assert.Contains(t, out, "\tNetwork system calls:\n\t\tsock_send\n")
}

func TestExecuteJSON(t *testing.T) {
	path := writeFile(t, "app.wasm", sampleModule())

	code, out, _ := run(t, "--format", "json", path)
	require.Equal(t, exitOK, code)

	var doc report.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 3, doc.Total)
	assert.Equal(t, 2, doc.WASI)
	assert.Equal(t, []string{"file_system", "network"}, doc.ResourceTypes)
}

func TestExecuteFormatFromEnv(t *testing.T) {
	t.Setenv("WASMCAPS_FORMAT", "yaml")
	path := writeFile(t, "app.wasm", sampleModule())

	code, out, _ := run(t, path)
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "total: 3\n")
}

func TestExecuteUnknownFormat(t *testing.T) {
	path := writeFile(t, "app.wasm", sampleModule())

	code, out, errOut := run(t, "--format", "xml", path)
	assert.Equal(t, exitError, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "[config] invalid_input")
	assert.Contains(t, errOut, `format "xml" not found`)
}

func TestExecuteMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.wasm")

	code, _, errOut := run(t, path)
	assert.Equal(t, exitError, code)
	assert.Contains(t, errOut, "cannot read input")
}

func TestExecuteDecodeError(t *testing.T) {
	data := append([]byte{0x00, 0x61, 0x73, 0x6D, 0x01, 0x00, 0x00, 0x00}, 0x02, 0x0A, 0x01)
	path := writeFile(t, "bad.wasm", data)

	code, out, errOut := run(t, path)
	assert.Equal(t, exitError, code)
	assert.Empty(t, out, "no partial report")
	assert.Contains(t, errOut, "truncated_section")
}

func TestExecuteNoArgs(t *testing.T) {
	code, _, errOut := run(t)
	assert.Equal(t, exitError, code)
	assert.Contains(t, errOut, "accepts 1 arg")
}

func TestExecutePolicyViolation(t *testing.T) {
	path := writeFile(t, "app.wasm", sampleModule())
	pol := writeFile(t, "policy.yaml", []byte("deny: [network]\nallow_namespaces: [env]\n"))

	code, out, errOut := run(t, "--policy", pol, path)
	assert.Equal(t, exitViolation, code)
	assert.Contains(t, out, "Policy violations:\n\tnetwork: wasi_unstable#sock_send (network access denied)\n")
	assert.Contains(t, errOut, "1 import(s) violate policy")
}

func TestExecutePolicySatisfied(t *testing.T) {
	path := writeFile(t, "app.wasm", sampleModule())
	pol := writeFile(t, "policy.toml", []byte("deny = [\"process\"]\nallow_namespaces = [\"env\"]\nfail_on_unknown_namespace = true\n"))

	code, out, _ := run(t, "--policy", pol, path)
	assert.Equal(t, exitOK, code)
	assert.NotContains(t, out, "Policy violations")
}

func TestExecuteBadPolicy(t *testing.T) {
	path := writeFile(t, "app.wasm", sampleModule())
	pol := writeFile(t, "policy.yaml", []byte("deny: [gpu]\n"))

	code, _, errOut := run(t, "--policy", pol, path)
	assert.Equal(t, exitError, code)
	assert.Contains(t, errOut, "[config]")
}

func TestExecuteVerify(t *testing.T) {
	path := writeFile(t, "app.wasm", sampleModule())

	code, _, errOut := run(t, "--verify", path)
	assert.Equal(t, exitOK, code, errOut)
}

func TestExecuteVerifyRejected(t *testing.T) {
	m := &wasm.Module{Imports: []wasm.ImportEntry{wasm.FuncImport("env", "f", 3)}}
	path := writeFile(t, "app.wasm", m.Encode())

	code, _, errOut := run(t, "--verify", path)
	assert.Equal(t, exitError, code)
	assert.Contains(t, errOut, "[verify]")
}

func TestExecuteVerifyDecodeError(t *testing.T) {
	data := append([]byte{0x00, 0x61, 0x73, 0x6D, 0x01, 0x00, 0x00, 0x00}, 0x02, 0x0A, 0x01)
	path := writeFile(t, "bad.wasm", data)

	code, out, errOut := run(t, "--verify", path)
	assert.Equal(t, exitError, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "[decode] truncated_section")
	assert.NotContains(t, errOut, "[verify]")
}
