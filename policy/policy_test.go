package policy_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/wasm-caps/capability"
	"github.com/wippyai/wasm-caps/errors"
	"github.com/wippyai/wasm-caps/policy"
	"github.com/wippyai/wasm-caps/wasm"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func summary() *capability.Summary {
	return capability.Classify([]wasm.Import{
		{Module: "wasi_unstable", Name: "fd_write"},
		{Module: "wasi_unstable", Name: "sock_send"},
		{Module: "wasi_unstable", Name: "proc_exit"},
		{Module: "wasi_unstable", Name: "sock_accept"},
		{Module: "env", Name: "log"},
		{Module: "host", Name: "call"},
	})
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "policy.yaml", `
deny: [network, "file system"]
allow_namespaces: [env]
fail_on_unknown_wasi: true
fail_on_unknown_namespace: true
`)
	p, err := policy.Load(path)
	require.NoError(t, err)

	assert.Equal(t, []capability.Bucket{capability.Network, capability.FileSystem}, p.Deny)
	assert.Equal(t, []string{"env"}, p.AllowNamespaces)
	assert.True(t, p.FailOnUnknownWasi)
	assert.True(t, p.FailOnUnknownNamespace)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "policy.toml", `
deny = ["process", "process"]
fail_on_unknown_wasi = false
`)
	p, err := policy.Load(path)
	require.NoError(t, err)

	assert.Equal(t, []capability.Bucket{capability.Process}, p.Deny)
	assert.False(t, p.FailOnUnknownWasi)
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "policy.json", `{"deny": ["environment"], "allow_namespaces": ["*"]}`)
	p, err := policy.Load(path)
	require.NoError(t, err)

	assert.Equal(t, []capability.Bucket{capability.Environment}, p.Deny)
	assert.Equal(t, []string{"*"}, p.AllowNamespaces)
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeFile(t, "policy.yaml", "deny: [network]\n")
	t.Setenv("WASMCAPS_POLICY_DENY", "process,environment")

	p, err := policy.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []capability.Bucket{capability.Process, capability.Environment}, p.Deny)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := policy.Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, &errors.Error{Phase: errors.PhaseConfig, Kind: errors.KindInvalidInput}))
	})

	t.Run("unknown bucket", func(t *testing.T) {
		path := writeFile(t, "policy.yaml", "deny: [gpu]\n")
		_, err := policy.Load(path)
		require.Error(t, err)

		var se *errors.Error
		require.True(t, errors.As(err, &se))
		assert.Equal(t, errors.KindInvalidInput, se.Kind)
		assert.Equal(t, "gpu", se.Value)
		assert.Equal(t, []string{"deny"}, se.Path)
		assert.Contains(t, se.Detail, `unknown bucket "gpu"`)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeFile(t, "policy.yaml", "deny: [network\n")
		_, err := policy.Load(path)
		assert.Error(t, err)
	})
}

func TestEvaluateDeny(t *testing.T) {
	p := &policy.Policy{Deny: []capability.Bucket{capability.Network, capability.Process}}
	violations := p.Evaluate(summary())

	require.Len(t, violations, 2)
	assert.Equal(t, "process", violations[0].Bucket)
	assert.Equal(t, "proc_exit", violations[0].Import.Symbol)
	assert.Equal(t, "network", violations[1].Bucket)
	assert.Equal(t, "sock_send", violations[1].Import.Symbol)
	assert.Equal(t, "network access denied", violations[1].Reason)
}

func TestEvaluateUnknowns(t *testing.T) {
	p := &policy.Policy{
		FailOnUnknownWasi:      true,
		FailOnUnknownNamespace: true,
		AllowNamespaces:        []string{"env"},
	}
	violations := p.Evaluate(summary())

	require.Len(t, violations, 2)
	assert.Equal(t, errors.ImportKey{Namespace: "wasi_unstable", Symbol: "sock_accept"}, violations[0].Import)
	assert.Equal(t, "unrecognized WASI symbol", violations[0].Reason)
	assert.Equal(t, errors.ImportKey{Namespace: "host", Symbol: "call"}, violations[1].Import)
	assert.Equal(t, "namespace host not allowed", violations[1].Reason)
}

func TestEvaluateAllowedNamespaceBeatsDeny(t *testing.T) {
	p := &policy.Policy{
		Deny:            []capability.Bucket{capability.UnknownNamespace},
		AllowNamespaces: []string{"*"},
	}
	assert.Empty(t, p.Evaluate(summary()))
}

func TestEvaluateEmptyPolicy(t *testing.T) {
	p := &policy.Policy{}
	assert.Empty(t, p.Evaluate(summary()))
	assert.NoError(t, p.Check(summary()))
}

func TestCheck(t *testing.T) {
	p := &policy.Policy{Deny: []capability.Bucket{capability.FileSystem}}
	err := p.Check(summary())
	require.Error(t, err)

	var pv *errors.PolicyViolationError
	require.True(t, errors.As(err, &pv))
	require.Len(t, pv.Violations, 1)
	assert.True(t, errors.Is(err, &errors.Error{Phase: errors.PhasePolicy, Kind: errors.KindPolicyViolation}))
	assert.Contains(t, err.Error(), "wasi_unstable#fd_write")
	assert.Contains(t, err.Error(), "file_system:")
}
