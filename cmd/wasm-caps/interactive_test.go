package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/wasm-caps/capability"
	"github.com/wippyai/wasm-caps/wasm"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loadedModel(t *testing.T) *interactiveModel {
	t.Helper()
	m := newInteractiveModel("app.wasm")
	s := capability.Classify([]wasm.Import{
		{Module: "wasi_unstable", Name: "fd_write", Kind: wasm.ImportFunc},
		{Module: "wasi_unstable", Name: "fd_read", Kind: wasm.ImportFunc},
		{Module: "env", Name: "memory", Kind: wasm.ImportMemory},
	})
	m.Update(loadedMsg{summary: s})
	return m
}

func TestInteractiveLoading(t *testing.T) {
	m := newInteractiveModel("app.wasm")
	assert.Equal(t, "Loading module...", m.View())
}

func TestInteractiveLoadError(t *testing.T) {
	m := newInteractiveModel("missing.wasm")
	msg := m.loadSummary()
	m.Update(msg)
	assert.Contains(t, m.View(), "cannot read input")
}

func TestInteractiveResultDecodeError(t *testing.T) {
	data := []byte{0x00, 0x61, 0x73, 0x6D, 0x01, 0x00, 0x00, 0x00, 0x02, 0x0A, 0x01}
	m := newInteractiveModel(writeFile(t, "bad.wasm", data))
	m.Update(m.loadSummary())
	m.Update(key("q"))

	err := interactiveResult(m, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, wasm.ErrTruncatedSection)
}

func TestInteractiveResultLoaded(t *testing.T) {
	assert.NoError(t, interactiveResult(loadedModel(t), nil))
}

func TestInteractiveResultRunError(t *testing.T) {
	runErr := tea.ErrProgramKilled
	assert.ErrorIs(t, interactiveResult(nil, runErr), runErr)
}

func TestInteractiveBucketList(t *testing.T) {
	m := loadedModel(t)
	view := m.View()

	assert.Contains(t, view, "3 imports, 2 WASI")
	assert.Contains(t, view, "file system")
	assert.Contains(t, view, "unknown namespace")
}

func TestInteractiveShowEntries(t *testing.T) {
	m := loadedModel(t)

	m.Update(key("enter"))
	require.Equal(t, stateShowEntries, m.state)
	view := m.View()
	assert.Contains(t, view, "fd_write")
	assert.Contains(t, view, "fd_read")

	m.Update(key("esc"))
	assert.Equal(t, stateSelectBucket, m.state)
}

func TestInteractiveNavigation(t *testing.T) {
	m := loadedModel(t)

	m.Update(key("up"))
	assert.Equal(t, 0, m.selected)

	for i := 0; i < len(capability.Buckets)+2; i++ {
		m.Update(key("down"))
	}
	assert.Equal(t, len(capability.Buckets)-1, m.selected)

	m.Update(key("enter"))
	view := m.View()
	assert.Contains(t, view, "env#memory")
	assert.Contains(t, view, "memory")
}

func TestInteractiveEmptyBucket(t *testing.T) {
	m := loadedModel(t)
	m.Update(key("down")) // environment
	m.Update(key("enter"))

	assert.Contains(t, m.View(), "(none)")
}

func TestInteractiveFilter(t *testing.T) {
	m := loadedModel(t)
	m.Update(key("enter"))
	m.Update(key("/"))
	require.Equal(t, stateFilter, m.state)

	m.Update(key("read"))
	m.Update(key("enter"))
	require.Equal(t, stateShowEntries, m.state)

	entries := m.visibleEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, "fd_read", entries[0].Symbol)

	// q typed while filtering goes to the input, not quit.
	m.Update(key("/"))
	m.Update(key("q"))
	assert.Equal(t, stateFilter, m.state)
	assert.Equal(t, "readq", m.filter.Value())
}

func TestInteractiveQuit(t *testing.T) {
	m := loadedModel(t)
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
