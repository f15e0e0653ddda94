package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureCheckOutput runs newCheckCmd() against a temp home and captures
// stdout. setupFn may write files under home before the command runs.
func captureCheckOutput(t *testing.T, setupFn func(home string), args ...string) (string, error) {
	t.Helper()

	home := t.TempDir()
	if setupFn != nil {
		setupFn(home)
	}
	t.Setenv("HOME", home)

	cmd := newCheckCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func writeConfigDir(t *testing.T, home string, files map[string]string) {
	t.Helper()
	dir := filepath.Join(home, ".config", "chartdesk")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
}

func TestCheckCmd_EmptyEnvironment(t *testing.T) {
	out, err := captureCheckOutput(t, nil)

	require.NoError(t, err)
	assert.Contains(t, out, "Configuration:")
	assert.Contains(t, out, "navigation")
	assert.Contains(t, out, "not found")
	assert.Contains(t, out, "Health: 4/4 OK (100%)")
}

func TestCheckCmd_BrokenNavigationIsUnhealthy(t *testing.T) {
	out, err := captureCheckOutput(t, func(home string) {
		writeConfigDir(t, home, map[string]string{
			"navigation.toml": "[[entries]]\nname = \"Labs\"\n",
		})
	})

	assert.ErrorIs(t, err, errUnhealthy)
	assert.Contains(t, out, "✗ navigation")
	assert.Contains(t, out, "Health: 3/4 OK (75%)")
}

func TestCheckCmd_VerboseListsEntries(t *testing.T) {
	out, err := captureCheckOutput(t, nil, "--verbose")

	require.NoError(t, err)
	assert.Contains(t, out, "Entries:")
	assert.Contains(t, out, "/appointments ▾")
	assert.Contains(t, out, "Dashboard")
}

func TestCheckCmd_SlowDebounceWarnsButPasses(t *testing.T) {
	cfg, err := json.Marshal(map[string]any{
		"default_layout":     "topbar",
		"resize_debounce_ms": 5000,
	})
	require.NoError(t, err)

	out, err := captureCheckOutput(t, func(home string) {
		writeConfigDir(t, home, map[string]string{"config.json": string(cfg)})
	})

	require.NoError(t, err)
	assert.Contains(t, out, "⊘ timing")
}

func TestStatusGlyph(t *testing.T) {
	assert.Equal(t, "✓", statusGlyph(0))
	assert.Equal(t, "⊘", statusGlyph(1))
	assert.Equal(t, "✗", statusGlyph(2))
}
