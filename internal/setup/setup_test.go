package setup

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/kastheco/chartdesk/config"
	"github.com/kastheco/chartdesk/nav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}
	assert.False(t, opts.Clean)
}

func TestAnswersRoundTrip(t *testing.T) {
	cfg := config.DefaultConfig()
	a := answersFrom(cfg)
	assert.Equal(t, "sidebar", a.Layout)
	assert.True(t, a.History)

	a.Layout = "topbar"
	a.DebounceMs = "120"
	a.GraceMs = "0"
	require.NoError(t, a.apply(cfg))

	assert.Equal(t, nav.ModeTopBar, cfg.Layout())
	assert.Equal(t, 120*time.Millisecond, cfg.ResizeDebounce())
	assert.Equal(t, time.Duration(0), cfg.HoverGrace())
}

func TestApplyRejectsBadInput(t *testing.T) {
	cfg := config.DefaultConfig()
	a := answersFrom(cfg)
	a.DebounceMs = "fast"
	assert.Error(t, a.apply(cfg))

	a = answersFrom(cfg)
	a.Layout = "ribbon"
	assert.Error(t, a.apply(cfg))
}

func TestValidateMs(t *testing.T) {
	assert.NoError(t, validateMs("75"))
	assert.NoError(t, validateMs(" 0 "))
	assert.Error(t, validateMs("-1"))
	assert.Error(t, validateMs("soon"))
}

// TestWritePhase verifies the post-wizard write path without running the
// interactive form.
func TestWritePhase(t *testing.T) {
	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)

	cfg := config.DefaultConfig()
	a := answersFrom(cfg)
	a.Layout = "topbar"
	a.NavFile = filepath.Join(tmpHome, "nav.toml")
	a.WriteDefaults = true

	require.NoError(t, write(a, cfg))

	loaded := config.LoadConfig()
	assert.Equal(t, nav.ModeTopBar, loaded.Layout())
	assert.Equal(t, a.NavFile, loaded.NavigationFile)

	entries, err := config.LoadNavigationFrom(a.NavFile)
	require.NoError(t, err)
	assert.Len(t, entries, len(config.DefaultNavigation()))
}
