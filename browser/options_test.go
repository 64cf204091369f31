package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webshotter/config"
)

func TestNewContextOptions(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	opts := NewContextOptions(cfg, "test-agent")

	assert.Equal(t, "test-agent", opts.UserAgent)
	assert.Equal(t, 1920, opts.ViewportWidth)
	assert.Equal(t, 1080, opts.ViewportHeight)
	assert.True(t, opts.JavaScriptEnabled)
	assert.True(t, opts.IgnoreHTTPSErrors)
	assert.Equal(t, cfg.NavigationTimeout, opts.NavigationTimeout)

	assert.Contains(t, opts.BlockedURLs, "*.png")
	assert.Contains(t, opts.BlockedURLs, "*.woff2")
	assert.Contains(t, opts.BlockedURLs, "*.mp4")
	assert.Len(t, opts.BlockedURLs, 11)
}

func TestContextOptionsValidate(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()

	valid := NewContextOptions(cfg, "ua")
	require.NoError(t, valid.Validate())

	noUA := NewContextOptions(cfg, "")
	require.Error(t, noUA.Validate())

	badViewport := NewContextOptions(cfg, "ua")
	badViewport.ViewportHeight = 0
	require.Error(t, badViewport.Validate())

	noTimeout := NewContextOptions(cfg, "ua")
	noTimeout.NavigationTimeout = 0
	require.Error(t, noTimeout.Validate())
}

func TestSessionStateString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "unstarted", Unstarted.String())
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "closed", Closed.String())
}

func TestErrorUnwrap(t *testing.T) {
	t.Parallel()

	inner := assert.AnError
	assert.ErrorIs(t, LaunchError{Err: inner}, inner)
	assert.ErrorIs(t, ContextError{Err: inner}, inner)
	assert.ErrorIs(t, NavigationError{Err: inner}, inner)
	assert.ErrorIs(t, CaptureError{Err: inner}, inner)
}
