package browser

import (
	"fmt"
	"time"

	"webshotter/config"
)

// blockedExtensions are the heavy media types a context refuses to fetch. A
// full-page screenshot captures visuals as rendered pixels, so re-fetching
// binaries only adds load time and flakiness.
var blockedExtensions = []string{
	"png", "jpg", "jpeg", "gif", "svg",
	"woff", "woff2", "ttf",
	"mp3", "mp4", "avi",
}

// ContextOptions configures one isolated browsing context.
type ContextOptions struct {
	UserAgent         string
	ViewportWidth     int
	ViewportHeight    int
	JavaScriptEnabled bool
	IgnoreHTTPSErrors bool
	BlockedURLs       []string
	NavigationTimeout time.Duration
}

// NewContextOptions derives context options from the batch configuration. The
// user agent is chosen by the session, per task.
func NewContextOptions(cfg *config.Config, userAgent string) ContextOptions {
	blocked := make([]string, 0, len(blockedExtensions))
	for _, ext := range blockedExtensions {
		blocked = append(blocked, "*."+ext)
	}
	return ContextOptions{
		UserAgent:         userAgent,
		ViewportWidth:     cfg.ViewportWidth,
		ViewportHeight:    cfg.ViewportHeight,
		JavaScriptEnabled: true,
		IgnoreHTTPSErrors: true,
		BlockedURLs:       blocked,
		NavigationTimeout: cfg.NavigationTimeout,
	}
}

// Validate validates the browsing context options.
func (o ContextOptions) Validate() error {
	if o.UserAgent == "" {
		return fmt.Errorf("user agent cannot be empty")
	}
	if o.ViewportWidth <= 0 || o.ViewportHeight <= 0 {
		return fmt.Errorf("viewport must be positive, got %dx%d", o.ViewportWidth, o.ViewportHeight)
	}
	if o.NavigationTimeout <= 0 {
		return fmt.Errorf("navigation timeout must be positive")
	}
	return nil
}
