// Package config holds every knob the capture engine recognizes, as one
// explicit struct instead of ad hoc option maps.
package config

import (
	"fmt"
	"time"
)

// DefaultUserAgents is the pool a browsing context draws from, one picked
// uniformly at random per task.
var DefaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 13_1) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.1 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
}

// Config holds batch-capture configuration.
type Config struct {
	// Browser launch.
	Headless          bool
	DisableAutomation bool // --disable-blink-features=AutomationControlled
	DisableSandbox    bool
	ExecutablePath    string // empty means discover
	LaunchTimeout     time.Duration

	// Per-context settings.
	ViewportWidth  int
	ViewportHeight int
	UserAgents     []string

	// Per-task timing.
	NavigationTimeout time.Duration
	SettleDelayMin    time.Duration
	SettleDelayMax    time.Duration
	ScrollPause       time.Duration
	MaxScrolls        int

	// Batch shape.
	MaxBatchSize int
	Workers      int

	// Filesystem layout.
	ScreenshotDir string
	ArchiveDir    string

	// Web UI.
	ListenAddr string

	Verbose bool
}

// DefaultConfig returns the stock settings for a small batch run.
func DefaultConfig() *Config {
	return &Config{
		Headless:          true,
		DisableAutomation: true,
		DisableSandbox:    true,
		LaunchTimeout:     30 * time.Second,
		ViewportWidth:     1920,
		ViewportHeight:    1080,
		UserAgents:        DefaultUserAgents,
		NavigationTimeout: 60 * time.Second,
		SettleDelayMin:    2 * time.Second,
		SettleDelayMax:    4 * time.Second,
		ScrollPause:       time.Second,
		MaxScrolls:        30,
		MaxBatchSize:      10,
		Workers:           5,
		ScreenshotDir:     "screenshots",
		ArchiveDir:        "zip_files",
		ListenAddr:        ":8080",
	}
}

// Validate ensures all configuration values are coherent.
func (c *Config) Validate() error {
	if c.ViewportWidth <= 0 || c.ViewportHeight <= 0 {
		return fmt.Errorf("viewport must be positive, got %dx%d", c.ViewportWidth, c.ViewportHeight)
	}
	if len(c.UserAgents) == 0 {
		return fmt.Errorf("user agent pool cannot be empty")
	}
	if c.LaunchTimeout <= 0 {
		return fmt.Errorf("launch timeout must be positive")
	}
	if c.NavigationTimeout <= 0 {
		return fmt.Errorf("navigation timeout must be positive")
	}
	if c.SettleDelayMin < 0 {
		return fmt.Errorf("settle delay min cannot be negative")
	}
	if c.SettleDelayMax < c.SettleDelayMin {
		return fmt.Errorf("settle delay max (%s) cannot be below min (%s)", c.SettleDelayMax, c.SettleDelayMin)
	}
	if c.ScrollPause < 0 {
		return fmt.Errorf("scroll pause cannot be negative")
	}
	if c.MaxScrolls <= 0 {
		return fmt.Errorf("max scrolls must be positive")
	}
	if c.MaxBatchSize <= 0 {
		return fmt.Errorf("max batch size must be positive")
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive")
	}
	if c.ScreenshotDir == "" {
		return fmt.Errorf("screenshot directory cannot be empty")
	}
	if c.ArchiveDir == "" {
		return fmt.Errorf("archive directory cannot be empty")
	}
	if c.ScreenshotDir == c.ArchiveDir {
		return fmt.Errorf("screenshot and archive directories must differ")
	}
	return nil
}
