package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	t.Parallel()

	require.NoError(t, DefaultConfig().Validate())
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "zero_viewport",
			mutate:  func(c *Config) { c.ViewportWidth = 0 },
			wantErr: "viewport",
		},
		{
			name:    "empty_user_agents",
			mutate:  func(c *Config) { c.UserAgents = nil },
			wantErr: "user agent",
		},
		{
			name:    "zero_navigation_timeout",
			mutate:  func(c *Config) { c.NavigationTimeout = 0 },
			wantErr: "navigation timeout",
		},
		{
			name: "settle_range_inverted",
			mutate: func(c *Config) {
				c.SettleDelayMax = c.SettleDelayMin - 1
			},
			wantErr: "settle delay",
		},
		{
			name:    "zero_max_scrolls",
			mutate:  func(c *Config) { c.MaxScrolls = 0 },
			wantErr: "max scrolls",
		},
		{
			name:    "zero_workers",
			mutate:  func(c *Config) { c.Workers = 0 },
			wantErr: "workers",
		},
		{
			name: "dirs_collide",
			mutate: func(c *Config) {
				c.ScreenshotDir = "out"
				c.ArchiveDir = "out"
			},
			wantErr: "must differ",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
