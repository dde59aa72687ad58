package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, ":memory:", cfg.DBPath)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, 3, cfg.MinWindowSize)
	assert.Equal(t, 5, cfg.LookbackWindow)
	assert.InDelta(t, 0.75, cfg.HighAccuracy, 1e-9)
	assert.InDelta(t, 0.50, cfg.LowAccuracy, 1e-9)
	assert.Equal(t, 10, cfg.MaxPuzzles)
	assert.Equal(t, 1, cfg.StatsWorkerCount)
	assert.Equal(t, 16, cfg.StatsQueueSize)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ADDR", ":9000")
	t.Setenv("MIN_WINDOW_SIZE", "4")
	t.Setenv("HIGH_ACCURACY", "0.9")
	t.Setenv("MAX_PUZZLES", "0")

	cfg := Load()
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, 4, cfg.MinWindowSize)
	assert.InDelta(t, 0.9, cfg.HighAccuracy, 1e-9)
	assert.Equal(t, 0, cfg.MaxPuzzles, "zero means unlimited puzzles")
}

func TestLoad_InvalidValuesFallBackToDefaults(t *testing.T) {
	t.Setenv("MIN_WINDOW_SIZE", "not-a-number")
	t.Setenv("HIGH_ACCURACY", "many")

	cfg := Load()
	assert.Equal(t, 3, cfg.MinWindowSize)
	assert.InDelta(t, 0.75, cfg.HighAccuracy, 1e-9)
}

func TestValidate(t *testing.T) {
	valid := Load()
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "empty addr", mutate: func(c *Config) { c.Addr = "" }},
		{name: "empty db path", mutate: func(c *Config) { c.DBPath = "" }},
		{name: "zero min window", mutate: func(c *Config) { c.MinWindowSize = 0 }},
		{name: "lookback below min window", mutate: func(c *Config) { c.LookbackWindow = 1 }},
		{name: "high accuracy above one", mutate: func(c *Config) { c.HighAccuracy = 1.5 }},
		{name: "low accuracy above high", mutate: func(c *Config) { c.LowAccuracy = 0.9 }},
		{name: "negative max puzzles", mutate: func(c *Config) { c.MaxPuzzles = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
