package engine_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/plus3/zyra/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := engine.DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 800.0, cfg.Gravity.Y)
	assert.Equal(t, 60, cfg.TickRate)
}

func TestParseConfig(t *testing.T) {
	t.Run("empty document yields defaults", func(t *testing.T) {
		cfg, err := engine.ParseConfig(strings.NewReader(""))
		require.NoError(t, err)
		assert.Equal(t, engine.DefaultConfig(), cfg)
	})

	t.Run("fields override defaults", func(t *testing.T) {
		cfg, err := engine.ParseConfig(strings.NewReader(`
gravity:
  x: 10
  y: 400
fixed_step: 0.0125
max_substeps: 8
log_level: debug
inspector:
  addr: 127.0.0.1:7070
`))
		require.NoError(t, err)
		assert.Equal(t, engine.GravityConfig{X: 10, Y: 400}, cfg.Gravity)
		assert.Equal(t, 0.0125, cfg.FixedStep)
		assert.Equal(t, 8, cfg.MaxSubsteps)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "127.0.0.1:7070", cfg.Inspector.Addr)
		// untouched fields keep their defaults
		assert.Equal(t, 0.1, cfg.MaxDelta)
		assert.Equal(t, 6, cfg.Inspector.PublishEvery)
	})

	t.Run("unknown fields rejected", func(t *testing.T) {
		_, err := engine.ParseConfig(strings.NewReader("gravityy: 1\n"))
		assert.Error(t, err)
	})

	t.Run("invalid values rejected", func(t *testing.T) {
		_, err := engine.ParseConfig(strings.NewReader("tick_rate: 0\n"))
		assert.ErrorIs(t, err, engine.ErrInvalidConfig)
	})
}

func TestConfigValidate(t *testing.T) {
	cases := map[string]func(*engine.Config){
		"non-positive max delta": func(c *engine.Config) { c.MaxDelta = 0 },
		"negative fixed step":    func(c *engine.Config) { c.FixedStep = -1 },
		"fixed step without substeps": func(c *engine.Config) {
			c.FixedStep = 0.01
			c.MaxSubsteps = 0
		},
		"zero tick rate":          func(c *engine.Config) { c.TickRate = 0 },
		"sub-nanosecond tick":     func(c *engine.Config) { c.TickRate = 2_000_000_000 },
		"unknown log level":       func(c *engine.Config) { c.LogLevel = "loud" },
		"negative publish period": func(c *engine.Config) { c.Inspector.PublishEvery = -1 },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := engine.DefaultConfig()
			mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), engine.ErrInvalidConfig)
		})
	}
}

func TestTickRateLimit(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.TickRate = engine.MaxTickRate
	require.NoError(t, cfg.Validate())
	assert.Equal(t, time.Nanosecond, cfg.TickInterval())

	cfg.TickRate = engine.MaxTickRate + 1
	_, err := engine.New(cfg)
	assert.ErrorIs(t, err, engine.ErrInvalidConfig)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tick_rate: 30\n"), 0o644))

	cfg, err := engine.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.TickRate)

	_, err = engine.LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("max_delta: -1\n"), 0o644))
	_, err = engine.LoadConfig(bad)
	assert.ErrorIs(t, err, engine.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "bad.yaml")
}

func TestSampleConfig(t *testing.T) {
	cfg, err := engine.LoadConfig(filepath.Join("testdata", "zyra.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 800.0, cfg.Gravity.Y)
	assert.Equal(t, 5, cfg.MaxSubsteps)
	assert.Equal(t, "127.0.0.1:7070", cfg.Inspector.Addr)
	assert.NoError(t, cfg.Validate())
}
