package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/backdrop"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "codeclash.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults without a file", func(t *testing.T) {
		cfg, err := loadConfig("")
		require.NoError(t, err)
		assert.Equal(t, defaultConfig(), cfg)
		assert.Equal(t, backdrop.VariantCode, cfg.variant())
	})
	t.Run("file overrides defaults", func(t *testing.T) {
		p := writeConfig(t, "title: Demo\nwidth: 800\nheight: 600\nvariant: network\nseed: 7\ndark: false\n")
		cfg, err := loadConfig(p)
		require.NoError(t, err)
		assert.Equal(t, "Demo", cfg.Title)
		assert.Equal(t, 800, cfg.Width)
		assert.Equal(t, 600, cfg.Height)
		assert.Equal(t, backdrop.VariantNetwork, cfg.variant())
		assert.EqualValues(t, 7, cfg.Seed)
		assert.False(t, cfg.Dark)
		assert.Equal(t, 60, cfg.TPS, "unset keys keep their defaults")
		assert.True(t, cfg.Intro)
	})
	t.Run("environment overrides the file", func(t *testing.T) {
		p := writeConfig(t, "width: 800\nheight: 600\n")
		t.Setenv("CODECLASH_WIDTH", "1920")
		t.Setenv("CODECLASH_SHOW_FPS", "true")
		t.Setenv("CODECLASH_WATCHDOG_TIMEOUT", "5s")
		cfg, err := loadConfig(p)
		require.NoError(t, err)
		assert.Equal(t, 1920, cfg.Width)
		assert.Equal(t, 600, cfg.Height)
		assert.True(t, cfg.ShowFPS)
		assert.Equal(t, 5*time.Second, cfg.WatchdogTimeout)
	})
	t.Run("missing file", func(t *testing.T) {
		_, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorContains(t, err, "read config")
	})
	t.Run("malformed file", func(t *testing.T) {
		p := writeConfig(t, "width: [1, 2\n")
		_, err := loadConfig(p)
		assert.ErrorContains(t, err, "parse config")
	})
	t.Run("bad environment value", func(t *testing.T) {
		t.Setenv("CODECLASH_TPS", "fast")
		_, err := loadConfig("")
		assert.ErrorContains(t, err, "parse env")
	})
}

func TestConfigValidate(t *testing.T) {
	t.Run("default is valid", func(t *testing.T) {
		assert.NoError(t, defaultConfig().validate())
	})
	t.Run("reports every problem", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.Width = 0
		cfg.TPS = -1
		cfg.Variant = "matrix"
		cfg.WatchdogTimeout = -time.Second
		err := cfg.validate()
		require.Error(t, err)
		assert.ErrorContains(t, err, "invalid window size 0x720")
		assert.ErrorContains(t, err, "invalid tps -1")
		assert.ErrorContains(t, err, `unknown variant "matrix"`)
		assert.ErrorContains(t, err, "invalid watchdog timeout -1s")
	})
}
