package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/goccy/go-yaml"

	"github.com/phanxgames/backdrop"
)

// Config holds the runtime settings of the app. Values are read from the
// defaults, then an optional YAML file, then CODECLASH_* environment
// variables, each overriding the previous.
type Config struct {
	Title           string        `yaml:"title"            env:"CODECLASH_TITLE"`
	Width           int           `yaml:"width"            env:"CODECLASH_WIDTH"`
	Height          int           `yaml:"height"           env:"CODECLASH_HEIGHT"`
	TPS             int           `yaml:"tps"              env:"CODECLASH_TPS"`
	ShowFPS         bool          `yaml:"show_fps"         env:"CODECLASH_SHOW_FPS"`
	Variant         string        `yaml:"variant"          env:"CODECLASH_VARIANT"`
	Seed            uint64        `yaml:"seed"             env:"CODECLASH_SEED"`
	Dark            bool          `yaml:"dark"             env:"CODECLASH_DARK"`
	Intro           bool          `yaml:"intro"            env:"CODECLASH_INTRO"`
	ScreenshotDir   string        `yaml:"screenshot_dir"   env:"CODECLASH_SCREENSHOT_DIR"`
	TestScript      string        `yaml:"test_script"      env:"CODECLASH_TEST_SCRIPT"`
	WatchdogTimeout time.Duration `yaml:"watchdog_timeout" env:"CODECLASH_WATCHDOG_TIMEOUT"`
}

func defaultConfig() Config {
	return Config{
		Title:           "CodeClash",
		Width:           1280,
		Height:          720,
		TPS:             60,
		Variant:         backdrop.VariantCode.String(),
		Dark:            true,
		Intro:           true,
		ScreenshotDir:   backdrop.DefaultScreenshotDir,
		WatchdogTimeout: 2 * time.Second,
	}
}

// loadConfig builds the config. An empty path skips the YAML file.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("invalid window size %dx%d", c.Width, c.Height))
	}
	if c.TPS < 0 {
		errs = append(errs, fmt.Errorf("invalid tps %d", c.TPS))
	}
	if _, ok := backdrop.ParseVariant(c.Variant); !ok {
		errs = append(errs, fmt.Errorf("unknown variant %q", c.Variant))
	}
	if c.WatchdogTimeout < 0 {
		errs = append(errs, fmt.Errorf("invalid watchdog timeout %s", c.WatchdogTimeout))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// variant returns the parsed scene variant.
func (c Config) variant() backdrop.Variant {
	v, _ := backdrop.ParseVariant(c.Variant)
	return v
}
