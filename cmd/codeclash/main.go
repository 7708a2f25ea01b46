// Codeclash shows the CodeClash animated background in a desktop window.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/phanxgames/backdrop"
	"github.com/phanxgames/backdrop/page"
)

func main() {
	flag.Parse()
	slog.SetLogLoggerLevel(levelFlag.value)
	if *logFileFlag != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   *logFileFlag,
			MaxSize:    50, // megabytes
			MaxBackups: 3,
		})
	}
	cfg, err := loadConfig(*configFlag)
	if err != nil {
		log.Fatal(err)
	}
	applyFlags(&cfg)
	if err := cfg.validate(); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, cfg); err != nil {
		log.Fatal(err)
	}
}

// applyFlags overrides cfg with the flags given on the command line.
func applyFlags(cfg *Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "variant":
			cfg.Variant = *variantFlag
		case "seed":
			cfg.Seed = *seedFlag
		case "fps":
			cfg.ShowFPS = *fpsFlag
		case "test":
			cfg.TestScript = *testScriptFlag
		}
	})
}

func run(ctx context.Context, cfg Config) error {
	p := page.New(cfg.Width, cfg.Height)
	p.AddContainer(backdrop.DefaultContainerID)
	boot := page.NewBootstrap(p, page.Config{
		Components:      []string{page.ComponentBackground},
		WatchdogTimeout: cfg.WatchdogTimeout,
		Dark:            cfg.Dark,
	})
	defer boot.Close()

	rc := backdrop.RunConfig{
		Title:         cfg.Title,
		Width:         cfg.Width,
		Height:        cfg.Height,
		TPS:           cfg.TPS,
		ShowFPS:       cfg.ShowFPS,
		Resizable:     true,
		ScreenshotDir: cfg.ScreenshotDir,
	}
	if cfg.TestScript != "" {
		data, err := os.ReadFile(cfg.TestScript)
		if err != nil {
			return fmt.Errorf("read test script: %w", err)
		}
		runner, err := backdrop.LoadTestScript(data)
		if err != nil {
			return err
		}
		rc.TestRunner = runner
	}

	bg, err := backdrop.Initialize(p, backdrop.Options{
		Variant: cfg.variant(),
		Seed:    cfg.Seed,
		Light:   !cfg.Dark,
		Intro:   cfg.Intro,
	})
	switch {
	case errors.Is(err, backdrop.ErrMissingCapability):
		return err
	case err != nil:
		slog.Warn("showing static background", "error", err, "classes", p.BodyClasses())
		return backdrop.RunStatic(ctx, cfg.Dark, rc)
	}
	slog.Info("codeclash running", "variant", cfg.Variant, "seed", bg.Seed(), "fullyLoaded", p.HasBodyClass(page.ClassFullyLoaded))
	return backdrop.Run(ctx, bg, rc)
}
