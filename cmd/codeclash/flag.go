package main

import (
	"flag"
	"fmt"
	"log/slog"
	"strings"
)

type logLevelFlag struct {
	value slog.Level
}

func (l *logLevelFlag) String() string {
	return l.value.String()
}

func (l *logLevelFlag) Set(value string) error {
	m := map[string]slog.Level{"DEBUG": slog.LevelDebug, "INFO": slog.LevelInfo, "WARN": slog.LevelWarn, "ERROR": slog.LevelError}
	v, ok := m[strings.ToUpper(value)]
	if !ok {
		return fmt.Errorf("unknown log level: %s", value)
	}
	l.value = v
	return nil
}

// defined flags
var (
	levelFlag      logLevelFlag
	configFlag     = flag.String("config", "", "Path to a YAML config file")
	logFileFlag    = flag.String("logfile", "", "Write logs to this file instead of the console")
	variantFlag    = flag.String("variant", "", "Scene variant: code or network")
	seedFlag       = flag.Uint64("seed", 0, "Seed for the scene generators; 0 picks one at random")
	fpsFlag        = flag.Bool("fps", false, "Show an FPS overlay")
	testScriptFlag = flag.String("test", "", "Path to a JSON test script to replay")
)

func init() {
	levelFlag.value = slog.LevelInfo
	flag.Var(&levelFlag, "loglevel", "set log level")
}
