package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	app "github.com/rocketscienceinc/hasamishogi-backend/internal"
	"github.com/rocketscienceinc/hasamishogi-backend/internal/config"
)

const defaultConfigPath = "config.yml"

// main - loads config.yml, sets up the JSON logger and serves games until interrupted.
func main() {
	conf, err := config.Load(configPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "hasamishogi: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(os.Stdout, conf.LogLevel)

	if err = app.RunApp(logger, conf); err != nil {
		logger.Error("app run failed", "error", err)
		os.Exit(1)
	}
}

// configPath - CONFIG_PATH when set, config.yml in the working directory otherwise.
func configPath() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}

	return defaultConfigPath
}

// newLogger - JSON logger at the named level (debug, info, warn, error, or offsets like "warn+2").
// Unknown names fall back to info.
func newLogger(w io.Writer, levelName string) *slog.Logger {
	level := slog.LevelInfo

	parseErr := level.UnmarshalText([]byte(levelName))
	if parseErr != nil {
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	if parseErr != nil {
		logger.Warn("unknown log level, using info", "level", levelName)
	}

	return logger
}
