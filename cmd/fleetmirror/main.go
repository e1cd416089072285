// Package main is the entry point for the fleetmirror adapter.
package main

import (
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/fleetmirror/fleetmirror/cmd/fleetmirror/app"
	"github.com/fleetmirror/fleetmirror/internal/config"
	"github.com/fleetmirror/fleetmirror/internal/logger"
)

// getLogLevel reads FLEETMIRROR_LOG_LEVEL, falling back to LOG_LEVEL.
func getLogLevel() string {
	v := viper.New()
	v.SetEnvPrefix(config.EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	levelStr := v.GetString("LOG_LEVEL")
	if levelStr == "" {
		levelStr = os.Getenv("LOG_LEVEL")
	}
	return levelStr
}

func main() {
	// Structured JSON logging on stderr keeps stdout clean for commands
	// that output data (e.g. version --format json).
	logger.Initialize(getLogLevel())
	defer logger.Sync()

	if err := app.NewRootCmd().Execute(); err != nil {
		logger.Errorf("Command failed: %v", err)
		os.Exit(1)
	}
}
