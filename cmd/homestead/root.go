package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/nerrad567/homestead/internal/infrastructure/config"
)

const (
	// defaultConfigPath is used when neither --config nor HOMESTEAD_CONFIG is set.
	defaultConfigPath = "configs/config.yaml"

	// configEnvVar names the environment variable holding the config path.
	configEnvVar = "HOMESTEAD_CONFIG"
)

// newRootCmd builds the command tree. A fresh tree per call keeps flag
// state out of package globals.
func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "homestead",
		Short: "Homestead - houses and rooms inventory service",
		Long: `Homestead serves a REST API over houses and the rooms inside them.

Every room change is broadcast as an event to WebSocket subscribers and, when
enabled, published to MQTT, written to InfluxDB and recorded in the audit log.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"path to config file (default $"+configEnvVar+" or "+defaultConfigPath+")")

	load := func() (*config.Config, string, error) {
		return loadConfig(resolveConfigPath(configPath))
	}

	root.AddCommand(newServeCmd(load), newMigrateCmd(load))
	return root
}

// configLoader returns the loaded config and the path it was resolved from.
type configLoader func() (*config.Config, string, error)

// resolveConfigPath picks the flag value, then the environment, then the default.
func resolveConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if path := os.Getenv(configEnvVar); path != "" {
		return path
	}
	return defaultConfigPath
}

// loadConfig reads the config at path. A missing default config falls back
// to built-in defaults; a missing explicit path is an error.
func loadConfig(path string) (*config.Config, string, error) {
	cfg, err := config.Load(path)
	if err == nil {
		return cfg, path, nil
	}
	if path == defaultConfigPath && errors.Is(err, fs.ErrNotExist) {
		cfg, err = config.Default()
		if err != nil {
			return nil, "", fmt.Errorf("loading default config: %w", err)
		}
		return cfg, "", nil
	}
	return nil, "", fmt.Errorf("loading config: %w", err)
}
