package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"socdash/config"
	"socdash/internal/logger"
)

const defaultConfigName = "socdash.yml"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "socdash",
		Short:         "SOC dashboard core: state store, derived views and threat hunts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringP("config", "c", "", "Path to socdash.yml config file")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newHuntCmd())
	cmd.AddCommand(newSummaryCmd())
	return cmd
}

// findConfigFile returns the first existing config path, or "" when none exists.
func findConfigFile(configArg string) string {
	if configArg != "" {
		if _, err := os.Stat(configArg); err == nil {
			return configArg
		}
		logger.Warnf("Config file not found at %s, trying default locations", configArg)
	}

	if _, err := os.Stat(defaultConfigName); err == nil {
		return defaultConfigName
	}

	if exePath, err := os.Executable(); err == nil {
		path := filepath.Join(filepath.Dir(exePath), defaultConfigName)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// loadConfig resolves the --config flag, falls back to defaults, and
// initializes the process logger.
func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	configArg, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")

	path := findConfigFile(configArg)
	cfg := config.Default()
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config %s: %w", path, err)
		}
		cfg = loaded
	}

	lc := cfg.Socdash.Logging
	if verbose {
		lc.Enabled = true
		lc.Level = "debug"
	}
	if err := logger.Init(logger.Config{
		Enabled: lc.Enabled,
		Level:   lc.Level,
		File:    lc.File,
		Console: lc.Console,
	}); err != nil {
		return nil, "", fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, path, nil
}
