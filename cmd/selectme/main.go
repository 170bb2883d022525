package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ruminaider/selectme/internal/config"
	"github.com/ruminaider/selectme/internal/logging"
)

var version = "0.1.0"

var (
	configPath string
	logFile    string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "selectme",
	Short: "Searchable, grouped selection widgets for the terminal",
	Long: "selectme replaces the selects of a source document with searchable, " +
		"grouped selection widgets and prints the submitted form values.",
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "selectme %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "selectme.yaml", "Path to the config file")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Append logs to this file (default: discard)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error (overrides config)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(valuesCmd)
}

// loadConfig reads the config file. A missing file yields the defaults.
func loadConfig() (config.File, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.File{}, fmt.Errorf("loading %s: %w", configPath, err)
	}
	return cfg, nil
}

// openLogger builds the logger from config and the persistent flags. Flags
// win over the file. On success the close func is never nil.
func openLogger(cfg config.File) (*slog.Logger, func() error, error) {
	path := cfg.LogFile
	if logFile != "" {
		path = logFile
	}
	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}

	out, closeFn, err := logging.OpenFile(path)
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(logging.Config{Output: out, Level: level})
	if err != nil {
		_ = closeFn()
		return nil, nil, err
	}
	return logger, closeFn, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
