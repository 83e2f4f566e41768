// Package cli wires the cobra command tree: serve, search, config.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jstrzelecki/filesearch/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "filesearch",
	Short: "File Search API - wyszukiwanie fraz w plikach tekstowych",
	Long: `filesearch serves an HTTP API that scans plain-text files under a
directory (or among uploaded files) for a literal phrase and reports matching
lines with file path and line number.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("host", "0.0.0.0", "Listen address")
	pf.Int("port", 8000, "Listen port")
	pf.String("default-extension", ".txt", "Default file name suffix filter")
	pf.String("decode-policy", "replace", "Invalid UTF-8 handling: replace or skip")
	pf.Int64("max-file-size", config.DefaultMaxFileSize, "Per-file size limit in bytes (0 = unlimited)")
	pf.Bool("skip-binary", false, "Skip files that look binary (NUL byte in first 8 KiB)")
	pf.Bool("audit", false, "Record handled operations in a SQLite audit trail")
	pf.String("audit-path", "./filesearch-audit.db", "Audit trail database path")
	pf.String("log-level", "info", "Log level: debug, info, warn, error")

	viper.BindPFlag("server.host", pf.Lookup("host"))
	viper.BindPFlag("server.port", pf.Lookup("port"))
	viper.BindPFlag("search.default_extension", pf.Lookup("default-extension"))
	viper.BindPFlag("search.decode_policy", pf.Lookup("decode-policy"))
	viper.BindPFlag("search.max_file_size", pf.Lookup("max-file-size"))
	viper.BindPFlag("search.skip_binary", pf.Lookup("skip-binary"))
	viper.BindPFlag("audit.enabled", pf.Lookup("audit"))
	viper.BindPFlag("audit.path", pf.Lookup("audit-path"))
	viper.BindPFlag("logging.level", pf.Lookup("log-level"))
}

func init() {
	config.SetViperDefaults()

	viper.SetConfigName("filesearch.config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME")

	viper.SetEnvPrefix("FILESEARCH")
	viper.SetEnvKeyReplacer(config.EnvKeyReplacer())
	viper.AutomaticEnv()
}

// initConfig reads the config file if one exists.
func initConfig() {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
		}
	}
}

// newLogger builds the process logger at the configured level.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
