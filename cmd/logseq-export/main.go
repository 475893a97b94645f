// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the logseq-export CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/logseq-export/internal/export"
	"github.com/pdiddy/logseq-export/internal/history"
	"github.com/pdiddy/logseq-export/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// cfg is the merged configuration, filled before any subcommand runs.
var cfg types.Config

// rootCmd is the base command for the logseq-export CLI.
var rootCmd = &cobra.Command{
	Use:   "logseq-export",
	Short: "Export Logseq pages to standard Markdown",
	Long: `logseq-export turns Logseq outline pages into flat Markdown that
generic renderers display correctly. Outline bullets are removed, nesting is
recomputed, task markers become bold status glyphs, and referenced assets are
copied next to the exported page.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig()
		if err != nil {
			return err
		}
		cfg = c
		slog.SetDefault(newLogger(cfg.Log))
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./logseq-export.yaml or ~/.config/logseq-export/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "text", "log format: text or json")
	rootCmd.PersistentFlags().String("history-dir", history.DefaultDir, "directory holding the export history database")

	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("history.dir", rootCmd.PersistentFlags().Lookup("history-dir"))

	viper.SetDefault("export.drawio_subdir", export.DefaultDrawioSubdir)
	viper.SetDefault("history.max_results", 20)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("logseq-export")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "logseq-export"))
		}
	}

	viper.SetEnvPrefix("LOGSEQ_EXPORT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func loadConfig() (types.Config, error) {
	var c types.Config
	if err := viper.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("reading configuration: %w", err)
	}
	return c, nil
}

// newLogger builds the process logger on stderr from the log settings.
func newLogger(lc types.LogConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(lc.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if lc.Format == types.LogJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
