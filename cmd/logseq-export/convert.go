// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/logseq-export/internal/export"
	"github.com/pdiddy/logseq-export/internal/history"
	"github.com/pdiddy/logseq-export/internal/manifest"
	"github.com/pdiddy/logseq-export/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert <page.md>...",
	Short: "Export Logseq pages to a folder as standard Markdown",
	Long: `Convert reads each Logseq page, rewrites it as flat Markdown and writes
it under the output directory with the same file name. Assets referenced as
../assets/<file> and draw.io diagrams are copied into <output>/assets.

The output directory is required: pass -o/--output or set export.output_dir
in the config file (or LOGSEQ_EXPORT_EXPORT_OUTPUT_DIR). Every page is
classified before any is written; an unclassifiable line in any page aborts
the run with nothing written.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

var errNoOutputDir = errors.New("no output directory: pass -o/--output or set export.output_dir")

func runConvert(cmd *cobra.Command, args []string) error {
	ec := cfg.Export
	if ec.OutputDir == "" {
		return errNoOutputDir
	}
	opts := export.Options{
		NoBreakTags:  ec.NoBreakTags,
		DrawioSubdir: ec.DrawioSubdir,
		Logger:       slog.Default(),
	}

	var hooks []export.Hook
	if ec.Manifest {
		hooks = append(hooks, writeManifest)
	}
	if cfg.History.Enabled {
		store, err := history.NewStore(cfg.History)
		if err != nil {
			return err
		}
		defer store.Close()
		hooks = append(hooks, recordHistory(cmd.Context(), store))
	}

	result := export.ExportBatch(cmd.Context(), args, ec.OutputDir, opts, os.Stdout, hooks...)
	if result.Aborted {
		return fmt.Errorf("export aborted: unclassifiable input")
	}
	if result.HasFailures() {
		return fmt.Errorf("%d page(s) failed to export", result.Failed)
	}
	return nil
}

func writeManifest(rec *types.ExportRecord) error {
	path, err := manifest.Write(rec)
	if err != nil {
		return err
	}
	slog.Debug("manifest written", "path", path)
	return nil
}

func recordHistory(ctx context.Context, store *history.Store) export.Hook {
	return func(rec *types.ExportRecord) error {
		id, err := store.Record(ctx, rec)
		if err != nil {
			return err
		}
		slog.Debug("export recorded", "id", id, "source", rec.Source)
		return nil
	}
}

func init() {
	convertCmd.Flags().StringP("output", "o", "", "destination directory for exported pages (required)")
	convertCmd.Flags().Bool("no-br", false, "do not insert <br> tags for empty bullets")
	convertCmd.Flags().String("drawio-subdir", export.DefaultDrawioSubdir, "draw.io plugin directory under the graph's assets")
	convertCmd.Flags().Bool("manifest", false, "write a <page>.export.yaml sidecar for each page")
	convertCmd.Flags().Bool("history", false, "record each export in the history database")

	_ = viper.BindPFlag("export.output_dir", convertCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("export.no_br", convertCmd.Flags().Lookup("no-br"))
	_ = viper.BindPFlag("export.drawio_subdir", convertCmd.Flags().Lookup("drawio-subdir"))
	_ = viper.BindPFlag("export.manifest", convertCmd.Flags().Lookup("manifest"))
	_ = viper.BindPFlag("history.enabled", convertCmd.Flags().Lookup("history"))

	rootCmd.AddCommand(convertCmd)
}
