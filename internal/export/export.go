// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export converts Logseq pages into flat standard Markdown.
//
// A page is read as a sequence of tab-indented outline lines. Every line
// is classified, its output indentation is recomputed from the change in
// raw indent, and its content is rewritten: outline bullets are stripped,
// task markers, asset links and draw.io macros are expanded, code fences
// pass through verbatim and Logseq-only metadata is dropped.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/logseq-export/internal/outline"
	"github.com/pdiddy/logseq-export/pkg/types"
)

// Options controls a page export.
type Options struct {
	// NoBreakTags renders empty bullets as blank lines instead of <br>.
	NoBreakTags bool

	// DrawioSubdir overrides DefaultDrawioSubdir.
	DrawioSubdir string

	// Materializer copies referenced assets. Convert uses a
	// DirMaterializer rooted at the page's directory when nil.
	Materializer Materializer

	// Logger receives per-line debug output and warnings. Nil uses
	// slog.Default().
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// page is a source page that has been read and classified but not yet
// written.
type page struct {
	path  string
	lines []outline.ClassifiedLine
}

// load reads and classifies the page at sourcePath.
func load(sourcePath string, log *slog.Logger) (*page, error) {
	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", sourcePath, err)
	}

	lines, err := outline.Parse(outline.SplitLines(string(data)))
	if err != nil {
		var cerr *outline.ClassificationError
		if errors.As(err, &cerr) {
			log.Error("parsing error", "file", sourcePath, "line", cerr.Number, "content", cerr.Line)
		}
		return nil, err
	}
	return &page{path: sourcePath, lines: lines}, nil
}

// Convert exports the page at sourcePath into destDir, writing
// destDir/<base name of sourcePath> and copying referenced assets into
// destDir/assets. An unclassifiable line aborts the export with an
// *outline.ClassificationError before anything is written.
func Convert(sourcePath, destDir string, opts Options) (*types.ExportRecord, error) {
	p, err := load(sourcePath, opts.logger())
	if err != nil {
		return nil, err
	}
	return p.write(destDir, opts)
}

func (p *page) write(destDir string, opts Options) (*types.ExportRecord, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", destDir, err)
	}

	if opts.Materializer == nil {
		absSource, err := filepath.Abs(p.path)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", p.path, err)
		}
		opts.Materializer = &DirMaterializer{
			SourceDir: filepath.Dir(absSource),
			DestDir:   destDir,
		}
	}

	doc, err := render(p.lines, opts)
	if err != nil {
		return nil, err
	}

	outPath := filepath.Join(destDir, filepath.Base(p.path))
	if err := os.WriteFile(outPath, []byte(doc.String()), 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", outPath, err)
	}
	opts.logger().Info("exported", "path", outPath)

	assets := doc.Assets
	if assets == nil {
		assets = []string{}
	}
	return &types.ExportRecord{
		Source: p.path,
		Output: outPath,
		Assets: assets,
		Lines: types.LineCounts{
			Input:  doc.InputLines,
			Output: len(doc.Lines),
			Elided: doc.ElidedLines,
		},
		NoBreakTags: opts.NoBreakTags,
		ExportedAt:  time.Now().UTC(),
	}, nil
}

// Hook runs after a page has been exported. A hook error marks the page
// as failed.
type Hook func(rec *types.ExportRecord) error

// BatchResult holds the outcome of a batch export run.
type BatchResult struct {
	Exported int
	Failed   int
	Records  []*types.ExportRecord

	// Aborted is set when an unclassifiable line stopped the run.
	Aborted bool
}

// Total returns the total number of pages processed.
func (r BatchResult) Total() int {
	return r.Exported + r.Failed
}

// HasFailures reports whether any page failed to export.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ExportPage exports one page and runs the hooks on its record, printing
// a status line to w.
func ExportPage(sourcePath, destDir string, opts Options, w io.Writer, hooks ...Hook) (*types.ExportRecord, error) {
	p, err := load(sourcePath, opts.logger())
	if err != nil {
		fmt.Fprintf(w, "failed:   %s (%v)\n", sourcePath, err)
		return nil, err
	}
	return exportPage(p, destDir, opts, w, hooks)
}

func exportPage(p *page, destDir string, opts Options, w io.Writer, hooks []Hook) (*types.ExportRecord, error) {
	rec, err := p.write(destDir, opts)
	if err != nil {
		fmt.Fprintf(w, "failed:   %s (%v)\n", p.path, err)
		return nil, err
	}
	for _, h := range hooks {
		if err := h(rec); err != nil {
			fmt.Fprintf(w, "failed:   %s (%v)\n", p.path, err)
			return rec, err
		}
	}
	fmt.Fprintf(w, "exported: %s -> %s\n", p.path, rec.Output)
	return rec, nil
}

// ExportBatch exports each page independently into destDir, printing
// per-page status to w and returning a summary. Every page is read and
// classified before the first one is written: an unclassifiable line in
// any page aborts the run with nothing written. Read failures and I/O
// failures while writing skip the page and the batch continues.
func ExportBatch(ctx context.Context, paths []string, destDir string, opts Options, w io.Writer, hooks ...Hook) BatchResult {
	var result BatchResult
	defer func() {
		if len(paths) > 1 {
			fmt.Fprintf(w, "\nBatch summary: %d exported, %d failed (total: %d)\n",
				result.Exported, result.Failed, result.Total())
		}
	}()

	pages := make([]*page, 0, len(paths))
	for _, path := range paths {
		if ctx.Err() != nil {
			return result
		}
		p, err := load(path, opts.logger())
		if err != nil {
			fmt.Fprintf(w, "failed:   %s (%v)\n", path, err)
			result.Failed++
			var cerr *outline.ClassificationError
			if errors.As(err, &cerr) {
				result.Aborted = true
				return result
			}
			continue
		}
		pages = append(pages, p)
	}

	for _, p := range pages {
		if ctx.Err() != nil {
			break
		}
		rec, err := exportPage(p, destDir, opts, w, hooks)
		if err != nil {
			result.Failed++
			continue
		}
		result.Exported++
		result.Records = append(result.Records, rec)
	}
	return result
}
