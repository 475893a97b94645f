// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for logseq-export: the
// record of one page export and the configuration of each stage.
package types

import "time"

// LineCounts summarises how many lines went in and out of an export.
type LineCounts struct {
	// Input is the number of physical lines in the source page.
	Input int `json:"input" yaml:"input"`

	// Output is the number of lines written, before indentation.
	Output int `json:"output" yaml:"output"`

	// Elided is the number of Logseq-only metadata lines dropped.
	Elided int `json:"elided" yaml:"elided"`
}

// ExportRecord describes one exported page.
type ExportRecord struct {
	// Source is the path of the Logseq page that was read.
	Source string `json:"source" yaml:"source"`

	// Output is the path of the Markdown file that was written.
	Output string `json:"output" yaml:"output"`

	// Assets lists the asset file names copied into the destination's
	// assets directory.
	Assets []string `json:"assets" yaml:"assets"`

	// Lines holds the line counts of the conversion.
	Lines LineCounts `json:"lines" yaml:"lines"`

	// NoBreakTags records whether empty bullets were written without <br>.
	NoBreakTags bool `json:"no_br" yaml:"no_br"`

	// ExportedAt is the UTC time the output file was written.
	ExportedAt time.Time `json:"exported_at" yaml:"exported_at"`
}
