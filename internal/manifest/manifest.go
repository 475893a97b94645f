// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manifest writes and reads the YAML sidecar that describes one
// exported page: where it came from, which assets it pulled in and the
// heading outline of the resulting Markdown.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/logseq-export/pkg/types"
)

// Suffix is appended to the page name, without its extension, to form the
// sidecar file name.
const Suffix = ".export.yaml"

// Heading is one heading found in the exported Markdown.
type Heading struct {
	Level int    `json:"level" yaml:"level"`
	Text  string `json:"text" yaml:"text"`
}

// Manifest is the sidecar content.
type Manifest struct {
	types.ExportRecord `yaml:",inline"`

	Headings []Heading `json:"headings" yaml:"headings"`
}

// PathFor returns the sidecar path for an exported page.
func PathFor(outputPath string) string {
	base := strings.TrimSuffix(outputPath, filepath.Ext(outputPath))
	return base + Suffix
}

// Build reads the exported page named by rec.Output and returns its
// manifest.
func Build(rec *types.ExportRecord) (*Manifest, error) {
	data, err := os.ReadFile(rec.Output)
	if err != nil {
		return nil, fmt.Errorf("reading exported page: %w", err)
	}
	return &Manifest{
		ExportRecord: *rec,
		Headings:     Headings(data),
	}, nil
}

// Write builds the manifest for rec and writes it next to the exported
// page. It returns the sidecar path.
func Write(rec *types.ExportRecord) (string, error) {
	m, err := Build(rec)
	if err != nil {
		return "", err
	}
	data, err := yaml.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("marshaling manifest: %w", err)
	}
	path := PathFor(rec.Output)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing manifest %s: %w", path, err)
	}
	return path, nil
}

// Read loads a sidecar written by Write.
func Read(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return &m, nil
}

// Headings parses Markdown and returns its headings in document order.
func Headings(source []byte) []Heading {
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	headings := []Heading{}
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		headings = append(headings, Heading{
			Level: h.Level,
			Text:  nodeText(h, source),
		})
		return ast.WalkSkipChildren, nil
	})
	return headings
}

// nodeText concatenates the text segments under n.
func nodeText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}
