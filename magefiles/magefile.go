// Package main contains Mage build targets for logseq-export developer tooling.
package main

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "logseq-export"
	cmdPkg  = "./cmd/logseq-export"

	samplePage = "testdata/graph/pages/sample.md"
	sampleOut  = "out"
)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Sample builds the CLI and exports the bundled sample page into out/,
// with a manifest sidecar next to it.
func Sample() error {
	mg.Deps(Build)
	if err := sh.RunV(filepath.Join(binDir, binName), "convert", samplePage, "-o", sampleOut, "--manifest"); err != nil {
		return fmt.Errorf("exporting sample: %w", err)
	}
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Stats prints non-blank Go lines (production and tests) and the word
// count of the Markdown documents.
func Stats() error {
	var prod, tests, words int
	err := filepath.WalkDir(".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return skipDir(path, d.Name())
		}
		ext := filepath.Ext(path)
		if ext != ".go" && ext != ".md" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		switch {
		case ext == ".md":
			words += len(strings.Fields(string(data)))
		case strings.HasSuffix(path, "_test.go"):
			tests += nonBlank(data)
		default:
			prod += nonBlank(data)
		}
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Printf("Go lines (production): %d\n", prod)
	fmt.Printf("Go lines (tests):      %d\n", tests)
	fmt.Printf("Markdown words:        %d\n", words)
	return nil
}

// skipDir skips what the go tool ignores: "_" and "." prefixed
// directories and testdata.
func skipDir(path, name string) error {
	if path != "." && (strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".") || name == "testdata") {
		return filepath.SkipDir
	}
	return nil
}

func nonBlank(data []byte) int {
	n := 0
	for _, line := range bytes.Split(data, []byte("\n")) {
		if len(bytes.TrimSpace(line)) > 0 {
			n++
		}
	}
	return n
}
