// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// AssetsDir is the directory, next to the pages directory in a Logseq
// graph and inside the destination directory, that holds binary assets.
const AssetsDir = "assets"

// Materializer makes a referenced asset available next to the exported
// page. Implementations return an error when the asset cannot be found.
type Materializer interface {
	// Materialize copies the asset name, found under subdir of the
	// graph's assets directory, into the destination's assets directory.
	Materialize(name, subdir string) error
}

// DirMaterializer copies assets between directories on the local
// filesystem. SourceDir is the directory of the page being exported;
// assets are read from SourceDir/../assets.
type DirMaterializer struct {
	SourceDir string
	DestDir   string
}

// Materialize copies SourceDir/../assets/<subdir>/<name> to
// DestDir/assets/<name>, creating directories as needed.
func (m *DirMaterializer) Materialize(name, subdir string) error {
	src := filepath.Join(m.SourceDir, "..", AssetsDir, subdir, name)
	dst := filepath.Join(m.DestDir, AssetsDir, name)

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("creating assets directory: %w", err)
	}
	if err := copyFile(src, dst); err != nil {
		return fmt.Errorf("copying asset %s: %w", name, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
