// Package extractor unpacks wheel archives onto disk.
package extractor

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrCorruptArchive is returned when the archive cannot be opened or an
// entry cannot be read.
var ErrCorruptArchive = errors.New("corrupt archive")

// Extract expands every entry of the archive into targetDir, creating it
// and any intermediate directories as needed. It returns the entry names
// exactly as stored in the archive, captured before any post-extraction
// repair touches the tree: a later directory listing would also pick up
// generated marker files that were never part of the archive.
//
// Extraction is fail-fast; a partial tree is left behind on error.
func Extract(archivePath, targetDir string) ([]string, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", ErrCorruptArchive, archivePath, err)
	}
	defer r.Close()

	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", targetDir, err)
	}

	names := make([]string, 0, len(r.File))
	for _, f := range r.File {
		names = append(names, f.Name)
		if err := extractEntry(f, targetDir); err != nil {
			return nil, err
		}
	}
	return names, nil
}

func extractEntry(f *zip.File, targetDir string) error {
	target := filepath.Join(targetDir, filepath.FromSlash(f.Name))

	if f.FileInfo().IsDir() {
		if err := os.MkdirAll(target, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", target, err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(target), err)
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("%w: reading %s: %v", ErrCorruptArchive, f.Name, err)
	}
	defer rc.Close()

	mode := f.Mode() & 0777
	if mode == 0 {
		mode = 0644
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("creating %s: %w", target, err)
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return fmt.Errorf("writing %s: %w", target, err)
	}
	return out.Close()
}
