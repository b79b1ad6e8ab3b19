// Package pkgpath locates the real import root inside an extracted wheel
// tree. The standard layout puts the package directory at the top level,
// but some wheels nest it, e.g. tensorflow ships under
// tensorflow-<version>.data/purelib/tensorflow.
package pkgpath

import (
	"fmt"
	"os"
	"path/filepath"
)

// Locate searches rootDir breadth-first for a directory containing a
// child named packageName and returns that directory relative to rootDir.
// The shallowest match wins; among equal depth, directory listing order
// decides. When no directory contains the package, "." is returned: the
// root is always a legal import path.
func Locate(rootDir, packageName string) (string, error) {
	queue := []string{rootDir}
	for len(queue) > 0 {
		dir := queue[0]
		queue = queue[1:]

		if _, err := os.Stat(filepath.Join(dir, packageName)); err == nil {
			rel, err := filepath.Rel(rootDir, dir)
			if err != nil {
				return "", fmt.Errorf("relativizing %s: %w", dir, err)
			}
			return rel, nil
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			return "", fmt.Errorf("listing %s: %w", dir, err)
		}
		for _, e := range entries {
			if e.IsDir() {
				queue = append(queue, filepath.Join(dir, e.Name()))
			}
		}
	}
	return ".", nil
}
