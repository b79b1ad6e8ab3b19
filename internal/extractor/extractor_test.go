package extractor

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func createTestWheel(t *testing.T, entries []string) string {
	t.Helper()

	whlPath := filepath.Join(t.TempDir(), "test-1.0-py3-none-any.whl")
	f, err := os.Create(whlPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	defer zw.Close()

	for _, entry := range entries {
		w, err := zw.Create(entry)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte("content of " + entry)); err != nil {
			t.Fatal(err)
		}
	}

	return whlPath
}

func TestExtract_WritesTreeAndReturnsNames(t *testing.T) {
	// Arrange
	entries := []string{
		"demo/__init__.py",
		"demo/mod.py",
		"demo-1.0.dist-info/METADATA",
	}
	whlPath := createTestWheel(t, entries)
	target := filepath.Join(t.TempDir(), "out")

	// Act
	names, err := Extract(whlPath, target)

	// Assert
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if !reflect.DeepEqual(names, entries) {
		t.Errorf("Extract() names = %v, want %v", names, entries)
	}
	for _, entry := range entries {
		data, err := os.ReadFile(filepath.Join(target, filepath.FromSlash(entry)))
		if err != nil {
			t.Errorf("entry %s not extracted: %v", entry, err)
			continue
		}
		if string(data) != "content of "+entry {
			t.Errorf("entry %s has wrong contents", entry)
		}
	}
}

func TestExtract_CreatesTargetDir(t *testing.T) {
	whlPath := createTestWheel(t, []string{"demo/mod.py"})
	target := filepath.Join(t.TempDir(), "deeply", "nested", "out")

	if _, err := Extract(whlPath, target); err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(target, "demo", "mod.py")); err != nil {
		t.Errorf("extracted file missing: %v", err)
	}
}

func TestExtract_NamesExcludeGeneratedFiles(t *testing.T) {
	// Arrange: extract once, drop an extra file into the tree, extract a
	// second archive over it. The returned names must reflect the archive
	// only, never the target directory's contents.
	whlPath := createTestWheel(t, []string{"demo/mod.py"})
	target := filepath.Join(t.TempDir(), "out")
	if _, err := Extract(whlPath, target); err != nil {
		t.Fatal(err)
	}
	extra := filepath.Join(target, "demo", "__init__.py")
	if err := os.WriteFile(extra, nil, 0644); err != nil {
		t.Fatal(err)
	}

	// Act
	names, err := Extract(whlPath, target)

	// Assert
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if !reflect.DeepEqual(names, []string{"demo/mod.py"}) {
		t.Errorf("Extract() names = %v, want archive entries only", names)
	}
}

func TestExtract_CorruptArchive(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "bogus.whl")
	if err := os.WriteFile(path, []byte("not a zip"), 0644); err != nil {
		t.Fatal(err)
	}

	// Act
	_, err := Extract(path, t.TempDir())

	// Assert
	if !errors.Is(err, ErrCorruptArchive) {
		t.Errorf("Extract() error = %v, want ErrCorruptArchive", err)
	}
}

func TestExtract_MissingArchive(t *testing.T) {
	_, err := Extract(filepath.Join(t.TempDir(), "absent.whl"), t.TempDir())
	if !errors.Is(err, ErrCorruptArchive) {
		t.Errorf("Extract() error = %v, want ErrCorruptArchive", err)
	}
}
