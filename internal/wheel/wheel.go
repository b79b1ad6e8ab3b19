package wheel

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/AppliedIntuition/rules-python/internal/metadata"
)

// ErrMalformedName is returned when an archive base name does not follow
// the PEP 427 "{distribution}-{version}-..." convention.
var ErrMalformedName = errors.New("wheel file name does not match {distribution}-{version}-... convention")

// Wheel represents a single .whl archive on disk. All identity facts
// (distribution, version, repository name, metadata) derive from the one
// path it was constructed with.
type Wheel struct {
	path string
	meta *metadata.Metadata
}

// New creates a Wheel for the archive at path.
func New(path string) *Wheel {
	return &Wheel{path: path}
}

// Path returns the archive path the Wheel was constructed with.
func (w *Wheel) Path() string {
	return w.path
}

// Basename returns the file name component of the archive path.
func (w *Wheel) Basename() string {
	return filepath.Base(w.path)
}

// split decomposes the base name into its hyphen-separated segments.
// See https://www.python.org/dev/peps/pep-0427/#file-name-convention
func (w *Wheel) split() ([]string, error) {
	parts := strings.Split(w.Basename(), "-")
	if len(parts) < 2 {
		return nil, fmt.Errorf("%w: %q", ErrMalformedName, w.Basename())
	}
	return parts, nil
}

// Distribution returns the distribution segment of the file name.
func (w *Wheel) Distribution() (string, error) {
	parts, err := w.split()
	if err != nil {
		return "", err
	}
	return parts[0], nil
}

// Version returns the version segment of the file name.
func (w *Wheel) Version() (string, error) {
	parts, err := w.split()
	if err != nil {
		return "", err
	}
	return parts[1], nil
}

// repositoryEscaper replaces characters that are illegal in repository
// names with underscores.
var repositoryEscaper = strings.NewReplacer("-", "_", ".", "_", "+", "_")

// RepositoryName returns the canonical build-repository name for this
// package, "pypi__{distribution}_{version}" with '-', '.' and '+' escaped
// to '_'. The mapping is pure: the same (distribution, version) pair
// always yields the same name. Distinct pairs could in principle collide
// after escaping, but not under realistic PyPI naming; the result is
// relied on as unique.
func (w *Wheel) RepositoryName() (string, error) {
	dist, err := w.Distribution()
	if err != nil {
		return "", err
	}
	ver, err := w.Version()
	if err != nil {
		return "", err
	}
	return repositoryEscaper.Replace(fmt.Sprintf("pypi__%s_%s", dist, ver)), nil
}

// DistInfoDir returns the name of the dist-info directory inside the
// archive, e.g. google_cloud-0.27.0-py2.py3-none-any.whl ->
// google_cloud-0.27.0.dist-info
func (w *Wheel) DistInfoDir() (string, error) {
	dist, err := w.Distribution()
	if err != nil {
		return "", err
	}
	ver, err := w.Version()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s.dist-info", dist, ver), nil
}

// Metadata reads the package metadata from the archive. The result is
// memoized: the archive is opened at most once per Wheel no matter how
// many identity or dependency questions are asked afterwards.
func (w *Wheel) Metadata() (*metadata.Metadata, error) {
	if w.meta != nil {
		return w.meta, nil
	}
	distInfo, err := w.DistInfoDir()
	if err != nil {
		return nil, err
	}
	meta, err := metadata.Read(w.path, distInfo)
	if err != nil {
		return nil, err
	}
	w.meta = meta
	return w.meta, nil
}

// Name returns the package name declared in the archive metadata.
func (w *Wheel) Name() (string, error) {
	meta, err := w.Metadata()
	if err != nil {
		return "", err
	}
	return meta.Name, nil
}
