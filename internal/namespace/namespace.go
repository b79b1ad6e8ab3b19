// Package namespace repairs extracted wheel trees for build systems that
// require every importable directory to carry an explicit __init__.py.
// Some producers omit the file for implicit namespace packages; a few
// ship an empty one that must be overwritten for the package's submodules
// to resolve across distributions.
package namespace

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// MarkerContents is written to every repaired __init__.py. It declares a
// pkg_resources namespace, falling back to pkgutil path extension where
// pkg_resources is unavailable.
const MarkerContents = `try:
    import pkg_resources
    pkg_resources.declare_namespace(__name__)
except ImportError:
    import pkgutil
    __path__ = pkgutil.extend_path(__path__, __name__)
`

// codeSuffixes are the entry suffixes that make a directory importable.
var codeSuffixes = map[string]bool{
	".so":  true,
	".py":  true,
	".pyc": true,
}

// MarkerPaths computes the __init__.py paths that must be (re)written
// after extraction, based on Bazel's PythonUtils.getInitPyFiles().
//
// For every entry holding code, each ancestor directory is inspected from
// the entry upward. An ancestor that already has an __init__.py or
// __init__.pyc in the archive needs no repair and ends the walk for that
// entry, unless the directory is in rewriteAlways, in which case its
// marker is rewritten and the walk continues. entryNames must be the
// archive's own entry set, not a listing of the extracted tree.
//
// The result is sorted, so repeated runs over the same entry set yield
// identical output.
func MarkerPaths(entryNames []string, rewriteAlways map[string]bool) []string {
	names := make(map[string]bool, len(entryNames))
	for _, n := range entryNames {
		names[n] = true
	}

	markers := make(map[string]bool)
	for _, n := range entryNames {
		if !codeSuffixes[path.Ext(n)] {
			continue
		}
		for strings.Contains(n, "/") {
			n = path.Dir(n)
			initpy := path.Join(n, "__init__.py")
			initpyc := path.Join(n, "__init__.pyc")
			if (names[initpy] || names[initpyc]) && !rewriteAlways[n] {
				// Already a real package; the chain above it needs no repair.
				break
			}
			markers[initpy] = true
		}
	}

	out := make([]string, 0, len(markers))
	for m := range markers {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// Repair writes marker files into the extracted tree at dir for every
// path MarkerPaths reports. Any write failure is fatal.
func Repair(dir string, entryNames []string, rewriteAlways map[string]bool) error {
	for _, m := range MarkerPaths(entryNames, rewriteAlways) {
		target := filepath.Join(dir, filepath.FromSlash(m))
		if err := os.WriteFile(target, []byte(MarkerContents), 0644); err != nil {
			return fmt.Errorf("writing namespace marker %s: %w", target, err)
		}
	}
	return nil
}
