// Package manifest renders the BUILD file describing how to import an
// unpacked wheel as a py_library.
package manifest

import (
	"fmt"
	"io"
	"strings"
)

// ExtraDeps holds the resolved dependency names for one extra group, in
// metadata order.
type ExtraDeps struct {
	Name string
	Deps []string
}

// Manifest is the record handed to the emitter: the resolved identity and
// dependency facts for one unpacked wheel.
type Manifest struct {
	// RepositoryName is the canonical build-repository name of the wheel.
	RepositoryName string
	// ImportPath is the directory, relative to the extraction root, to
	// treat as the import root.
	ImportPath string
	// RequirementsLabel is the label of the requirement build rule,
	// opaque to this package beyond formatting.
	RequirementsLabel string
	// Deps are the base dependency names, in metadata order.
	Deps []string
	// Extras are the per-extra dependency sets to generate targets for.
	Extras []ExtraDeps
}

// Emitter writes BUILD files for unpacked wheels.
type Emitter struct {
	w io.Writer
}

// NewEmitter creates an emitter writing to w.
func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{w: w}
}

// Emit renders the manifest as a BUILD file: one py_library "pkg" for the
// wheel itself and one py_library per extra group layered on top of it.
func (e *Emitter) Emit(m *Manifest) error {
	_, err := fmt.Fprintf(e.w, `package(default_visibility = ["//visibility:public"])

load(%q, "requirement")

py_library(
    name = "pkg",
    srcs = glob(["**/*.py"]),
    data = glob(["**/*"], exclude=["**/*.py", "**/* *", "BUILD", "WORKSPACE"]),
    imports = [%q],
    deps = [%s],
)
`, m.RequirementsLabel, m.ImportPath, requirementList(m.Deps))
	if err != nil {
		return err
	}

	for _, extra := range m.Extras {
		deps := ""
		if len(extra.Deps) > 0 {
			deps = "," + requirementList(extra.Deps)
		}
		_, err := fmt.Fprintf(e.w, `
py_library(
    name = %q,
    deps = [
        ":pkg"%s,
    ],
)
`, extra.Name, deps)
		if err != nil {
			return err
		}
	}
	return nil
}

func requirementList(deps []string) string {
	entries := make([]string, len(deps))
	for i, d := range deps {
		entries[i] = fmt.Sprintf("requirement(%q)", d)
	}
	return strings.Join(entries, ",")
}
