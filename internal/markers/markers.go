// Package markers supplies environment-marker evaluation to the
// dependency resolver. The PEP 508 marker grammar itself is not
// implemented here; callers pick an Evaluator that defers to a Python
// interpreter or to a fixed answer set.
package markers

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
)

// Evaluator reports whether an environment marker is satisfied in the
// target environment.
type Evaluator interface {
	Satisfied(marker string) (bool, error)
}

// Static is an Evaluator backed by a fixed set of satisfied markers.
// Any marker not in the set is unsatisfied.
type Static struct {
	satisfied map[string]bool
}

// NewStatic creates a Static evaluator treating exactly the given marker
// strings as satisfied.
func NewStatic(satisfied []string) *Static {
	s := &Static{satisfied: make(map[string]bool, len(satisfied))}
	for _, m := range satisfied {
		s.satisfied[m] = true
	}
	return s
}

// Satisfied reports whether marker is in the satisfied set.
func (s *Static) Satisfied(marker string) (bool, error) {
	return s.satisfied[marker], nil
}

// evalProgram is run with the marker as its single argument and exits 0
// when the marker holds in the interpreter's environment, 1 when it does
// not.
const evalProgram = `import sys
try:
    from packaging.markers import Marker
except ImportError:
    from pip._vendor.packaging.markers import Marker
sys.exit(0 if Marker(sys.argv[1]).evaluate() else 1)
`

// Python is an Evaluator that asks a Python interpreter to evaluate
// markers against its own environment.
type Python struct {
	bin string
}

// NewPython creates a Python evaluator using the given interpreter
// binary, defaulting to "python3" when empty.
func NewPython(bin string) *Python {
	if bin == "" {
		bin = "python3"
	}
	return &Python{bin: bin}
}

// Satisfied evaluates the marker by exit code: 0 satisfied, 1 not,
// anything else (missing interpreter, bad marker syntax) is an error.
func (p *Python) Satisfied(marker string) (bool, error) {
	cmd := exec.Command(p.bin, "-c", evalProgram, marker)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard

	err := cmd.Run()
	if err == nil {
		return true, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return false, nil
	}
	return false, fmt.Errorf("evaluating marker %q: %w", marker, err)
}
