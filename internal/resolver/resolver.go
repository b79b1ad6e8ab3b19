package resolver

import (
	"regexp"

	"github.com/charmbracelet/log"

	"github.com/AppliedIntuition/rules-python/internal/markers"
	"github.com/AppliedIntuition/rules-python/internal/metadata"
)

// Resolver filters a package's declared requirements down to the bare
// dependency names that apply for a given extra group and environment.
type Resolver struct {
	eval markers.Evaluator
	log  *log.Logger
}

// NewResolver creates a resolver using the given environment-marker
// evaluator.
func NewResolver(eval markers.Evaluator, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.Default()
	}
	return &Resolver{eval: eval, log: logger}
}

// versionSplitRe separates a requirement's bare name from any trailing
// version or operator data, e.g. "pkg (>=1.2,<2.0)" -> "pkg".
var versionSplitRe = regexp.MustCompile(`[ ><=()]`)

// Dependencies returns the dependency names that apply for the given
// extra group. extra == "" selects the base requirement set; a
// requirement tagged for an extra is excluded from the base set and vice
// versa (exact match only). Requirements carrying an environment marker
// are included only when the evaluator reports the marker satisfied.
// Order follows the metadata; duplicates are preserved.
func (r *Resolver) Dependencies(meta *metadata.Metadata, extra string) ([]string, error) {
	deps := []string{}
	for _, req := range meta.RunRequires {
		if req.Extra != extra {
			// Match the requirements for the extra we're looking for.
			continue
		}
		if req.Environment != "" {
			ok, err := r.eval.Satisfied(req.Environment)
			if err != nil {
				return nil, err
			}
			if !ok {
				// The current environment does not match the marker.
				r.log.Debug("skipping requirement, marker unsatisfied",
					"marker", req.Environment, "requires", req.Requires)
				continue
			}
		}
		for _, entry := range req.Requires {
			// Strip off any trailing versioning data.
			deps = append(deps, versionSplitRe.Split(entry, 2)[0])
		}
	}
	return deps, nil
}

// Extras returns the extra group names the package declares.
func (r *Resolver) Extras(meta *metadata.Metadata) []string {
	return meta.Extras
}
