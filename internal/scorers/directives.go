package scorers

import (
	"strings"

	"github.com/roach88/gambit/internal/score"
)

// ParseDirective parses a scorer directive, defaulting bare function
// names to the builtin provider: "ladder" is shorthand for
// "builtin:ladder". Everything else follows score.ParseDirective.
func ParseDirective(s string) (score.Directive, error) {
	if s != "" && !strings.Contains(s, ":") {
		s = BuiltinPath + ":" + s
	}
	return score.ParseDirective(s)
}

// FromDirectives parses and resolves directive strings into registry
// specs. The second return value carries the normalized directive
// forms ("builtin:ladder:1"), which identify the scorer stack in run
// fingerprints and stored history.
func FromDirectives(directives []string) ([]score.Spec, []string, error) {
	specs := make([]score.Spec, 0, len(directives))
	normalized := make([]string, 0, len(directives))
	for _, raw := range directives {
		d, err := ParseDirective(raw)
		if err != nil {
			return nil, nil, err
		}
		scorer, err := Resolve(d.Path, d.Symbol)
		if err != nil {
			return nil, nil, err
		}
		specs = append(specs, score.Spec{
			Name:   d.Path + ":" + d.Symbol,
			Weight: d.Weight,
			Scorer: scorer,
		})
		normalized = append(normalized, d.String())
	}
	return specs, normalized, nil
}
