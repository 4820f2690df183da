package score

import (
	"math"

	"github.com/roach88/gambit/internal/board"
)

// DefaultWeight applies when an evaluator directive omits its weight.
const DefaultWeight = 1.0

// Scorer rates the attractiveness of the most recent move on a board
// view. Implementations must return a value in [0, 1], must not mutate
// the view, and must not retain it past the call.
type Scorer interface {
	Score(view board.View, last board.Move) float64
}

// ScorerFunc adapts a plain function to the Scorer interface.
type ScorerFunc func(view board.View, last board.Move) float64

// Score implements Scorer.
func (f ScorerFunc) Score(view board.View, last board.Move) float64 {
	return f(view, last)
}

// Spec pairs a resolved scoring capability with its display name and
// weight. Specs are established at startup and immutable afterwards.
type Spec struct {
	// Name is the human-readable identity, e.g. "builtin:ladder".
	Name string

	// Weight scales the scorer's output. Sign is permitted; negative
	// weights turn a scorer into a penalty.
	Weight float64

	// Scorer is the resolved capability.
	Scorer Scorer
}

// Registry holds an ordered, read-only list of weighted scorers.
//
// Order matters only for reproducibility of floating-point summation;
// the registry never reorders what the host configured.
type Registry struct {
	specs       []Spec
	weightBound float64
}

// NewRegistry builds a registry from resolved specs.
//
// A spec with a nil Scorer fails with a LOAD_ERROR: it means resolution
// was skipped or silently failed upstream, which must surface before the
// search starts rather than as a nil dereference mid-run.
func NewRegistry(specs ...Spec) (*Registry, error) {
	r := &Registry{specs: append([]Spec(nil), specs...)}
	for _, s := range r.specs {
		if s.Scorer == nil {
			return nil, NewLoadError("", s.Name, "scorer capability is nil")
		}
		r.weightBound += math.Abs(s.Weight)
	}
	return r, nil
}

// Len returns the number of configured scorers.
func (r *Registry) Len() int {
	return len(r.specs)
}

// Specs returns a copy of the configured specs, in order.
func (r *Registry) Specs() []Spec {
	return append([]Spec(nil), r.specs...)
}

// WeightBound returns the sum of weight magnitudes. Composite scores
// always lie in [-WeightBound, WeightBound].
func (r *Registry) WeightBound() float64 {
	return r.weightBound
}

// Composite returns the weighted sum of every scorer's output for the
// move, evaluated in registration order.
func (r *Registry) Composite(view board.View, last board.Move) float64 {
	total := 0.0
	for _, s := range r.specs {
		total += s.Weight * s.Scorer.Score(view, last)
	}
	return total
}
