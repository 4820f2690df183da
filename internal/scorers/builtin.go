// Package scorers provides the built-in evaluation heuristics shipped
// with the solver, addressed as "builtin:<name>" in scorer directives.
package scorers

import (
	"fmt"
	"sort"

	"github.com/roach88/gambit/internal/board"
	"github.com/roach88/gambit/internal/score"
)

// BuiltinPath is the provider prefix that resolves against the compiled-in
// scorer table instead of an external source.
const BuiltinPath = "builtin"

// Builtin describes one compiled-in scorer for listings.
type Builtin struct {
	Name        string
	Description string
	New         func() score.Scorer
}

var builtins = map[string]Builtin{
	"overlapping": {
		Name: "overlapping",
		Description: "Rewards moves whose attack rays overlap rays already " +
			"cast by other queens, compacting the attacked region.",
		New: func() score.Scorer { return NewOverlapping() },
	},
	"ladder": {
		Name: "ladder",
		Description: "Rewards queens a knight's move from the last placement. " +
			"Strong on odd widths, counterproductive on even ones.",
		New: func() score.Scorer { return NewLadder() },
	},
	"wrapping_ladder": {
		Name: "wrapping_ladder",
		Description: "Knight-distance ladder on a toroidal board. Pairs with " +
			"a negatively weighted ladder on even widths.",
		New: func() score.Scorer { return NewWrappingLadder() },
	},
}

// Builtins returns the compiled-in scorers sorted by name.
func Builtins() []Builtin {
	out := make([]Builtin, 0, len(builtins))
	for _, b := range builtins {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Resolve maps a directive's path and symbol to a scorer instance.
//
// Only the builtin provider exists; any other path, and any unknown
// symbol, yields a LoadError.
func Resolve(path, symbol string) (score.Scorer, error) {
	if path != BuiltinPath {
		return nil, score.NewLoadError(path, symbol,
			fmt.Sprintf("unknown scorer provider %q (only %q is available)", path, BuiltinPath))
	}
	b, ok := builtins[symbol]
	if !ok {
		return nil, score.NewLoadError(path, symbol, "no such builtin scorer")
	}
	return b.New(), nil
}

// Overlapping scores a move by how densely the cells on its four attack
// rays are already attacked from other directions.
//
// Each ray sweep counts, per visited cell, the attack flags of the
// OTHER directions, so a lone queen only ever overlaps itself through
// the shared cell under it. The diagonal sweep walks the principal
// diagonal first and spills into the antidiagonal, switching the
// counted flag once the visited indices restart descending.
type Overlapping struct{}

// NewOverlapping creates the overlap-density scorer.
func NewOverlapping() *Overlapping {
	return &Overlapping{}
}

// Score returns the overlap count normalized by three countable flags
// per visited cell.
//
// Implements score.Scorer.
func (s *Overlapping) Score(view board.View, last board.Move) float64 {
	width := view.Width()
	index := last.Index(width)
	bounds := board.NewBoundaries(index, width)

	var sum, count uint64

	sweep := func(r board.Ray, flags [3]board.Ray) {
		taken := 0
		lo, hi, step := bounds.Extent(r, width)
		for i := lo; i <= hi && taken < width; i += step {
			count++
			for _, f := range flags {
				if view.Attacked(i, f) {
					sum++
				}
			}
			taken++
		}
	}

	sweep(board.RayHorizontal, [3]board.Ray{board.RayVertical, board.RayPrincipal, board.RayAntidiagonal})
	sweep(board.RayVertical, [3]board.Ray{board.RayHorizontal, board.RayPrincipal, board.RayAntidiagonal})

	// Diagonal sweep: principal cells then antidiagonal cells, capped at
	// width total. The first index drop marks the crossover.
	isPrincipal := true
	lastDiagonal := 0
	taken := 0
	diagonal := func(i int) {
		count++
		if i < lastDiagonal {
			isPrincipal = false
		}
		lastDiagonal = i
		if view.Attacked(i, board.RayHorizontal) {
			sum++
		}
		if view.Attacked(i, board.RayVertical) {
			sum++
		}
		cross := board.RayAntidiagonal
		if !isPrincipal {
			cross = board.RayPrincipal
		}
		if view.Attacked(i, cross) {
			sum++
		}
	}
	pLo, pHi, pStep := bounds.Extent(board.RayPrincipal, width)
	for i := pLo; i <= pHi && taken < width; i += pStep {
		diagonal(i)
		taken++
	}
	aLo, aHi, aStep := bounds.Extent(board.RayAntidiagonal, width)
	for i := aLo; i <= aHi && taken < width; i += aStep {
		diagonal(i)
		taken++
	}

	return float64(sum) / float64(count*3)
}

// knightOffsets are the eight (column, row) deltas of a knight's move.
var knightOffsets = [8][2]int{
	{-2, -1}, {-1, -2}, {1, -2}, {2, -1},
	{2, 1}, {1, 2}, {-1, 2}, {-2, 1},
}

// Ladder counts queens a knight's move away from the last placement.
type Ladder struct{}

// NewLadder creates the knight-distance scorer.
func NewLadder() *Ladder {
	return &Ladder{}
}

// Score returns the knight-neighbor queen count over the eight
// possible offsets. Off-board offsets score nothing.
//
// Implements score.Scorer.
func (s *Ladder) Score(view board.View, last board.Move) float64 {
	width := view.Width()
	count := 0
	for _, o := range knightOffsets {
		col, row := last.Col+o[0], last.Row+o[1]
		if col < 0 || col >= width || row < 0 || row >= width {
			continue
		}
		if view.IsQueen(row*width + col) {
			count++
		}
	}
	return float64(count) / 8.0
}

// WrappingLadder is Ladder on a toroidal surface: knight offsets are
// applied to the flat cell index modulo the cell count, so rays leaving
// one edge re-enter at the opposite one.
type WrappingLadder struct{}

// NewWrappingLadder creates the toroidal knight-distance scorer.
func NewWrappingLadder() *WrappingLadder {
	return &WrappingLadder{}
}

// Score counts queens on the eight wrapped knight cells. Interior cells
// score identically to Ladder; near the edges the wrapped offsets can
// alias, in which case one queen counts through each aliased offset.
//
// Implements score.Scorer.
func (s *WrappingLadder) Score(view board.View, last board.Move) float64 {
	width := view.Width()
	cells := width * width
	index := last.Index(width)

	deltas := [4]int{2*width - 1, width - 2, 2*width + 1, width + 2}
	count := 0
	for _, d := range deltas {
		if view.IsQueen(mod(index-d, cells)) {
			count++
		}
		if view.IsQueen(mod(index+d, cells)) {
			count++
		}
	}
	return float64(count) / 8.0
}

// mod is the euclidean remainder, non-negative for any a.
func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
