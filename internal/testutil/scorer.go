package testutil

import (
	"sync"

	"github.com/roach88/gambit/internal/board"
	"github.com/roach88/gambit/internal/score"
)

// ConstScorer scores every candidate with the same fixed value.
//
// With a constant score the engine's tie-break (smallest column wins)
// fully determines the search order, which makes run traces predictable.
//
// Thread-safety: ConstScorer is stateless and safe for concurrent use.
type ConstScorer struct {
	value float64
}

// NewConstScorer creates a scorer that always returns value.
func NewConstScorer(value float64) *ConstScorer {
	return &ConstScorer{value: value}
}

// Score returns the fixed value regardless of board or move.
//
// Implements score.Scorer.
func (s *ConstScorer) Score(_ board.View, _ board.Move) float64 {
	return s.value
}

// ColumnScorer scores a candidate by how far right its column sits,
// normalized to [0, 1).
//
// Registered with a positive weight it pulls the search toward high
// columns; with a negative weight, toward low columns. Tests use it to
// show that weight sign alone changes the chosen branch.
//
// Thread-safety: ColumnScorer is stateless and safe for concurrent use.
type ColumnScorer struct{}

// NewColumnScorer creates a column-position scorer.
func NewColumnScorer() *ColumnScorer {
	return &ColumnScorer{}
}

// Score returns last.Col / width.
//
// Implements score.Scorer.
func (s *ColumnScorer) Score(view board.View, last board.Move) float64 {
	return float64(last.Col) / float64(view.Width())
}

// RecordingScorer wraps another scorer and records every move it is
// asked to score, in call order.
//
// Determinism tests run the same search twice and require the recorded
// move sequences to be identical.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type RecordingScorer struct {
	mu    sync.Mutex
	inner score.Scorer
	moves []board.Move
}

// NewRecordingScorer wraps inner. A nil inner scores everything 0.
func NewRecordingScorer(inner score.Scorer) *RecordingScorer {
	return &RecordingScorer{inner: inner}
}

// Score records the move, then delegates to the wrapped scorer.
//
// Implements score.Scorer.
func (s *RecordingScorer) Score(view board.View, last board.Move) float64 {
	s.mu.Lock()
	s.moves = append(s.moves, last)
	s.mu.Unlock()

	if s.inner == nil {
		return 0
	}
	return s.inner.Score(view, last)
}

// Moves returns a copy of the recorded moves in call order.
func (s *RecordingScorer) Moves() []board.Move {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]board.Move, len(s.moves))
	copy(out, s.moves)
	return out
}

// Reset clears the recording.
func (s *RecordingScorer) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moves = nil
}
