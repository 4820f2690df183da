package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/gambit/internal/board"
)

func TestConstScorer_ReturnsFixedValue(t *testing.T) {
	b, err := board.New(4, nil)
	require.NoError(t, err)

	s := NewConstScorer(0.75)

	// Same value for any move
	assert.Equal(t, 0.75, s.Score(b, board.Move{Row: 0, Col: 0}))
	assert.Equal(t, 0.75, s.Score(b, board.Move{Row: 3, Col: 2}))
}

func TestColumnScorer_MonotonicInColumn(t *testing.T) {
	b, err := board.New(4, nil)
	require.NoError(t, err)

	s := NewColumnScorer()

	assert.Equal(t, 0.0, s.Score(b, board.Move{Row: 0, Col: 0}))
	assert.Equal(t, 0.25, s.Score(b, board.Move{Row: 0, Col: 1}))
	assert.Equal(t, 0.75, s.Score(b, board.Move{Row: 0, Col: 3}))

	// Strictly increasing left to right
	prev := -1.0
	for col := 0; col < 4; col++ {
		v := s.Score(b, board.Move{Row: 1, Col: col})
		assert.Greater(t, v, prev)
		prev = v
	}
}

func TestColumnScorer_WithinScorerRange(t *testing.T) {
	b, err := board.New(8, nil)
	require.NoError(t, err)

	s := NewColumnScorer()
	for col := 0; col < 8; col++ {
		v := s.Score(b, board.Move{Row: 0, Col: col})
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestRecordingScorer_RecordsCallOrder(t *testing.T) {
	b, err := board.New(4, nil)
	require.NoError(t, err)

	rec := NewRecordingScorer(NewConstScorer(0.5))

	assert.Equal(t, 0.5, rec.Score(b, board.Move{Row: 0, Col: 2}))
	assert.Equal(t, 0.5, rec.Score(b, board.Move{Row: 1, Col: 0}))

	moves := rec.Moves()
	require.Len(t, moves, 2)
	assert.Equal(t, board.Move{Row: 0, Col: 2}, moves[0])
	assert.Equal(t, board.Move{Row: 1, Col: 0}, moves[1])
}

func TestRecordingScorer_NilInnerScoresZero(t *testing.T) {
	b, err := board.New(4, nil)
	require.NoError(t, err)

	rec := NewRecordingScorer(nil)

	assert.Equal(t, 0.0, rec.Score(b, board.Move{Row: 0, Col: 1}))
	assert.Len(t, rec.Moves(), 1)
}

func TestRecordingScorer_ResetClears(t *testing.T) {
	b, err := board.New(4, nil)
	require.NoError(t, err)

	rec := NewRecordingScorer(nil)
	rec.Score(b, board.Move{Row: 0, Col: 0})
	rec.Score(b, board.Move{Row: 0, Col: 1})
	require.Len(t, rec.Moves(), 2)

	rec.Reset()
	assert.Empty(t, rec.Moves())
}

func TestRecordingScorer_MovesReturnsCopy(t *testing.T) {
	b, err := board.New(4, nil)
	require.NoError(t, err)

	rec := NewRecordingScorer(nil)
	rec.Score(b, board.Move{Row: 0, Col: 3})

	moves := rec.Moves()
	moves[0] = board.Move{Row: 9, Col: 9}

	// Internal recording unaffected
	assert.Equal(t, board.Move{Row: 0, Col: 3}, rec.Moves()[0])
}
