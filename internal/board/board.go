package board

import (
	"fmt"
	"sort"
)

// Move is a candidate placement for the next unfilled row.
type Move struct {
	Row int
	Col int
}

// Index returns the row-major cell index of the move.
func (m Move) Index(width int) int {
	return m.Row*width + m.Col
}

// View is the read-only board surface handed to scoring functions.
// *Board implements it. Scorers must not retain the view past the call.
type View interface {
	// Width returns the board dimension N.
	Width() int

	// IsQueen reports whether the cell at the row-major index holds a queen.
	IsQueen(index int) bool

	// Attacked reports whether the cell at the row-major index is attacked
	// along the given direction.
	Attacked(index int, r Ray) bool
}

// Board is an N×N board filled one queen per row.
//
// INVARIANTS:
//   - No two placed queens share a column, diagonal or anti-diagonal
//     (and preset validation extends this to rows)
//   - rows[r] is the column of the queen in row r, or -1
//   - seq holds the placed columns in fill order: presets by ascending
//     row, then search placements in placement order
//   - Preset rows never appear on the undo stack
type Board struct {
	width  int
	cells  []Cell
	rows   []int
	preset []bool
	stack  []int
	seq    Key
	queens int
}

// New creates a board of the given width with the given preset queens.
//
// Presets are row-major cell indices. They are validated for range,
// duplicates and mutual non-conflict before any search state exists;
// any violation fails with an INVALID_PRESET error.
func New(width int, presets []int) (*Board, error) {
	if width < 1 {
		return nil, NewInvalidPresetError(fmt.Sprintf("width must be positive, got %d", width), -1, -1)
	}

	b := &Board{
		width:  width,
		cells:  make([]Cell, width*width),
		rows:   make([]int, width),
		preset: make([]bool, width),
		seq:    make(Key, 0, width),
	}
	for i := range b.rows {
		b.rows[i] = -1
	}

	// Ascending cell index order is ascending row order here: presets
	// sharing a row conflict and are rejected below.
	sorted := append([]int(nil), presets...)
	sort.Ints(sorted)

	for i, index := range sorted {
		if index < 0 || index >= width*width {
			return nil, NewInvalidPresetError(
				fmt.Sprintf("preset index %d out of range for width %d", index, width), -1, -1)
		}
		if i > 0 && sorted[i-1] == index {
			row, col := b.RowCol(index)
			return nil, NewInvalidPresetError("duplicate preset queen", row, col)
		}
		row, col := b.RowCol(index)
		if b.rows[row] >= 0 {
			return nil, NewInvalidPresetError("two preset queens in one row", row, col)
		}
		if !b.cells[index].IsFree() {
			return nil, NewInvalidPresetError("preset queens attack each other", row, col)
		}
		b.put(row, col)
		b.preset[row] = true
	}

	return b, nil
}

// Width returns the board dimension N.
func (b *Board) Width() int {
	return b.width
}

// Index returns the row-major cell index for a row/column pair.
func (b *Board) Index(row, col int) int {
	return row*b.width + col
}

// RowCol splits a row-major cell index into its row and column.
func (b *Board) RowCol(index int) (row, col int) {
	row = index / b.width
	return row, index - row*b.width
}

// IsQueen reports whether the cell at the row-major index holds a queen.
func (b *Board) IsQueen(index int) bool {
	return b.cells[index].IsQueen()
}

// Attacked reports whether the cell is attacked along the given direction.
func (b *Board) Attacked(index int, r Ray) bool {
	return b.cells[index].Attacked(r)
}

// AttackVectors returns the number of distinct directions attacking the cell.
func (b *Board) AttackVectors(index int) int {
	return b.cells[index].AttackVectors()
}

// Cell returns a copy of the cell at the row-major index.
func (b *Board) Cell(index int) Cell {
	return b.cells[index]
}

// Queens returns the occupied cell indices in ascending order.
func (b *Board) Queens() []int {
	out := make([]int, 0, b.queens)
	for row, col := range b.rows {
		if col >= 0 {
			out = append(out, b.Index(row, col))
		}
	}
	return out
}

// QueenAt returns the column of the queen in the given row, if any.
func (b *Board) QueenAt(row int) (int, bool) {
	if row < 0 || row >= b.width || b.rows[row] < 0 {
		return 0, false
	}
	return b.rows[row], true
}

// Columns returns the per-row column assignments, -1 for unfilled rows.
func (b *Board) Columns() []int {
	return append([]int(nil), b.rows...)
}

// IsPreset reports whether the row's queen was fixed at construction.
func (b *Board) IsPreset(row int) bool {
	return b.preset[row]
}

// Placed returns the number of queens on the board.
func (b *Board) Placed() int {
	return b.queens
}

// IsComplete reports whether every row holds a queen.
func (b *Board) IsComplete() bool {
	return b.queens == b.width
}

// NextRow returns the lowest unfilled row. ok is false when the board
// is complete.
func (b *Board) NextRow() (row int, ok bool) {
	for r, col := range b.rows {
		if col < 0 {
			return r, true
		}
	}
	return 0, false
}

// LegalMoves returns the candidate columns for the given row, ascending.
// A column is a candidate when its cell is neither occupied nor attacked.
// The slice is freshly allocated on every call.
func (b *Board) LegalMoves(row int) []int {
	if row < 0 || row >= b.width || b.rows[row] >= 0 {
		return nil
	}
	out := make([]int, 0, b.width)
	base := row * b.width
	for col := 0; col < b.width; col++ {
		if b.cells[base+col].IsFree() {
			out = append(out, col)
		}
	}
	return out
}

// Place puts a search-assigned queen at (row, col).
//
// Fails with a CONFLICT error when the cell is occupied or attacked, or
// when the row is already filled. Conflicts are expected during move
// enumeration and are never surfaced past it.
func (b *Board) Place(row, col int) error {
	if row < 0 || row >= b.width || col < 0 || col >= b.width {
		return NewConflictError(row, col)
	}
	if b.rows[row] >= 0 {
		return NewConflictError(row, col)
	}
	if !b.cells[b.Index(row, col)].IsFree() {
		return NewConflictError(row, col)
	}
	b.put(row, col)
	b.stack = append(b.stack, row)
	return nil
}

// Undo removes the most recently search-assigned queen. Preset queens
// are never removed. Fails with NOTHING_TO_UNDO at the root.
func (b *Board) Undo() error {
	if len(b.stack) == 0 {
		return NewNothingToUndoError()
	}
	row := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	b.lift(row, b.rows[row])
	return nil
}

// put applies a queen and its attack rays. The cell must be free.
func (b *Board) put(row, col int) {
	index := b.Index(row, col)
	b.cells[index].putQueen()
	b.forEachRayCell(index, func(i int, r Ray) {
		b.cells[i].attack(r)
	})
	b.rows[row] = col
	b.seq = append(b.seq, uint16(col))
	b.queens++
}

// lift removes a queen and its attack rays.
func (b *Board) lift(row, col int) {
	index := b.Index(row, col)
	b.cells[index].removeQueen()
	b.forEachRayCell(index, func(i int, r Ray) {
		b.cells[i].lift(r)
	})
	b.rows[row] = -1
	b.seq = b.seq[:len(b.seq)-1]
	b.queens--
}

// forEachRayCell visits every cell on the four rays through index, in
// the fixed order horizontal, vertical, principal, anti-diagonal.
func (b *Board) forEachRayCell(index int, fn func(i int, r Ray)) {
	bounds := NewBoundaries(index, b.width)
	for r := RayHorizontal; r <= RayAntidiagonal; r++ {
		bounds.Walk(r, b.width, func(i int) {
			fn(i, r)
		})
	}
}
