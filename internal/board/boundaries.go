package board

// Boundaries holds, for one cell, the minimum and maximum cell index of
// each of the four rays through it. Rays are walked with fixed strides:
// horizontal 1, vertical width, principal width+1, anti-diagonal width-1.
//
// Example, width 8, index 0:
//   - horizontal: 0..7 step 1
//   - vertical: 0..56 step 8
//   - principal: 0..63 step 9
//   - anti-diagonal: 0..0
type Boundaries struct {
	HorizontalMin   int
	HorizontalMax   int
	VerticalMin     int
	VerticalMax     int
	PrincipalMin    int
	PrincipalMax    int
	AntidiagonalMin int
	AntidiagonalMax int
}

// NewBoundaries computes the ray extents for a cell index on a board of
// the given width. Index must be in [0, width*width).
func NewBoundaries(index, width int) Boundaries {
	row := index / width
	column := index - row*width

	minDistanceToZero := min(row, column)
	minColumnDistanceToRight := min(row, width-column-1)
	minRowDistanceToLeft := min(column, width-row-1)
	minDistanceToWidth := min(width-row-1, width-column-1)

	horizontalMin := row * width

	return Boundaries{
		HorizontalMin:   horizontalMin,
		HorizontalMax:   horizontalMin + width - 1,
		VerticalMin:     column,
		VerticalMax:     column + width*(width-1),
		PrincipalMin:    index - (width+1)*minDistanceToZero,
		PrincipalMax:    index + (width+1)*minDistanceToWidth,
		AntidiagonalMin: index - (width-1)*minColumnDistanceToRight,
		AntidiagonalMax: index + (width-1)*minRowDistanceToLeft,
	}
}

// Extent returns the min index, max index and stride of one ray.
// The stride is never smaller than 1 (a width-1 board collapses every
// ray to the single cell).
func (b Boundaries) Extent(r Ray, width int) (minIdx, maxIdx, step int) {
	switch r {
	case RayHorizontal:
		minIdx, maxIdx, step = b.HorizontalMin, b.HorizontalMax, 1
	case RayVertical:
		minIdx, maxIdx, step = b.VerticalMin, b.VerticalMax, width
	case RayPrincipal:
		minIdx, maxIdx, step = b.PrincipalMin, b.PrincipalMax, width+1
	case RayAntidiagonal:
		minIdx, maxIdx, step = b.AntidiagonalMin, b.AntidiagonalMax, width-1
	}
	if step < 1 {
		step = 1
	}
	return minIdx, maxIdx, step
}

// Walk calls fn for every cell index on the given ray, in ascending order.
func (b Boundaries) Walk(r Ray, width int, fn func(index int)) {
	minIdx, maxIdx, step := b.Extent(r, width)
	for i := minIdx; i <= maxIdx; i += step {
		fn(i)
	}
}
