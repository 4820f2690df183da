package board

// Ray identifies one of the four attack directions through a cell.
type Ray int

const (
	RayHorizontal Ray = iota
	RayVertical
	RayPrincipal
	RayAntidiagonal

	rayCount = 4
)

// String returns the lowercase direction name.
func (r Ray) String() string {
	switch r {
	case RayHorizontal:
		return "horizontal"
	case RayVertical:
		return "vertical"
	case RayPrincipal:
		return "principal"
	case RayAntidiagonal:
		return "antidiagonal"
	default:
		return "unknown"
	}
}

// Cell is one square of the board: an optional queen plus per-direction
// attack counters. Counters (not flags) keep Place/Undo exact inverses:
// lifting one queen's rays never clears attacks contributed by another.
type Cell struct {
	queen bool
	rays  [rayCount]uint8
}

// IsQueen reports whether the cell holds a queen.
func (c Cell) IsQueen() bool {
	return c.queen
}

// IsAttacked reports whether any queen's ray crosses the cell.
// A queen attacks its own cell along all four directions.
func (c Cell) IsAttacked() bool {
	return c.rays[RayHorizontal] > 0 || c.rays[RayVertical] > 0 ||
		c.rays[RayPrincipal] > 0 || c.rays[RayAntidiagonal] > 0
}

// IsFree reports whether the cell is unoccupied and unattacked,
// i.e. a legal placement target.
func (c Cell) IsFree() bool {
	return !c.queen && !c.IsAttacked()
}

// Attacked reports whether the cell is attacked along the given direction.
func (c Cell) Attacked(r Ray) bool {
	return c.rays[r] > 0
}

// AttackVectors returns the number of distinct directions attacking the cell.
func (c Cell) AttackVectors() int {
	n := 0
	for _, v := range c.rays {
		if v > 0 {
			n++
		}
	}
	return n
}

func (c *Cell) putQueen() {
	c.queen = true
}

func (c *Cell) removeQueen() {
	c.queen = false
}

func (c *Cell) attack(r Ray) {
	c.rays[r]++
}

func (c *Cell) lift(r Ray) {
	c.rays[r]--
}
