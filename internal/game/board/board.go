// Package board implements the 6x6x6 block grid and win-line detection.
package board

import "github.com/Faultbox/cubetac/pkg/math"

const (
	// RowCount is the side length of the cube, in cells.
	RowCount = 6

	// CountToWin is the number of aligned blocks needed to win.
	CountToWin = 5

	// CellCount is the total number of cells in the grid.
	CellCount = RowCount * RowCount * RowCount
)

// BlockType is the content of a single cell.
type BlockType uint8

const (
	None BlockType = iota
	Cross
	Circle
)

// String returns the display name of the block type.
func (b BlockType) String() string {
	switch b {
	case Cross:
		return "Cross"
	case Circle:
		return "Circle"
	default:
		return "None"
	}
}

// Opponent returns the other player. None has no opponent.
func (b BlockType) Opponent() BlockType {
	switch b {
	case Cross:
		return Circle
	case Circle:
		return Cross
	default:
		return None
	}
}

// Grid is a flattened cube of cells. Every axis wraps around, so any integer
// coordinate addresses a valid cell.
type Grid struct {
	cells [CellCount]BlockType
}

func wrap(v int) int {
	return ((v % RowCount) + RowCount) % RowCount
}

// Wrap returns pos with every component brought into [0, RowCount).
func Wrap(pos math.Vec3i) math.Vec3i {
	return math.Vec3i{X: wrap(pos.X), Y: wrap(pos.Y), Z: wrap(pos.Z)}
}

// Index returns the flat index of pos, wrapping each axis.
func Index(pos math.Vec3i) int {
	return wrap(pos.X) + wrap(pos.Y)*RowCount + wrap(pos.Z)*RowCount*RowCount
}

// Position returns the in-range coordinate for a flat index.
func Position(index int) math.Vec3i {
	return math.Vec3i{
		X: index % RowCount,
		Y: (index / RowCount) % RowCount,
		Z: index / (RowCount * RowCount),
	}
}

// Get returns the block at pos.
func (g *Grid) Get(pos math.Vec3i) BlockType {
	return g.cells[Index(pos)]
}

// Set stores a block at pos.
func (g *Grid) Set(pos math.Vec3i, value BlockType) {
	g.cells[Index(pos)] = value
}

// Reset clears every cell.
func (g *Grid) Reset() {
	g.cells = [CellCount]BlockType{}
}

// Count returns how many cells hold value.
func (g *Grid) Count(value BlockType) int {
	n := 0
	for _, c := range g.cells {
		if c == value {
			n++
		}
	}
	return n
}

// Full reports whether no empty cell remains.
func (g *Grid) Full() bool {
	return g.Count(None) == 0
}

// Each calls fn for every non-empty cell in index order.
func (g *Grid) Each(fn func(pos math.Vec3i, value BlockType)) {
	for i, c := range g.cells {
		if c != None {
			fn(Position(i), c)
		}
	}
}
