package board

import "github.com/Faultbox/cubetac/pkg/math"

// Directions lists the 13 line directions checked by ScanForVictory: the
// axes, the face diagonals and the space diagonals, one sign per line.
// The order is the tie-break when several lines exist.
var Directions = [13]math.Vec3i{
	{X: 1, Y: 0, Z: 0},
	{X: 1, Y: 1, Z: 0},
	{X: 1, Y: 1, Z: 1},
	{X: 1, Y: -1, Z: 1},
	{X: 1, Y: -1, Z: -1},
	{X: 1, Y: 1, Z: -1},
	{X: 1, Y: 0, Z: -1},
	{X: 1, Y: -1, Z: 0},
	{X: 0, Y: 1, Z: 0},
	{X: 0, Y: 0, Z: 1},
	{X: 0, Y: 1, Z: 1},
	{X: 0, Y: -1, Z: 1},
	{X: 0, Y: 1, Z: -1},
}

// VictoryInfo describes a winning line: its anchor cell and direction.
type VictoryInfo struct {
	Winner    BlockType
	Position  math.Vec3i
	Direction math.Vec3i
}

// Cells returns the CountToWin wrapped cells of the line, anchor first.
func (v VictoryInfo) Cells() []math.Vec3i {
	cells := make([]math.Vec3i, CountToWin)
	for i := range cells {
		cells[i] = Wrap(v.Position.Add(v.Direction.Scale(i)))
	}
	return cells
}

// ScanForVictory looks for CountToWin equal blocks in a row. Cells are visited
// in index order and directions in Directions order; the first line found is
// returned. Lines may wrap around the cube.
func ScanForVictory(g *Grid) (VictoryInfo, bool) {
	for z := 0; z < RowCount; z++ {
		for y := 0; y < RowCount; y++ {
			for x := 0; x < RowCount; x++ {
				pos := math.Vec3i{X: x, Y: y, Z: z}
				block := g.Get(pos)
				if block == None {
					continue
				}
				for _, dir := range Directions {
					if lineOf(g, pos, dir, block) {
						return VictoryInfo{Winner: block, Position: pos, Direction: dir}, true
					}
				}
			}
		}
	}
	return VictoryInfo{}, false
}

func lineOf(g *Grid, start, dir math.Vec3i, block BlockType) bool {
	for i := 1; i < CountToWin; i++ {
		if g.Get(start.Add(dir.Scale(i))) != block {
			return false
		}
	}
	return true
}
