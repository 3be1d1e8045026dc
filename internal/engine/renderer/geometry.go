package renderer

// vertexStride is the byte size of one vertex: position (3) and uv (2).
const vertexStride = 5 * 4

// Unit quad in the XY plane, centered on the origin.
var quadVertices = []float32{
	-0.5, -0.5, 0, 0, 0,
	0.5, -0.5, 0, 1, 0,
	0.5, 0.5, 0, 1, 1,
	-0.5, 0.5, 0, 0, 1,
}

var quadIndices = []uint8{0, 1, 2, 0, 2, 3}

// Unit cube centered on the origin, four vertices per face so each face has
// its own uvs.
var cubeVertices = []float32{
	// -X
	-0.5, -0.5, 0.5, 0, 0,
	-0.5, 0.5, 0.5, 0, 1,
	-0.5, 0.5, -0.5, 1, 1,
	-0.5, -0.5, -0.5, 1, 0,
	// -Z
	-0.5, -0.5, -0.5, 0, 0,
	-0.5, 0.5, -0.5, 0, 1,
	0.5, 0.5, -0.5, 1, 1,
	0.5, -0.5, -0.5, 1, 0,
	// +X
	0.5, -0.5, -0.5, 1, 0,
	0.5, 0.5, -0.5, 1, 1,
	0.5, 0.5, 0.5, 0, 1,
	0.5, -0.5, 0.5, 0, 0,
	// +Z
	0.5, -0.5, 0.5, 1, 0,
	0.5, 0.5, 0.5, 1, 1,
	-0.5, 0.5, 0.5, 0, 1,
	-0.5, -0.5, 0.5, 0, 0,
	// -Y
	-0.5, -0.5, -0.5, 0, 1,
	0.5, -0.5, -0.5, 1, 1,
	0.5, -0.5, 0.5, 1, 0,
	-0.5, -0.5, 0.5, 0, 0,
	// +Y
	0.5, 0.5, -0.5, 1, 1,
	-0.5, 0.5, -0.5, 0, 1,
	-0.5, 0.5, 0.5, 0, 0,
	0.5, 0.5, 0.5, 1, 0,
}

var cubeIndices = []uint8{
	3, 0, 1, 1, 2, 3,
	7, 4, 5, 5, 6, 7,
	11, 8, 9, 9, 10, 11,
	15, 12, 13, 13, 14, 15,
	19, 16, 17, 17, 18, 19,
	23, 20, 21, 21, 22, 23,
}
