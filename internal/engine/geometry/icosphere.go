// Package geometry generates the procedural meshes drawn by the scene.
package geometry

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/planetgl/internal/engine/mesh"
	"github.com/Faultbox/planetgl/pkg/math"
)

// MaxSubdivision is the highest icosphere level the control panel offers.
const MaxSubdivision = 8

// Regular icosahedron: three orthogonal golden rectangles. Faces wind
// counter-clockwise seen from outside.
var (
	phi = (1 + math32.Sqrt(5)) / 2

	icosahedronVertices = []math.Vec3{
		{X: -1, Y: phi}, {X: 1, Y: phi}, {X: -1, Y: -phi}, {X: 1, Y: -phi},
		{Y: -1, Z: phi}, {Y: 1, Z: phi}, {Y: -1, Z: -phi}, {Y: 1, Z: -phi},
		{X: phi, Z: -1}, {X: phi, Z: 1}, {X: -phi, Z: -1}, {X: -phi, Z: 1},
	}

	icosahedronFaces = []uint32{
		0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
		1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
		3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
		4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
	}
)

// ClampSubdivision limits level to [0, MaxSubdivision].
func ClampSubdivision(level int) int {
	if level < 0 {
		return 0
	}
	if level > MaxSubdivision {
		return MaxSubdivision
	}
	return level
}

// IcosphereVertexCount returns 10*4^level + 2.
func IcosphereVertexCount(level int) int {
	return 10*(1<<(2*level)) + 2
}

// IcosphereIndexCount returns 60*4^level.
func IcosphereIndexCount(level int) int {
	return 60 * (1 << (2 * level))
}

// edge is an unordered vertex pair.
type edge struct{ lo, hi uint32 }

func makeEdge(a, b uint32) edge {
	if a > b {
		a, b = b, a
	}
	return edge{a, b}
}

// Icosphere subdivides a regular icosahedron level times. Each pass splits
// every triangle into four at its edge midpoints; a midpoint shared by two
// faces is created once. All vertices lie radius away from center.
func Icosphere(center math.Vec3, radius float32, level int) mesh.Data {
	level = ClampSubdivision(level)

	dirs := make([]math.Vec3, 0, IcosphereVertexCount(level))
	for _, v := range icosahedronVertices {
		dirs = append(dirs, v.Normalize())
	}
	faces := append([]uint32(nil), icosahedronFaces...)

	for l := 0; l < level; l++ {
		cache := make(map[edge]uint32, len(faces)/2)
		midpoint := func(a, b uint32) uint32 {
			key := makeEdge(a, b)
			if i, ok := cache[key]; ok {
				return i
			}
			i := uint32(len(dirs))
			dirs = append(dirs, dirs[a].Add(dirs[b]).Normalize())
			cache[key] = i
			return i
		}

		next := make([]uint32, 0, len(faces)*4)
		for f := 0; f < len(faces); f += 3 {
			a, b, c := faces[f], faces[f+1], faces[f+2]
			ab := midpoint(a, b)
			bc := midpoint(b, c)
			ca := midpoint(c, a)
			next = append(next,
				a, ab, ca,
				b, bc, ab,
				c, ca, bc,
				ab, bc, ca,
			)
		}
		faces = next
	}

	data := mesh.Data{
		Positions: make([]math.Vec4, len(dirs)),
		Normals:   make([]math.Vec4, len(dirs)),
		Colors:    make([]math.Vec4, len(dirs)),
		Indices:   faces,
	}
	for i, n := range dirs {
		data.Positions[i] = center.Add(n.Scale(radius)).Point()
		data.Normals[i] = n.Dir()
		data.Colors[i] = directionColor(n)
	}
	return data
}

// directionColor maps a unit direction into RGB so neighbouring vertices
// get similar but distinct colors.
func directionColor(n math.Vec3) math.Vec4 {
	return math.Vec4{n.X*0.5 + 0.5, n.Y*0.5 + 0.5, n.Z*0.5 + 0.5, 1}
}
