package geometry

import (
	"github.com/Faultbox/planetgl/internal/engine/mesh"
	"github.com/Faultbox/planetgl/pkg/math"
)

// Square is a two-triangle quad spanning [-1, 1] in X and Y around center,
// facing +Z. With an identity transform it covers the whole viewport.
func Square(center math.Vec3) mesh.Data {
	corners := []math.Vec3{
		{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1},
	}
	data := mesh.Data{
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
	for _, c := range corners {
		data.Positions = append(data.Positions, center.Add(c).Point())
		data.Normals = append(data.Normals, math.Vec4{0, 0, 1, 0})
		data.Colors = append(data.Colors, math.Vec4{1, 1, 1, 1})
	}
	return data
}

// cubeFaces lists each face as its outward normal plus two in-plane axes
// with normal = u x v, so corners wind counter-clockwise from outside.
var cubeFaces = []struct {
	normal, u, v math.Vec3
}{
	{math.Vec3{X: 1}, math.Vec3{Y: 1}, math.Vec3{Z: 1}},
	{math.Vec3{X: -1}, math.Vec3{Z: 1}, math.Vec3{Y: 1}},
	{math.Vec3{Y: 1}, math.Vec3{Z: 1}, math.Vec3{X: 1}},
	{math.Vec3{Y: -1}, math.Vec3{X: 1}, math.Vec3{Z: 1}},
	{math.Vec3{Z: 1}, math.Vec3{X: 1}, math.Vec3{Y: 1}},
	{math.Vec3{Z: -1}, math.Vec3{Y: 1}, math.Vec3{X: 1}},
}

// Cube is an axis-aligned box around center with half-extents scale. Each
// face has its own four vertices so normals stay flat.
func Cube(center, scale math.Vec3) mesh.Data {
	var data mesh.Data
	for _, f := range cubeFaces {
		base := uint32(len(data.Positions))
		for _, s := range [][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
			local := f.normal.Add(f.u.Scale(s[0])).Add(f.v.Scale(s[1]))
			p := math.Vec3{X: local.X * scale.X, Y: local.Y * scale.Y, Z: local.Z * scale.Z}
			data.Positions = append(data.Positions, center.Add(p).Point())
			data.Normals = append(data.Normals, f.normal.Dir())
			data.Colors = append(data.Colors, directionColor(f.normal))
		}
		data.Indices = append(data.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return data
}
