// Package mesh holds CPU-side triangle meshes and the GPU buffers that
// draw them.
package mesh

import (
	"errors"
	"fmt"

	"github.com/Faultbox/planetgl/pkg/math"
)

// ErrInvalidMesh is returned for index data that does not describe
// triangles over the mesh's vertices.
var ErrInvalidMesh = errors.New("invalid mesh")

// Data is an indexed triangle mesh. Positions, normals and colors are
// homogeneous 4-component values, one of each per vertex.
type Data struct {
	Positions []math.Vec4
	Normals   []math.Vec4
	Colors    []math.Vec4
	Indices   []uint32
}

// VertexCount returns the number of vertices.
func (d Data) VertexCount() int {
	return len(d.Positions)
}

// TriangleCount returns the number of triangles.
func (d Data) TriangleCount() int {
	return len(d.Indices) / 3
}

// Validate checks the index invariants: a whole number of triangles, every
// index in range, and per-vertex streams no longer than the positions.
func (d Data) Validate() error {
	if len(d.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices is not a multiple of 3", ErrInvalidMesh, len(d.Indices))
	}
	n := uint32(len(d.Positions))
	for i, idx := range d.Indices {
		if idx >= n {
			return fmt.Errorf("%w: index %d at %d out of range (%d vertices)", ErrInvalidMesh, idx, i, n)
		}
	}
	if len(d.Normals) != 0 && len(d.Normals) != len(d.Positions) {
		return fmt.Errorf("%w: %d normals for %d vertices", ErrInvalidMesh, len(d.Normals), n)
	}
	if len(d.Colors) != 0 && len(d.Colors) != len(d.Positions) {
		return fmt.Errorf("%w: %d colors for %d vertices", ErrInvalidMesh, len(d.Colors), n)
	}
	return nil
}

// flatten packs vectors for upload.
func flatten(vs []math.Vec4) []float32 {
	out := make([]float32, 0, len(vs)*4)
	for _, v := range vs {
		out = append(out, v[0], v[1], v[2], v[3])
	}
	return out
}
