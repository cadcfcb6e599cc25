package math

// Vec4 is a 4-component vector, laid out the way GLSL vec4 uniforms and
// homogeneous vertex attributes expect it.
type Vec4 [4]float32

// V4 is shorthand for Vec4{x, y, z, w}.
func V4(x, y, z, w float32) Vec4 {
	return Vec4{x, y, z, w}
}

// XYZ drops the w component.
func (v Vec4) XYZ() Vec3 {
	return Vec3{v[0], v[1], v[2]}
}

// Scale returns v * s on every component.
func (v Vec4) Scale(s float32) Vec4 {
	return Vec4{v[0] * s, v[1] * s, v[2] * s, v[3] * s}
}
