// Package gpu defines the narrow slice of the graphics API the renderer
// needs, and the rendering context that tracks bound state on top of it.
//
// The OpenGL implementation lives in gpu/gldevice; gpu/gputest provides a
// recording device for tests that run without a GL context.
package gpu

import "github.com/Faultbox/planetgl/pkg/math"

// Stage identifies a shader stage.
type Stage int

const (
	VertexStage Stage = iota
	FragmentStage
)

func (s Stage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	default:
		return "unknown"
	}
}

// Primitive is a draw topology.
type Primitive int

const (
	Triangles Primitive = iota
	Lines
	Points
)

// BufferTarget selects the binding point of a buffer object.
type BufferTarget int

const (
	ArrayBuffer BufferTarget = iota
	ElementArrayBuffer
)

// Capability is a toggleable pipeline feature.
type Capability int

const (
	DepthTest Capability = iota
	Blend
	CullFace
)

// ClearMask selects which targets Clear touches.
type ClearMask int

const (
	ColorBuffer ClearMask = 1 << iota
	DepthBuffer
)

// Device is the raw graphics backend. Methods map one-to-one onto backend
// calls; it keeps no state of its own beyond what the backend keeps.
// Locations follow the GL convention: -1 means absent.
type Device interface {
	CreateShader(stage Stage) uint32
	ShaderSource(shader uint32, src string)
	CompileShader(shader uint32)
	ShaderCompiled(shader uint32) bool
	ShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	ProgramLinked(program uint32) bool
	ProgramInfoLog(program uint32) string
	DeleteProgram(program uint32)
	UseProgram(program uint32)

	AttribLocation(program uint32, name string) int32
	UniformLocation(program uint32, name string) int32
	UniformMatrix4(loc int32, m math.Mat4)
	Uniform4(loc int32, v math.Vec4)
	Uniform3(loc int32, v math.Vec3)
	Uniform2(loc int32, x, y float32)
	Uniform1(loc int32, v float32)

	GenBuffer() uint32
	DeleteBuffer(buf uint32)
	BindBuffer(target BufferTarget, buf uint32)
	BufferFloat32(target BufferTarget, data []float32)
	BufferUint32(target BufferTarget, data []uint32)

	EnableVertexAttribArray(loc uint32)
	DisableVertexAttribArray(loc uint32)
	// VertexAttribPointer sources loc from the bound ARRAY_BUFFER as
	// tightly packed float32 components of the given size.
	VertexAttribPointer(loc uint32, size int32)
	// DrawElements draws count uint32 indices from the bound element buffer.
	DrawElements(mode Primitive, count int32)

	ClearColor(r, g, b, a float32)
	Clear(mask ClearMask)
	Viewport(x, y, width, height int32)
	Enable(c Capability)
	Disable(c Capability)

	// ReadPixels returns the RGBA8 contents of the back buffer, bottom row first.
	ReadPixels(x, y, width, height int32) []byte
}
