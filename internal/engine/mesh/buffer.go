package mesh

import (
	"errors"

	"github.com/Faultbox/planetgl/internal/engine/gpu"
	"github.com/Faultbox/planetgl/pkg/math"
)

// ErrNotInitialized is returned when a buffer is bound or drawn before
// Create uploaded any data to it.
var ErrNotInitialized = errors.New("mesh buffer not initialized")

// Drawable is what a shader program can draw: optional attribute streams
// plus an index stream.
type Drawable interface {
	// BindPositions, BindNormals and BindColors report whether the stream
	// exists and, if so, bind it as the array buffer for the next
	// attribute pointer.
	BindPositions() (bool, error)
	BindNormals() (bool, error)
	BindColors() (bool, error)
	BindIndices() error
	ElementCount() int
	PrimitiveMode() gpu.Primitive
}

// Buffer owns the GPU storage of one mesh.
type Buffer struct {
	ctx *gpu.Context

	idx uint32
	pos uint32
	nor uint32
	col uint32

	count       int
	vertices    int
	initialized bool
}

var _ Drawable = (*Buffer)(nil)

// NewBuffer returns an empty buffer. Nothing is allocated until Create.
func NewBuffer(ctx *gpu.Context) *Buffer {
	return &Buffer{ctx: ctx}
}

// Create uploads data, replacing whatever the buffer held before.
// Streams that are empty in data are not allocated.
func (b *Buffer) Create(data Data) error {
	if err := data.Validate(); err != nil {
		return err
	}
	b.Destroy()

	dev := b.ctx.Device()

	b.idx = dev.GenBuffer()
	dev.BindBuffer(gpu.ElementArrayBuffer, b.idx)
	dev.BufferUint32(gpu.ElementArrayBuffer, data.Indices)

	b.pos = upload(dev, data.Positions)
	b.nor = upload(dev, data.Normals)
	b.col = upload(dev, data.Colors)

	b.count = len(data.Indices)
	b.vertices = len(data.Positions)
	b.initialized = true
	return nil
}

func upload(dev gpu.Device, stream []math.Vec4) uint32 {
	if len(stream) == 0 {
		return 0
	}
	buf := dev.GenBuffer()
	dev.BindBuffer(gpu.ArrayBuffer, buf)
	dev.BufferFloat32(gpu.ArrayBuffer, flatten(stream))
	return buf
}

// Destroy releases the GPU storage. Calling it again, or on a buffer that
// was never created, does nothing.
func (b *Buffer) Destroy() {
	if !b.initialized {
		return
	}
	dev := b.ctx.Device()
	for _, buf := range []*uint32{&b.idx, &b.pos, &b.nor, &b.col} {
		if *buf != 0 {
			dev.DeleteBuffer(*buf)
			*buf = 0
		}
	}
	b.count = 0
	b.vertices = 0
	b.initialized = false
}

// Initialized reports whether Create has succeeded and Destroy has not run since.
func (b *Buffer) Initialized() bool {
	return b.initialized
}

func (b *Buffer) bind(buf uint32) (bool, error) {
	if !b.initialized {
		return false, ErrNotInitialized
	}
	if buf == 0 {
		return false, nil
	}
	b.ctx.Device().BindBuffer(gpu.ArrayBuffer, buf)
	return true, nil
}

func (b *Buffer) BindPositions() (bool, error) { return b.bind(b.pos) }
func (b *Buffer) BindNormals() (bool, error)   { return b.bind(b.nor) }
func (b *Buffer) BindColors() (bool, error)    { return b.bind(b.col) }

// BindIndices binds the element buffer.
func (b *Buffer) BindIndices() error {
	if !b.initialized {
		return ErrNotInitialized
	}
	b.ctx.Device().BindBuffer(gpu.ElementArrayBuffer, b.idx)
	return nil
}

// ElementCount returns the number of indices uploaded by Create.
func (b *Buffer) ElementCount() int {
	return b.count
}

// VertexCount returns the number of vertices uploaded by Create.
func (b *Buffer) VertexCount() int {
	return b.vertices
}

// PrimitiveMode returns the draw topology; meshes are always triangle lists.
func (b *Buffer) PrimitiveMode() gpu.Primitive {
	return gpu.Triangles
}
