// Package gldevice implements gpu.Device on OpenGL 4.1 core through go-gl.
package gldevice

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/planetgl/internal/engine/gpu"
	"github.com/Faultbox/planetgl/internal/logger"
	"github.com/Faultbox/planetgl/pkg/math"
)

// Device issues OpenGL calls. It must be used from the thread that owns
// the current GL context.
type Device struct {
	vao uint32
}

var _ gpu.Device = (*Device)(nil)

// New loads the GL function pointers for the current context and binds the
// single vertex array object the core profile requires for attribute setup.
// It fails when no usable context is current.
func New() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	glsl := gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
		zap.String("glsl", glsl),
	)

	d := &Device{}
	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)
	gl.DepthFunc(gl.LESS)
	return d, nil
}

// Close releases the vertex array object.
func (d *Device) Close() {
	if d.vao != 0 {
		gl.BindVertexArray(0)
		gl.DeleteVertexArrays(1, &d.vao)
		d.vao = 0
	}
}

func (d *Device) CreateShader(stage gpu.Stage) uint32 {
	return gl.CreateShader(shaderType(stage))
}

func (d *Device) ShaderSource(shader uint32, src string) {
	csource, free := gl.Strs(src + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
}

func (d *Device) CompileShader(shader uint32) {
	gl.CompileShader(shader)
}

func (d *Device) ShaderCompiled(shader uint32) bool {
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (d *Device) ShaderInfoLog(shader uint32) string {
	var logLen int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
	if logLen <= 0 {
		return ""
	}
	log := make([]byte, logLen)
	gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
	return strings.TrimRight(string(log), "\x00")
}

func (d *Device) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (d *Device) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (d *Device) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (d *Device) LinkProgram(program uint32) {
	gl.LinkProgram(program)
}

func (d *Device) ProgramLinked(program uint32) bool {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (d *Device) ProgramInfoLog(program uint32) string {
	var logLen int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
	if logLen <= 0 {
		return ""
	}
	log := make([]byte, logLen)
	gl.GetProgramInfoLog(program, logLen, nil, &log[0])
	return strings.TrimRight(string(log), "\x00")
}

func (d *Device) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (d *Device) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (d *Device) AttribLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, gl.Str(name+"\x00"))
}

func (d *Device) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (d *Device) UniformMatrix4(loc int32, m math.Mat4) {
	gl.UniformMatrix4fv(loc, 1, false, m.Ptr())
}

func (d *Device) Uniform4(loc int32, v math.Vec4) {
	gl.Uniform4fv(loc, 1, &v[0])
}

func (d *Device) Uniform3(loc int32, v math.Vec3) {
	gl.Uniform3f(loc, v.X, v.Y, v.Z)
}

func (d *Device) Uniform2(loc int32, x, y float32) {
	gl.Uniform2f(loc, x, y)
}

func (d *Device) Uniform1(loc int32, v float32) {
	gl.Uniform1f(loc, v)
}

func (d *Device) GenBuffer() uint32 {
	var buf uint32
	gl.GenBuffers(1, &buf)
	return buf
}

func (d *Device) DeleteBuffer(buf uint32) {
	gl.DeleteBuffers(1, &buf)
}

func (d *Device) BindBuffer(target gpu.BufferTarget, buf uint32) {
	gl.BindBuffer(bufferTarget(target), buf)
}

func (d *Device) BufferFloat32(target gpu.BufferTarget, data []float32) {
	if len(data) == 0 {
		gl.BufferData(bufferTarget(target), 0, nil, gl.STATIC_DRAW)
		return
	}
	gl.BufferData(bufferTarget(target), len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
}

func (d *Device) BufferUint32(target gpu.BufferTarget, data []uint32) {
	if len(data) == 0 {
		gl.BufferData(bufferTarget(target), 0, nil, gl.STATIC_DRAW)
		return
	}
	gl.BufferData(bufferTarget(target), len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
}

func (d *Device) EnableVertexAttribArray(loc uint32) {
	gl.EnableVertexAttribArray(loc)
}

func (d *Device) DisableVertexAttribArray(loc uint32) {
	gl.DisableVertexAttribArray(loc)
}

func (d *Device) VertexAttribPointer(loc uint32, size int32) {
	gl.VertexAttribPointerWithOffset(loc, size, gl.FLOAT, false, 0, 0)
}

func (d *Device) DrawElements(mode gpu.Primitive, count int32) {
	gl.DrawElements(primitive(mode), count, gl.UNSIGNED_INT, nil)
}

func (d *Device) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (d *Device) Clear(mask gpu.ClearMask) {
	var bits uint32
	if mask&gpu.ColorBuffer != 0 {
		bits |= gl.COLOR_BUFFER_BIT
	}
	if mask&gpu.DepthBuffer != 0 {
		bits |= gl.DEPTH_BUFFER_BIT
	}
	gl.Clear(bits)
}

func (d *Device) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (d *Device) Enable(c gpu.Capability) {
	gl.Enable(capability(c))
}

func (d *Device) Disable(c gpu.Capability) {
	gl.Disable(capability(c))
}

func (d *Device) ReadPixels(x, y, width, height int32) []byte {
	pixels := make([]byte, int(width)*int(height)*4)
	if len(pixels) == 0 {
		return pixels
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(x, y, width, height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}

func shaderType(s gpu.Stage) uint32 {
	if s == gpu.FragmentStage {
		return gl.FRAGMENT_SHADER
	}
	return gl.VERTEX_SHADER
}

func bufferTarget(t gpu.BufferTarget) uint32 {
	if t == gpu.ElementArrayBuffer {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

func primitive(p gpu.Primitive) uint32 {
	switch p {
	case gpu.Lines:
		return gl.LINES
	case gpu.Points:
		return gl.POINTS
	default:
		return gl.TRIANGLES
	}
}

func capability(c gpu.Capability) uint32 {
	switch c {
	case gpu.Blend:
		return gl.BLEND
	case gpu.CullFace:
		return gl.CULL_FACE
	default:
		return gl.DEPTH_TEST
	}
}
