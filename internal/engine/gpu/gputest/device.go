// Package gputest provides a recording gpu.Device for tests that need the
// renderer's call sequence without a GL context.
package gputest

import (
	"fmt"
	"regexp"

	"github.com/Faultbox/planetgl/internal/engine/gpu"
	"github.com/Faultbox/planetgl/pkg/math"
)

// Call is one recorded device call. Only calls that matter for ordering
// assertions are recorded; pure queries are not.
type Call struct {
	Op    string
	Args  []any
	State map[gpu.Capability]bool
}

// Draw is a recorded DrawElements call.
type Draw struct {
	Program uint32
	Mode    gpu.Primitive
	Count   int32
	// Enabled lists the attribute locations enabled at draw time.
	Enabled []uint32
	// ArrayBuffer and ElementBuffer are the buffers bound at draw time.
	ArrayBuffer   uint32
	ElementBuffer uint32
	DepthTest     bool
}

// Device is a fake backend. A uniform or attribute name resolves to a
// location only when it appears in the source of a shader attached to the
// program, mirroring how a GL linker drops unused names.
type Device struct {
	// CompileErrors maps a stage to the info log its compile should fail with.
	CompileErrors map[gpu.Stage]string
	// LinkError, when non-empty, makes every link fail with this log.
	LinkError string

	Calls []Call
	Draws []Draw

	// UseCount counts UseProgram calls per program.
	UseCount map[uint32]int
	// Uniforms holds the last value written to each location of each program.
	Uniforms map[uint32]map[int32]any

	nextID     uint32
	shaders    map[uint32]*shader
	programs   map[uint32]*program
	buffers    map[uint32][]any
	deleted    map[uint32]bool
	current    uint32
	bound      map[gpu.BufferTarget]uint32
	enabled    map[uint32]bool
	caps       map[gpu.Capability]bool
	clearColor [4]float32
}

type shader struct {
	stage  gpu.Stage
	source string
	ok     bool
	log    string
}

type program struct {
	shaders []uint32
	linked  bool
	log     string
	attribs map[string]int32
	unifs   map[string]int32
}

// New returns an empty fake device.
func New() *Device {
	return &Device{
		CompileErrors: make(map[gpu.Stage]string),
		UseCount:      make(map[uint32]int),
		Uniforms:      make(map[uint32]map[int32]any),
		shaders:       make(map[uint32]*shader),
		programs:      make(map[uint32]*program),
		buffers:       make(map[uint32][]any),
		deleted:       make(map[uint32]bool),
		bound:         make(map[gpu.BufferTarget]uint32),
		enabled:       make(map[uint32]bool),
		caps:          make(map[gpu.Capability]bool),
	}
}

var _ gpu.Device = (*Device)(nil)

func (d *Device) record(op string, args ...any) {
	state := make(map[gpu.Capability]bool, len(d.caps))
	for k, v := range d.caps {
		state[k] = v
	}
	d.Calls = append(d.Calls, Call{Op: op, Args: args, State: state})
}

func (d *Device) id() uint32 {
	d.nextID++
	return d.nextID
}

// Ops returns the recorded operation names, in order.
func (d *Device) Ops() []string {
	ops := make([]string, len(d.Calls))
	for i, c := range d.Calls {
		ops[i] = c.Op
	}
	return ops
}

// Count returns how many times op was recorded.
func (d *Device) Count(op string) int {
	n := 0
	for _, c := range d.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Reset forgets recorded calls and draws but keeps GPU objects.
func (d *Device) Reset() {
	d.Calls = nil
	d.Draws = nil
	d.UseCount = make(map[uint32]int)
}

// Uniform returns the last value written to the named uniform of program.
func (d *Device) Uniform(prog uint32, name string) (any, bool) {
	p, ok := d.programs[prog]
	if !ok {
		return nil, false
	}
	loc, ok := p.unifs[name]
	if !ok {
		return nil, false
	}
	v, ok := d.Uniforms[prog][loc]
	return v, ok
}

// Buffer returns the data last uploaded to buf.
func (d *Device) Buffer(buf uint32) ([]any, bool) {
	data, ok := d.buffers[buf]
	return data, ok
}

// LiveBuffers returns the number of buffers generated and not yet deleted.
func (d *Device) LiveBuffers() int {
	return len(d.buffers)
}

// Deleted reports whether the object id was deleted.
func (d *Device) Deleted(id uint32) bool {
	return d.deleted[id]
}

// ClearColorValue returns the last clear color set.
func (d *Device) ClearColorValue() [4]float32 {
	return d.clearColor
}

func (d *Device) CreateShader(stage gpu.Stage) uint32 {
	id := d.id()
	d.shaders[id] = &shader{stage: stage}
	d.record("CreateShader", stage)
	return id
}

func (d *Device) ShaderSource(id uint32, src string) {
	d.shaders[id].source = src
}

func (d *Device) CompileShader(id uint32) {
	s := d.shaders[id]
	if log, bad := d.CompileErrors[s.stage]; bad {
		s.ok = false
		s.log = log
	} else {
		s.ok = true
	}
	d.record("CompileShader", s.stage)
}

func (d *Device) ShaderCompiled(id uint32) bool {
	return d.shaders[id].ok
}

func (d *Device) ShaderInfoLog(id uint32) string {
	return d.shaders[id].log
}

func (d *Device) DeleteShader(id uint32) {
	d.deleted[id] = true
	d.record("DeleteShader", id)
}

func (d *Device) CreateProgram() uint32 {
	id := d.id()
	d.programs[id] = &program{
		attribs: make(map[string]int32),
		unifs:   make(map[string]int32),
	}
	d.record("CreateProgram", id)
	return id
}

func (d *Device) AttachShader(prog, sh uint32) {
	p := d.programs[prog]
	p.shaders = append(p.shaders, sh)
}

func (d *Device) LinkProgram(prog uint32) {
	p := d.programs[prog]
	if d.LinkError != "" {
		p.linked = false
		p.log = d.LinkError
	} else {
		p.linked = true
	}
	d.record("LinkProgram", prog)
}

func (d *Device) ProgramLinked(prog uint32) bool {
	return d.programs[prog].linked
}

func (d *Device) ProgramInfoLog(prog uint32) string {
	return d.programs[prog].log
}

func (d *Device) DeleteProgram(prog uint32) {
	d.deleted[prog] = true
	d.record("DeleteProgram", prog)
}

func (d *Device) UseProgram(prog uint32) {
	d.current = prog
	d.UseCount[prog]++
	d.record("UseProgram", prog)
}

func (d *Device) declares(prog uint32, name string) bool {
	p, ok := d.programs[prog]
	if !ok {
		return false
	}
	word := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
	for _, sh := range p.shaders {
		if word.MatchString(d.shaders[sh].source) {
			return true
		}
	}
	return false
}

func (d *Device) AttribLocation(prog uint32, name string) int32 {
	if !d.declares(prog, name) {
		return -1
	}
	p := d.programs[prog]
	if loc, ok := p.attribs[name]; ok {
		return loc
	}
	loc := int32(len(p.attribs))
	p.attribs[name] = loc
	return loc
}

func (d *Device) UniformLocation(prog uint32, name string) int32 {
	if !d.declares(prog, name) {
		return -1
	}
	p := d.programs[prog]
	if loc, ok := p.unifs[name]; ok {
		return loc
	}
	loc := int32(len(p.unifs))
	p.unifs[name] = loc
	return loc
}

func (d *Device) setUniform(op string, loc int32, v any) {
	if loc < 0 {
		panic(fmt.Sprintf("gputest: %s on absent location", op))
	}
	if d.current == 0 {
		panic(fmt.Sprintf("gputest: %s with no program bound", op))
	}
	if d.Uniforms[d.current] == nil {
		d.Uniforms[d.current] = make(map[int32]any)
	}
	d.Uniforms[d.current][loc] = v
	d.record(op, d.current, loc)
}

func (d *Device) UniformMatrix4(loc int32, m math.Mat4) { d.setUniform("UniformMatrix4", loc, m) }
func (d *Device) Uniform4(loc int32, v math.Vec4)       { d.setUniform("Uniform4", loc, v) }
func (d *Device) Uniform3(loc int32, v math.Vec3)       { d.setUniform("Uniform3", loc, v) }
func (d *Device) Uniform2(loc int32, x, y float32)      { d.setUniform("Uniform2", loc, [2]float32{x, y}) }
func (d *Device) Uniform1(loc int32, v float32)         { d.setUniform("Uniform1", loc, v) }

func (d *Device) GenBuffer() uint32 {
	id := d.id()
	d.buffers[id] = nil
	d.record("GenBuffer", id)
	return id
}

func (d *Device) DeleteBuffer(buf uint32) {
	delete(d.buffers, buf)
	d.deleted[buf] = true
	for t, b := range d.bound {
		if b == buf {
			d.bound[t] = 0
		}
	}
	d.record("DeleteBuffer", buf)
}

func (d *Device) BindBuffer(target gpu.BufferTarget, buf uint32) {
	d.bound[target] = buf
	d.record("BindBuffer", target, buf)
}

func (d *Device) upload(target gpu.BufferTarget, data []any) {
	buf := d.bound[target]
	if _, ok := d.buffers[buf]; !ok {
		panic("gputest: upload to a buffer that does not exist")
	}
	d.buffers[buf] = data
	d.record("BufferData", target, buf, len(data))
}

func (d *Device) BufferFloat32(target gpu.BufferTarget, data []float32) {
	vals := make([]any, len(data))
	for i, v := range data {
		vals[i] = v
	}
	d.upload(target, vals)
}

func (d *Device) BufferUint32(target gpu.BufferTarget, data []uint32) {
	vals := make([]any, len(data))
	for i, v := range data {
		vals[i] = v
	}
	d.upload(target, vals)
}

func (d *Device) EnableVertexAttribArray(loc uint32) {
	d.enabled[loc] = true
	d.record("EnableVertexAttribArray", loc)
}

func (d *Device) DisableVertexAttribArray(loc uint32) {
	delete(d.enabled, loc)
	d.record("DisableVertexAttribArray", loc)
}

func (d *Device) VertexAttribPointer(loc uint32, size int32) {
	d.record("VertexAttribPointer", loc, size, d.bound[gpu.ArrayBuffer])
}

func (d *Device) DrawElements(mode gpu.Primitive, count int32) {
	var enabled []uint32
	for loc := uint32(0); loc < 16; loc++ {
		if d.enabled[loc] {
			enabled = append(enabled, loc)
		}
	}
	d.Draws = append(d.Draws, Draw{
		Program:       d.current,
		Mode:          mode,
		Count:         count,
		Enabled:       enabled,
		ArrayBuffer:   d.bound[gpu.ArrayBuffer],
		ElementBuffer: d.bound[gpu.ElementArrayBuffer],
		DepthTest:     d.caps[gpu.DepthTest],
	})
	d.record("DrawElements", mode, count)
}

func (d *Device) ClearColor(r, g, b, a float32) {
	d.clearColor = [4]float32{r, g, b, a}
	d.record("ClearColor", r, g, b, a)
}

func (d *Device) Clear(mask gpu.ClearMask) {
	d.record("Clear", mask)
}

func (d *Device) Viewport(x, y, width, height int32) {
	d.record("Viewport", x, y, width, height)
}

func (d *Device) Enable(c gpu.Capability) {
	d.caps[c] = true
	d.record("Enable", c)
}

func (d *Device) Disable(c gpu.Capability) {
	d.caps[c] = false
	d.record("Disable", c)
}

func (d *Device) ReadPixels(x, y, width, height int32) []byte {
	d.record("ReadPixels", x, y, width, height)
	return make([]byte, int(width)*int(height)*4)
}
