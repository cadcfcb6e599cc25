// Package shader compiles GLSL programs and pushes the planet's uniforms.
//
// One Program type serves every variant; a Schema decides which attribute
// and uniform slots the program resolves. Setters for slots the schema
// omits, or the linked program does not use, are no-ops, so a single
// renderer can drive programs that implement only part of the uniform set.
package shader

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/planetgl/internal/engine/gpu"
	"github.com/Faultbox/planetgl/internal/engine/mesh"
	"github.com/Faultbox/planetgl/internal/logger"
	"github.com/Faultbox/planetgl/pkg/math"
)

// Displacement holds the surface deformation parameters of the lambert
// program.
type Displacement struct {
	ShiftScale      float32 `yaml:"shift_scale"`
	ShiftFreq       float32 `yaml:"shift_freq"`
	ShiftSpeed      float32 `yaml:"shift_speed"`
	ShiftSmoothness float32 `yaml:"shift_smoothness"`
	DetailFreq      float32 `yaml:"detail_freq"`
	DetailScale     float32 `yaml:"detail_scale"`
}

// Program is a linked vertex + fragment program with its resolved slots.
type Program struct {
	ctx    *gpu.Context
	schema Schema
	id     uint32
	locs   [slotCount]int32
}

// New compiles both stages, links them and resolves the schema's slots.
// A stage the backend rejects yields a *CompileError, a failed link a
// *LinkError; both carry the backend's info log unchanged.
func New(ctx *gpu.Context, schema Schema, vertexSrc, fragmentSrc string) (*Program, error) {
	dev := ctx.Device()

	vert, err := compileShader(dev, schema, gpu.VertexStage, vertexSrc)
	if err != nil {
		return nil, err
	}
	defer dev.DeleteShader(vert)

	frag, err := compileShader(dev, schema, gpu.FragmentStage, fragmentSrc)
	if err != nil {
		return nil, err
	}
	defer dev.DeleteShader(frag)

	id := dev.CreateProgram()
	dev.AttachShader(id, vert)
	dev.AttachShader(id, frag)
	dev.LinkProgram(id)
	if !dev.ProgramLinked(id) {
		log := dev.ProgramInfoLog(id)
		dev.DeleteProgram(id)
		return nil, &LinkError{Schema: schema.Name, Log: log}
	}

	p := &Program{
		ctx:    ctx,
		schema: schema,
		id:     id,
	}
	for i := range p.locs {
		p.locs[i] = -1
	}

	var absent []string
	for _, s := range schema.Slots {
		if s.IsAttribute() {
			p.locs[s] = dev.AttribLocation(id, s.Name())
		} else {
			p.locs[s] = dev.UniformLocation(id, s.Name())
		}
		if p.locs[s] < 0 {
			absent = append(absent, s.Name())
		}
	}

	logger.Debug("shader program created",
		zap.String("schema", schema.Name),
		zap.Uint32("program", id),
		zap.Strings("absent", absent),
	)
	return p, nil
}

// compileShader compiles a single stage.
func compileShader(dev gpu.Device, schema Schema, stage gpu.Stage, source string) (uint32, error) {
	sh := dev.CreateShader(stage)
	dev.ShaderSource(sh, source)
	dev.CompileShader(sh)

	if !dev.ShaderCompiled(sh) {
		log := dev.ShaderInfoLog(sh)
		dev.DeleteShader(sh)
		return 0, &CompileError{Schema: schema.Name, Stage: stage, Log: log}
	}
	return sh, nil
}

// ID returns the backend program id.
func (p *Program) ID() uint32 {
	return p.id
}

// Schema returns the schema the program was built with.
func (p *Program) Schema() Schema {
	return p.schema
}

// Has reports whether the slot resolved to a location.
func (p *Program) Has(s Slot) bool {
	return s >= 0 && s < slotCount && p.locs[s] >= 0
}

// Location returns the slot's backend location, -1 when absent.
func (p *Program) Location(s Slot) int32 {
	if s < 0 || s >= slotCount {
		return -1
	}
	return p.locs[s]
}

// Use makes this the context's active program. Binding is skipped when it
// already is.
func (p *Program) Use() {
	p.ctx.UseProgram(p.id)
}

// Delete releases the program.
func (p *Program) Delete() {
	if p.id == 0 {
		return
	}
	p.ctx.ForgetProgram(p.id)
	p.ctx.Device().DeleteProgram(p.id)
	p.id = 0
}

// SetModelMatrix uploads the model matrix and, when the program reads it,
// its inverse transpose for transforming normals.
func (p *Program) SetModelMatrix(model math.Mat4) {
	p.Use()
	dev := p.ctx.Device()
	if loc := p.locs[UnifModel]; loc >= 0 {
		dev.UniformMatrix4(loc, model)
	}
	if loc := p.locs[UnifModelInvTr]; loc >= 0 {
		dev.UniformMatrix4(loc, model.InverseTranspose())
	}
}

// SetViewProjMatrix uploads projection * view.
func (p *Program) SetViewProjMatrix(vp math.Mat4) {
	p.Use()
	if loc := p.locs[UnifViewProj]; loc >= 0 {
		p.ctx.Device().UniformMatrix4(loc, vp)
	}
}

// SetGeometryColor0 uploads the first planet color, components in [0, 1].
func (p *Program) SetGeometryColor0(color math.Vec4) {
	p.setVec4(UnifColor0, color)
}

// SetGeometryColor1 uploads the second planet color, components in [0, 1].
func (p *Program) SetGeometryColor1(color math.Vec4) {
	p.setVec4(UnifColor1, color)
}

// SetTime uploads the animation time.
func (p *Program) SetTime(t float32) {
	p.setFloat(UnifTime, t)
}

// SetNoiseFreq uploads the base noise frequency.
func (p *Program) SetNoiseFreq(freq float32) {
	p.setFloat(UnifNoiseFreq, freq)
}

// SetShiftAndDetail uploads all six displacement parameters.
func (p *Program) SetShiftAndDetail(d Displacement) {
	p.setFloat(UnifShiftScale, d.ShiftScale)
	p.setFloat(UnifShiftFreq, d.ShiftFreq)
	p.setFloat(UnifShiftSpeed, d.ShiftSpeed)
	p.setFloat(UnifShiftSmoothness, d.ShiftSmoothness)
	p.setFloat(UnifDetailFreq, d.DetailFreq)
	p.setFloat(UnifDetailScale, d.DetailScale)
}

// SetEyeRefUp uploads the camera frame for ray reconstruction.
func (p *Program) SetEyeRefUp(eye, ref, up math.Vec3) {
	p.Use()
	dev := p.ctx.Device()
	if loc := p.locs[UnifEye]; loc >= 0 {
		dev.Uniform3(loc, eye)
	}
	if loc := p.locs[UnifRef]; loc >= 0 {
		dev.Uniform3(loc, ref)
	}
	if loc := p.locs[UnifUp]; loc >= 0 {
		dev.Uniform3(loc, up)
	}
}

// SetDimensions uploads the framebuffer size in pixels.
func (p *Program) SetDimensions(width, height int) {
	p.Use()
	if loc := p.locs[UnifDimensions]; loc >= 0 {
		p.ctx.Device().Uniform2(loc, float32(width), float32(height))
	}
}

func (p *Program) setFloat(s Slot, v float32) {
	p.Use()
	if loc := p.locs[s]; loc >= 0 {
		p.ctx.Device().Uniform1(loc, v)
	}
}

func (p *Program) setVec4(s Slot, v math.Vec4) {
	p.Use()
	if loc := p.locs[s]; loc >= 0 {
		p.ctx.Device().Uniform4(loc, v)
	}
}

// Draw issues one indexed draw of d. Attribute streams are enabled only
// when both the program reads them and d provides them, and are disabled
// again afterwards.
func (p *Program) Draw(d mesh.Drawable) error {
	p.Use()
	dev := p.ctx.Device()

	streams := [...]struct {
		slot Slot
		bind func() (bool, error)
	}{
		{AttrPos, d.BindPositions},
		{AttrNor, d.BindNormals},
		{AttrCol, d.BindColors},
	}

	var enabled [len(streams)]uint32
	n := 0
	defer func() {
		for _, loc := range enabled[:n] {
			dev.DisableVertexAttribArray(loc)
		}
	}()

	for _, s := range streams {
		loc := p.locs[s.slot]
		if loc < 0 {
			continue
		}
		ok, err := s.bind()
		if err != nil {
			return fmt.Errorf("%s draw: %w", p.schema.Name, err)
		}
		if !ok {
			continue
		}
		dev.EnableVertexAttribArray(uint32(loc))
		dev.VertexAttribPointer(uint32(loc), 4)
		enabled[n] = uint32(loc)
		n++
	}

	if err := d.BindIndices(); err != nil {
		return fmt.Errorf("%s draw: %w", p.schema.Name, err)
	}
	dev.DrawElements(d.PrimitiveMode(), int32(d.ElementCount()))
	return nil
}
