package shader_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/planetgl/internal/engine/geometry"
	"github.com/Faultbox/planetgl/internal/engine/gpu"
	"github.com/Faultbox/planetgl/internal/engine/gpu/gputest"
	"github.com/Faultbox/planetgl/internal/engine/mesh"
	"github.com/Faultbox/planetgl/internal/engine/shader"
	"github.com/Faultbox/planetgl/pkg/math"
)

const litVert = `#version 410 core
uniform mat4 u_Model;
uniform mat4 u_ModelInvTr;
uniform mat4 u_ViewProj;
uniform float u_Time;
in vec4 vs_Pos;
in vec4 vs_Nor;
void main() { gl_Position = u_ViewProj * u_Model * vs_Pos; }
`

const litFrag = `#version 410 core
uniform vec4 u_Color0;
uniform vec4 u_Color1;
out vec4 out_Col;
void main() { out_Col = u_Color0 + u_Color1; }
`

// Declares only part of the lambert surface.
const sparseVert = `#version 410 core
uniform mat4 u_Model;
uniform mat4 u_ViewProj;
in vec4 vs_Pos;
void main() { gl_Position = u_ViewProj * u_Model * vs_Pos; }
`

const flatVert = `#version 410 core
in vec4 vs_Pos;
void main() { gl_Position = vs_Pos; }
`

const flatFrag = `#version 410 core
uniform vec3 u_Eye, u_Ref, u_Up;
uniform vec2 u_Dimensions;
uniform float u_Time;
out vec4 out_Col;
void main() { out_Col = vec4(u_Eye + u_Ref + u_Up, u_Time); }
`

func newProgram(t *testing.T, ctx *gpu.Context, schema shader.Schema, vs, fs string) *shader.Program {
	t.Helper()
	prog, err := shader.New(ctx, schema, vs, fs)
	require.NoError(t, err)
	return prog
}

func TestNewResolvesDeclaredSlots(t *testing.T) {
	dev := gputest.New()
	ctx := gpu.NewContext(dev)
	prog := newProgram(t, ctx, shader.LambertSchema, litVert, litFrag)

	assert.NotZero(t, prog.ID())
	assert.Equal(t, "lambert", prog.Schema().Name)
	for _, s := range []shader.Slot{
		shader.AttrPos, shader.AttrNor,
		shader.UnifModel, shader.UnifModelInvTr, shader.UnifViewProj,
		shader.UnifColor0, shader.UnifColor1, shader.UnifTime,
	} {
		assert.True(t, prog.Has(s), s.Name())
	}
	for _, s := range []shader.Slot{
		shader.AttrCol, shader.UnifNoiseFreq, shader.UnifShiftScale, shader.UnifDetailScale,
	} {
		assert.False(t, prog.Has(s), s.Name())
		assert.Equal(t, int32(-1), prog.Location(s))
	}

	// Slots outside the schema are never looked up.
	assert.False(t, prog.Has(shader.UnifEye))
	// Both stages are released once linked.
	assert.Equal(t, 2, dev.Count("DeleteShader"))
}

func TestUseIsMinimal(t *testing.T) {
	dev := gputest.New()
	ctx := gpu.NewContext(dev)
	a := newProgram(t, ctx, shader.LambertSchema, litVert, litFrag)
	b := newProgram(t, ctx, shader.FlatSchema, flatVert, flatFrag)

	a.Use()
	a.Use()
	assert.Equal(t, 1, dev.UseCount[a.ID()])

	b.Use()
	a.Use()
	assert.Equal(t, 2, dev.UseCount[a.ID()])
	assert.Equal(t, 1, dev.UseCount[b.ID()])
	assert.Equal(t, 3, dev.Count("UseProgram"))
	assert.Equal(t, a.ID(), ctx.ActiveProgram())
}

func TestSettersActivateOnce(t *testing.T) {
	dev := gputest.New()
	ctx := gpu.NewContext(dev)
	prog := newProgram(t, ctx, shader.LambertSchema, litVert, litFrag)

	prog.SetTime(1)
	prog.SetGeometryColor0(math.V4(1, 0, 0, 1))
	prog.SetGeometryColor1(math.V4(0, 0, 1, 1))
	prog.SetViewProjMatrix(math.Identity())

	assert.Equal(t, 1, dev.UseCount[prog.ID()])
}

func TestUniformValues(t *testing.T) {
	dev := gputest.New()
	ctx := gpu.NewContext(dev)
	lit := newProgram(t, ctx, shader.LambertSchema, litVert, litFrag)
	flat := newProgram(t, ctx, shader.FlatSchema, flatVert, flatFrag)

	model := math.Translate(1, 2, 3).Mul(math.Scale(2, 2, 2))
	lit.SetModelMatrix(model)
	lit.SetTime(0.5)
	lit.SetGeometryColor0(math.V4(1, 1, 0, 1))

	got, ok := dev.Uniform(lit.ID(), "u_Model")
	require.True(t, ok)
	assert.Equal(t, model, got)
	got, ok = dev.Uniform(lit.ID(), "u_ModelInvTr")
	require.True(t, ok)
	assert.Equal(t, model.InverseTranspose(), got)
	got, _ = dev.Uniform(lit.ID(), "u_Time")
	assert.Equal(t, float32(0.5), got)
	got, _ = dev.Uniform(lit.ID(), "u_Color0")
	assert.Equal(t, math.V4(1, 1, 0, 1), got)

	flat.SetEyeRefUp(math.V3(0, 0, 5), math.V3(0, 0, 0), math.V3(0, 1, 0))
	flat.SetDimensions(800, 600)
	got, _ = dev.Uniform(flat.ID(), "u_Eye")
	assert.Equal(t, math.V3(0, 0, 5), got)
	got, _ = dev.Uniform(flat.ID(), "u_Up")
	assert.Equal(t, math.V3(0, 1, 0), got)
	got, _ = dev.Uniform(flat.ID(), "u_Dimensions")
	assert.Equal(t, [2]float32{800, 600}, got)
}

func TestAbsentSlotsAreNoOps(t *testing.T) {
	dev := gputest.New()
	ctx := gpu.NewContext(dev)
	prog := newProgram(t, ctx, shader.LambertSchema, sparseVert, litFrag)

	require.False(t, prog.Has(shader.UnifModelInvTr))
	require.False(t, prog.Has(shader.UnifNoiseFreq))

	prog.SetGeometryColor0(math.V4(0.2, 0.4, 0.6, 1))
	before := dev.Count("Uniform1")

	prog.SetNoiseFreq(3)
	prog.SetTime(10)
	prog.SetShiftAndDetail(shader.Displacement{ShiftScale: 0.5, DetailFreq: 15})
	prog.SetEyeRefUp(math.V3(1, 1, 1), math.V3(0, 0, 0), math.V3(0, 1, 0))
	prog.SetDimensions(10, 10)

	assert.Equal(t, before, dev.Count("Uniform1"))
	assert.Zero(t, dev.Count("Uniform3"))
	assert.Zero(t, dev.Count("Uniform2"))

	// Model still goes through; its inverse transpose does not.
	prog.SetModelMatrix(math.Translate(0, 1, 0))
	assert.Equal(t, 1, dev.Count("UniformMatrix4"))

	got, ok := dev.Uniform(prog.ID(), "u_Color0")
	require.True(t, ok)
	assert.Equal(t, math.V4(0.2, 0.4, 0.6, 1), got)
}

func TestShiftAndDetailUploadsAllSix(t *testing.T) {
	const vs = `#version 410 core
uniform float u_ShiftScale, u_ShiftFreq, u_ShiftSpeed, u_ShiftSmoothness;
uniform float u_DetailFreq, u_DetailScale;
in vec4 vs_Pos;
void main() { gl_Position = vs_Pos; }
`
	dev := gputest.New()
	ctx := gpu.NewContext(dev)
	prog := newProgram(t, ctx, shader.LambertSchema, vs, litFrag)

	d := shader.Displacement{
		ShiftScale:      0.5,
		ShiftFreq:       6,
		ShiftSpeed:      0.1,
		ShiftSmoothness: 0.6,
		DetailFreq:      15,
		DetailScale:     0.1,
	}
	prog.SetShiftAndDetail(d)

	want := map[string]float32{
		"u_ShiftScale":      0.5,
		"u_ShiftFreq":       6,
		"u_ShiftSpeed":      0.1,
		"u_ShiftSmoothness": 0.6,
		"u_DetailFreq":      15,
		"u_DetailScale":     0.1,
	}
	for name, v := range want {
		got, ok := dev.Uniform(prog.ID(), name)
		require.True(t, ok, name)
		assert.Equal(t, v, got, name)
	}
}

func TestCompileErrorCarriesLog(t *testing.T) {
	dev := gputest.New()
	dev.CompileErrors[gpu.FragmentStage] = "0:3(12): error: syntax error, unexpected '}'"
	ctx := gpu.NewContext(dev)

	prog, err := shader.New(ctx, shader.LambertSchema, litVert, litFrag)
	require.Error(t, err)
	assert.Nil(t, prog)
	assert.True(t, errors.Is(err, shader.ErrCompile))
	assert.False(t, errors.Is(err, shader.ErrLink))

	var cerr *shader.CompileError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, gpu.FragmentStage, cerr.Stage)
	assert.Equal(t, "0:3(12): error: syntax error, unexpected '}'", cerr.Log)
	assert.Contains(t, err.Error(), "fragment")

	// No program object was created and both shaders were released.
	assert.Zero(t, dev.Count("CreateProgram"))
	assert.Equal(t, 2, dev.Count("DeleteShader"))
}

func TestLinkErrorCarriesLog(t *testing.T) {
	dev := gputest.New()
	dev.LinkError = "error: vs_Pos not written by vertex shader"
	ctx := gpu.NewContext(dev)

	_, err := shader.New(ctx, shader.FlatSchema, flatVert, flatFrag)
	require.Error(t, err)
	assert.True(t, errors.Is(err, shader.ErrLink))

	var lerr *shader.LinkError
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, "flat", lerr.Schema)
	assert.Equal(t, "error: vs_Pos not written by vertex shader", lerr.Log)
	assert.Equal(t, 1, dev.Count("DeleteProgram"))
}

func TestDrawBeforeCreate(t *testing.T) {
	dev := gputest.New()
	ctx := gpu.NewContext(dev)
	prog := newProgram(t, ctx, shader.LambertSchema, litVert, litFrag)

	buf := mesh.NewBuffer(ctx)
	err := prog.Draw(buf)
	require.Error(t, err)
	assert.ErrorIs(t, err, mesh.ErrNotInitialized)
	assert.Empty(t, dev.Draws)
	assert.Equal(t, dev.Count("EnableVertexAttribArray"), dev.Count("DisableVertexAttribArray"))
}

func TestDrawIssuesOneDraw(t *testing.T) {
	dev := gputest.New()
	ctx := gpu.NewContext(dev)
	prog := newProgram(t, ctx, shader.LambertSchema, litVert, litFrag)

	data := geometry.Icosphere(math.V3(0, 0, 0), 1, 1)
	buf := mesh.NewBuffer(ctx)
	require.NoError(t, buf.Create(data))

	require.NoError(t, prog.Draw(buf))
	require.Len(t, dev.Draws, 1)

	draw := dev.Draws[0]
	assert.Equal(t, prog.ID(), draw.Program)
	assert.Equal(t, gpu.Triangles, draw.Mode)
	assert.Equal(t, int32(len(data.Indices)), draw.Count)
	assert.ElementsMatch(t,
		[]uint32{uint32(prog.Location(shader.AttrPos)), uint32(prog.Location(shader.AttrNor))},
		draw.Enabled)
	assert.NotZero(t, draw.ElementBuffer)

	// Every stream enabled for the draw is disabled again.
	assert.Equal(t, 2, dev.Count("EnableVertexAttribArray"))
	assert.Equal(t, 2, dev.Count("DisableVertexAttribArray"))
}

func TestDrawFlatUsesPositionsOnly(t *testing.T) {
	dev := gputest.New()
	ctx := gpu.NewContext(dev)
	prog := newProgram(t, ctx, shader.FlatSchema, flatVert, flatFrag)

	buf := mesh.NewBuffer(ctx)
	require.NoError(t, buf.Create(geometry.Square(math.V3(0, 0, 0))))

	require.NoError(t, prog.Draw(buf))
	require.Len(t, dev.Draws, 1)
	assert.Equal(t, int32(6), dev.Draws[0].Count)
	assert.Equal(t, []uint32{uint32(prog.Location(shader.AttrPos))}, dev.Draws[0].Enabled)
}

func TestDeleteClearsActiveProgram(t *testing.T) {
	dev := gputest.New()
	ctx := gpu.NewContext(dev)
	prog := newProgram(t, ctx, shader.FlatSchema, flatVert, flatFrag)
	id := prog.ID()

	prog.Use()
	require.Equal(t, id, ctx.ActiveProgram())

	prog.Delete()
	assert.Zero(t, ctx.ActiveProgram())
	assert.True(t, dev.Deleted(id))

	prog.Delete()
	assert.Equal(t, 1, dev.Count("DeleteProgram"))
}
