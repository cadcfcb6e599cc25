package scene_test

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/planetgl/internal/controls"
	"github.com/Faultbox/planetgl/internal/engine/geometry"
	"github.com/Faultbox/planetgl/internal/engine/gpu"
	"github.com/Faultbox/planetgl/internal/engine/gpu/gputest"
	"github.com/Faultbox/planetgl/internal/engine/renderer"
	"github.com/Faultbox/planetgl/internal/engine/scene"
	"github.com/Faultbox/planetgl/internal/engine/shader"
	"github.com/Faultbox/planetgl/pkg/math"
)

func newScene(t *testing.T, cfg scene.Config) (*scene.Scene, *gputest.Device) {
	t.Helper()
	dev := gputest.New()
	s, err := scene.New(gpu.NewContext(dev), cfg, controls.Defaults())
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s, dev
}

func indexOf(ops []string, op string, from int) int {
	for i := from; i < len(ops); i++ {
		if ops[i] == op {
			return i
		}
	}
	return -1
}

func TestNewBuildsScene(t *testing.T) {
	s, dev := newScene(t, scene.DefaultConfig())

	assert.Equal(t, geometry.IcosphereVertexCount(5), s.PlanetVertices())
	assert.Equal(t, 5, s.Frame().Tessellation)
	assert.Zero(t, s.Frame().Time)

	w, h := s.Size()
	assert.Equal(t, 1280, w)
	assert.Equal(t, 720, h)
	assert.Equal(t, [4]float32{164.0 / 255.0, 233.0 / 255.0, 1, 1}, dev.ClearColorValue())
}

func TestTickPassOrder(t *testing.T) {
	s, dev := newScene(t, scene.DefaultConfig())
	dev.Reset()

	require.NoError(t, s.Tick(controls.Defaults()))

	ops := dev.Ops()
	clear := indexOf(ops, "Clear", 0)
	disable := indexOf(ops, "Disable", 0)
	flatDraw := indexOf(ops, "DrawElements", 0)
	enable := indexOf(ops, "Enable", 0)
	litDraw := indexOf(ops, "DrawElements", flatDraw+1)

	require.NotEqual(t, -1, clear)
	assert.Less(t, clear, disable)
	assert.Less(t, disable, flatDraw)
	assert.Less(t, flatDraw, enable)
	assert.Less(t, enable, litDraw)

	require.Len(t, dev.Draws, 2)
	flat, lit := dev.Draws[0], dev.Draws[1]
	assert.False(t, flat.DepthTest)
	assert.Equal(t, int32(6), flat.Count)
	assert.True(t, lit.DepthTest)
	assert.Equal(t, int32(geometry.IcosphereIndexCount(5)), lit.Count)
	assert.NotEqual(t, flat.Program, lit.Program)
}

func TestTickAdvancesTime(t *testing.T) {
	s, dev := newScene(t, scene.DefaultConfig())

	require.NoError(t, s.Tick(controls.Defaults()))
	require.NoError(t, s.Tick(controls.Defaults()))

	frame := s.Frame()
	assert.Equal(t, float32(2), frame.Time)
	assert.Equal(t, uint64(2), frame.Frames)

	flatProg := dev.Draws[len(dev.Draws)-2].Program
	litProg := dev.Draws[len(dev.Draws)-1].Program

	// The second frame rendered with time 1.
	got, ok := dev.Uniform(flatProg, "u_Time")
	require.True(t, ok)
	assert.Equal(t, float32(1), got)
	got, ok = dev.Uniform(litProg, "u_Time")
	require.True(t, ok)
	assert.InDelta(t, renderer.AnimationTimeScale, got, 1e-6)
}

func TestTickPushesParameters(t *testing.T) {
	s, dev := newScene(t, scene.DefaultConfig())

	p := controls.Defaults()
	p.NoiseFrequency = 4
	p.Displacement.DetailScale = 1.5
	require.NoError(t, s.Tick(p))

	lit := dev.Draws[1].Program
	got, _ := dev.Uniform(lit, "u_Color0")
	assert.Equal(t, math.V4(1, 1, 0, 1), got)
	got, _ = dev.Uniform(lit, "u_Color1")
	assert.Equal(t, controls.RGBA{230, 77, 0, 255}.Vec4(), got)
	got, _ = dev.Uniform(lit, "u_NoiseFrequency")
	assert.Equal(t, float32(4), got)
	got, _ = dev.Uniform(lit, "u_DetailScale")
	assert.Equal(t, float32(1.5), got)
	got, _ = dev.Uniform(lit, "u_Model")
	assert.Equal(t, math.Identity(), got)
	got, _ = dev.Uniform(lit, "u_ViewProj")
	assert.Equal(t, s.Camera().ViewProj(), got)
}

func TestTickRegeneratesOnTessellationChange(t *testing.T) {
	s, dev := newScene(t, scene.DefaultConfig())
	live := dev.LiveBuffers()

	p := controls.Defaults()
	p.Tessellation = 2
	dev.Reset()
	require.NoError(t, s.Tick(p))

	assert.Equal(t, 2, s.Frame().Tessellation)
	assert.Equal(t, geometry.IcosphereVertexCount(2), s.PlanetVertices())
	assert.Equal(t, live, dev.LiveBuffers(), "old planet buffers must be released")
	assert.Positive(t, dev.Count("DeleteBuffer"))

	// Regeneration lands before the lit pass of the same frame.
	require.Len(t, dev.Draws, 2)
	assert.Equal(t, int32(geometry.IcosphereIndexCount(2)), dev.Draws[1].Count)

	// Same level again: nothing is rebuilt.
	dev.Reset()
	require.NoError(t, s.Tick(p))
	assert.Zero(t, dev.Count("DeleteBuffer"))
	assert.Zero(t, dev.Count("GenBuffer"))
}

func TestResize(t *testing.T) {
	s, dev := newScene(t, scene.DefaultConfig())
	dev.Reset()

	s.Resize(800, 400)

	w, h := s.Size()
	assert.Equal(t, 800, w)
	assert.Equal(t, 400, h)

	f := 1 / math32.Tan(scene.DefaultConfig().FovY/2)
	assert.InDelta(t, f/(800.0/400.0), s.Camera().ProjectionMatrix()[0], 1e-5)

	ops := dev.Ops()
	viewport := indexOf(ops, "Viewport", 0)
	dims := indexOf(ops, "Uniform2", 0)
	require.NotEqual(t, -1, viewport)
	require.NotEqual(t, -1, dims)
	assert.Less(t, viewport, dims)
	assert.Equal(t, []any{int32(0), int32(0), int32(800), int32(400)}, dev.Calls[viewport].Args)

	require.NoError(t, s.Tick(controls.Defaults()))
	got, ok := dev.Uniform(dev.Draws[0].Program, "u_Dimensions")
	require.True(t, ok)
	assert.Equal(t, [2]float32{800, 400}, got)
}

func TestResizeIgnoresEmpty(t *testing.T) {
	s, dev := newScene(t, scene.DefaultConfig())
	dev.Reset()

	s.Resize(0, 0)
	s.Resize(640, 0)

	w, h := s.Size()
	assert.Equal(t, 1280, w)
	assert.Equal(t, 720, h)
	assert.Zero(t, dev.Count("Viewport"))
}

func TestShowCube(t *testing.T) {
	cfg := scene.DefaultConfig()
	cfg.ShowCube = true
	s, dev := newScene(t, cfg)

	require.NoError(t, s.Tick(controls.Defaults()))
	require.Len(t, dev.Draws, 3)
	assert.Equal(t, int32(36), dev.Draws[2].Count)
	assert.True(t, dev.Draws[2].DepthTest)
}

func TestLoadSceneReplacesBuffers(t *testing.T) {
	s, dev := newScene(t, scene.DefaultConfig())
	live := dev.LiveBuffers()

	p := controls.Defaults()
	p.Tessellation = 1
	require.NoError(t, s.LoadScene(p))

	assert.Equal(t, live, dev.LiveBuffers())
	assert.Equal(t, 1, s.Frame().Tessellation)
	assert.Equal(t, geometry.IcosphereVertexCount(1), s.PlanetVertices())
}

func TestNewFailsOnShaderError(t *testing.T) {
	dev := gputest.New()
	dev.CompileErrors[gpu.VertexStage] = "0:1: bad"

	_, err := scene.New(gpu.NewContext(dev), scene.DefaultConfig(), controls.Defaults())
	require.Error(t, err)
	assert.True(t, errors.Is(err, shader.ErrCompile))

	var cerr *shader.CompileError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "0:1: bad", cerr.Log)
}

func TestCloseReleasesEverything(t *testing.T) {
	dev := gputest.New()
	s, err := scene.New(gpu.NewContext(dev), scene.DefaultConfig(), controls.Defaults())
	require.NoError(t, err)

	s.Close()
	assert.Zero(t, dev.LiveBuffers())
	assert.Equal(t, 2, dev.Count("DeleteProgram"))

	s.Close()
	assert.Equal(t, 2, dev.Count("DeleteProgram"))
}
