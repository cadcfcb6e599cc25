// Package scene owns the planet scene: its programs, its meshes, its camera
// and the per-frame state that drives them.
package scene

import (
	"fmt"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/planetgl/internal/controls"
	"github.com/Faultbox/planetgl/internal/engine/camera"
	"github.com/Faultbox/planetgl/internal/engine/geometry"
	"github.com/Faultbox/planetgl/internal/engine/gpu"
	"github.com/Faultbox/planetgl/internal/engine/mesh"
	"github.com/Faultbox/planetgl/internal/engine/renderer"
	"github.com/Faultbox/planetgl/internal/engine/scene/shaders"
	"github.com/Faultbox/planetgl/internal/engine/shader"
	"github.com/Faultbox/planetgl/internal/logger"
	"github.com/Faultbox/planetgl/pkg/math"
)

// Config contains scene configuration options.
type Config struct {
	Width  int
	Height int

	ClearColor [4]float32

	PlanetCenter math.Vec3
	PlanetRadius float32

	ShowCube   bool
	CubeCenter math.Vec3
	CubeScale  math.Vec3

	CameraEye    math.Vec3
	CameraTarget math.Vec3
	FovY         float32 // radians
	Near         float32
	Far          float32
}

// DefaultConfig returns a default scene configuration.
func DefaultConfig() Config {
	return Config{
		Width:        1280,
		Height:       720,
		ClearColor:   [4]float32{164.0 / 255.0, 233.0 / 255.0, 1, 1},
		PlanetCenter: math.V3(0, 0, 0),
		PlanetRadius: 2.5,
		CubeCenter:   math.V3(0, 1.2, 0),
		CubeScale:    math.V3(0.75, 0.75, 0.75),
		CameraEye:    math.V3(0, 0, -10),
		CameraTarget: math.V3(0, 0, 0),
		FovY:         math32.Pi / 4,
		Near:         0.1,
		Far:          1000,
	}
}

// FrameState is everything that carries over from one frame to the next.
type FrameState struct {
	// Time advances by one per frame. The flat pass sees it raw, the lit
	// pass scaled by renderer.AnimationTimeScale.
	Time float32
	// Tessellation is the subdivision level the planet mesh was built with.
	Tessellation int
	// Frames counts completed ticks.
	Frames uint64
}

// Scene renders the backdrop quad and the displaced planet.
type Scene struct {
	ctx    *gpu.Context
	config Config

	renderer *renderer.Renderer
	camera   *camera.Camera

	lambert *shader.Program
	flat    *shader.Program

	planet   *mesh.Buffer
	backdrop *mesh.Buffer
	cube     *mesh.Buffer

	frame FrameState
}

// New compiles both programs, builds the meshes for params and sizes the
// viewport. Shader errors are returned unchanged so callers can match
// shader.ErrCompile and shader.ErrLink.
func New(ctx *gpu.Context, cfg Config, params controls.Params) (*Scene, error) {
	s := &Scene{
		ctx:      ctx,
		config:   cfg,
		renderer: renderer.New(ctx),
		planet:   mesh.NewBuffer(ctx),
		backdrop: mesh.NewBuffer(ctx),
		cube:     mesh.NewBuffer(ctx),
	}

	var err error
	s.lambert, err = shader.New(ctx, shader.LambertSchema, shaders.LambertVertexShader, shaders.LambertFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("creating lambert program: %w", err)
	}
	s.flat, err = shader.New(ctx, shader.FlatSchema, shaders.FlatVertexShader, shaders.FlatFragmentShader)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("creating flat program: %w", err)
	}

	s.camera = camera.New(cfg.CameraEye, cfg.CameraTarget)
	s.camera.FovY = cfg.FovY
	s.camera.Near = cfg.Near
	s.camera.Far = cfg.Far

	c := cfg.ClearColor
	s.renderer.SetClearColor(c[0], c[1], c[2], c[3])

	if err := s.LoadScene(params); err != nil {
		s.Close()
		return nil, err
	}
	s.Resize(cfg.Width, cfg.Height)

	logger.Info("scene created",
		zap.Int("tessellation", s.frame.Tessellation),
		zap.Int("vertices", s.planet.VertexCount()),
		zap.Bool("cube", cfg.ShowCube),
	)
	return s, nil
}

// LoadScene rebuilds every mesh from scratch. The previous GPU buffers are
// released first.
func (s *Scene) LoadScene(params controls.Params) error {
	level := geometry.ClampSubdivision(params.Tessellation)
	if err := s.planet.Create(geometry.Icosphere(s.config.PlanetCenter, s.config.PlanetRadius, level)); err != nil {
		return fmt.Errorf("creating planet: %w", err)
	}
	s.frame.Tessellation = params.Tessellation

	if err := s.backdrop.Create(geometry.Square(math.V3(0, 0, 0))); err != nil {
		return fmt.Errorf("creating backdrop: %w", err)
	}

	if s.config.ShowCube {
		if err := s.cube.Create(geometry.Cube(s.config.CubeCenter, s.config.CubeScale)); err != nil {
			return fmt.Errorf("creating cube: %w", err)
		}
	}

	logger.Debug("scene loaded", zap.Int("tessellation", level))
	return nil
}

// Tick renders one frame with params. The sequence is fixed: camera,
// clear, backdrop without depth test, planet regeneration, uniforms,
// planet with depth test, then time advances.
func (s *Scene) Tick(params controls.Params) error {
	s.camera.Update()
	s.renderer.Clear()

	s.ctx.SetEnabled(gpu.DepthTest, false)
	if err := s.renderer.RenderFlat(s.camera, s.flat, []mesh.Drawable{s.backdrop}, s.frame.Time); err != nil {
		return err
	}
	s.ctx.SetEnabled(gpu.DepthTest, true)

	if params.Tessellation != s.frame.Tessellation {
		if err := s.regenerate(params.Tessellation); err != nil {
			return err
		}
	}

	s.lambert.SetGeometryColor0(params.Color0.Vec4())
	s.lambert.SetGeometryColor1(params.Color1.Vec4())
	s.lambert.SetNoiseFreq(params.NoiseFrequency)
	s.lambert.SetShiftAndDetail(params.Displacement)

	drawables := []mesh.Drawable{s.planet}
	if s.config.ShowCube {
		drawables = append(drawables, s.cube)
	}
	if err := s.renderer.Render(s.camera, s.lambert, drawables, s.frame.Time); err != nil {
		return err
	}

	s.frame.Time++
	s.frame.Frames++
	return nil
}

// regenerate replaces the planet mesh with one at level.
func (s *Scene) regenerate(level int) error {
	data := geometry.Icosphere(s.config.PlanetCenter, s.config.PlanetRadius, level)
	if err := s.planet.Create(data); err != nil {
		return fmt.Errorf("regenerating planet: %w", err)
	}
	logger.Debug("planet regenerated",
		zap.Int("from", s.frame.Tessellation),
		zap.Int("to", level),
		zap.Int("vertices", data.VertexCount()),
	)
	s.frame.Tessellation = level
	return nil
}

// Resize applies a new drawable size: renderer, camera aspect, camera
// projection, then the backdrop's dimensions, in that order.
func (s *Scene) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.renderer.SetSize(width, height)
	s.camera.SetAspectRatio(float32(width) / float32(height))
	s.camera.UpdateProjectionMatrix()
	s.flat.SetDimensions(width, height)
}

// Camera returns the scene camera for orbit input.
func (s *Scene) Camera() *camera.Camera {
	return s.camera
}

// Frame returns a copy of the current frame state.
func (s *Scene) Frame() FrameState {
	return s.frame
}

// Size returns the current drawable size.
func (s *Scene) Size() (width, height int) {
	return s.renderer.Size()
}

// PlanetVertices returns the vertex count of the current planet mesh.
func (s *Scene) PlanetVertices() int {
	return s.planet.VertexCount()
}

// Close releases all GPU resources. It is safe to call more than once.
func (s *Scene) Close() {
	s.planet.Destroy()
	s.backdrop.Destroy()
	s.cube.Destroy()
	if s.lambert != nil {
		s.lambert.Delete()
	}
	if s.flat != nil {
		s.flat.Delete()
	}
}
