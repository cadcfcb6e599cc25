// Package renderer sequences the frame's clear and its two draw passes.
package renderer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/planetgl/internal/engine/camera"
	"github.com/Faultbox/planetgl/internal/engine/gpu"
	"github.com/Faultbox/planetgl/internal/engine/mesh"
	"github.com/Faultbox/planetgl/internal/logger"
	"github.com/Faultbox/planetgl/pkg/math"
)

// AnimationTimeScale converts the frame counter into the lit pass's
// animation time.
const AnimationTimeScale = 0.02

// FlatProgram is what the background pass needs from a shader program.
type FlatProgram interface {
	SetEyeRefUp(eye, ref, up math.Vec3)
	SetTime(t float32)
	Draw(d mesh.Drawable) error
}

// LitProgram is what the planet pass needs from a shader program.
type LitProgram interface {
	SetTime(t float32)
	SetModelMatrix(model math.Mat4)
	SetViewProjMatrix(vp math.Mat4)
	Draw(d mesh.Drawable) error
}

// Renderer issues clears and passes against a rendering context. Depth
// testing is the caller's responsibility.
type Renderer struct {
	ctx    *gpu.Context
	width  int
	height int
}

// New creates a renderer. Call SetSize before the first frame.
func New(ctx *gpu.Context) *Renderer {
	return &Renderer{ctx: ctx}
}

// SetClearColor sets the color Clear fills the framebuffer with.
func (r *Renderer) SetClearColor(red, green, blue, alpha float32) {
	r.ctx.Device().ClearColor(red, green, blue, alpha)
}

// Clear clears color and depth.
func (r *Renderer) Clear() {
	r.ctx.Device().Clear(gpu.ColorBuffer | gpu.DepthBuffer)
}

// SetSize records the drawable size and resets the viewport to cover it.
func (r *Renderer) SetSize(width, height int) {
	r.width = width
	r.height = height
	r.ctx.Device().Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the last size passed to SetSize.
func (r *Renderer) Size() (width, height int) {
	return r.width, r.height
}

// RenderFlat draws the background pass with the raw frame time.
func (r *Renderer) RenderFlat(cam *camera.Camera, prog FlatProgram, drawables []mesh.Drawable, time float32) error {
	prog.SetEyeRefUp(cam.Eye, cam.Center, cam.Up)
	prog.SetTime(time)

	for i, d := range drawables {
		if err := prog.Draw(d); err != nil {
			return fmt.Errorf("flat pass drawable %d: %w", i, err)
		}
	}
	return nil
}

// Render draws the lit pass with an identity model matrix.
func (r *Renderer) Render(cam *camera.Camera, prog LitProgram, drawables []mesh.Drawable, time float32) error {
	prog.SetTime(time * AnimationTimeScale)
	prog.SetModelMatrix(math.Identity())
	prog.SetViewProjMatrix(cam.ProjectionMatrix().Mul(cam.ViewMatrix()))

	for i, d := range drawables {
		if err := prog.Draw(d); err != nil {
			return fmt.Errorf("lit pass drawable %d: %w", i, err)
		}
	}
	return nil
}
