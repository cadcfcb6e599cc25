// Package camera provides the perspective camera that views the planet.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/planetgl/pkg/math"
)

// Camera looks from Eye at Center. View and projection are derived state:
// Update recomputes both, so neither is ever stale relative to the other.
type Camera struct {
	Eye    math.Vec3
	Center math.Vec3
	Up     math.Vec3

	FovY   float32 // radians
	Aspect float32 // width / height
	Near   float32
	Far    float32

	// Orbit constraints
	MinDistance float32
	MaxDistance float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32

	view math.Mat4
	proj math.Mat4
}

// New creates a camera at eye looking at center with a 45 degree vertical
// field of view.
func New(eye, center math.Vec3) *Camera {
	c := &Camera{
		Eye:             eye,
		Center:          center,
		Up:              math.Vec3{Y: 1},
		FovY:            math32.Pi / 4,
		Aspect:          1,
		Near:            0.1,
		Far:             1000,
		MinDistance:     1.5,
		MaxDistance:     100,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
	c.Update()
	return c
}

// SetAspectRatio sets width/height. The projection is not rebuilt until
// UpdateProjectionMatrix or Update.
func (c *Camera) SetAspectRatio(aspect float32) {
	if aspect <= 0 {
		return
	}
	c.Aspect = aspect
}

// UpdateProjectionMatrix rebuilds the projection from FovY, Aspect, Near, Far.
func (c *Camera) UpdateProjectionMatrix() {
	c.proj = math.Perspective(c.FovY, c.Aspect, c.Near, c.Far)
}

// Update rebuilds view and projection together.
func (c *Camera) Update() {
	c.view = math.LookAt(c.Eye, c.Center, c.Up)
	c.UpdateProjectionMatrix()
}

// ViewMatrix returns the view matrix computed by the last Update.
func (c *Camera) ViewMatrix() math.Mat4 {
	return c.view
}

// ProjectionMatrix returns the projection matrix computed by the last
// Update or UpdateProjectionMatrix.
func (c *Camera) ProjectionMatrix() math.Mat4 {
	return c.proj
}

// ViewProj returns projection * view.
func (c *Camera) ViewProj() math.Mat4 {
	return c.proj.Mul(c.view)
}

// Distance returns the distance from eye to center.
func (c *Camera) Distance() float32 {
	return c.Eye.Distance(c.Center)
}

// HandleDrag orbits the eye around the center: horizontal motion turns
// about Up, vertical motion tilts toward or away from it. Tilting stops
// short of the poles so the view never flips.
func (c *Camera) HandleDrag(deltaX, deltaY float32) {
	up := c.Up.Normalize()
	offset := c.Eye.Sub(c.Center)

	offset = math.RotateAxis(up, -deltaX*c.DragSensitivity).TransformDirection(offset)

	right := c.Center.Sub(c.Eye).Cross(up).Normalize()
	if right != (math.Vec3{}) {
		tilted := math.RotateAxis(right, -deltaY*c.DragSensitivity).TransformDirection(offset)
		if math32.Abs(tilted.Normalize().Dot(up)) < 0.99 {
			offset = tilted
		}
	}

	c.Eye = c.Center.Add(offset)
}

// HandleZoom moves the eye toward (positive delta) or away from the center,
// proportionally to the current distance.
func (c *Camera) HandleZoom(delta float32) {
	offset := c.Eye.Sub(c.Center)
	dist := offset.Length()
	if dist == 0 {
		return
	}

	dist -= delta * dist * c.ZoomSensitivity
	if dist < c.MinDistance {
		dist = c.MinDistance
	}
	if dist > c.MaxDistance {
		dist = c.MaxDistance
	}

	c.Eye = c.Center.Add(offset.Normalize().Scale(dist))
}
