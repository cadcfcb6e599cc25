// Package controls holds the user-tunable planet parameters and the
// keyboard panel that edits them.
package controls

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/planetgl/internal/engine/geometry"
	"github.com/Faultbox/planetgl/internal/engine/shader"
	"github.com/Faultbox/planetgl/pkg/math"
)

// RGBA is a color with 8-bit channels.
type RGBA [4]uint8

// Vec4 returns the color with channels scaled to [0, 1].
func (c RGBA) Vec4() math.Vec4 {
	return math.V4(
		float32(c[0])/255,
		float32(c[1])/255,
		float32(c[2])/255,
		float32(c[3])/255,
	)
}

// Params is one complete set of planet parameters. It is passed by value:
// the renderer reads a snapshot per frame and never sees a half-applied
// change.
type Params struct {
	Tessellation   int                 `yaml:"tessellation"`
	Color0         RGBA                `yaml:"color0"`
	Color1         RGBA                `yaml:"color1"`
	NoiseFrequency float32             `yaml:"noise_frequency"`
	Displacement   shader.Displacement `yaml:"displacement"`
}

// Defaults returns the startup parameters. Reset restores exactly these.
func Defaults() Params {
	return Params{
		Tessellation:   5,
		Color0:         RGBA{255, 255, 0, 255},
		Color1:         RGBA{230, 77, 0, 255},
		NoiseFrequency: 3.0,
		Displacement: shader.Displacement{
			ShiftScale:      0.5,
			ShiftFreq:       6.0,
			ShiftSpeed:      0.1,
			ShiftSmoothness: 0.6,
			DetailFreq:      15.0,
			DetailScale:     0.1,
		},
	}
}

// Parameter ranges.
const (
	MaxNoiseFrequency  = 10
	MaxShiftScale      = 2
	MaxShiftFreq       = 20
	MaxShiftSpeed      = 2
	MaxShiftSmoothness = 2
	MaxDetailFreq      = 20
	MaxDetailScale     = 2
)

// Clamp returns p with every field forced into its range.
func (p Params) Clamp() Params {
	p.Tessellation = geometry.ClampSubdivision(p.Tessellation)
	p.NoiseFrequency = clamp(p.NoiseFrequency, 0, MaxNoiseFrequency)

	d := &p.Displacement
	d.ShiftScale = clamp(d.ShiftScale, 0, MaxShiftScale)
	d.ShiftFreq = clamp(d.ShiftFreq, 0, MaxShiftFreq)
	d.ShiftSpeed = clamp(d.ShiftSpeed, 0, MaxShiftSpeed)
	d.ShiftSmoothness = clamp(d.ShiftSmoothness, 0, MaxShiftSmoothness)
	d.DetailFreq = clamp(d.DetailFreq, 0, MaxDetailFreq)
	d.DetailScale = clamp(d.DetailScale, 0, MaxDetailScale)
	return p
}

func clamp(v, lo, hi float32) float32 {
	if math32.IsNaN(v) {
		return lo
	}
	return math32.Max(lo, math32.Min(hi, v))
}
