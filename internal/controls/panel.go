package controls

import (
	"fmt"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/planetgl/internal/logger"
)

// Field is one editable entry of the panel.
type Field struct {
	Name     string
	Min, Max float32
	Step     float32
	// Integer fields round to whole numbers after every adjustment.
	Integer bool

	get func(*Params) float32
	set func(*Params, float32)
}

// Value reads the field from p.
func (f Field) Value(p Params) float32 {
	return f.get(&p)
}

// Format renders the field's value in p for display.
func (f Field) Format(p Params) string {
	if f.Integer {
		return fmt.Sprintf("%s=%d", f.Name, int(f.get(&p)))
	}
	return fmt.Sprintf("%s=%.2f", f.Name, f.get(&p))
}

// Panel is the keyboard control surface: a cursor over an ordered list of
// fields plus the pending "load scene" request.
type Panel struct {
	params Params
	fields []Field
	cursor int
	load   bool
}

// NewPanel returns a panel holding initial, clamped.
func NewPanel(initial Params) *Panel {
	return &Panel{
		params: initial.Clamp(),
		fields: defaultFields(),
	}
}

func defaultFields() []Field {
	fields := []Field{{
		Name: "tessellation", Min: 0, Max: 8, Step: 1, Integer: true,
		get: func(p *Params) float32 { return float32(p.Tessellation) },
		set: func(p *Params, v float32) { p.Tessellation = int(v) },
	}}
	fields = append(fields, colorFields("color0", func(p *Params) *RGBA { return &p.Color0 })...)
	fields = append(fields, colorFields("color1", func(p *Params) *RGBA { return &p.Color1 })...)
	fields = append(fields,
		Field{
			Name: "noise frequency", Min: 0, Max: MaxNoiseFrequency, Step: 0.1,
			get: func(p *Params) float32 { return p.NoiseFrequency },
			set: func(p *Params, v float32) { p.NoiseFrequency = v },
		},
		Field{
			Name: "shiftScale", Min: 0, Max: MaxShiftScale, Step: 0.05,
			get: func(p *Params) float32 { return p.Displacement.ShiftScale },
			set: func(p *Params, v float32) { p.Displacement.ShiftScale = v },
		},
		Field{
			Name: "shiftFreq", Min: 0, Max: MaxShiftFreq, Step: 0.5,
			get: func(p *Params) float32 { return p.Displacement.ShiftFreq },
			set: func(p *Params, v float32) { p.Displacement.ShiftFreq = v },
		},
		Field{
			Name: "shiftSpeed", Min: 0, Max: MaxShiftSpeed, Step: 0.05,
			get: func(p *Params) float32 { return p.Displacement.ShiftSpeed },
			set: func(p *Params, v float32) { p.Displacement.ShiftSpeed = v },
		},
		Field{
			Name: "shiftSmoothness", Min: 0, Max: MaxShiftSmoothness, Step: 0.05,
			get: func(p *Params) float32 { return p.Displacement.ShiftSmoothness },
			set: func(p *Params, v float32) { p.Displacement.ShiftSmoothness = v },
		},
		Field{
			Name: "detailFreq", Min: 0, Max: MaxDetailFreq, Step: 0.5,
			get: func(p *Params) float32 { return p.Displacement.DetailFreq },
			set: func(p *Params, v float32) { p.Displacement.DetailFreq = v },
		},
		Field{
			Name: "detailScale", Min: 0, Max: MaxDetailScale, Step: 0.05,
			get: func(p *Params) float32 { return p.Displacement.DetailScale },
			set: func(p *Params, v float32) { p.Displacement.DetailScale = v },
		},
	)
	return fields
}

func colorFields(name string, color func(*Params) *RGBA) []Field {
	channels := [4]string{"r", "g", "b", "a"}
	fields := make([]Field, len(channels))
	for i, ch := range channels {
		fields[i] = Field{
			Name: name + "." + ch, Min: 0, Max: 255, Step: 5, Integer: true,
			get:  func(p *Params) float32 { return float32(color(p)[i]) },
			set:  func(p *Params, v float32) { color(p)[i] = uint8(v) },
		}
	}
	return fields
}

// Snapshot returns a copy of the current parameters.
func (p *Panel) Snapshot() Params {
	return p.params
}

// Set replaces all parameters at once.
func (p *Panel) Set(params Params) {
	p.params = params.Clamp()
}

// Reset restores Defaults in a single assignment.
func (p *Panel) Reset() {
	p.params = Defaults()
	logger.Debug("parameters reset")
}

// Fields returns the editable fields in display order.
func (p *Panel) Fields() []Field {
	return p.fields
}

// Selected returns the field under the cursor.
func (p *Panel) Selected() Field {
	return p.fields[p.cursor]
}

// Next moves the cursor forward, wrapping at the end.
func (p *Panel) Next() {
	p.cursor = (p.cursor + 1) % len(p.fields)
}

// Prev moves the cursor back, wrapping at the start.
func (p *Panel) Prev() {
	p.cursor = (p.cursor - 1 + len(p.fields)) % len(p.fields)
}

// Adjust moves the selected field by steps increments, clamped to its range.
func (p *Panel) Adjust(steps int) {
	f := p.fields[p.cursor]
	next := p.params

	v := f.get(&next) + float32(steps)*f.Step
	if f.Integer {
		v = math32.Round(v)
	} else {
		// Snap to the step grid so repeated presses do not drift.
		v = math32.Round(v/f.Step) * f.Step
	}
	v = math32.Max(f.Min, math32.Min(f.Max, v))
	f.set(&next, v)

	p.params = next.Clamp()
	logger.Debug("parameter adjusted", zap.String("field", f.Name), zap.Float32("value", v))
}

// RequestLoad asks for the scene geometry to be rebuilt on the next frame.
func (p *Panel) RequestLoad() {
	p.load = true
}

// TakeLoad reports and clears a pending load request.
func (p *Panel) TakeLoad() bool {
	load := p.load
	p.load = false
	return load
}

// Describe summarizes the selected field for the window title.
func (p *Panel) Describe() string {
	return fmt.Sprintf("[%d/%d] %s", p.cursor+1, len(p.fields), p.Selected().Format(p.params))
}
