package gpu

// Context is the rendering context every program and buffer is created
// against. It owns the device plus the bound state that would otherwise be
// process-wide: the active program and the toggled capabilities.
//
// A Context belongs to the thread that owns the GL context and is not safe
// for concurrent use.
type Context struct {
	dev    Device
	active uint32
	caps   map[Capability]bool
}

// NewContext wraps a device.
func NewContext(dev Device) *Context {
	return &Context{
		dev:  dev,
		caps: make(map[Capability]bool),
	}
}

// Device returns the underlying backend.
func (c *Context) Device() Device {
	return c.dev
}

// UseProgram binds program unless it already is the active program.
// It reports whether a backend call was made.
func (c *Context) UseProgram(program uint32) bool {
	if c.active == program {
		return false
	}
	c.dev.UseProgram(program)
	c.active = program
	return true
}

// ActiveProgram returns the program bound by the last UseProgram, or 0.
func (c *Context) ActiveProgram() uint32 {
	return c.active
}

// ForgetProgram clears the active marker if it points at program. Call it
// when a program is deleted so a recycled id is bound again.
func (c *Context) ForgetProgram(program uint32) {
	if c.active == program {
		c.active = 0
	}
}

// SetEnabled toggles a capability.
func (c *Context) SetEnabled(capability Capability, on bool) {
	if on {
		c.dev.Enable(capability)
	} else {
		c.dev.Disable(capability)
	}
	c.caps[capability] = on
}

// Enabled reports the last state set through SetEnabled.
func (c *Context) Enabled(capability Capability) bool {
	return c.caps[capability]
}
