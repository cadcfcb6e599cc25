package app

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/planetgl/internal/controls"
	"github.com/Faultbox/planetgl/internal/engine/camera"
	"github.com/Faultbox/planetgl/internal/engine/input"
)

// Command is what the loop must do in response to an event, beyond the
// panel and camera changes the controller applies itself.
type Command int

const (
	CommandNone Command = iota
	CommandQuit
	CommandResize
	CommandScreenshot
)

// controller routes input events to the parameter panel and the camera.
type controller struct {
	panel  *controls.Panel
	camera *camera.Camera
}

// handle applies ev and returns the loop-level command it implies.
func (c *controller) handle(ev input.Event) Command {
	switch ev.Type {
	case input.EventQuit:
		return CommandQuit

	case input.EventWindowResize:
		return CommandResize

	case input.EventKeyDown:
		return c.key(ev)

	case input.EventMouseMove:
		if ev.Buttons&sdl.ButtonLMask() != 0 {
			c.camera.HandleDrag(float32(ev.RelX), float32(ev.RelY))
		}

	case input.EventMouseWheel:
		c.camera.HandleZoom(ev.WheelY)
	}
	return CommandNone
}

func (c *controller) key(ev input.Event) Command {
	switch ev.Key {
	case sdl.SCANCODE_ESCAPE:
		return CommandQuit
	case sdl.SCANCODE_TAB:
		if ev.Shift() {
			c.panel.Prev()
		} else {
			c.panel.Next()
		}
	case sdl.SCANCODE_RIGHT:
		c.panel.Adjust(steps(ev))
	case sdl.SCANCODE_LEFT:
		c.panel.Adjust(-steps(ev))
	case sdl.SCANCODE_R:
		if !ev.Repeat {
			c.panel.Reset()
		}
	case sdl.SCANCODE_L:
		if !ev.Repeat {
			c.panel.RequestLoad()
		}
	case sdl.SCANCODE_F12:
		if !ev.Repeat {
			return CommandScreenshot
		}
	}
	return CommandNone
}

// steps is 10 with shift held, 1 otherwise.
func steps(ev input.Event) int {
	if ev.Shift() {
		return 10
	}
	return 1
}
