// Package app wires the window, the scene and the control panel into the
// main loop.
package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/chewxy/math32"

	"github.com/Faultbox/planetgl/internal/config"
	"github.com/Faultbox/planetgl/internal/controls"
	"github.com/Faultbox/planetgl/internal/engine/debug"
	"github.com/Faultbox/planetgl/internal/engine/gpu"
	"github.com/Faultbox/planetgl/internal/engine/gpu/gldevice"
	"github.com/Faultbox/planetgl/internal/engine/input"
	"github.com/Faultbox/planetgl/internal/engine/scene"
	"github.com/Faultbox/planetgl/internal/engine/window"
	"github.com/Faultbox/planetgl/internal/logger"
)

// Title is the window title prefix.
const Title = "planetgl"

// App is the running application.
type App struct {
	config  *config.Config
	running bool
	log     *zap.Logger

	window *window.Window
	device *gldevice.Device
	ctx    *gpu.Context
	scene  *scene.Scene
	input  *input.Input

	panel      *controls.Panel
	controller *controller
	screenshot *debug.ScreenshotCapture
}

// New opens the window, creates the GL device and builds the scene.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		config: cfg,
		log:    logger.Named("app"),
		input:  input.New(),
		panel:  controls.NewPanel(cfg.Controls),
	}

	var err error
	a.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The device needs the context the window just made current.
	a.device, err = gldevice.New()
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("creating GL device: %w", err)
	}
	a.ctx = gpu.NewContext(a.device)

	width, height := a.window.DrawableSize()
	a.scene, err = scene.New(a.ctx, sceneConfig(cfg, width, height), a.panel.Snapshot())
	if err != nil {
		a.device.Close()
		a.window.Close()
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}

	format, err := debug.ParseFormat(cfg.Debug.ScreenshotFormat)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.screenshot = debug.NewScreenshotCapture(cfg.Debug.ScreenshotDir, "planet", format)
	a.controller = &controller{panel: a.panel, camera: a.scene.Camera()}

	a.log.Info("application initialized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
	return a, nil
}

// sceneConfig maps the file configuration onto the scene's.
func sceneConfig(cfg *config.Config, width, height int) scene.Config {
	sc := cfg.Scene
	return scene.Config{
		Width:        width,
		Height:       height,
		ClearColor:   cfg.Graphics.ClearColor,
		PlanetCenter: sc.PlanetCenter,
		PlanetRadius: sc.PlanetRadius,
		ShowCube:     sc.ShowCube,
		CubeCenter:   sc.CubeCenter,
		CubeScale:    sc.CubeScale,
		CameraEye:    sc.CameraEye,
		CameraTarget: sc.CameraTarget,
		FovY:         sc.FovY * math32.Pi / 180,
		Near:         sc.Near,
		Far:          sc.Far,
	}
}

// Run drives one frame per display refresh until quit. A render error ends
// the loop and is returned.
func (a *App) Run() error {
	a.running = true
	fps := newFPSCounter(time.Second, time.Now())
	a.updateTitle(0)

	a.log.Info("starting main loop")

	for a.running {
		if a.input.Update() {
			a.running = false
			break
		}

		capture, dirty := false, false
		for _, ev := range a.input.Events() {
			if ev.Type == input.EventKeyDown {
				dirty = true
			}
			switch a.controller.handle(ev) {
			case CommandQuit:
				a.running = false
			case CommandResize:
				// Event sizes are in screen coordinates; the viewport wants pixels.
				a.scene.Resize(a.window.DrawableSize())
			case CommandScreenshot:
				capture = true
			}
		}
		if !a.running {
			break
		}

		params := a.panel.Snapshot()
		if a.panel.TakeLoad() {
			if err := a.scene.LoadScene(params); err != nil {
				return fmt.Errorf("load scene: %w", err)
			}
		}

		if err := a.scene.Tick(params); err != nil {
			return fmt.Errorf("render frame %d: %w", a.scene.Frame().Frames, err)
		}

		if capture {
			a.capture()
		}

		a.window.SwapBuffers()

		if rate, ok := fps.frame(time.Now()); ok || dirty {
			a.updateTitle(rate)
		}
	}

	a.log.Info("main loop stopped", zap.Uint64("frames", a.scene.Frame().Frames))
	return nil
}

func (a *App) capture() {
	w, h := a.scene.Size()
	path, err := a.screenshot.Capture(a.ctx.Device(), w, h)
	if err != nil {
		a.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

func (a *App) updateTitle(fps float64) {
	a.window.SetTitle(fmt.Sprintf("%s | %.0f fps | %s", Title, fps, a.panel.Describe()))
}

// Close releases the scene, the device and the window.
func (a *App) Close() {
	a.log.Info("closing application")

	if a.scene != nil {
		a.scene.Close()
	}
	if a.device != nil {
		a.device.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
