// Package config handles configuration loading and management.
package config

import (
	"fmt"

	"github.com/Faultbox/planetgl/internal/controls"
	"github.com/Faultbox/planetgl/pkg/math"
)

// Config holds all application settings.
type Config struct {
	Graphics GraphicsConfig  `yaml:"graphics"`
	Scene    SceneConfig     `yaml:"scene"`
	Controls controls.Params `yaml:"controls"`
	Logging  LoggingConfig   `yaml:"logging"`
	Debug    DebugConfig     `yaml:"debug"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	Fullscreen bool       `yaml:"fullscreen"`
	VSync      bool       `yaml:"vsync"`
	ClearColor [4]float32 `yaml:"clear_color"`
}

// SceneConfig places the planet, the optional cube and the camera.
type SceneConfig struct {
	PlanetCenter math.Vec3 `yaml:"planet_center"`
	PlanetRadius float32   `yaml:"planet_radius"`

	ShowCube   bool      `yaml:"show_cube"`
	CubeCenter math.Vec3 `yaml:"cube_center"`
	CubeScale  math.Vec3 `yaml:"cube_scale"`

	CameraEye    math.Vec3 `yaml:"camera_eye"`
	CameraTarget math.Vec3 `yaml:"camera_target"`
	FovY         float32   `yaml:"fov_y"` // degrees
	Near         float32   `yaml:"near"`
	Far          float32   `yaml:"far"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	LogFile    string `yaml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// DebugConfig holds developer tooling settings.
type DebugConfig struct {
	ScreenshotDir    string `yaml:"screenshot_dir"`
	ScreenshotFormat string `yaml:"screenshot_format"` // png or bmp
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			ClearColor: [4]float32{164.0 / 255.0, 233.0 / 255.0, 1, 1},
		},
		Scene: SceneConfig{
			PlanetCenter: math.V3(0, 0, 0),
			PlanetRadius: 2.5,
			ShowCube:     false,
			CubeCenter:   math.V3(0, 1.2, 0),
			CubeScale:    math.V3(0.75, 0.75, 0.75),
			CameraEye:    math.V3(0, 0, -10),
			CameraTarget: math.V3(0, 0, 0),
			FovY:         45,
			Near:         0.1,
			Far:          1000,
		},
		Controls: controls.Defaults(),
		Logging: LoggingConfig{
			Level:      "info",
			LogFile:    "",
			MaxSizeMB:  20,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
		Debug: DebugConfig{
			ScreenshotDir:    "screenshots",
			ScreenshotFormat: "png",
		},
	}
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	switch {
	case c.Graphics.Width <= 0 || c.Graphics.Height <= 0:
		return fmt.Errorf("graphics: invalid size %dx%d", c.Graphics.Width, c.Graphics.Height)
	case c.Scene.PlanetRadius <= 0:
		return fmt.Errorf("scene: planet_radius must be positive, got %g", c.Scene.PlanetRadius)
	case c.Scene.FovY <= 0 || c.Scene.FovY >= 180:
		return fmt.Errorf("scene: fov_y must be in (0, 180), got %g", c.Scene.FovY)
	case c.Scene.Near <= 0 || c.Scene.Far <= c.Scene.Near:
		return fmt.Errorf("scene: invalid clip range [%g, %g]", c.Scene.Near, c.Scene.Far)
	case c.Scene.CameraEye == c.Scene.CameraTarget:
		return fmt.Errorf("scene: camera_eye equals camera_target")
	}
	switch c.Debug.ScreenshotFormat {
	case "png", "bmp":
	default:
		return fmt.Errorf("debug: unknown screenshot_format %q", c.Debug.ScreenshotFormat)
	}
	return nil
}
