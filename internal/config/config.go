// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/carousel/pkg/math"
)

// Config holds all viewer settings.
type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Scene      SceneConfig      `yaml:"scene"`
	Projection ProjectionConfig `yaml:"projection"`
	Animation  AnimationConfig  `yaml:"animation"`
	Shaders    ShaderConfig     `yaml:"shaders"`
	Screenshot ScreenshotConfig `yaml:"screenshot"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title       string `yaml:"title"`
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
	Fullscreen  bool   `yaml:"fullscreen"`
	VSync       bool   `yaml:"vsync"`
	ErrorDialog bool   `yaml:"error_dialog"` // Show a native dialog when startup fails
}

// SceneConfig holds mesh locations and the slot table.
type SceneConfig struct {
	ModelsDir string `yaml:"models_dir"`

	// PlaceholderOnMissing substitutes an empty mesh for a slot whose file
	// cannot be loaded instead of aborting startup.
	PlaceholderOnMissing bool `yaml:"placeholder_on_missing"`

	// Slots overrides the built-in layout when non-empty.
	Slots []SlotConfig `yaml:"slots"`
}

// SlotConfig describes one object slot.
type SlotConfig struct {
	Mesh   string     `yaml:"mesh"`
	Kind   string     `yaml:"kind"`   // static, rotating, pivot, orbiting
	Offset [3]float32 `yaml:"offset"` // pivot point or orbit offset
}

// ProjectionConfig holds perspective projection parameters.
type ProjectionConfig struct {
	FovY float32 `yaml:"fov_y"` // degrees
	Near float32 `yaml:"near"`
	Far  float32 `yaml:"far"`
}

// AnimationConfig holds the initial animation state.
type AnimationConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Axis       string `yaml:"axis"` // "y" or "none"
	AutoCamera bool   `yaml:"auto_camera"`
}

// ShaderConfig holds optional shader source overrides.
// Empty paths use the embedded sources.
type ShaderConfig struct {
	VertexPath   string `yaml:"vertex_path"`
	FragmentPath string `yaml:"fragment_path"`
}

// ScreenshotConfig holds screenshot output settings.
type ScreenshotConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
	Format string `yaml:"format"` // png or bmp
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Config validation errors.
var (
	ErrInvalidWindow     = errors.New("invalid window size")
	ErrInvalidProjection = errors.New("invalid projection")
	ErrInvalidAxis       = errors.New("invalid animation axis")
	ErrInvalidSlot       = errors.New("invalid slot")
	ErrInvalidFormat     = errors.New("invalid screenshot format")
)

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:       "Carousel",
			Width:       750,
			Height:      750,
			Fullscreen:  false,
			VSync:       true,
			ErrorDialog: false,
		},
		Scene: SceneConfig{
			ModelsDir: ".",
		},
		Projection: ProjectionConfig{
			FovY: 45,
			Near: 1,
			Far:  50,
		},
		Animation: AnimationConfig{
			Enabled: true,
			Axis:    "y",
		},
		Screenshot: ScreenshotConfig{
			Dir:    "screenshots",
			Prefix: "carousel",
			Format: "png",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks values that would otherwise produce a degenerate scene.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidWindow, c.Window.Width, c.Window.Height)
	}

	aspect := float32(c.Window.Width) / float32(c.Window.Height)
	p := c.Projection
	if !math.ValidPerspective(p.FovY, aspect, p.Near, p.Far) {
		return fmt.Errorf("%w: fov_y=%g near=%g far=%g", ErrInvalidProjection, p.FovY, p.Near, p.Far)
	}

	switch c.Animation.Axis {
	case "y", "none":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidAxis, c.Animation.Axis)
	}

	for i, s := range c.Scene.Slots {
		if s.Mesh == "" {
			return fmt.Errorf("%w %d: empty mesh path", ErrInvalidSlot, i)
		}
		switch s.Kind {
		case "static", "rotating":
			if s.Offset != ([3]float32{}) {
				return fmt.Errorf("%w %d: %s slot takes no offset", ErrInvalidSlot, i, s.Kind)
			}
		case "pivot", "orbiting":
		default:
			return fmt.Errorf("%w %d: unknown kind %q", ErrInvalidSlot, i, s.Kind)
		}
	}

	switch c.Screenshot.Format {
	case "png", "bmp":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Screenshot.Format)
	}

	return nil
}
