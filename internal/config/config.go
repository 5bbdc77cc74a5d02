// Package config handles viewer and server configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/Faultbox/diorama/internal/logger"
	"github.com/Faultbox/diorama/pkg/diorama"
)

// Config holds all settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Controls ControlsConfig `yaml:"controls"`
	Scene    SceneConfig    `yaml:"scene"`
	Server   ServerConfig   `yaml:"server"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width         int    `yaml:"width"`
	Height        int    `yaml:"height"`
	Fullscreen    bool   `yaml:"fullscreen"`
	VSync         bool   `yaml:"vsync"`
	FPSLimit      int    `yaml:"fps_limit"`
	MSAA          int    `yaml:"msaa"`
	ShowBounds    bool   `yaml:"show_bounds"`
	ScreenshotDir string `yaml:"screenshot_dir"`
	// ScreenshotFormat is png or bmp.
	ScreenshotFormat string `yaml:"screenshot_format"`
}

// ControlsConfig tunes the orbit camera.
type ControlsConfig struct {
	Damping         float32 `yaml:"damping"`
	DragSensitivity float32 `yaml:"drag_sensitivity"`
	ZoomSensitivity float32 `yaml:"zoom_sensitivity"`
	AutoRotate      float32 `yaml:"auto_rotate"`
	MinDistance     float32 `yaml:"min_distance"`
	MaxDistance     float32 `yaml:"max_distance"`
}

// SceneConfig selects the layout and seed of the generated diorama.
// Layout keys sit directly under scene: in the file.
type SceneConfig struct {
	Seed   uint64         `yaml:"seed"` // 0 picks a time-based seed
	Layout diorama.Layout `yaml:",inline"`
}

// ServerConfig holds HTTP and stream settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	FrameInterval   time.Duration `yaml:"frame_interval"`
	AutoRotate      float32       `yaml:"auto_rotate"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
	Format  string `yaml:"format"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:            1280,
			Height:           720,
			Fullscreen:       false,
			VSync:            true,
			FPSLimit:         0,
			MSAA:             4,
			ScreenshotDir:    "screenshots",
			ScreenshotFormat: "png",
		},
		Controls: ControlsConfig{
			Damping:         0.05,
			DragSensitivity: 0.005,
			ZoomSensitivity: 0.1,
			MinDistance:     5,
			MaxDistance:     500,
		},
		Scene: SceneConfig{
			Layout: diorama.DefaultLayout(),
		},
		Server: ServerConfig{
			Addr:            ":8080",
			FrameInterval:   time.Second / 30,
			AutoRotate:      1,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
			Format:  string(logger.FormatConsole),
		},
	}
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Graphics.Width > 0 && c.Graphics.Height > 0,
		"graphics: size %dx%d must be positive", c.Graphics.Width, c.Graphics.Height)
	check(c.Graphics.FPSLimit >= 0, "graphics: fps_limit must not be negative")
	check(c.Graphics.MSAA >= 0, "graphics: msaa must not be negative")
	switch c.Graphics.ScreenshotFormat {
	case "", "png", "bmp":
	default:
		errs = append(errs, fmt.Errorf("graphics: unknown screenshot_format %q", c.Graphics.ScreenshotFormat))
	}

	check(c.Controls.Damping > 0 && c.Controls.Damping <= 1,
		"controls: damping %g must be in (0, 1]", c.Controls.Damping)
	check(c.Controls.DragSensitivity > 0, "controls: drag_sensitivity must be positive")
	check(c.Controls.ZoomSensitivity > 0, "controls: zoom_sensitivity must be positive")
	check(c.Controls.MinDistance > 0 && c.Controls.MinDistance < c.Controls.MaxDistance,
		"controls: need 0 < min_distance < max_distance")

	check(c.Server.Addr != "", "server: addr must be set")
	check(c.Server.FrameInterval > 0, "server: frame_interval must be positive")

	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, err)
	}
	switch logger.Format(c.Logging.Format) {
	case "", logger.FormatConsole, logger.FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("logging: unknown format %q", c.Logging.Format))
	}

	if err := c.Scene.Layout.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// FrameDelay returns the pause between viewer frames, 0 when unlimited.
func (g GraphicsConfig) FrameDelay() time.Duration {
	if g.FPSLimit <= 0 {
		return 0
	}
	return time.Second / time.Duration(g.FPSLimit)
}

// Options converts the logging section for logger.InitWithOptions. Console
// output is always on; a log file adds a rotated second sink.
func (l LoggingConfig) Options() logger.Options {
	opts := logger.Options{
		Level:   l.Level,
		Format:  logger.Format(l.Format),
		Console: true,
	}
	if l.LogFile != "" {
		opts.File = logger.DefaultFileConfig(l.LogFile)
	}
	return opts
}
