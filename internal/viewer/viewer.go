// Package viewer runs the interactive desktop window around a diorama scene.
package viewer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/diorama/internal/config"
	"github.com/Faultbox/diorama/internal/engine/debug"
	"github.com/Faultbox/diorama/internal/engine/frame"
	"github.com/Faultbox/diorama/internal/engine/input"
	"github.com/Faultbox/diorama/internal/engine/renderer"
	"github.com/Faultbox/diorama/internal/engine/window"
	"github.com/Faultbox/diorama/internal/logger"
	"github.com/Faultbox/diorama/internal/loop"
)

// Viewer is the desktop viewer instance.
type Viewer struct {
	config      *config.Config
	window      *window.Window
	renderer    *renderer.Renderer
	input       *input.Input
	screenshot  *debug.ScreenshotCapture
	ctrl        *Controller
	showBounds  bool
	pendingShot bool
	log         *zap.Logger
}

// New opens the window and uploads the first scene.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		config:     cfg,
		showBounds: cfg.Graphics.ShowBounds,
		log:        logger.Named("viewer"),
	}

	v.log.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Uint64("seed", cfg.Scene.Seed),
	)

	// Create window (this also creates OpenGL context)
	var err error
	v.window, err = window.New(window.Config{
		Title:      "Diorama",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		MSAA:       cfg.Graphics.MSAA,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	width, height := v.window.DrawableSize()

	// Create renderer (AFTER window, since OpenGL context must exist)
	v.renderer, err = renderer.New(renderer.Config{Width: width, Height: height})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.ctrl, err = NewController(cfg.Scene.Layout, cfg.Scene.Seed, cfg.Controls, frame.Viewport{Width: width, Height: height})
	if err != nil {
		v.Close()
		return nil, err
	}
	if err := v.upload(); err != nil {
		v.Close()
		return nil, err
	}

	v.ctrl.Debug = v.showBounds
	v.input = input.New()
	v.screenshot = debug.NewScreenshotCapture(cfg.Graphics.ScreenshotDir, "diorama", cfg.Graphics.ScreenshotFormat)

	v.log.Info("viewer initialized")
	return v, nil
}

func (v *Viewer) upload() error {
	s := v.ctrl.Scene()
	if err := v.renderer.Load(s); err != nil {
		return err
	}
	v.updateOverlay()

	meta := s.Metadata()
	v.window.SetTitle(v.title())
	v.log.Info("scene ready", zap.Uint64("seed", meta.Seed), zap.Int("elements", s.Len()))
	return nil
}

func (v *Viewer) title() string {
	return fmt.Sprintf("Diorama - seed %d", v.ctrl.Scene().Metadata().Seed)
}

func (v *Viewer) updateOverlay() {
	if !v.showBounds {
		v.renderer.SetOverlay(nil)
		return
	}
	v.renderer.SetOverlay(debug.BoundsWireframe(v.ctrl.Scene().Metadata().Bounds, debug.DefaultBoundsPadding))
}

// Run drives the render loop until the window closes or ctx is cancelled.
func (v *Viewer) Run(ctx context.Context) error {
	frames := 0
	fpsTimer := time.Now()

	v.log.Info("starting render loop")

	sched := loop.New(v.config.Graphics.FrameDelay())
	return sched.Run(ctx, func(_ context.Context, t loop.Tick) error {
		// 1. Process input
		if v.input.Update() {
			return loop.ErrStop
		}
		for _, ev := range v.input.Events() {
			if err := v.handle(ev); err != nil {
				return err
			}
		}

		// 2. Compose and draw
		f := v.ctrl.Frame()
		v.renderer.Draw(f)

		if v.pendingShot {
			v.pendingShot = false
			v.capture()
		}

		// 3. Present
		v.window.SwapBuffers()

		frames++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps", zap.Int("count", frames), zap.Duration("dt", t.Delta))
			frames = 0
			fpsTimer = time.Now()
		}
		return nil
	})
}

func (v *Viewer) handle(ev input.Event) error {
	switch ev.Type {
	case input.EventWindowResize:
		// Window events carry points; the viewport needs pixels.
		ev.Width, ev.Height = v.window.DrawableSize()
	case input.EventMouseDown, input.EventMouseUp:
		ev.MouseX, ev.MouseY = v.window.ToPixels(ev.MouseX, ev.MouseY)
	}

	action, err := v.ctrl.Handle(ev)
	if err != nil {
		return err
	}

	switch action {
	case ActionQuit:
		return loop.ErrStop
	case ActionReload:
		return v.upload()
	case ActionToggleBounds:
		v.showBounds = !v.showBounds
		v.ctrl.Debug = v.showBounds
		v.updateOverlay()
	case ActionInspect:
		if hit, ok := v.ctrl.Picked(); ok {
			e := hit.Element
			v.log.Info("picked element",
				zap.String("id", e.ID),
				zap.String("category", string(e.Category)),
				zap.String("shape", string(e.Shape)),
				zap.Float32("distance", hit.Distance),
			)
			v.window.SetTitle(fmt.Sprintf("%s - %s", v.title(), e.ID))
		}
	case ActionScreenshot:
		// Read back after the next draw, before the swap.
		v.pendingShot = true
	}
	if ev.Type == input.EventWindowResize {
		vp := v.ctrl.Viewport()
		v.renderer.Resize(vp.Width, vp.Height)
	}
	return nil
}

func (v *Viewer) capture() {
	pixels, w, h := v.renderer.ReadPixels()
	name, err := v.screenshot.CaptureFromPixels(pixels, w, h, v.ctrl.Scene().Metadata().Seed)
	if err != nil {
		v.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", name))
}

// Close cleans up viewer resources.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
