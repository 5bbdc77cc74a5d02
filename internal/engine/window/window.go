// Package window opens the SDL2 window and OpenGL context the viewer draws
// into.
package window

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/diorama/internal/logger"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
	MSAA       int // samples per pixel, 0 disables multisampling
}

// Window owns the SDL window and its OpenGL 4.1 core context.
type Window struct {
	config    Config
	sdlWindow *sdl.Window
	glContext sdl.GLContext
	log       *zap.Logger
}

type glAttr struct {
	attr  sdl.GLattr
	value int
}

// contextAttrs is the context every viewer needs; 4.1 core is the newest
// profile macOS offers.
var contextAttrs = []glAttr{
	{sdl.GL_CONTEXT_MAJOR_VERSION, 4},
	{sdl.GL_CONTEXT_MINOR_VERSION, 1},
	{sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE},
	{sdl.GL_DOUBLEBUFFER, 1},
	{sdl.GL_DEPTH_SIZE, 24},
}

func multisampleAttrs(samples int) []glAttr {
	if samples <= 0 {
		return []glAttr{{sdl.GL_MULTISAMPLEBUFFERS, 0}, {sdl.GL_MULTISAMPLESAMPLES, 0}}
	}
	return []glAttr{{sdl.GL_MULTISAMPLEBUFFERS, 1}, {sdl.GL_MULTISAMPLESAMPLES, samples}}
}

func setAttrs(attrs []glAttr) error {
	for _, a := range attrs {
		if err := sdl.GLSetAttribute(a.attr, a.value); err != nil {
			return fmt.Errorf("SDL_GL_SetAttribute(%d): %w", a.attr, err)
		}
	}
	return nil
}

// New initializes SDL and opens the window. When the driver rejects the
// requested multisampling the window is opened without it.
func New(cfg Config) (*Window, error) {
	w := &Window{config: cfg, log: logger.Named("window")}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}
	if err := setAttrs(contextAttrs); err != nil {
		sdl.Quit()
		return nil, err
	}

	err := w.open(cfg.MSAA)
	if err != nil && cfg.MSAA > 0 {
		w.log.Warn("multisampling unavailable, retrying without", zap.Int("msaa", cfg.MSAA), zap.Error(err))
		w.config.MSAA = 0
		err = w.open(0)
	}
	if err != nil {
		sdl.Quit()
		return nil, err
	}

	w.setVSync(cfg.VSync)

	dw, dh := w.DrawableSize()
	w.log.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Int("drawable_width", dw),
		zap.Int("drawable_height", dh),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Int("msaa", w.config.MSAA),
	)
	return w, nil
}

func (w *Window) open(samples int) error {
	if err := setAttrs(multisampleAttrs(samples)); err != nil {
		return err
	}

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if w.config.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	win, err := sdl.CreateWindow(w.config.Title,
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(w.config.Width), int32(w.config.Height), flags)
	if err != nil {
		return fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	ctx, err := win.GLCreateContext()
	if err != nil {
		win.Destroy()
		return fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	w.sdlWindow, w.glContext = win, ctx
	return nil
}

func (w *Window) setVSync(on bool) {
	interval := 0
	if on {
		interval = 1
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		w.log.Warn("failed to set swap interval", zap.Int("interval", interval), zap.Error(err))
	}
}

// Close destroys the context and the window and shuts SDL down.
func (w *Window) Close() {
	if w.glContext != nil {
		sdl.GLDeleteContext(w.glContext)
	}
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
	}
	sdl.Quit()
}

// SwapBuffers presents the frame.
func (w *Window) SwapBuffers() {
	w.sdlWindow.GLSwap()
}

// GetSize returns the window size in points.
func (w *Window) GetSize() (int, int) {
	width, height := w.sdlWindow.GetSize()
	return int(width), int(height)
}

// DrawableSize returns the framebuffer size in pixels, which differs from
// the window size on high-DPI displays.
func (w *Window) DrawableSize() (int, int) {
	width, height := w.sdlWindow.GLGetDrawableSize()
	return int(width), int(height)
}

// ToPixels scales a point in window coordinates to drawable pixels.
func (w *Window) ToPixels(x, y int) (int, int) {
	ww, wh := w.GetSize()
	dw, dh := w.DrawableSize()
	return ScalePoint(x, y, ww, wh, dw, dh)
}

// ScalePoint maps (x, y) from a from-sized space to a to-sized one. A zero
// source size leaves the point unchanged.
func ScalePoint(x, y, fromW, fromH, toW, toH int) (int, int) {
	if fromW <= 0 || fromH <= 0 {
		return x, y
	}
	return x * toW / fromW, y * toH / fromH
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.sdlWindow.SetTitle(title)
}
