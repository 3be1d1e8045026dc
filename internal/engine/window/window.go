// Package window opens the SDL2 window and its OpenGL 4.1 core context.
package window

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/cubetac/internal/logger"
)

func init() {
	// GL and SDL calls must stay on the main thread.
	runtime.LockOSThread()
}

// DefaultSamples is the MSAA sample count tried first.
const DefaultSamples = 4

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
	Samples    int // 0 disables multisampling
}

// Window wraps an SDL2 window and its OpenGL context.
type Window struct {
	sdlWindow *sdl.Window
	glContext sdl.GLContext
	samples   int
	log       *zap.Logger
}

// New creates the window. When the driver rejects the multisampled pixel
// format the window is created again without MSAA.
func New(cfg Config) (*Window, error) {
	w := &Window{log: logger.Named("window")}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	err := w.open(cfg, cfg.Samples)
	if err != nil && cfg.Samples > 0 {
		w.log.Warn("multisampled window failed, retrying without MSAA",
			zap.Int("samples", cfg.Samples), zap.Error(err))
		err = w.open(cfg, 0)
	}
	if err != nil {
		sdl.Quit()
		return nil, err
	}

	if err := sdl.GLSetSwapInterval(swapInterval(cfg.VSync)); err != nil {
		w.log.Warn("failed to set swap interval", zap.Bool("vsync", cfg.VSync), zap.Error(err))
	}

	width, height := w.Size()
	w.log.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
		zap.Int("samples", w.samples),
	)
	return w, nil
}

func (w *Window) open(cfg Config, samples int) error {
	// Attributes must be set before the window exists.
	for attr, value := range glAttributes(samples) {
		if err := sdl.GLSetAttribute(attr, value); err != nil {
			return fmt.Errorf("SDL_GL_SetAttribute(%d): %w", attr, err)
		}
	}

	win, err := sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		windowFlags(cfg.Fullscreen),
	)
	if err != nil {
		return fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	ctx, err := win.GLCreateContext()
	if err != nil {
		win.Destroy()
		return fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	w.sdlWindow = win
	w.glContext = ctx
	w.samples = samples
	return nil
}

// glAttributes lists the context attributes for a sample count.
func glAttributes(samples int) map[sdl.GLattr]int {
	attrs := map[sdl.GLattr]int{
		sdl.GL_CONTEXT_MAJOR_VERSION:    4,
		sdl.GL_CONTEXT_MINOR_VERSION:    1,
		sdl.GL_CONTEXT_PROFILE_MASK:     sdl.GL_CONTEXT_PROFILE_CORE,
		sdl.GL_DOUBLEBUFFER:             1,
		sdl.GL_DEPTH_SIZE:               24,
		sdl.GL_FRAMEBUFFER_SRGB_CAPABLE: 1,
		sdl.GL_MULTISAMPLEBUFFERS:       0,
		sdl.GL_MULTISAMPLESAMPLES:       0,
	}
	if samples > 0 {
		attrs[sdl.GL_MULTISAMPLEBUFFERS] = 1
		attrs[sdl.GL_MULTISAMPLESAMPLES] = samples
	}
	return attrs
}

func windowFlags(fullscreen bool) uint32 {
	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE)
	if fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}
	return flags
}

func swapInterval(vsync bool) int {
	if vsync {
		return 1
	}
	return 0
}

// Close destroys the window and shuts SDL2 down.
func (w *Window) Close() {
	w.log.Info("closing window")
	if w.glContext != nil {
		sdl.GLDeleteContext(w.glContext)
	}
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
	}
	sdl.Quit()
}

// SwapBuffers presents the back buffer.
func (w *Window) SwapBuffers() {
	w.sdlWindow.GLSwap()
}

// Size returns the drawable size in pixels. It sizes the GL viewport.
func (w *Window) Size() (int, int) {
	width, height := w.sdlWindow.GLGetDrawableSize()
	return int(width), int(height)
}

// PointSize returns the window size in the units of SDL mouse events.
func (w *Window) PointSize() (int, int) {
	width, height := w.sdlWindow.GetSize()
	return int(width), int(height)
}

// Samples returns the MSAA sample count the window was created with.
func (w *Window) Samples() int {
	return w.samples
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.sdlWindow.SetTitle(title)
}
