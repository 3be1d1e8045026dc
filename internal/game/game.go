// Package game implements the main game loop and wires the subsystems.
package game

import (
	"fmt"
	"time"

	"github.com/chewxy/math32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/cubetac/internal/config"
	"github.com/Faultbox/cubetac/internal/engine/audio"
	"github.com/Faultbox/cubetac/internal/engine/clock"
	"github.com/Faultbox/cubetac/internal/engine/debug"
	"github.com/Faultbox/cubetac/internal/engine/draw"
	"github.com/Faultbox/cubetac/internal/engine/input"
	"github.com/Faultbox/cubetac/internal/engine/picking"
	"github.com/Faultbox/cubetac/internal/engine/renderer"
	"github.com/Faultbox/cubetac/internal/engine/window"
	"github.com/Faultbox/cubetac/internal/logger"
	"github.com/Faultbox/cubetac/pkg/math"
)

// Title is the window title.
const Title = "cubetac"

// Game is the main game instance.
type Game struct {
	cfg     *config.Config
	running bool
	fovY    float32

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	audio    *audio.Manager
	res      *resources

	queue *draw.Queue
	ctx   *draw.Context
	scene *Scene
	play  *Play

	clock      *clock.Clock
	limiter    *clock.Limiter
	fps        clock.FPSCounter
	lastFrame  float64
	screenshot *debug.ScreenshotCapture

	log *zap.Logger
}

// New creates the window, loads every asset and starts a match.
func New(cfg *config.Config) (*Game, error) {
	log := logger.Named("game")
	log.Info("initializing game",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.String("assets", cfg.Data.AssetDir),
	)

	g := &Game{
		cfg:        cfg,
		fovY:       cfg.Graphics.FOVDegrees * math32.Pi / 180,
		queue:      draw.NewQueue(),
		clock:      clock.New(),
		limiter:    clock.NewLimiter(cfg.Graphics.FPSLimit),
		screenshot: debug.NewScreenshotCapture(cfg.Data.ScreenshotDir, ""),
		log:        log,
	}

	files, err := newFiles(cfg.Data.AssetDir, cfg.Data.OverlayDirs...)
	if err != nil {
		return nil, err
	}

	// The window must exist before any GL resource.
	g.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		Samples:    window.DefaultSamples,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	width, height := g.window.Size()

	if err := renderer.InitGL(); err != nil {
		g.Close()
		return nil, err
	}
	g.res, err = loadResources(files, log)
	if err != nil {
		g.Close()
		return nil, err
	}
	g.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		ClearColor: draw.ColorBackground,
	}, g.res.shaders, g.res.textures)
	if err != nil {
		g.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	g.input = input.New(g.window.PointSize())
	g.ctx = draw.NewContext(width, height, g.fovY, g.queue)
	g.renderer.SetProjection(g.ctx.Projection)
	g.scene = NewScene(g.ctx, g.res.font, g.fovY)
	g.play = NewPlay(PlayConfig{
		CubeSize:            cfg.Game.CubeSize,
		CubeDistance:        cfg.Game.CubeDistance,
		RotateSpeedDecrease: cfg.Game.RotateSpeedDecrease,
		RandomStart:         cfg.Game.RandomStart,
		Seed:                seed(cfg.Game.Seed),
	})

	g.audio = audio.New()
	g.audio.SetMasterVolume(float64(cfg.Audio.MasterVolume))
	g.audio.SetSFXVolume(float64(cfg.Audio.SFXVolume))
	g.audio.SetMuted(cfg.Audio.Muted)
	if err := g.audio.Init(); err != nil {
		log.Warn("audio disabled", zap.Error(err))
	} else {
		loadSounds(files, g.audio, log)
	}

	log.Info("game initialized successfully",
		zap.Int("msaa_samples", g.window.Samples()),
		zap.Bool("audio", g.audio.IsInitialized()),
		zap.Float64("master_volume", g.audio.GetMasterVolume()),
		zap.Float64("sfx_volume", g.audio.GetSFXVolume()),
		zap.Bool("muted", g.audio.Muted()),
	)
	return g, nil
}

// Run drives the loop until the window closes or Escape is pressed. The
// returned error is fatal.
func (g *Game) Run() error {
	g.running = true
	g.log.Info("starting game loop")

	for g.running {
		if g.input.Poll() {
			g.running = false
			break
		}

		g.clock.Update()
		if !g.limiter.Ready(g.clock.Time) {
			// Input keeps accumulating until the next processed frame.
			sdl.Delay(1)
			continue
		}
		dt := float32(g.clock.Time - g.lastFrame)
		g.lastFrame = g.clock.Time
		now := float32(g.clock.Time)

		if err := g.update(now, dt); err != nil {
			return fmt.Errorf("update error: %w", err)
		}
		if err := g.render(now); err != nil {
			return fmt.Errorf("render error: %w", err)
		}
		// Read back before the swap leaves the back buffer undefined.
		if g.input.IsKeyPressed(sdl.SCANCODE_F12) {
			g.takeScreenshot()
		}
		g.window.SwapBuffers()

		if g.fps.Tick(dt) {
			g.log.Debug("fps", zap.Int("fps", g.fps.FPS))
		}
		g.input.Reset()
	}

	return nil
}

// update handles window events and advances the match.
func (g *Game) update(now, dt float32) error {
	in := g.input
	if in.Resized {
		// Resize events carry window points; the viewport needs pixels.
		width, height := g.window.Size()
		g.renderer.Resize(width, height)
		g.ctx.Resize(width, height, g.fovY)
		g.renderer.SetProjection(g.ctx.Projection)
	}
	if in.IsKeyPressed(sdl.SCANCODE_ESCAPE) {
		g.running = false
	}

	mouse := in.Normalized()
	frame := Frame{
		Ray: picking.Ray{
			Origin:    math.Vec3{},
			Direction: picking.MouseRay(mouse, g.ctx.Aspect(), g.fovY),
		},
		Left:    in.Left,
		Middle:  in.Middle,
		Right:   in.Right,
		Wheel:   in.WheelUp - in.WheelDown,
		Restart: in.IsKeyPressed(sdl.SCANCODE_R),
		Now:     now,
		Dt:      dt,
	}

	out, err := g.play.Step(frame)
	if err != nil {
		return err
	}
	if frame.Restart {
		g.log.Info("match restarted")
	}
	if out.Placed || frame.Restart {
		g.window.SetTitle(Title + " | " + StatusText(g.play.Match.State()))
	}
	if out.Placed {
		g.playSound(audio.SoundPlace)
	}
	if out.Finished {
		state := g.play.Match.State()
		g.log.Info("match over",
			zap.Stringer("phase", state.Phase),
			zap.Stringer("winner", state.Victory.Winner),
		)
		g.playSound(audio.SoundWin)
	}
	return nil
}

// render queues the scene and flushes it to the GPU.
func (g *Game) render(now float32) error {
	g.renderer.Begin()
	hud := HUD{ShowFPS: g.cfg.Game.ShowFPS, FPS: g.fps.FPS}
	if err := g.scene.Render(g.play, now, hud); err != nil {
		return err
	}
	return g.queue.Flush(g.renderer)
}

func (g *Game) playSound(name string) {
	if !g.audio.Has(name) {
		return
	}
	if err := g.audio.Play(name); err != nil {
		g.log.Warn("sound failed", zap.String("name", name), zap.Error(err))
	}
}

func (g *Game) takeScreenshot() {
	width, height := g.window.Size()
	path, err := g.screenshot.Capture(width, height)
	if err != nil {
		g.log.Error("screenshot failed", zap.Error(err))
		return
	}
	g.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases resources in reverse creation order.
func (g *Game) Close() {
	g.log.Info("closing game")

	if g.audio != nil {
		g.audio.Close()
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.res != nil {
		g.res.release()
		hits, misses := g.res.files.CacheStats()
		g.log.Debug("asset cache", zap.Int("hits", hits), zap.Int("misses", misses))
		g.res.files.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}

func seed(configured uint64) uint64 {
	if configured != 0 {
		return configured
	}
	return uint64(time.Now().UnixNano())
}
