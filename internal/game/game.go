// Package game implements the viewer loop and the state its input handlers
// operate on.
package game

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/carousel/internal/assets"
	"github.com/Faultbox/carousel/internal/config"
	"github.com/Faultbox/carousel/internal/engine/debug"
	"github.com/Faultbox/carousel/internal/engine/input"
	"github.com/Faultbox/carousel/internal/engine/renderer"
	"github.com/Faultbox/carousel/internal/engine/renderer/shaders"
	"github.com/Faultbox/carousel/internal/engine/scene"
	"github.com/Faultbox/carousel/internal/engine/shader"
	"github.com/Faultbox/carousel/internal/engine/window"
	"github.com/Faultbox/carousel/internal/logger"
)

// idleDelayMs throttles the loop while nothing needs redrawing.
const idleDelayMs = 1

// Game is the viewer instance.
type Game struct {
	config  *config.Config
	running bool

	window      *window.Window
	renderer    *renderer.Renderer
	input       *input.Input
	assets      *assets.Manager
	screenshots *debug.ScreenshotCapture

	state *State
}

// New creates the window, renderer and scene. Any failure is returned
// after releasing what was already created.
func New(cfg *config.Config) (_ *Game, err error) {
	logger.Info("initializing viewer",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	g := &Game{config: cfg}
	defer func() {
		if err != nil {
			g.Close()
		}
	}()

	slots, err := scene.LayoutFromConfig(cfg.Scene.Slots)
	if err != nil {
		return nil, fmt.Errorf("building slot layout: %w", err)
	}

	g.assets = assets.NewManager()
	if err := g.assets.AddDir(cfg.Scene.ModelsDir); err != nil {
		return nil, err
	}
	meshes, err := LoadMeshes(g.assets, slots, cfg.Scene.PlaceholderOnMissing)
	if err != nil {
		return nil, err
	}

	vertSrc, err := shader.LoadSource(cfg.Shaders.VertexPath, shaders.WireframeVertexShader)
	if err != nil {
		return nil, fmt.Errorf("vertex shader: %w", err)
	}
	fragSrc, err := shader.LoadSource(cfg.Shaders.FragmentPath, shaders.WireframeFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("fragment shader: %w", err)
	}

	g.screenshots, err = debug.NewScreenshotCapture(cfg.Screenshot.Dir, cfg.Screenshot.Prefix, cfg.Screenshot.Format)
	if err != nil {
		return nil, err
	}

	// The window creates the OpenGL context the renderer needs.
	g.window, err = window.New(cfg.Window)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	width, height := g.window.GetSize()
	g.renderer, err = renderer.New(renderer.Config{
		Width:          width,
		Height:         height,
		VertexShader:   vertSrc,
		FragmentShader: fragSrc,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	g.renderer.Upload(meshes)

	g.input = input.New()
	g.state = NewState(slots, cfg)
	g.state.Resize(width, height)

	logger.Info("viewer initialized", zap.Int("slots", len(slots)))
	return g, nil
}

// Run runs the loop until a quit action.
func (g *Game) Run() error {
	g.running = true

	last := g.window.Ticks()
	frameCount := 0
	fpsTimer := time.Now()
	redraw := true

	logger.Info("starting viewer loop")

	for g.running {
		if g.input.Update() {
			g.running = false
			break
		}

		changed, quit := processEvents(g.input.Events(), g.dispatch, func() {
			g.render()
			g.screenshot()
		})
		if quit {
			g.running = false
			break
		}
		if changed {
			redraw = true
		}

		now := g.window.Ticks()
		delta := elapsedMs(last, now)
		last = now

		if g.state.Idle(delta) == ActionRedraw {
			redraw = true
		}

		if !redraw {
			g.window.Delay(idleDelayMs)
			continue
		}
		g.render()
		g.window.SwapBuffers()
		redraw = false

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps",
				zap.Int("count", frameCount),
				zap.Float32("angle", g.state.Animator.Angle()),
				zap.Bool("auto_camera", g.state.Camera.Auto()),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	logger.Info("viewer loop stopped")
	return nil
}

// dispatch routes one input event to its handler. Resizes use the drawable
// size, which differs from the window size on HiDPI displays.
func (g *Game) dispatch(e input.Event) Action {
	if e.Type == input.EventWindowResize {
		e.Width, e.Height = g.window.GetSize()
		g.renderer.Resize(e.Width, e.Height)
	}
	return g.state.Dispatch(e)
}

// processEvents feeds events to handle in order. It stops at the first quit
// so later events in the batch cannot change state, and calls screenshot for
// each screenshot request.
func processEvents(events []input.Event, handle func(input.Event) Action, screenshot func()) (redraw, quit bool) {
	for _, e := range events {
		switch handle(e) {
		case ActionRedraw:
			redraw = true
		case ActionQuit:
			return redraw, true
		case ActionScreenshot:
			screenshot()
		}
	}
	return redraw, false
}

func (g *Game) render() {
	g.renderer.Draw(g.state.Projection(), g.state.Camera.View(), g.state.Animator.Model)
}

// screenshot saves the back buffer. Failures are logged, not fatal.
func (g *Game) screenshot() {
	pixels, w, h := g.renderer.ReadPixels()
	name, err := g.screenshots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", name))
}

// elapsedMs returns the milliseconds between two tick readings, never negative.
func elapsedMs(prev, now uint64) float32 {
	if now < prev {
		return 0
	}
	return float32(now - prev)
}

// Close cleans up viewer resources.
func (g *Game) Close() {
	logger.Info("closing viewer")

	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
	if g.assets != nil {
		hits, misses := g.assets.Stats()
		logger.Debug("mesh cache", zap.Int("hits", hits), zap.Int("misses", misses))
		g.assets.Close()
	}
}
