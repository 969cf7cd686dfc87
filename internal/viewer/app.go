// Package viewer implements the interactive stage viewer application.
package viewer

import (
	"fmt"
	"time"

	"github.com/sqweek/dialog"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/veldrane/stageview/internal/config"
	"github.com/veldrane/stageview/internal/engine/camera"
	"github.com/veldrane/stageview/internal/engine/debug"
	"github.com/veldrane/stageview/internal/engine/input"
	"github.com/veldrane/stageview/internal/engine/render"
	"github.com/veldrane/stageview/internal/engine/render/immediate"
	"github.com/veldrane/stageview/internal/engine/render/retained"
	"github.com/veldrane/stageview/internal/engine/window"
	"github.com/veldrane/stageview/internal/logger"
	"github.com/veldrane/stageview/internal/sample"
	"github.com/veldrane/stageview/pkg/stage"
	"github.com/veldrane/stageview/pkg/usda"
)

// App is the viewer application. It owns the window, input, camera and
// render dispatcher and runs the main loop.
type App struct {
	cfg      *config.Config
	window   *window.Window
	input    *input.Input
	camera   *camera.OrbitCamera
	disp     *render.Dispatcher
	advanced *retained.Renderer

	stage    *stage.Stage
	params   render.Params
	playback Playback

	running bool
	width   int
	height  int

	// Paths picked in the file dialog goroutine, loaded on the main
	// thread.
	pending chan string
}

// New creates the viewer application. The OpenGL context and renderers
// are set up here; call LoadStage before Run.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg:     cfg,
		pending: make(chan string, 1),
	}

	var err error
	a.window, err = window.New(window.Config{
		Title:       cfg.Window.Title,
		Width:       cfg.Window.Width,
		Height:      cfg.Window.Height,
		Fullscreen:  cfg.Window.Fullscreen,
		VSync:       cfg.Window.VSync,
		Multisample: cfg.Graphics.Multisample,
	})
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}
	a.width, a.height = a.window.DrawableSize()

	surface, err := immediate.New()
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("creating draw surface: %w", err)
	}

	// The retained renderer needs shader support; without it the viewer
	// runs on the fixed-function surface alone.
	var adv render.Advanced
	a.advanced, err = retained.New()
	if err != nil {
		logger.Warn("advanced renderer unavailable", zap.Error(err))
	} else {
		adv = a.advanced
	}

	a.input = input.New()

	a.camera = camera.NewOrbitCamera()
	a.camera.FOV = cfg.Camera.FOV
	a.camera.Near = cfg.Camera.Near
	a.camera.Far = cfg.Camera.Far
	a.camera.RotateSpeed = cfg.Camera.RotateSpeed
	a.camera.PanSpeed = cfg.Camera.PanSpeed
	a.camera.ZoomSpeed = cfg.Camera.ZoomSpeed
	a.camera.MinDistance = cfg.Camera.MinDistance
	a.camera.MaxDistance = cfg.Camera.MaxDistance

	a.disp = render.NewDispatcher(surface, adv)
	a.disp.ShowGrid = cfg.Graphics.Grid
	a.disp.ShowAxes = cfg.Graphics.Axes

	a.params = render.DefaultParams()
	a.params.Mode = render.ParseMode(cfg.Graphics.Mode)
	a.params.Lighting = cfg.Graphics.Lighting
	a.params.ClearColor = [4]float32{
		cfg.Graphics.Background[0],
		cfg.Graphics.Background[1],
		cfg.Graphics.Background[2],
		1,
	}

	return a, nil
}

// LoadStage loads a .usda file, or the built-in sample stage when path is
// empty, and frames the camera on it.
func (a *App) LoadStage(path string) error {
	var st *stage.Stage
	if path == "" {
		st = sample.Builtin()
		logger.Info("loaded built-in sample stage")
	} else {
		var err error
		st, err = usda.Load(path)
		if err != nil {
			return fmt.Errorf("loading stage: %w", err)
		}
		logger.Info("loaded stage",
			zap.String("path", path),
			zap.String("name", st.Name()),
			zap.Bool("animated", st.HasAnimation()),
		)
	}

	a.stage = st
	a.playback.SetStage(st)
	a.params.Time = a.playback.Time
	a.frameCamera()
	return nil
}

// SetTime jumps playback to the given time code, clamped to the stage's
// range.
func (a *App) SetTime(t float64) {
	a.playback.Seek(t)
	a.params.Time = a.playback.Time
}

// Run starts the main loop and blocks until quit.
func (a *App) Run() error {
	if a.stage == nil {
		return fmt.Errorf("no stage loaded")
	}
	a.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting viewer loop")

	for a.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if a.input.Update() {
			a.running = false
			break
		}

		for _, event := range a.input.Events() {
			a.handleEvent(event)
		}

		// Stages picked in the open dialog load here, on the main thread.
		select {
		case path := <-a.pending:
			if err := a.LoadStage(path); err != nil {
				logger.Error("failed to open stage", zap.Error(err))
			}
		default:
		}

		a.playback.Advance(dt)
		a.params.Time = a.playback.Time

		a.disp.Frame(a.stage, a.camera, a.params, a.width, a.height)
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.window.SetTitle(a.title(frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close cleans up viewer resources.
func (a *App) Close() {
	logger.Info("closing viewer")

	if a.advanced != nil {
		a.advanced.Destroy()
	}
	if a.window != nil {
		a.window.Close()
	}
}

func (a *App) handleEvent(e input.Event) {
	switch e.Type {
	case input.EventWindowResize:
		a.width, a.height = a.window.DrawableSize()
	case input.EventMouseMove:
		a.handleDrag(e)
	case input.EventMouseWheel:
		a.camera.Zoom(float32(e.Wheel))
	case input.EventKeyDown:
		a.handleKey(e.Key)
	}
}

func (a *App) handleDrag(e input.Event) {
	dx := float32(e.RelX)
	dy := float32(e.RelY)
	switch {
	case a.input.IsButtonHeld(sdl.BUTTON_LEFT):
		a.camera.Rotate(dx, dy)
	case a.input.IsButtonHeld(sdl.BUTTON_RIGHT), a.input.IsButtonHeld(sdl.BUTTON_MIDDLE):
		a.camera.Pan(dx, dy)
	}
}

func (a *App) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_ESCAPE, sdl.SCANCODE_Q:
		a.running = false
	case sdl.SCANCODE_F:
		a.frameCamera()
	case sdl.SCANCODE_G:
		a.disp.ShowGrid = !a.disp.ShowGrid
	case sdl.SCANCODE_A:
		a.disp.ShowAxes = !a.disp.ShowAxes
	case sdl.SCANCODE_W, sdl.SCANCODE_TAB:
		a.params.Mode = a.params.Mode.Next()
		logger.Info("draw mode", zap.String("mode", a.params.Mode.String()))
	case sdl.SCANCODE_L:
		a.params.Lighting = !a.params.Lighting
	case sdl.SCANCODE_SPACE:
		if a.playback.Animated() {
			a.playback.Playing = !a.playback.Playing
		}
	case sdl.SCANCODE_R:
		a.camera.Reset()
		a.frameCamera()
	case sdl.SCANCODE_LEFT:
		a.playback.Step(-1)
		a.params.Time = a.playback.Time
	case sdl.SCANCODE_RIGHT:
		a.playback.Step(1)
		a.params.Time = a.playback.Time
	case sdl.SCANCODE_O:
		a.openFileDialog()
	case sdl.SCANCODE_F5:
		a.disp.RetryAdvanced()
	case sdl.SCANCODE_F12:
		a.screenshot()
	}
}

func (a *App) frameCamera() {
	if min, max, ok := a.disp.Bounds(a.stage, a.params.Time); ok {
		a.camera.FrameBounds(min, max)
	}
}

// openFileDialog shows a native file picker. SDL window operations must
// stay on the main thread, so the picked path is queued and loaded in Run.
func (a *App) openFileDialog() {
	go func() {
		filename, err := dialog.File().
			Filter("USD Text Stages", "usda").
			Filter("All Files", "*").
			Title("Open Stage").
			Load()
		if err != nil {
			if err != dialog.ErrCancelled {
				logger.Error("file dialog failed", zap.Error(err))
			}
			return
		}
		select {
		case a.pending <- filename:
		default:
		}
	}()
}

func (a *App) screenshot() {
	path, err := debug.CaptureScreenshot("", a.width, a.height, "png")
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

func (a *App) title(fps int) string {
	renderer := "fallback"
	if a.disp.UsingAdvanced() {
		renderer = "shader"
	}
	t := fmt.Sprintf("%s - %s | %s | %s | %d fps",
		a.cfg.Window.Title, a.stage.Name(), renderer, a.params.Mode, fps)
	if a.stage.HasAnimation() {
		t += fmt.Sprintf(" | t=%.1f", a.playback.Time)
	}
	return t
}
