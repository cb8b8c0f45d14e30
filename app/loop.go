package app

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/profile"

	"github.com/oxless/glapp/glint"
	"github.com/oxless/glapp/mstack"
	"github.com/oxless/glapp/text"
)

// point size used for RenderStringAt
const renderStringPointSize = 18

// Loop owns a single window and its frame loop for the duration of one Run
// call. Apps receive it in Init and use it to read geometry, flag the
// window for closing, and render diagnostics.
type Loop struct {
	app      App
	graphics Graphics
	text     TextRenderer
	win      glint.Window

	width, height int
	posX, posY    int
	aspect        float32

	frame uint64
	fps   fpsMeter

	proj *mstack.Stack
	view *mstack.Stack

	shutdownDone bool

	hooks struct {
		key         KeyHandler
		mouseButton MouseButtonHandler
		mouseMove   MouseMoveHandler
		mouseEnter  MouseEnterHandler
		char        CharHandler
		scroll      ScrollHandler
		finisher    FrameFinisher
		screenshot  Screenshotter
	}
}

func newLoop(opts Options) *Loop {
	l := &Loop{
		app:      opts.App,
		graphics: opts.Graphics,
		text:     opts.Text,
		proj:     mstack.New(),
		view:     mstack.New(),
	}

	l.hooks.key, _ = opts.App.(KeyHandler)
	l.hooks.mouseButton, _ = opts.App.(MouseButtonHandler)
	l.hooks.mouseMove, _ = opts.App.(MouseMoveHandler)
	l.hooks.mouseEnter, _ = opts.App.(MouseEnterHandler)
	l.hooks.char, _ = opts.App.(CharHandler)
	l.hooks.scroll, _ = opts.App.(ScrollHandler)
	l.hooks.finisher, _ = opts.App.(FrameFinisher)
	l.hooks.screenshot, _ = opts.App.(Screenshotter)

	return l
}

// Run executes the full window lifecycle: configure, create the window,
// initialize graphics, then poll events and invoke the app's hooks once per
// frame until the close flag is set. Graphics teardown is guaranteed on
// every exit path, including setup failures.
//
// Run owns the calling goroutine until it returns, and the windowing
// library requires that goroutine to stay on its OS thread: call
// runtime.LockOSThread from main before Run.
func Run(opts Options) error {
	if opts.App == nil {
		return errors.New("App must not be nil")
	}

	opts = opts.withDefaults()

	if opts.Profile {
		defer profile.Start(profile.CPUProfile).Stop()
	}

	backend := opts.Backend
	if err := backend.Init(); err != nil {
		return fmt.Errorf("initialize windowing: %w", err)
	}

	defer backend.Terminate()

	l := newLoop(opts)

	cfg := glint.Config{
		Title:        opts.Title,
		Width:        opts.Width,
		Height:       opts.Height,
		X:            opts.X,
		Y:            opts.Y,
		UsePosition:  opts.UsePosition,
		DepthBits:    16,
		VersionMajor: 3,
		VersionMinor: 3,
		CoreProfile:  true,
		DebugContext: opts.DebugContext,
	}

	if c, ok := l.app.(Configurer); ok {
		c.Configure(&cfg)
	}

	// teardown order on exit: GL resources first, then the window, then
	// the windowing library
	defer func() {
		if l.win != nil {
			l.win.Destroy()
		}
	}()
	defer l.shutdownGraphics()

	win, err := backend.CreateWindow(cfg)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}

	l.win = win

	// geometry is cached once and stays fixed for the window's lifetime
	l.width, l.height = win.Size()
	l.posX, l.posY = win.Position()
	l.aspect = float32(l.width) / float32(l.height)

	win.SetHandler(l)
	backend.SwapInterval(1)

	if err := l.graphics.Init(backend.ExtensionSupported); err != nil {
		return fmt.Errorf("initialize graphics: %w", err)
	}

	if l.text == nil {
		r, err := text.NewRenderer()
		if err != nil {
			return fmt.Errorf("initialize text renderer: %w", err)
		}
		l.text = r
	}

	if err := l.app.Init(l); err != nil {
		return fmt.Errorf("initialize app: %w", err)
	}

	slog.Debug("entering frame loop",
		slog.Int("width", l.width),
		slog.Int("height", l.height),
	)

	l.fps.reset(backend.Elapsed())

	for !win.ShouldClose() {
		backend.PollEvents()

		l.frame++

		if err := l.app.Update(); err != nil {
			return fmt.Errorf("update: %w", err)
		}

		if err := l.app.Draw(); err != nil {
			return fmt.Errorf("draw: %w", err)
		}

		l.finishFrame()
		l.fps.tick(backend.Elapsed())
	}

	return nil
}

func (l *Loop) shutdownGraphics() {
	if l.shutdownDone {
		return
	}

	l.shutdownDone = true
	l.graphics.Shutdown()
}

func (l *Loop) finishFrame() {
	if l.hooks.finisher != nil {
		l.hooks.finisher.FinishFrame()
		return
	}

	l.win.SwapBuffers()
}

// Frame returns the frame counter: 0 before the first iteration, N after N
// completed iterations.
func (l *Loop) Frame() uint64 {
	return l.frame
}

// FPS returns the most recently measured frames-per-second value.
func (l *Loop) FPS() float64 {
	return l.fps.fps
}

func (l *Loop) Size() (width, height int) {
	return l.width, l.height
}

func (l *Loop) Position() (x, y int) {
	return l.posX, l.posY
}

func (l *Loop) Aspect() float32 {
	return l.aspect
}

// Window exposes the owned window handle for collaborators that need to
// issue windowing calls directly.
func (l *Loop) Window() glint.Window {
	return l.win
}

// Close flags the window for closing. The loop checks the flag once per
// iteration boundary and finishes the current frame first.
func (l *Loop) Close() {
	l.win.SetShouldClose(true)
}

// Viewport sets the active rendering viewport to the given rectangle.
func (l *Loop) Viewport(x, y, width, height int) {
	l.graphics.Viewport(int32(x), int32(y), int32(width), int32(height))
}

// Projection is the projection matrix stack.
func (l *Loop) Projection() *mstack.Stack {
	return l.proj
}

// Modelview is the modelview matrix stack.
func (l *Loop) Modelview() *mstack.Stack {
	return l.view
}

// Screenshot invokes the app's capture hook, if any. Without one this is a
// no-op: capturing the framebuffer to an image file is intentionally not
// implemented here.
func (l *Loop) Screenshot() error {
	if l.hooks.screenshot == nil {
		return nil
	}

	return l.hooks.screenshot.Screenshot()
}

// RenderStringAt draws s at the given normalized position: x in [-1, 1],
// y in [-1, 1] scaled by the window's inverse aspect ratio. The projection
// and modelview stacks are restored before returning, whether or not the
// text renderer succeeds.
func (l *Loop) RenderStringAt(s string, pos mgl32.Vec2) error {
	aspectInv := 1 / l.aspect

	l.view.Push().Identity()
	defer l.view.Pop()

	l.proj.Push().SetTop(mgl32.Ortho(-1, 1, -aspectInv, aspectInv, -100, 100))
	defer l.proj.Pop()

	cursor := mgl32.Vec2{pos.X(), aspectInv * pos.Y()}
	if err := l.text.RenderString(s, cursor, renderStringPointSize, l.proj.Top(), l.view.Top()); err != nil {
		return fmt.Errorf("render string: %w", err)
	}

	return nil
}

// HandleKey is the built-in key behavior, used whenever the app brings no
// KeyHandler of its own: on press, Escape flags the window for closing and
// Shift+S fires the capture hook. Custom KeyHandlers can call it to keep
// the defaults.
func (l *Loop) HandleKey(ev glint.KeyEvent) {
	if !ev.Pressed() {
		return
	}

	switch ev.Key {
	case glint.KeyEscape:
		l.Close()

	case glint.KeyS:
		if ev.Mods.Has(glint.ModShift) {
			if err := l.Screenshot(); err != nil {
				slog.Error("screenshot failed", slog.Any("error", err))
			}
		}
	}
}

// glint.Handler implementation; events arrive synchronously while the
// backend polls, before Update and Draw run.

func (l *Loop) OnKey(ev glint.KeyEvent) {
	if l.hooks.key != nil {
		l.hooks.key.OnKey(ev)
		return
	}

	l.HandleKey(ev)
}

func (l *Loop) OnMouseButton(ev glint.MouseButtonEvent) {
	if l.hooks.mouseButton != nil {
		l.hooks.mouseButton.OnMouseButton(ev)
	}
}

func (l *Loop) OnMouseMove(x, y float64) {
	if l.hooks.mouseMove != nil {
		l.hooks.mouseMove.OnMouseMove(x, y)
	}
}

func (l *Loop) OnMouseEnter(entered bool) {
	if l.hooks.mouseEnter != nil {
		l.hooks.mouseEnter.OnMouseEnter(entered)
	}
}

func (l *Loop) OnChar(ch rune) {
	if l.hooks.char != nil {
		l.hooks.char.OnChar(ch)
	}
}

func (l *Loop) OnScroll(dx, dy float64) {
	if l.hooks.scroll != nil {
		l.hooks.scroll.OnScroll(dx, dy)
	}
}
