package app

import (
	"errors"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/oxless/glapp/glint"
)

// fakeWindow is an in-memory glint.Window.
type fakeWindow struct {
	shouldClose   bool
	handler       glint.Handler
	width, height int
	x, y          int
	swaps         int
	destroys      int
}

func (w *fakeWindow) ShouldClose() bool { return w.shouldClose }

func (w *fakeWindow) SetShouldClose(v bool) { w.shouldClose = v }

func (w *fakeWindow) SwapBuffers() { w.swaps++ }

func (w *fakeWindow) Size() (int, int) { return w.width, w.height }

func (w *fakeWindow) Position() (int, int) { return w.x, w.y }

func (w *fakeWindow) SetHandler(h glint.Handler) { w.handler = h }

func (w *fakeWindow) Destroy() { w.destroys++ }

// fakeBackend scripts the windowing library: each PollEvents advances a
// fake clock by perPoll and dispatches the next batch of queued events to
// the window's handler.
type fakeBackend struct {
	failCreate bool
	win        *fakeWindow

	batches [][]glint.KeyEvent
	onPoll  func(h glint.Handler)
	perPoll time.Duration

	now          time.Duration
	polls        int
	terminations int
	swapInterval int
}

func (b *fakeBackend) Init() error { return nil }

func (b *fakeBackend) Terminate() { b.terminations++ }

func (b *fakeBackend) CreateWindow(cfg glint.Config) (glint.Window, error) {
	if b.failCreate {
		return nil, errors.New("no display available")
	}

	if b.win == nil {
		b.win = &fakeWindow{}
	}

	b.win.width = cfg.Width
	b.win.height = cfg.Height
	b.win.x = cfg.X
	b.win.y = cfg.Y

	return b.win, nil
}

func (b *fakeBackend) PollEvents() {
	b.polls++
	b.now += b.perPoll

	if b.onPoll != nil {
		b.onPoll(b.win.handler)
	}

	if len(b.batches) == 0 {
		return
	}

	batch := b.batches[0]
	b.batches = b.batches[1:]

	for _, ev := range batch {
		b.win.handler.OnKey(ev)
	}
}

func (b *fakeBackend) SwapInterval(interval int) { b.swapInterval = interval }

func (b *fakeBackend) ExtensionSupported(string) bool { return false }

func (b *fakeBackend) Elapsed() time.Duration { return b.now }

type fakeGraphics struct {
	initErr   error
	inits     int
	shutdowns int
	viewports [][4]int32
}

func (g *fakeGraphics) Init(func(string) bool) error {
	g.inits++
	return g.initErr
}

func (g *fakeGraphics) Viewport(x, y, width, height int32) {
	g.viewports = append(g.viewports, [4]int32{x, y, width, height})
}

func (g *fakeGraphics) Shutdown() { g.shutdowns++ }

type renderCall struct {
	s    string
	pos  mgl32.Vec2
	size float32
	proj mgl32.Mat4
	view mgl32.Mat4
}

type fakeText struct {
	err   error
	calls []renderCall
}

func (t *fakeText) RenderString(s string, pos mgl32.Vec2, size float32, proj, view mgl32.Mat4) error {
	t.calls = append(t.calls, renderCall{s: s, pos: pos, size: size, proj: proj, view: view})
	return t.err
}

// panicText stands in for a text collaborator that blows up mid-render.
type panicText struct{}

func (panicText) RenderString(string, mgl32.Vec2, float32, mgl32.Mat4, mgl32.Mat4) error {
	panic("text renderer exploded")
}

// fakeApp counts hook invocations and flags the window for closing after
// stopAfter updates.
type fakeApp struct {
	loop    *Loop
	initErr error

	stopAfter int

	inits   int
	updates int
	draws   int

	onUpdate func()
}

func (a *fakeApp) Init(l *Loop) error {
	a.inits++
	a.loop = l
	return a.initErr
}

func (a *fakeApp) Update() error {
	a.updates++

	if a.onUpdate != nil {
		a.onUpdate()
	}

	if a.stopAfter > 0 && a.updates >= a.stopAfter {
		a.loop.Close()
	}

	return nil
}

func (a *fakeApp) Draw() error {
	a.draws++
	return nil
}

// captureApp adds the capture hook.
type captureApp struct {
	fakeApp
	captures int
}

func (a *captureApp) Screenshot() error {
	a.captures++
	return nil
}

// keyApp overrides the built-in key handling and records every event.
type keyApp struct {
	fakeApp
	keys     []glint.KeyEvent
	fallback bool
}

func (a *keyApp) OnKey(ev glint.KeyEvent) {
	a.keys = append(a.keys, ev)

	if a.fallback {
		a.loop.HandleKey(ev)
	}
}

// mouseApp records every pointer, character and scroll event.
type mouseApp struct {
	fakeApp

	buttons []glint.MouseButtonEvent
	moves   [][2]float64
	enters  []bool
	chars   []rune
	scrolls [][2]float64
}

func (a *mouseApp) OnMouseButton(ev glint.MouseButtonEvent) { a.buttons = append(a.buttons, ev) }

func (a *mouseApp) OnMouseMove(x, y float64) { a.moves = append(a.moves, [2]float64{x, y}) }

func (a *mouseApp) OnMouseEnter(entered bool) { a.enters = append(a.enters, entered) }

func (a *mouseApp) OnChar(ch rune) { a.chars = append(a.chars, ch) }

func (a *mouseApp) OnScroll(dx, dy float64) { a.scrolls = append(a.scrolls, [2]float64{dx, dy}) }

// finisherApp replaces the default buffer-swap presentation.
type finisherApp struct {
	fakeApp
	finishes int
}

func (a *finisherApp) FinishFrame() { a.finishes++ }

// configApp mutates the window config before creation.
type configApp struct {
	fakeApp
	configure func(cfg *glint.Config)
}

func (a *configApp) Configure(cfg *glint.Config) { a.configure(cfg) }
