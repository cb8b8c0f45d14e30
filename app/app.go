// Package app runs the windowed frame loop for OpenGL demo programs: it
// opens a window through the glint backend, wires input callbacks to the
// application's hooks, and drives the update/draw/present cycle until the
// window is flagged for closing.
package app

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/oxless/glapp/glint"
)

// App is the behavior a demo program plugs into the loop.
type App interface {
	// Init runs once after the window and GL context are ready.
	Init(l *Loop) error

	// Update advances application state, once per frame, before Draw.
	Update() error

	// Draw renders the frame.
	Draw() error
}

// The interfaces below are optional capabilities, discovered by type
// assertion on the App. An App that implements one of them takes over that
// piece of loop behavior; everything it does not implement keeps the
// default (mostly no-op) handling.

// Configurer mutates the window configuration before the window is
// created.
type Configurer interface {
	Configure(cfg *glint.Config)
}

// KeyHandler replaces the built-in key handling. Implementations can fall
// back to the defaults by calling Loop.HandleKey.
type KeyHandler interface {
	OnKey(ev glint.KeyEvent)
}

type MouseButtonHandler interface {
	OnMouseButton(ev glint.MouseButtonEvent)
}

type MouseMoveHandler interface {
	OnMouseMove(x, y float64)
}

type MouseEnterHandler interface {
	OnMouseEnter(entered bool)
}

type CharHandler interface {
	OnChar(ch rune)
}

type ScrollHandler interface {
	OnScroll(dx, dy float64)
}

// FrameFinisher replaces the default frame presentation (a buffer swap).
type FrameFinisher interface {
	FinishFrame()
}

// Screenshotter is the capture hook fired by the built-in Shift+S key
// handling, or by Loop.Screenshot.
type Screenshotter interface {
	Screenshot() error
}

// Graphics owns the one-time OpenGL context setup and teardown. The
// production implementation is glx.Context.
type Graphics interface {
	Init(extensionSupported func(name string) bool) error
	Viewport(x, y, width, height int32)
	Shutdown()
}

// TextRenderer draws a one-line string against the given projection and
// view matrices. The production implementation is text.Renderer.
type TextRenderer interface {
	RenderString(s string, pos mgl32.Vec2, size float32, proj, view mgl32.Mat4) error
}
