package glint

import "time"

// Config carries the window-creation parameters. Everything here is applied
// before or during creation; the resulting window geometry never changes
// afterwards (windows are created non-resizable).
type Config struct {
	Title string

	Width  int
	Height int

	// optional initial position. When UsePosition is set the window is
	// created hidden, moved, and then shown.
	X, Y        int
	UsePosition bool

	// depth buffer bit depth
	DepthBits int

	// requested OpenGL context version
	VersionMajor int
	VersionMinor int

	CoreProfile   bool
	ForwardCompat bool

	// request a debug context from the driver
	DebugContext bool
}

// Handler receives input events while the backend polls. Dispatch is
// synchronous and happens on the thread that calls PollEvents, one call per
// discrete native event, in the order the windowing library reports them.
type Handler interface {
	OnKey(ev KeyEvent)
	OnMouseButton(ev MouseButtonEvent)
	OnMouseMove(x, y float64)
	OnMouseEnter(entered bool)
	OnChar(ch rune)
	OnScroll(dx, dy float64)
}

type Window interface {
	// ShouldClose reports the cooperative close flag.
	ShouldClose() bool
	SetShouldClose(shouldClose bool)

	// SwapBuffers presents the rendered frame.
	SwapBuffers()

	Size() (width, height int)
	Position() (x, y int)

	// SetHandler routes the window's input callbacks to the given handler.
	SetHandler(h Handler)

	Destroy()
}

type Backend interface {
	Init() error
	Terminate()

	CreateWindow(cfg Config) (Window, error)

	// PollEvents drains all pending input events, dispatching them inline
	// to the window handlers before it returns.
	PollEvents()

	// SwapInterval sets the number of vertical blanks to wait for between
	// buffer swaps. 1 means vsync on.
	SwapInterval(interval int)

	// ExtensionSupported reports whether the current context supports the
	// named OpenGL extension.
	ExtensionSupported(name string) bool

	// Elapsed returns a monotonically non-decreasing duration since
	// backend initialization.
	Elapsed() time.Duration
}
