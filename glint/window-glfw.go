package glint

import (
	"fmt"
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
)

type glfwBackend struct{}

// NewBackend returns the GLFW-based Backend. The caller owns the windowing
// thread: lock the main goroutine to its OS thread before calling Init, and
// make every other call from that same goroutine.
func NewBackend() Backend {
	return &glfwBackend{}
}

func (b *glfwBackend) Init() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("initialize glfw: %w", err)
	}
	return nil
}

func (b *glfwBackend) Terminate() {
	glfw.Terminate()
}

func (b *glfwBackend) CreateWindow(cfg Config) (Window, error) {
	glfw.WindowHint(glfw.DepthBits, cfg.DepthBits)
	glfw.WindowHint(glfw.ContextVersionMajor, cfg.VersionMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, cfg.VersionMinor)

	if cfg.CoreProfile {
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	} else {
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLAnyProfile)
	}

	// macOS only hands out core contexts >= 3.2 when they are marked
	// forward-compatible
	if cfg.ForwardCompat || runtime.GOOS == "darwin" {
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	}

	if cfg.DebugContext {
		glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)
	}

	// geometry is cached once after creation, so never let the user resize
	glfw.WindowHint(glfw.Resizable, glfw.False)

	// positioning a GLFW window without flicker means creating it hidden,
	// moving it, and showing it afterwards
	if cfg.UsePosition {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}

	if cfg.UsePosition {
		win.SetPos(cfg.X, cfg.Y)
		win.Show()
	}

	win.MakeContextCurrent()

	return &glfwWindow{win: win}, nil
}

func (b *glfwBackend) PollEvents() {
	glfw.PollEvents()
}

func (b *glfwBackend) SwapInterval(interval int) {
	glfw.SwapInterval(interval)
}

func (b *glfwBackend) ExtensionSupported(name string) bool {
	return glfw.ExtensionSupported(name)
}

func (b *glfwBackend) Elapsed() time.Duration {
	return time.Duration(glfw.GetTime() * float64(time.Second))
}

type glfwWindow struct {
	win *glfw.Window
}

func (w *glfwWindow) ShouldClose() bool {
	return w.win.ShouldClose()
}

func (w *glfwWindow) SetShouldClose(shouldClose bool) {
	w.win.SetShouldClose(shouldClose)
}

func (w *glfwWindow) SwapBuffers() {
	w.win.SwapBuffers()
}

func (w *glfwWindow) Size() (int, int) {
	return w.win.GetSize()
}

func (w *glfwWindow) Position() (int, int) {
	return w.win.GetPos()
}

// Handle exposes the underlying GLFW window for collaborators that need to
// issue native calls directly.
func (w *glfwWindow) Handle() *glfw.Window {
	return w.win
}

func (w *glfwWindow) Destroy() {
	// drop the callbacks first so nothing fires into a dead handler
	w.win.SetKeyCallback(nil)
	w.win.SetMouseButtonCallback(nil)
	w.win.SetCursorPosCallback(nil)
	w.win.SetCursorEnterCallback(nil)
	w.win.SetCharCallback(nil)
	w.win.SetScrollCallback(nil)
	w.win.Destroy()
}

// SetHandler wires the native callbacks to h. The closures replace the
// window-user-pointer trampolines a C implementation would need.
func (w *glfwWindow) SetHandler(h Handler) {
	w.win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		h.OnKey(KeyEvent{
			Key:      Key(key),
			Scancode: scancode,
			Action:   Action(action),
			Mods:     ModifierKey(mods),
		})
	})

	w.win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		h.OnMouseButton(MouseButtonEvent{
			Button: MouseButton(button),
			Action: Action(action),
			Mods:   ModifierKey(mods),
		})
	})

	w.win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		h.OnMouseMove(x, y)
	})

	w.win.SetCursorEnterCallback(func(_ *glfw.Window, entered bool) {
		h.OnMouseEnter(entered)
	})

	w.win.SetCharCallback(func(_ *glfw.Window, ch rune) {
		h.OnChar(ch)
	})

	w.win.SetScrollCallback(func(_ *glfw.Window, dx, dy float64) {
		h.OnScroll(dx, dy)
	})
}
