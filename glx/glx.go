// Package glx performs the one-time OpenGL context setup for the app loop
// and owns the shutdown-hook registry for GL resources.
package glx

import (
	"context"
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
)

type Context struct{}

func New() *Context {
	return &Context{}
}

// Init loads the OpenGL bindings and applies the base context state: the
// default framebuffer bound for draw and read, face culling and depth
// testing on, dithering off. If the driver exposes a debug-output extension
// the debug-message channel is registered as well. Must be called exactly
// once, with the context current.
func (c *Context) Init(extensionSupported func(name string) bool) error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("initialize OpenGL bindings: %w", err)
	}

	slog.Info("OpenGL context initialized",
		slog.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		slog.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)

	gl.Enable(gl.CULL_FACE)
	gl.Enable(gl.DEPTH_TEST)
	gl.Disable(gl.DITHER)

	// the binding loader can leave a stale error behind
	gl.GetError()

	c.enableDebugOutput(extensionSupported)

	return nil
}

// enableDebugOutput registers the debug-message channel through whichever
// of the two equivalent extensions the driver offers: synchronous delivery,
// no message filtering.
func (c *Context) enableDebugOutput(extensionSupported func(name string) bool) {
	if extensionSupported == nil {
		return
	}

	switch {
	case extensionSupported("GL_KHR_debug"):
		gl.Enable(gl.DEBUG_OUTPUT_SYNCHRONOUS)
		gl.DebugMessageCallback(debugMessage, nil)
		gl.DebugMessageControl(gl.DONT_CARE, gl.DONT_CARE, gl.DONT_CARE, 0, nil, true)

	case extensionSupported("GL_ARB_debug_output"):
		gl.Enable(gl.DEBUG_OUTPUT_SYNCHRONOUS_ARB)
		gl.DebugMessageCallbackARB(debugMessage, nil)
		gl.DebugMessageControlARB(gl.DONT_CARE, gl.DONT_CARE, gl.DONT_CARE, 0, nil, true)

	default:
		slog.Debug("no OpenGL debug-output extension available")
	}
}

func debugMessage(source, gltype, id, severity uint32, length int32, message string, userParam unsafe.Pointer) {
	level := slog.LevelDebug
	switch severity {
	case gl.DEBUG_SEVERITY_HIGH:
		level = slog.LevelError
	case gl.DEBUG_SEVERITY_MEDIUM:
		level = slog.LevelWarn
	case gl.DEBUG_SEVERITY_LOW:
		level = slog.LevelInfo
	}

	slog.Default().Log(context.Background(), level, "OpenGL debug message",
		slog.String("message", message),
		slog.Int("id", int(id)),
		slog.Int("source", int(source)),
		slog.Int("type", int(gltype)),
	)
}

// Viewport sets the active rendering viewport to the given rectangle.
func (c *Context) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

var shutdownHooks []func()

// OnShutdown registers fn to run during Shutdown. Collaborators that own GL
// objects (textures, buffers, programs) register their release here so the
// loop can tear everything down on its single exit path.
func OnShutdown(fn func()) {
	shutdownHooks = append(shutdownHooks, fn)
}

// Shutdown runs the registered hooks in reverse registration order and
// clears the registry.
func (c *Context) Shutdown() {
	for i := len(shutdownHooks) - 1; i >= 0; i-- {
		shutdownHooks[i]()
	}
	shutdownHooks = nil
}
