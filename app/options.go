package app

import (
	"github.com/oxless/glapp/glint"
	"github.com/oxless/glapp/glx"
)

type Options struct {
	// app to run. This is the only field that is required
	App App

	Title  string
	Width  int
	Height int

	// optional initial window position
	X, Y        int
	UsePosition bool

	// request a debug GL context from the driver
	DebugContext bool

	// write a CPU profile for the whole run
	Profile bool

	// collaborators, overridable for tests. Leave nil for the production
	// GLFW/OpenGL implementations.
	Backend  glint.Backend
	Graphics Graphics
	Text     TextRenderer
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = "glapp"
	}

	if o.Width == 0 {
		o.Width = 640
	}

	if o.Height == 0 {
		o.Height = 480
	}

	if o.Backend == nil {
		o.Backend = glint.NewBackend()
	}

	if o.Graphics == nil {
		o.Graphics = glx.New()
	}

	return o
}
