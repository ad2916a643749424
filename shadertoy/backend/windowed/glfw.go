//go:build cgo

package windowed

import (
	"log/slog"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/valerio/go-shadertoy/shadertoy/backend"
)

const windowTitle = "shadertoy"

// Context wraps a hidden GLFW window whose GL context is current.
type Context struct {
	window *glfw.Window
	width  int
	height int
}

func (c *Context) Kind() backend.Kind {
	return backend.Windowed
}

func (c *Context) Size() (int, int) {
	return c.width, c.height
}

func (c *Context) ProcAddress(name string) unsafe.Pointer {
	return glfw.GetProcAddress(name)
}

// Provider creates GL contexts through GLFW windows that are never shown.
type Provider struct{}

// New creates the GLFW provider.
func New() *Provider {
	return &Provider{}
}

func (p *Provider) Name() string {
	return "glfw"
}

func (p *Provider) Kind() backend.Kind {
	return backend.Windowed
}

func (p *Provider) fail(cause backend.Cause, err error) error {
	return &backend.ContextCreationError{
		Provider: p.Name(),
		Kind:     backend.Windowed,
		Cause:    cause,
		Err:      err,
	}
}

// Create initializes GLFW, opens an invisible window of the requested size
// with a 3.3 core context and makes that context current.
func (p *Provider) Create(width, height int) (backend.Context, error) {
	if err := glfw.Init(); err != nil {
		return nil, p.fail(backend.CauseInit, err)
	}

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(width, height, windowTitle, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, p.fail(backend.CauseWindow, err)
	}
	window.MakeContextCurrent()

	slog.Debug("GLFW context created", "width", width, "height", height)
	return &Context{window: window, width: width, height: height}, nil
}

// Destroy detaches the context, closes the window and terminates GLFW.
func (p *Provider) Destroy(ctx backend.Context) error {
	c, ok := ctx.(*Context)
	if !ok {
		return &backend.ForeignContextError{Provider: p.Name(), Context: ctx}
	}
	glfw.DetachCurrentContext()
	c.window.Destroy()
	glfw.Terminate()
	slog.Debug("GLFW context destroyed")
	return nil
}
