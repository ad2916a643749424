//go:build sdl2

package sdl2

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/valerio/go-shadertoy/shadertoy/backend"
	"github.com/veandco/go-sdl2/sdl"
)

const windowTitle = "shadertoy"

// Context wraps a hidden SDL2 window and its GL context.
type Context struct {
	window    *sdl.Window
	glContext sdl.GLContext
	width     int
	height    int
}

func (c *Context) Kind() backend.Kind {
	return backend.Windowed
}

func (c *Context) Size() (int, int) {
	return c.width, c.height
}

func (c *Context) ProcAddress(name string) unsafe.Pointer {
	return sdl.GLGetProcAddress(name)
}

// Provider creates GL contexts through hidden SDL2 windows.
type Provider struct{}

// New creates the SDL2 provider.
func New() *Provider {
	return &Provider{}
}

func (p *Provider) Name() string {
	return "sdl2"
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

// Create initializes the SDL video subsystem, opens a hidden window with a
// 3.3 core GL context and makes the context current.
func (p *Provider) Create(width, height int) (backend.Context, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, p.fail(backend.CauseInit, err)
	}

	attrs := []struct {
		attr  sdl.GLattr
		value int
	}{
		{sdl.GL_CONTEXT_MAJOR_VERSION, 3},
		{sdl.GL_CONTEXT_MINOR_VERSION, 3},
		{sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE},
		{sdl.GL_CONTEXT_FLAGS, sdl.GL_CONTEXT_FORWARD_COMPATIBLE_FLAG},
	}
	for _, a := range attrs {
		if err := sdl.GLSetAttribute(a.attr, a.value); err != nil {
			sdl.Quit()
			return nil, p.fail(backend.CauseInit, fmt.Errorf("set GL attribute %d: %w", a.attr, err))
		}
	}

	window, err := sdl.CreateWindow(
		windowTitle,
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		int32(width),
		int32(height),
		sdl.WINDOW_OPENGL|sdl.WINDOW_HIDDEN,
	)
	if err != nil {
		sdl.Quit()
		return nil, p.fail(backend.CauseWindow, err)
	}

	glContext, err := window.GLCreateContext()
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return nil, p.fail(backend.CauseContext, err)
	}

	if err := window.GLMakeCurrent(glContext); err != nil {
		sdl.GLDeleteContext(glContext)
		window.Destroy()
		sdl.Quit()
		return nil, p.fail(backend.CauseMakeCurrent, err)
	}

	slog.Debug("SDL2 context created", "width", width, "height", height)
	return &Context{
		window:    window,
		glContext: glContext,
		width:     width,
		height:    height,
	}, nil
}

// Destroy deletes the GL context, closes the window and shuts SDL down.
func (p *Provider) Destroy(ctx backend.Context) error {
	c, ok := ctx.(*Context)
	if !ok {
		return &backend.ForeignContextError{Provider: p.Name(), Context: ctx}
	}
	sdl.GLDeleteContext(c.glContext)
	c.window.Destroy()
	sdl.Quit()
	slog.Debug("SDL2 context destroyed")
	return nil
}
