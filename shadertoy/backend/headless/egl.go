//go:build linux && cgo

package headless

/*
#cgo LDFLAGS: -lEGL
#include <stdlib.h>
#include <EGL/egl.h>

static EGLDisplay defaultDisplay(void) {
	return eglGetDisplay(EGL_DEFAULT_DISPLAY);
}

static int isNoDisplay(EGLDisplay d) { return d == EGL_NO_DISPLAY; }
static int isNoContext(EGLContext c) { return c == EGL_NO_CONTEXT; }
static int isNoSurface(EGLSurface s) { return s == EGL_NO_SURFACE; }

static EGLBoolean chooseConfig(EGLDisplay d, EGLConfig *config, EGLint *count) {
	const EGLint attribs[] = {
		EGL_SURFACE_TYPE, EGL_PBUFFER_BIT,
		EGL_BLUE_SIZE, 8,
		EGL_GREEN_SIZE, 8,
		EGL_RED_SIZE, 8,
		EGL_DEPTH_SIZE, 24,
		EGL_RENDERABLE_TYPE, EGL_OPENGL_BIT,
		EGL_NONE
	};
	return eglChooseConfig(d, attribs, config, 1, count);
}

static EGLContext createContext(EGLDisplay d, EGLConfig config) {
	const EGLint attribs[] = {
		EGL_CONTEXT_MAJOR_VERSION, 3,
		EGL_CONTEXT_MINOR_VERSION, 3,
		EGL_CONTEXT_OPENGL_PROFILE_MASK, EGL_CONTEXT_OPENGL_CORE_PROFILE_BIT,
		EGL_NONE
	};
	return eglCreateContext(d, config, EGL_NO_CONTEXT, attribs);
}

static EGLSurface createPbuffer(EGLDisplay d, EGLConfig config, EGLint width, EGLint height) {
	const EGLint attribs[] = {
		EGL_WIDTH, width,
		EGL_HEIGHT, height,
		EGL_NONE
	};
	return eglCreatePbufferSurface(d, config, attribs);
}

static EGLBoolean releaseCurrent(EGLDisplay d) {
	return eglMakeCurrent(d, EGL_NO_SURFACE, EGL_NO_SURFACE, EGL_NO_CONTEXT);
}

static void *procAddress(const char *name) {
	return (void *)eglGetProcAddress(name);
}
*/
import "C"

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/valerio/go-shadertoy/shadertoy/backend"
)

// Context holds the EGL display, context and pbuffer surface of one pass.
type Context struct {
	display C.EGLDisplay
	context C.EGLContext
	surface C.EGLSurface
	width   int
	height  int
}

func (c *Context) Kind() backend.Kind {
	return backend.Headless
}

func (c *Context) Size() (int, int) {
	return c.width, c.height
}

func (c *Context) ProcAddress(name string) unsafe.Pointer {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return C.procAddress(cname)
}

// Provider creates EGL contexts backed by an off-screen pixel buffer, for
// hosts without a display server.
type Provider struct{}

// New creates the EGL provider.
func New() *Provider {
	return &Provider{}
}

func (p *Provider) Name() string {
	return "egl"
}

func (p *Provider) Kind() backend.Kind {
	return backend.Headless
}

func (p *Provider) fail(cause backend.Cause) error {
	return &backend.ContextCreationError{
		Provider: p.Name(),
		Kind:     backend.Headless,
		Cause:    cause,
		Err:      fmt.Errorf("EGL error 0x%04X", int(C.eglGetError())),
	}
}

// Create initializes the default display and makes a width x height pbuffer
// context current.
func (p *Provider) Create(width, height int) (backend.Context, error) {
	display := C.defaultDisplay()
	if C.isNoDisplay(display) != 0 {
		return nil, p.fail(backend.CauseNoDisplay)
	}
	if C.eglInitialize(display, nil, nil) == C.EGL_FALSE {
		return nil, p.fail(backend.CauseInit)
	}
	if C.eglBindAPI(C.EGL_OPENGL_API) == C.EGL_FALSE {
		err := p.fail(backend.CauseInit)
		C.eglTerminate(display)
		return nil, err
	}

	var config C.EGLConfig
	var count C.EGLint
	if C.chooseConfig(display, &config, &count) == C.EGL_FALSE || count == 0 {
		err := p.fail(backend.CauseNoConfig)
		C.eglTerminate(display)
		return nil, err
	}

	context := C.createContext(display, config)
	if C.isNoContext(context) != 0 {
		err := p.fail(backend.CauseContext)
		C.eglTerminate(display)
		return nil, err
	}

	surface := C.createPbuffer(display, config, C.EGLint(width), C.EGLint(height))
	if C.isNoSurface(surface) != 0 {
		err := p.fail(backend.CauseSurface)
		C.eglDestroyContext(display, context)
		C.eglTerminate(display)
		return nil, err
	}

	if C.eglMakeCurrent(display, surface, surface, context) == C.EGL_FALSE {
		err := p.fail(backend.CauseMakeCurrent)
		C.eglDestroySurface(display, surface)
		C.eglDestroyContext(display, context)
		C.eglTerminate(display)
		return nil, err
	}

	slog.Debug("EGL context created", "width", width, "height", height)
	return &Context{
		display: display,
		context: context,
		surface: surface,
		width:   width,
		height:  height,
	}, nil
}

// Destroy unbinds the context and releases the surface, the context and the
// display connection.
func (p *Provider) Destroy(ctx backend.Context) error {
	c, ok := ctx.(*Context)
	if !ok {
		return &backend.ForeignContextError{Provider: p.Name(), Context: ctx}
	}
	C.releaseCurrent(c.display)
	C.eglDestroySurface(c.display, c.surface)
	C.eglDestroyContext(c.display, c.context)
	C.eglTerminate(c.display)
	slog.Debug("EGL context destroyed")
	return nil
}
