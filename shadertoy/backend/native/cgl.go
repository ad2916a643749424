//go:build darwin && cgo

package native

/*
#cgo CFLAGS: -Wno-deprecated-declarations
#cgo LDFLAGS: -framework OpenGL
#include <OpenGL/OpenGL.h>

static CGLPixelFormatObj choosePixelFormat(void) {
	CGLPixelFormatAttribute attribs[] = {
		kCGLPFAOpenGLProfile, (CGLPixelFormatAttribute)kCGLOGLPVersion_3_2_Core,
		kCGLPFAColorSize, (CGLPixelFormatAttribute)24,
		kCGLPFAAlphaSize, (CGLPixelFormatAttribute)8,
		kCGLPFADoubleBuffer,
		kCGLPFASampleBuffers, (CGLPixelFormatAttribute)1,
		kCGLPFASamples, (CGLPixelFormatAttribute)4,
		kCGLPFAAccelerated,
		kCGLPFANoRecovery,
		kCGLPFABackingStore,
		kCGLPFASupportsAutomaticGraphicsSwitching,
		(CGLPixelFormatAttribute)0
	};
	CGLPixelFormatObj pix = NULL;
	GLint npix = 0;
	CGLChoosePixelFormat(attribs, &pix, &npix);
	return pix;
}

static CGLContextObj createContext(CGLPixelFormatObj pix) {
	CGLContextObj ctx = NULL;
	CGLCreateContext(pix, NULL, &ctx);
	return ctx;
}
*/
import "C"

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/valerio/go-shadertoy/shadertoy/backend"
)

// Context holds the CGL context and the pixel format it was created from.
type Context struct {
	context     C.CGLContextObj
	pixelFormat C.CGLPixelFormatObj
	width       int
	height      int
}

func (c *Context) Kind() backend.Kind {
	return backend.Native
}

func (c *Context) Size() (int, int) {
	return c.width, c.height
}

// ProcAddress returns nil; the GL bindings resolve symbols from the OpenGL
// framework directly.
func (c *Context) ProcAddress(string) unsafe.Pointer {
	return nil
}

// Provider creates surfaceless CGL contexts. Rendering goes to framebuffer
// objects only, so the context never needs a drawable.
type Provider struct{}

// New creates the CGL provider.
func New() *Provider {
	return &Provider{}
}

func (p *Provider) Name() string {
	return "cgl"
}

func (p *Provider) Kind() backend.Kind {
	return backend.Native
}

func (p *Provider) fail(cause backend.Cause, err error) error {
	return &backend.ContextCreationError{
		Provider: p.Name(),
		Kind:     backend.Native,
		Cause:    cause,
		Err:      err,
	}
}

// Create picks an accelerated true-color, double-buffered, 4x multisampled
// pixel format, creates a context from it and makes it current.
func (p *Provider) Create(width, height int) (backend.Context, error) {
	pix := C.choosePixelFormat()
	if pix == nil {
		return nil, p.fail(backend.CausePixelFormat, nil)
	}

	ctx := C.createContext(pix)
	if ctx == nil {
		C.CGLDestroyPixelFormat(pix)
		return nil, p.fail(backend.CauseContext, nil)
	}

	if cerr := C.CGLSetCurrentContext(ctx); cerr != C.kCGLNoError {
		C.CGLDestroyContext(ctx)
		C.CGLDestroyPixelFormat(pix)
		return nil, p.fail(backend.CauseMakeCurrent, fmt.Errorf("CGL error %d", int(cerr)))
	}

	slog.Debug("CGL context created", "width", width, "height", height)
	return &Context{
		context:     ctx,
		pixelFormat: pix,
		width:       width,
		height:      height,
	}, nil
}

// Destroy clears the current context and releases the context and its pixel format.
func (p *Provider) Destroy(ctx backend.Context) error {
	c, ok := ctx.(*Context)
	if !ok {
		return &backend.ForeignContextError{Provider: p.Name(), Context: ctx}
	}
	C.CGLSetCurrentContext(nil)
	C.CGLDestroyContext(c.context)
	C.CGLDestroyPixelFormat(c.pixelFormat)
	slog.Debug("CGL context destroyed")
	return nil
}
