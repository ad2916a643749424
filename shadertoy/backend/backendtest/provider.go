// Package backendtest provides a fake backend.Provider that hands out
// contexts without touching any platform API.
package backendtest

import (
	"errors"
	"unsafe"

	"github.com/valerio/go-shadertoy/shadertoy/backend"
)

// Context is the fake context type.
type Context struct {
	id     int
	kind   backend.Kind
	width  int
	height int
}

func (c *Context) Kind() backend.Kind {
	return c.kind
}

func (c *Context) Size() (int, int) {
	return c.width, c.height
}

func (c *Context) ProcAddress(string) unsafe.Pointer {
	return nil
}

// Provider counts Create and Destroy calls and tracks live contexts.
type Provider struct {
	ProviderKind backend.Kind

	// FailWith makes Create fail with this cause when non-nil.
	FailWith *backend.Cause

	Creates  int
	Destroys int
	live     map[int]*Context
}

var _ backend.Provider = (*Provider)(nil)

// New creates a fake provider of the given kind.
func New(kind backend.Kind) *Provider {
	return &Provider{
		ProviderKind: kind,
		live:         make(map[int]*Context),
	}
}

func (p *Provider) Name() string {
	return "fake"
}

func (p *Provider) Kind() backend.Kind {
	return p.ProviderKind
}

func (p *Provider) Create(width, height int) (backend.Context, error) {
	p.Creates++
	if p.FailWith != nil {
		return nil, &backend.ContextCreationError{
			Provider: p.Name(),
			Kind:     p.ProviderKind,
			Cause:    *p.FailWith,
		}
	}
	ctx := &Context{id: p.Creates, kind: p.ProviderKind, width: width, height: height}
	p.live[ctx.id] = ctx
	return ctx, nil
}

func (p *Provider) Destroy(ctx backend.Context) error {
	c, ok := ctx.(*Context)
	if !ok {
		return &backend.ForeignContextError{Provider: p.Name(), Context: ctx}
	}
	if _, live := p.live[c.id]; !live {
		return errors.New("fake: context already destroyed")
	}
	p.Destroys++
	delete(p.live, c.id)
	return nil
}

// Live returns the number of contexts created and not yet destroyed.
func (p *Provider) Live() int {
	return len(p.live)
}
