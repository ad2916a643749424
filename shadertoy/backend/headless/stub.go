//go:build !linux || !cgo

package headless

import (
	"errors"

	"github.com/valerio/go-shadertoy/shadertoy/backend"
)

// Provider stub for builds without EGL.
type Provider struct{}

// New creates a stub EGL provider whose Create always fails.
func New() *Provider {
	return &Provider{}
}

func (p *Provider) Name() string {
	return "egl"
}

func (p *Provider) Kind() backend.Kind {
	return backend.Headless
}

// Create returns an error indicating EGL is not available.
func (p *Provider) Create(width, height int) (backend.Context, error) {
	return nil, &backend.ContextCreationError{
		Provider: p.Name(),
		Kind:     backend.Headless,
		Cause:    backend.CauseUnsupported,
		Err:      errors.New("EGL contexts need linux and cgo"),
	}
}

func (p *Provider) Destroy(ctx backend.Context) error {
	return &backend.ForeignContextError{Provider: p.Name(), Context: ctx}
}
