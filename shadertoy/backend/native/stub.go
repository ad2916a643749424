//go:build !darwin || !cgo

package native

import (
	"errors"

	"github.com/valerio/go-shadertoy/shadertoy/backend"
)

// Provider stub for builds without CGL.
type Provider struct{}

// New creates a stub CGL provider whose Create always fails.
func New() *Provider {
	return &Provider{}
}

func (p *Provider) Name() string {
	return "cgl"
}

func (p *Provider) Kind() backend.Kind {
	return backend.Native
}

// Create returns an error indicating CGL is not available.
func (p *Provider) Create(width, height int) (backend.Context, error) {
	return nil, &backend.ContextCreationError{
		Provider: p.Name(),
		Kind:     backend.Native,
		Cause:    backend.CauseUnsupported,
		Err:      errors.New("CGL contexts need darwin and cgo"),
	}
}

func (p *Provider) Destroy(ctx backend.Context) error {
	return &backend.ForeignContextError{Provider: p.Name(), Context: ctx}
}
