//go:build !cgo

package windowed

import (
	"errors"

	"github.com/valerio/go-shadertoy/shadertoy/backend"
)

// Provider stub for builds without cgo.
type Provider struct{}

// New creates a stub GLFW provider whose Create always fails.
func New() *Provider {
	return &Provider{}
}

func (p *Provider) Name() string {
	return "glfw"
}

func (p *Provider) Kind() backend.Kind {
	return backend.Windowed
}

// Create returns an error indicating GLFW is not available.
func (p *Provider) Create(width, height int) (backend.Context, error) {
	return nil, &backend.ContextCreationError{
		Provider: p.Name(),
		Kind:     backend.Windowed,
		Cause:    backend.CauseUnsupported,
		Err:      errors.New("GLFW windows need cgo"),
	}
}

func (p *Provider) Destroy(ctx backend.Context) error {
	return &backend.ForeignContextError{Provider: p.Name(), Context: ctx}
}
