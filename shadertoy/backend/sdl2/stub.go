//go:build !sdl2

package sdl2

import (
	"errors"

	"github.com/valerio/go-shadertoy/shadertoy/backend"
)

// Provider stub for when SDL2 is not available.
type Provider struct{}

// New creates a stub SDL2 provider whose Create always fails.
func New() *Provider {
	return &Provider{}
}

func (p *Provider) Name() string {
	return "sdl2"
}

func (p *Provider) Kind() backend.Kind {
	return backend.Windowed
}

// Create returns an error indicating SDL2 is not available.
func (p *Provider) Create(width, height int) (backend.Context, error) {
	return nil, &backend.ContextCreationError{
		Provider: p.Name(),
		Kind:     backend.Windowed,
		Cause:    backend.CauseUnsupported,
		Err:      errors.New("SDL2 provider not available, build with -tags sdl2 to enable"),
	}
}

func (p *Provider) Destroy(ctx backend.Context) error {
	return &backend.ForeignContextError{Provider: p.Name(), Context: ctx}
}
