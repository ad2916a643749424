package sdl2_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valerio/go-shadertoy/shadertoy/backend"
	"github.com/valerio/go-shadertoy/shadertoy/backend/sdl2"
)

func TestSDL2ImplementsProvider(t *testing.T) {
	var _ backend.Provider = (*sdl2.Provider)(nil)
}

func TestSDL2Identity(t *testing.T) {
	p := sdl2.New()
	assert.Equal(t, "sdl2", p.Name())
	assert.Equal(t, backend.Windowed, p.Kind())
}
