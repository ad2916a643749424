package headless_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valerio/go-shadertoy/shadertoy/backend"
	"github.com/valerio/go-shadertoy/shadertoy/backend/backendtest"
	"github.com/valerio/go-shadertoy/shadertoy/backend/headless"
)

func TestHeadlessImplementsProvider(t *testing.T) {
	// Compile-time check that headless.Provider implements backend.Provider
	var _ backend.Provider = (*headless.Provider)(nil)
}

func TestHeadlessIdentity(t *testing.T) {
	p := headless.New()
	assert.Equal(t, "egl", p.Name())
	assert.Equal(t, backend.Headless, p.Kind())
}

func TestHeadlessRejectsForeignContext(t *testing.T) {
	fake := backendtest.New(backend.Headless)
	ctx, err := fake.Create(64, 64)
	assert.NoError(t, err)

	err = headless.New().Destroy(ctx)
	var foreign *backend.ForeignContextError
	assert.ErrorAs(t, err, &foreign)
}
