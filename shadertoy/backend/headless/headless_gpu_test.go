//go:build gpu && linux && cgo

package headless_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-shadertoy/shadertoy/backend"
	"github.com/valerio/go-shadertoy/shadertoy/backend/headless"
)

func TestHeadlessCreateDestroy(t *testing.T) {
	p := headless.New()
	for i := 0; i < 3; i++ {
		ctx, err := p.Create(64, 72)
		require.NoError(t, err)

		w, h := ctx.Size()
		assert.Equal(t, 64, w)
		assert.Equal(t, 72, h)
		assert.Equal(t, backend.Headless, ctx.Kind())
		assert.NotNil(t, ctx.ProcAddress("glGetString"))

		require.NoError(t, p.Destroy(ctx))
	}
}
