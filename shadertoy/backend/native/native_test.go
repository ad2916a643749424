package native_test

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valerio/go-shadertoy/shadertoy/backend"
	"github.com/valerio/go-shadertoy/shadertoy/backend/native"
)

func TestNativeImplementsProvider(t *testing.T) {
	var _ backend.Provider = (*native.Provider)(nil)
}

func TestNativeIdentity(t *testing.T) {
	p := native.New()
	assert.Equal(t, "cgl", p.Name())
	assert.Equal(t, backend.Native, p.Kind())
}

func TestNativeUnsupportedOffDarwin(t *testing.T) {
	if runtime.GOOS == "darwin" {
		t.Skip("CGL is available on darwin")
	}
	_, err := native.New().Create(64, 64)

	var cce *backend.ContextCreationError
	if assert.ErrorAs(t, err, &cce) {
		assert.Equal(t, backend.CauseUnsupported, cce.Cause)
	}
}
