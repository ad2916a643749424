//go:build gpu

package glcore_test

import (
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-shadertoy/shadertoy/glsl"
	"github.com/valerio/go-shadertoy/shadertoy/gpu"
	"github.com/valerio/go-shadertoy/shadertoy/gpu/glcore"
	"github.com/valerio/go-shadertoy/shadertoy/platform"
)

func withDevice(t *testing.T, fn func(dev gpu.Device)) {
	t.Helper()
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	kind, err := platform.Detect()
	require.NoError(t, err)
	p, err := platform.New(kind, "")
	require.NoError(t, err)
	ctx, err := p.Create(64, 64)
	require.NoError(t, err)
	defer p.Destroy(ctx)

	dev, err := glcore.New(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, glcore.Version())
	fn(dev)
}

func TestCompileReportsDriverLog(t *testing.T) {
	withDevice(t, func(dev gpu.Device) {
		_, err := gpu.Compile(dev, glsl.Assemble("void mainImage(out vec4 c, in vec2 p) { c = undefinedThing; }"))
		var compileErr *gpu.ShaderCompileError
		require.True(t, errors.As(err, &compileErr), "got %v", err)
		assert.Equal(t, gpu.StageFragment, compileErr.Stage)
		assert.NotEmpty(t, compileErr.Log)
	})
}

func TestUnknownUniformIsNoop(t *testing.T) {
	withDevice(t, func(dev gpu.Device) {
		p, err := gpu.Compile(dev, glsl.Assemble(glsl.Default))
		require.NoError(t, err)
		defer p.Release()

		p.Use()
		assert.Equal(t, int32(-1), p.Location("notDeclared"))
		assert.NoError(t, p.SetFloat("notDeclared", 1, 2))
		assert.GreaterOrEqual(t, p.Location(gpu.UniformTime), int32(0))
	})
}
