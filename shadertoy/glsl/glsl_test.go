package glsl_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-shadertoy/shadertoy/glsl"
)

func TestAssemble(t *testing.T) {
	src := glsl.Assemble(glsl.Default)

	assert.True(t, strings.HasPrefix(src, glsl.Version))
	assert.True(t, strings.HasSuffix(src, glsl.Footer))
	assert.Contains(t, src, glsl.Default)

	// mainImage must be declared before the footer calls it
	assert.Less(t, strings.Index(src, "void mainImage"), strings.Index(src, "mainImage(_fragColor"))
}

func TestHeaderDeclaresBuiltins(t *testing.T) {
	for _, name := range []string{
		"iResolution", "iMouse", "iTime", "iTimeDelta", "iFrameRate", "iFrame",
		"iChannel0", "iChannel1", "iChannel2", "iChannel3",
	} {
		assert.Contains(t, glsl.Header, " "+name+";", "header should declare %s", name)
	}
}

func TestVertexUsesVertexID(t *testing.T) {
	assert.Contains(t, glsl.Vertex, "gl_VertexID")
	assert.NotContains(t, glsl.Vertex, " in vec")
}

func TestChannelOffset(t *testing.T) {
	t.Run("bakes the channel into the uniform default", func(t *testing.T) {
		src, err := glsl.ChannelOffset(2)
		require.NoError(t, err)
		assert.Contains(t, src, "uniform float colorChannel = 2.0;")
		assert.Contains(t, src, "uniform vec2 offset")
		assert.Contains(t, src, "void mainImage")
	})

	t.Run("rejects out of range channels", func(t *testing.T) {
		for _, ch := range []int{-1, 4} {
			_, err := glsl.ChannelOffset(ch)
			assert.Error(t, err, "channel %d", ch)
		}
	})
}
