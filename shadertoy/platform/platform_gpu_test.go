//go:build gpu

package platform_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-shadertoy/shadertoy"
	"github.com/valerio/go-shadertoy/shadertoy/frames"
	"github.com/valerio/go-shadertoy/shadertoy/glsl"
	"github.com/valerio/go-shadertoy/shadertoy/gpu/gputest"
	"github.com/valerio/go-shadertoy/shadertoy/platform"
)

const tolerance = 1.5 / 255

func newGPURenderer(t *testing.T) *shadertoy.Renderer {
	t.Helper()
	kind, err := platform.Detect()
	require.NoError(t, err)
	p, err := platform.New(kind, "")
	require.NoError(t, err)
	return platform.NewRenderer(p)
}

func TestGPUDefaultGradient(t *testing.T) {
	r := newGPURenderer(t)
	req := shadertoy.Request{Width: 64, Height: 64, FrameCount: 2, FPS: 4}

	out, err := r.Render(req)
	require.NoError(t, err)
	require.Equal(t, [4]int{2, 64, 64, 3}, out.Shape())

	res := [2]float32{64, 64}
	for k := 0; k < 2; k++ {
		frame := out.Frame(k)
		for y := 0; y < 64; y += 9 {
			for x := 0; x < 64; x += 9 {
				want := gputest.GradientAt([2]float32{float32(x) + 0.5, float32(63-y) + 0.5}, res, float32(k)/4)
				got := frame.At(x, y)
				for c := 0; c < 3; c++ {
					assert.InDelta(t, want[c], got[c], tolerance, "frame %d (%d,%d)", k, x, y)
				}
			}
		}
	}
}

func TestGPUPassthroughAndChannelOffset(t *testing.T) {
	r := newGPURenderer(t)
	input := frames.NewImage(64, 64)
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			input.Set(x, y, [3]float32{float32(x*4) / 255, float32(y*4) / 255, float32(x+y) / 255})
		}
	}

	req := shadertoy.Request{Width: 64, Height: 64, FrameCount: 1, FPS: 30}
	req.Channels[0] = frames.Single(input)
	out, err := r.Render(req)
	require.NoError(t, err)
	assert.InDeltaSlice(t, input.Pix, out.Frame(0).Pix, tolerance)

	body, err := glsl.ChannelOffset(0)
	require.NoError(t, err)
	req.Shader = body
	req.Offsets = []float32{0.05}
	out, err = r.Render(req)
	require.NoError(t, err)

	frame := out.Frame(0)
	for y := 0; y < 64; y += 5 {
		for x := 8; x < 64; x += 5 {
			got, orig := frame.At(x, y), input.At(x, y)
			assert.InDelta(t, orig[1], got[1], tolerance)
			assert.InDelta(t, orig[2], got[2], tolerance)
			// linear filtering between the texels 3 and 4 to the left
			assert.InDelta(t, float32(x*4-13)/255, got[0], 2*tolerance, "red at (%d,%d)", x, y)
		}
	}
}
