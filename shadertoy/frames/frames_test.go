package frames_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-shadertoy/shadertoy/frames"
)

func gradientImage(w, h int) frames.Image {
	img := frames.NewImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, [3]float32{float32(x) / 255, float32(y) / 255, 0.5})
		}
	}
	return img
}

func TestFlipVertical(t *testing.T) {
	img := gradientImage(4, 3)
	flipped := img.FlipVertical()

	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, img.At(x, y), flipped.At(x, 2-y))
		}
	}

	// flipping twice is the identity
	assert.Equal(t, img.Pix, flipped.FlipVertical().Pix)
	// the source is left untouched
	assert.Equal(t, float32(0), img.At(0, 0)[1])
}

func TestImageRGBARoundTrip(t *testing.T) {
	img := gradientImage(8, 8)
	rgba := img.ToRGBA()
	assert.Equal(t, color.RGBA{R: 3, G: 5, B: 128, A: 255}, rgba.RGBAAt(3, 5))

	back := frames.FromImage(rgba)
	assert.InDelta(t, img.At(3, 5)[0], back.At(3, 5)[0], 1e-6)
	assert.InDelta(t, img.At(3, 5)[1], back.At(3, 5)[1], 1e-6)
}

func TestFromImageHonorsBoundsOrigin(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 10, 12, 12))
	src.SetRGBA(10, 10, color.RGBA{R: 255, A: 255})

	img := frames.FromImage(src)
	require.Equal(t, 2, img.Width)
	assert.Equal(t, [3]float32{1, 0, 0}, img.At(0, 0))
}

func TestToByte(t *testing.T) {
	testCases := []struct {
		in   float32
		want uint8
	}{
		{-1, 0},
		{0, 0},
		{0.5, 128},
		{1, 255},
		{7, 255},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, frames.ToByte(tc.in), "ToByte(%v)", tc.in)
	}
}

func TestStack(t *testing.T) {
	t.Run("stacks along a leading dimension", func(t *testing.T) {
		a, b := gradientImage(4, 2), frames.NewImage(4, 2)
		batch, err := frames.Stack([]frames.Image{a, b})
		require.NoError(t, err)

		assert.Equal(t, [4]int{2, 2, 4, 3}, batch.Shape())
		assert.Equal(t, a.Pix, batch.Frame(0).Pix)
		assert.Equal(t, b.Pix, batch.Frame(1).Pix)
		assert.NoError(t, batch.Validate())
	})

	t.Run("rejects mismatched sizes", func(t *testing.T) {
		_, err := frames.Stack([]frames.Image{frames.NewImage(4, 2), frames.NewImage(2, 4)})
		assert.Error(t, err)
	})

	t.Run("rejects empty input", func(t *testing.T) {
		_, err := frames.Stack(nil)
		assert.Error(t, err)
	})
}

func TestBatchClamped(t *testing.T) {
	imgs := []frames.Image{gradientImage(2, 2), frames.NewImage(2, 2)}
	batch, err := frames.Stack(imgs)
	require.NoError(t, err)

	assert.Equal(t, imgs[0].Pix, batch.Clamped(0).Pix)
	assert.Equal(t, imgs[1].Pix, batch.Clamped(1).Pix)
	assert.Equal(t, imgs[1].Pix, batch.Clamped(50).Pix)
}

func TestBatchValidate(t *testing.T) {
	assert.Error(t, (&frames.Batch{}).Validate())
	assert.Error(t, (&frames.Batch{Frames: 1, Width: 2, Height: 2, Pix: make([]float32, 3)}).Validate())
	assert.NoError(t, frames.NewBatch(2, 2, 2).Validate())
}
