package imageio_test

import (
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-shadertoy/shadertoy/frames"
	"github.com/valerio/go-shadertoy/shadertoy/imageio"
)

func rgbaPattern(w, h int, seed uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x*16) + seed, G: uint8(y * 16), B: seed, A: 0xFF})
		}
	}
	return img
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

func TestLoadFilePNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.png")
	src := rgbaPattern(8, 4, 3)
	writePNG(t, path, src)

	b, err := imageio.Load(path, imageio.Options{})
	require.NoError(t, err)
	assert.Equal(t, [4]int{1, 4, 8, 3}, b.Shape())
	assert.Equal(t, src.Pix, b.Frame(0).ToRGBA().Pix)
}

func TestLoadFileResize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.png")
	writePNG(t, path, rgbaPattern(8, 4, 0))

	b, err := imageio.Load(path, imageio.Options{Width: 16, Height: 12})
	require.NoError(t, err)
	assert.Equal(t, [4]int{1, 12, 16, 3}, b.Shape())
}

func TestLoadRejectsNonImages(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.png")
	require.NoError(t, os.WriteFile(path, []byte("definitely not a picture"), 0o644))

	_, err := imageio.Load(path, imageio.Options{})
	var unsupported *imageio.UnsupportedFormatError
	require.True(t, errors.As(err, &unsupported), "got %v", err)
	assert.Equal(t, path, unsupported.Path)
}

func TestLoadMissing(t *testing.T) {
	_, err := imageio.Load(filepath.Join(t.TempDir(), "missing.png"), imageio.Options{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	// written out of order; frames follow file names
	writePNG(t, filepath.Join(dir, "frame_002.png"), rgbaPattern(8, 8, 2))
	writePNG(t, filepath.Join(dir, "frame_000.png"), rgbaPattern(8, 8, 0))
	writePNG(t, filepath.Join(dir, "frame_001.png"), rgbaPattern(8, 8, 1))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.txt"), []byte("frames"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))

	b, err := imageio.Load(dir, imageio.Options{})
	require.NoError(t, err)
	require.Equal(t, 3, b.Frames)
	for i := 0; i < 3; i++ {
		assert.Equal(t, rgbaPattern(8, 8, uint8(i)).Pix, b.Frame(i).ToRGBA().Pix, "frame %d", i)
	}
}

func TestLoadDirSizeMismatch(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), rgbaPattern(8, 8, 0))
	writePNG(t, filepath.Join(dir, "b.png"), rgbaPattern(4, 8, 0))

	_, err := imageio.Load(dir, imageio.Options{})
	assert.ErrorContains(t, err, "want 8x8")

	b, err := imageio.Load(dir, imageio.Options{Width: 8, Height: 8})
	require.NoError(t, err)
	assert.Equal(t, 2, b.Frames)
}

func TestLoadDirEmpty(t *testing.T) {
	_, err := imageio.Load(t.TempDir(), imageio.Options{})
	assert.ErrorContains(t, err, "no image files")
}

func TestLoadAnimatedGIF(t *testing.T) {
	pal := color.Palette{color.Black, color.White, color.RGBA{R: 0xFF, A: 0xFF}}
	anim := &gif.GIF{Config: image.Config{Width: 4, Height: 4, ColorModel: pal}}
	for i := 0; i < 3; i++ {
		frame := image.NewPaletted(image.Rect(0, 0, 4, 4), pal)
		for p := range frame.Pix {
			frame.Pix[p] = uint8(i)
		}
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 10)
	}
	path := filepath.Join(t.TempDir(), "anim.gif")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, gif.EncodeAll(f, anim))
	require.NoError(t, f.Close())

	b, err := imageio.Load(path, imageio.Options{})
	require.NoError(t, err)
	require.Equal(t, [4]int{3, 4, 4, 3}, b.Shape())
	assert.Equal(t, [3]float32{0, 0, 0}, b.Frame(0).At(1, 1))
	assert.Equal(t, [3]float32{1, 1, 1}, b.Frame(1).At(1, 1))
	assert.Equal(t, [3]float32{1, 0, 0}, b.Frame(2).At(1, 1))
}

func TestSavePNGsRoundTrip(t *testing.T) {
	images := []frames.Image{
		frames.FromImage(rgbaPattern(8, 8, 5)),
		frames.FromImage(rgbaPattern(8, 8, 9)),
	}
	b, err := frames.Stack(images)
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "out")
	paths, err := imageio.SavePNGs(dir, "frame", b)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "frame_00000.png"),
		filepath.Join(dir, "frame_00001.png"),
	}, paths)

	loaded, err := imageio.Load(dir, imageio.Options{})
	require.NoError(t, err)
	assert.Equal(t, b.Pix, loaded.Pix)
}

func TestSaveGIF(t *testing.T) {
	b := frames.NewBatch(4, 8, 8)
	for i := range b.Pix {
		b.Pix[i] = float32(i%7) / 6
	}
	path := filepath.Join(t.TempDir(), "out.gif")
	require.NoError(t, imageio.SaveGIF(path, b, 25))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	anim, err := gif.DecodeAll(f)
	require.NoError(t, err)
	assert.Len(t, anim.Image, 4)
	assert.Equal(t, []int{4, 4, 4, 4}, anim.Delay)

	assert.Error(t, imageio.SaveGIF(path, b, 0))
}

func TestSniff(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.png")
	writePNG(t, path, rgbaPattern(2, 2, 0))
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	format, err := imageio.Sniff(path, data)
	require.NoError(t, err)
	assert.Equal(t, "png", format)

	_, err = imageio.Sniff("empty", nil)
	assert.Error(t, err)
}
