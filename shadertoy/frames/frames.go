package frames

import (
	"fmt"
	"image"
	"image/color"

	"github.com/chewxy/math32"
)

// Channels is the number of color components stored per pixel.
const Channels = 3

// Image is a single RGB frame with float components, stored row-major with
// the origin at the top-left corner.
type Image struct {
	Width  int
	Height int
	Pix    []float32
}

// NewImage creates a black image with the specified size.
func NewImage(width, height int) Image {
	return Image{
		Width:  width,
		Height: height,
		Pix:    make([]float32, width*height*Channels),
	}
}

func (img Image) offset(x, y int) int {
	return (y*img.Width + x) * Channels
}

// At returns the RGB components of the pixel at (x, y).
func (img Image) At(x, y int) [3]float32 {
	i := img.offset(x, y)
	return [3]float32{img.Pix[i], img.Pix[i+1], img.Pix[i+2]}
}

func (img Image) Set(x, y int, rgb [3]float32) {
	i := img.offset(x, y)
	img.Pix[i], img.Pix[i+1], img.Pix[i+2] = rgb[0], rgb[1], rgb[2]
}

// FlipVertical returns a copy of the image with its rows in reverse order.
func (img Image) FlipVertical() Image {
	out := NewImage(img.Width, img.Height)
	stride := img.Width * Channels
	for y := 0; y < img.Height; y++ {
		src := img.Pix[y*stride : (y+1)*stride]
		dst := (img.Height - 1 - y) * stride
		copy(out.Pix[dst:dst+stride], src)
	}
	return out
}

// Validate checks that the pixel slice matches the declared dimensions.
func (img Image) Validate() error {
	if img.Width <= 0 || img.Height <= 0 {
		return fmt.Errorf("invalid image size %dx%d", img.Width, img.Height)
	}
	if want := img.Width * img.Height * Channels; len(img.Pix) != want {
		return fmt.Errorf("image %dx%d has %d components, want %d", img.Width, img.Height, len(img.Pix), want)
	}
	return nil
}

// ToRGBA converts the image to an 8-bit image, clamping components to [0,1].
func (img Image) ToRGBA() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			rgb := img.At(x, y)
			out.SetRGBA(x, y, color.RGBA{
				R: ToByte(rgb[0]),
				G: ToByte(rgb[1]),
				B: ToByte(rgb[2]),
				A: 0xFF,
			})
		}
	}
	return out
}

// FromImage converts any image into an Image, dropping alpha.
func FromImage(src image.Image) Image {
	b := src.Bounds()
	out := NewImage(b.Dx(), b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			r, g, bl, _ := src.At(b.Min.X+x, b.Min.Y+y).RGBA()
			out.Set(x, y, [3]float32{
				float32(r>>8) / 255,
				float32(g>>8) / 255,
				float32(bl>>8) / 255,
			})
		}
	}
	return out
}

// ToByte maps a [0,1] component to 0..255, rounding to nearest.
func ToByte(v float32) uint8 {
	v = math32.Max(0, math32.Min(1, v))
	return uint8(math32.Round(v * 255))
}
