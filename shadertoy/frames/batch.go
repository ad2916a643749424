package frames

import (
	"errors"
	"fmt"
)

// Batch is an ordered sequence of equally sized frames, laid out contiguously
// as frames x height x width x 3.
type Batch struct {
	Frames int
	Width  int
	Height int
	Pix    []float32
}

// NewBatch allocates a zeroed batch.
func NewBatch(frames, width, height int) *Batch {
	return &Batch{
		Frames: frames,
		Width:  width,
		Height: height,
		Pix:    make([]float32, frames*width*height*Channels),
	}
}

// Stack builds a batch from individual images along a new leading frame
// dimension. All images must share the same size.
func Stack(images []Image) (*Batch, error) {
	if len(images) == 0 {
		return nil, errors.New("cannot stack an empty image list")
	}
	w, h := images[0].Width, images[0].Height
	b := NewBatch(len(images), w, h)
	for i, img := range images {
		if img.Width != w || img.Height != h {
			return nil, fmt.Errorf("frame %d is %dx%d, want %dx%d", i, img.Width, img.Height, w, h)
		}
		if err := img.Validate(); err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		copy(b.Pix[i*b.frameLen():], img.Pix)
	}
	return b, nil
}

// Single wraps one image as a one-frame batch.
func Single(img Image) *Batch {
	return &Batch{Frames: 1, Width: img.Width, Height: img.Height, Pix: img.Pix}
}

func (b *Batch) frameLen() int {
	return b.Width * b.Height * Channels
}

// Frame returns a view of frame i. The returned image shares memory with the batch.
func (b *Batch) Frame(i int) Image {
	n := b.frameLen()
	return Image{Width: b.Width, Height: b.Height, Pix: b.Pix[i*n : (i+1)*n : (i+1)*n]}
}

// Clamped returns frame i, or the last frame when the batch is shorter than i+1.
func (b *Batch) Clamped(i int) Image {
	if i >= b.Frames {
		i = b.Frames - 1
	}
	if i < 0 {
		i = 0
	}
	return b.Frame(i)
}

// Shape returns the dimensions as (frames, height, width, channels).
func (b *Batch) Shape() [4]int {
	return [4]int{b.Frames, b.Height, b.Width, Channels}
}

// Validate checks the dimensions against the pixel slice.
func (b *Batch) Validate() error {
	if b.Frames <= 0 {
		return fmt.Errorf("batch has %d frames", b.Frames)
	}
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("invalid batch frame size %dx%d", b.Width, b.Height)
	}
	if want := b.Frames * b.frameLen(); len(b.Pix) != want {
		return fmt.Errorf("batch %dx%dx%d has %d components, want %d", b.Frames, b.Height, b.Width, len(b.Pix), want)
	}
	return nil
}
