// Package imageio loads channel inputs from image files and writes rendered
// batches back to disk.
package imageio

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/anthonynsimon/bild/transform"
	"github.com/h2non/filetype"
	"github.com/valerio/go-shadertoy/shadertoy/frames"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

// headerSize is enough for filetype to recognize every image format.
const headerSize = 262

// Supported lists the image formats a channel can be loaded from.
var Supported = map[string]bool{
	"png":  true,
	"jpg":  true,
	"gif":  true,
	"webp": true,
	"bmp":  true,
	"tif":  true,
}

// Options controls how channel inputs are loaded.
type Options struct {
	// Width and Height, when both set, resize every frame to that size.
	Width  int
	Height int
}

func (o Options) resize(img image.Image) image.Image {
	if o.Width <= 0 || o.Height <= 0 {
		return img
	}
	if b := img.Bounds(); b.Dx() == o.Width && b.Dy() == o.Height {
		return img
	}
	return transform.Resize(img, o.Width, o.Height, transform.Linear)
}

// UnsupportedFormatError is returned for files that are not a known image format.
type UnsupportedFormatError struct {
	Path string
	Type string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("%s: unrecognized file format", e.Path)
	}
	return fmt.Sprintf("%s: unsupported file format %s", e.Path, e.Type)
}

// Sniff returns the image format of data, as a file extension.
func Sniff(path string, data []byte) (string, error) {
	kind, err := filetype.Match(data[:min(len(data), headerSize)])
	if err != nil || kind == filetype.Unknown {
		return "", &UnsupportedFormatError{Path: path}
	}
	if !Supported[kind.Extension] {
		return "", &UnsupportedFormatError{Path: path, Type: kind.MIME.Value}
	}
	return kind.Extension, nil
}

// Load reads a channel input. A directory is read as one frame per image
// file in name order, an animated GIF as one frame per GIF frame, and any
// other image as a single frame.
func Load(path string, opts Options) (*frames.Batch, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open channel input: %w", err)
	}
	if info.IsDir() {
		return LoadDir(path, opts)
	}
	return LoadFile(path, opts)
}

// LoadFile decodes a single image file.
func LoadFile(path string, opts Options) (*frames.Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	format, err := Sniff(path, data)
	if err != nil {
		return nil, err
	}

	if format == "gif" {
		return decodeGIF(path, data, opts)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	slog.Debug("channel image loaded", "path", path, "format", format, "size", img.Bounds().Size())
	return frames.Single(frames.FromImage(opts.resize(img))), nil
}

// decodeGIF composites every frame of a GIF onto a canvas of the logical
// screen size, honoring the frame disposal methods.
func decodeGIF(path string, data []byte, opts Options) (*frames.Batch, error) {
	g, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if len(g.Image) == 0 {
		return nil, fmt.Errorf("%s: GIF has no frames", path)
	}

	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() {
		bounds = g.Image[0].Bounds()
	}
	canvas := image.NewRGBA(bounds)
	images := make([]frames.Image, len(g.Image))

	for i, frame := range g.Image {
		var previous *image.RGBA
		disposal := byte(0)
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}
		if disposal == gif.DisposalPrevious {
			previous = image.NewRGBA(bounds)
			copy(previous.Pix, canvas.Pix)
		}

		draw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
		images[i] = frames.FromImage(opts.resize(canvas))

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, frame.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			canvas = previous
		}
	}

	slog.Debug("animated channel loaded", "path", path, "frames", len(images), "size", bounds.Size())
	return frames.Stack(images)
}

// LoadDir decodes every image file in dir, sorted by name, into one batch.
// Files that are not images are skipped. Frames are decoded concurrently.
func LoadDir(dir string, opts Options) (*frames.Batch, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		ok, err := isImage(path)
		if err != nil {
			return nil, err
		}
		if ok {
			paths = append(paths, path)
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%s: no image files found", dir)
	}
	sort.Strings(paths)

	images := make([]frames.Image, len(paths))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			b, err := LoadFile(path, opts)
			if err != nil {
				return err
			}
			images[i] = b.Frame(0)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	batch, err := frames.Stack(images)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", dir, err)
	}
	slog.Debug("channel frames loaded", "dir", dir, "frames", batch.Frames)
	return batch, nil
}

func isImage(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	header := make([]byte, headerSize)
	n, _ := f.Read(header)
	return filetype.IsImage(header[:n]), nil
}
