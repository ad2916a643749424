package imageio

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/valerio/go-shadertoy/shadertoy/frames"
	"golang.org/x/sync/errgroup"
)

// FrameName returns the file name of frame i of a batch saved with prefix.
func FrameName(prefix string, i int) string {
	return fmt.Sprintf("%s_%05d.png", prefix, i)
}

// SavePNGs writes every frame of b to dir as prefix_NNNNN.png and returns the
// written paths in frame order. Frames are encoded concurrently.
func SavePNGs(dir, prefix string, b *frames.Batch) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	paths := make([]string, b.Frames)
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < b.Frames; i++ {
		paths[i] = filepath.Join(dir, FrameName(prefix, i))
		g.Go(func() error {
			return savePNG(paths[i], b.Frame(i).ToRGBA())
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Info("frames saved", "dir", dir, "frames", b.Frames, "size", fmt.Sprintf("%dx%d", b.Width, b.Height), "format", "PNG")
	return paths, nil
}

func savePNG(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode PNG %s: %w", path, err)
	}
	return file.Close()
}

// SaveGIF writes b as a looping animated GIF played back at fps. Frames are
// dithered onto the Plan 9 palette.
func SaveGIF(path string, b *frames.Batch, fps int) error {
	if fps <= 0 {
		return fmt.Errorf("invalid GIF frame rate %d", fps)
	}
	// GIF delays are in hundredths of a second.
	delay := max(1, (100+fps/2)/fps)

	anim := &gif.GIF{
		Image: make([]*image.Paletted, b.Frames),
		Delay: make([]int, b.Frames),
	}
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < b.Frames; i++ {
		anim.Delay[i] = delay
		g.Go(func() error {
			src := b.Frame(i).ToRGBA()
			dst := image.NewPaletted(src.Bounds(), palette.Plan9)
			draw.FloydSteinberg.Draw(dst, src.Bounds(), src, image.Point{})
			anim.Image[i] = dst
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}
	if err := gif.EncodeAll(file, anim); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode GIF %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return err
	}

	slog.Info("animation saved", "path", path, "frames", b.Frames, "delay", delay, "format", "GIF")
	return nil
}
