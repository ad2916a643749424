package main

import (
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/urfave/cli"
	"github.com/valerio/go-shadertoy/shadertoy"
	"github.com/valerio/go-shadertoy/shadertoy/backend"
	"github.com/valerio/go-shadertoy/shadertoy/platform"
	"golang.org/x/term"
)

func init() {
	// Some GL platforms only accept context creation from the main thread.
	runtime.LockOSThread()
}

func main() {
	app := newApp(os.Stdin, newPlatformRenderer)
	if err := app.Run(os.Args); err != nil {
		slog.Error("Error running shadertoy", "error", err)
		os.Exit(1)
	}
}

// rendererFactory builds the renderer for a platform strategy and optional
// provider name.
type rendererFactory func(kind backend.Kind, provider string) (*shadertoy.Renderer, error)

func newPlatformRenderer(kind backend.Kind, provider string) (*shadertoy.Renderer, error) {
	p, err := platform.New(kind, provider)
	if err != nil {
		return nil, err
	}
	return platform.NewRenderer(p), nil
}

func setupLogging(w *os.File, verbose bool) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		opts.Level = slog.LevelDebug
	}
	var handler slog.Handler
	if term.IsTerminal(int(w.Fd())) {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func newApp(stdin io.Reader, newRenderer rendererFactory) *cli.App {
	app := cli.NewApp()
	app.Name = "shadertoy"
	app.Description = "Render Shadertoy fragment shaders offscreen into image sequences"
	app.Usage = "shadertoy [options]"
	app.Version = "1.0.0"
	app.Flags = renderFlags

	r := &renderCommand{stdin: stdin, newRenderer: newRenderer}
	app.Action = r.run
	app.Commands = []cli.Command{
		{
			Name:   "render",
			Usage:  "Render a shader to PNG frames and optionally an animated GIF",
			Flags:  renderFlags,
			Action: r.run,
		},
		{
			Name:      "shader",
			Usage:     "Print a built-in shader body",
			ArgsUsage: "default|passthrough|offset <color channel>",
			Action:    printShader,
		},
		{
			Name:   "platform",
			Usage:  "Print the platform strategy and providers for this host",
			Action: printPlatform,
		},
	}
	return app
}
