package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli"
	"github.com/valerio/go-shadertoy/shadertoy"
	"github.com/valerio/go-shadertoy/shadertoy/backend"
	"github.com/valerio/go-shadertoy/shadertoy/config"
	"github.com/valerio/go-shadertoy/shadertoy/glsl"
	"github.com/valerio/go-shadertoy/shadertoy/imageio"
	"github.com/valerio/go-shadertoy/shadertoy/platform"
)

var renderFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "config",
		Usage: "Path to a TOML or YAML job file; flags override its values",
	},
	cli.IntFlag{
		Name:  "width",
		Usage: "Output width in pixels (64 to 16384, multiple of 8)",
		Value: config.Default().Width,
	},
	cli.IntFlag{
		Name:  "height",
		Usage: "Output height in pixels (64 to 16384, multiple of 8)",
		Value: config.Default().Height,
	},
	cli.IntFlag{
		Name:  "frames",
		Usage: "Number of frames to render",
		Value: config.Default().Frames,
	},
	cli.IntFlag{
		Name:  "fps",
		Usage: "Frame rate used to derive iTime (1 to 120)",
		Value: config.Default().FPS,
	},
	cli.StringFlag{
		Name:  "shader",
		Usage: "Path to a file holding a mainImage body, - for stdin",
	},
	cli.StringFlag{Name: "channel0", Usage: "Image, animated GIF or frame directory bound to iChannel0"},
	cli.StringFlag{Name: "channel1", Usage: "Image, animated GIF or frame directory bound to iChannel1"},
	cli.StringFlag{Name: "channel2", Usage: "Image, animated GIF or frame directory bound to iChannel2"},
	cli.StringFlag{Name: "channel3", Usage: "Image, animated GIF or frame directory bound to iChannel3"},
	cli.BoolFlag{
		Name:  "resize-channels",
		Usage: "Resize channel inputs to the output size",
	},
	cli.StringFlag{
		Name:  "offsets",
		Usage: "Comma separated per-frame values for the offset uniform x component",
	},
	cli.IntFlag{
		Name:  "offset-channel",
		Usage: "Render the built-in channel offset shader shifting this color channel (0-3)",
	},
	cli.StringSliceFlag{
		Name:  "uniform",
		Usage: "Extra float uniform as name=v1[,v2,v3,v4], repeatable",
	},
	cli.StringFlag{
		Name:  "platform",
		Usage: "Platform strategy: native, headless or windowed (default: detected)",
	},
	cli.StringFlag{
		Name:  "provider",
		Usage: "Context provider: " + strings.Join(platform.Names(), ", ") + " (default: per platform)",
	},
	cli.StringFlag{
		Name:  "out",
		Usage: "Directory for the rendered PNG frames",
		Value: config.Default().Out,
	},
	cli.StringFlag{
		Name:  "gif",
		Usage: "Also write the frames as an animated GIF to this path",
	},
	cli.BoolFlag{
		Name:  "verbose",
		Usage: "Enable debug logging",
	},
}

type renderCommand struct {
	stdin       io.Reader
	newRenderer rendererFactory
}

func (r *renderCommand) run(c *cli.Context) error {
	setupLogging(os.Stderr, c.Bool("verbose"))

	job := config.Default()
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		job = loaded
	}
	if err := applyFlags(c, &job); err != nil {
		return err
	}

	req, err := r.buildRequest(job)
	if err != nil {
		return err
	}

	kind, err := platform.Detect()
	if job.Platform != "" {
		kind, err = backend.ParseKind(job.Platform)
	}
	if err != nil {
		return err
	}
	renderer, err := r.newRenderer(kind, job.Provider)
	if err != nil {
		return err
	}

	slog.Info("Rendering",
		"platform", kind,
		"provider", renderer.Provider().Name(),
		"size", fmt.Sprintf("%dx%d", req.Width, req.Height),
		"frames", req.FrameCount,
		"fps", req.FPS)

	batch, err := renderer.Render(req)
	if err != nil {
		return err
	}

	if job.Out != "" {
		if _, err := imageio.SavePNGs(job.Out, "frame", batch); err != nil {
			return err
		}
	}
	if job.GIF != "" {
		if err := imageio.SaveGIF(job.GIF, batch, req.FPS); err != nil {
			return err
		}
	}
	return nil
}

// applyFlags overrides job fields with every flag set on the command line.
func applyFlags(c *cli.Context, job *config.Job) error {
	ints := map[string]*int{
		"width":  &job.Width,
		"height": &job.Height,
		"frames": &job.Frames,
		"fps":    &job.FPS,
	}
	for name, dst := range ints {
		if c.IsSet(name) {
			*dst = c.Int(name)
		}
	}

	strs := map[string]*string{
		"shader":   &job.Shader,
		"platform": &job.Platform,
		"provider": &job.Provider,
		"out":      &job.Out,
		"gif":      &job.GIF,
	}
	for name, dst := range strs {
		if c.IsSet(name) {
			*dst = c.String(name)
		}
	}
	if c.IsSet("shader") {
		job.ShaderSource = ""
	}

	for slot := 0; slot < config.MaxChannels; slot++ {
		name := fmt.Sprintf("channel%d", slot)
		if !c.IsSet(name) {
			continue
		}
		for len(job.Channels) <= slot {
			job.Channels = append(job.Channels, "")
		}
		job.Channels[slot] = c.String(name)
	}

	if c.IsSet("resize-channels") {
		job.ResizeChannels = c.Bool("resize-channels")
	}
	if c.IsSet("offset-channel") {
		ch := c.Int("offset-channel")
		job.OffsetChannel = &ch
	}
	if c.IsSet("offsets") {
		offsets, err := parseOffsets(c.String("offsets"))
		if err != nil {
			return err
		}
		job.Offsets = offsets
	}
	for _, arg := range c.StringSlice("uniform") {
		name, values, err := parseUniform(arg)
		if err != nil {
			return err
		}
		if job.Uniforms == nil {
			job.Uniforms = make(map[string][]float32)
		}
		job.Uniforms[name] = values
	}
	return nil
}

func (r *renderCommand) buildRequest(job config.Job) (shadertoy.Request, error) {
	req := shadertoy.Request{
		Width:      job.Width,
		Height:     job.Height,
		FrameCount: job.Frames,
		FPS:        job.FPS,
		Offsets:    job.Offsets,
		Uniforms:   job.Uniforms,
	}
	// reject bad sizes before decoding any channel input
	if err := req.Validate(); err != nil {
		return req, err
	}

	source, err := r.shaderSource(job)
	if err != nil {
		return req, err
	}
	req.Shader = source

	var opts imageio.Options
	if job.ResizeChannels {
		opts = imageio.Options{Width: job.Width, Height: job.Height}
	}
	for slot, path := range job.Channels {
		if path == "" {
			continue
		}
		b, err := imageio.Load(path, opts)
		if err != nil {
			return req, fmt.Errorf("channel %d: %w", slot, err)
		}
		req.Channels[slot] = b
	}
	return req, nil
}

func (r *renderCommand) shaderSource(job config.Job) (string, error) {
	switch {
	case job.OffsetChannel != nil:
		return glsl.ChannelOffset(*job.OffsetChannel)
	case job.Shader == "-":
		data, err := io.ReadAll(r.stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read shader from stdin: %w", err)
		}
		return string(data), nil
	case job.Shader != "":
		data, err := os.ReadFile(job.Shader)
		if err != nil {
			return "", fmt.Errorf("failed to read shader: %w", err)
		}
		return string(data), nil
	}
	return job.ShaderSource, nil
}

func parseFloats(s string) ([]float32, error) {
	var out []float32
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		v, err := strconv.ParseFloat(field, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", field, err)
		}
		out = append(out, float32(v))
	}
	return out, nil
}

func parseOffsets(s string) ([]float32, error) {
	offsets, err := parseFloats(s)
	if err != nil {
		return nil, fmt.Errorf("--offsets: %w", err)
	}
	return offsets, nil
}

// parseUniform parses name=v1[,v2,v3,v4].
func parseUniform(arg string) (string, []float32, error) {
	name, list, ok := strings.Cut(arg, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", nil, fmt.Errorf("--uniform %q: want name=v1[,v2,v3,v4]", arg)
	}
	values, err := parseFloats(list)
	if err != nil {
		return "", nil, fmt.Errorf("--uniform %s: %w", name, err)
	}
	if len(values) < 1 || len(values) > 4 {
		return "", nil, fmt.Errorf("--uniform %s: %d values given, want 1 to 4", name, len(values))
	}
	return name, values, nil
}

func printShader(c *cli.Context) error {
	switch name := c.Args().First(); name {
	case "default":
		fmt.Fprint(c.App.Writer, glsl.Default)
	case "passthrough":
		fmt.Fprint(c.App.Writer, glsl.Passthrough)
	case "offset":
		ch, err := strconv.Atoi(c.Args().Get(1))
		if err != nil {
			return fmt.Errorf("offset shader needs a color channel 0-%d", glsl.MaxColorChannel)
		}
		body, err := glsl.ChannelOffset(ch)
		if err != nil {
			return err
		}
		fmt.Fprint(c.App.Writer, body)
	default:
		cli.ShowCommandHelp(c, "shader")
		return errors.New("unknown shader " + strconv.Quote(name))
	}
	return nil
}

func printPlatform(c *cli.Context) error {
	kind, err := platform.Detect()
	if err != nil {
		return err
	}
	p, err := platform.New(kind, "")
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "platform: %s\nprovider: %s\navailable: %s\n",
		kind, p.Name(), strings.Join(platform.Names(), ", "))
	return nil
}
