package shadertoy

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"runtime"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/valerio/go-shadertoy/shadertoy/backend"
	"github.com/valerio/go-shadertoy/shadertoy/frames"
	"github.com/valerio/go-shadertoy/shadertoy/glsl"
	"github.com/valerio/go-shadertoy/shadertoy/gpu"
)

// State is the lifecycle phase of the context owned by a render pass.
type State int32

const (
	Uninitialized State = iota
	ContextActive
	Rendering
	Destroyed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case ContextActive:
		return "context active"
	case Rendering:
		return "rendering"
	case Destroyed:
		return "destroyed"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

// DeviceFactory loads the GL entry points for a freshly created context.
type DeviceFactory func(ctx backend.Context) (gpu.Device, error)

// DefaultProgressInterval is the number of frames between progress logs.
const DefaultProgressInterval = 100

// Renderer runs render passes on contexts obtained from one provider.
// Passes on the same Renderer are serialized; no GPU object outlives a pass.
type Renderer struct {
	provider         backend.Provider
	newDevice        DeviceFactory
	logger           *slog.Logger
	progressInterval int

	mu    sync.Mutex
	state atomic.Int32
}

type Option func(*Renderer)

// WithDeviceFactory sets how a Device is obtained for each context.
func WithDeviceFactory(f DeviceFactory) Option {
	return func(r *Renderer) { r.newDevice = f }
}

// WithLogger replaces slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) { r.logger = l }
}

// WithProgressInterval logs progress every n frames. Zero disables it.
func WithProgressInterval(n int) Option {
	return func(r *Renderer) { r.progressInterval = n }
}

// NewRenderer creates a renderer for the given provider.
func NewRenderer(provider backend.Provider, opts ...Option) *Renderer {
	r := &Renderer{
		provider:         provider,
		logger:           slog.Default(),
		progressInterval: DefaultProgressInterval,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Provider returns the provider contexts are created with.
func (r *Renderer) Provider() backend.Provider {
	return r.provider
}

// State reports the lifecycle phase of the current or last render pass.
func (r *Renderer) State() State {
	return State(r.state.Load())
}

func (r *Renderer) setState(s State) {
	r.state.Store(int32(s))
}

// Render validates req, then renders req.FrameCount frames in index order
// and returns them as one batch. Every GPU resource and the context are
// released before Render returns, whether it succeeds or not.
func (r *Renderer) Render(req Request) (out *frames.Batch, err error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if r.newDevice == nil {
		return nil, errors.New("renderer has no device factory")
	}
	source := glsl.Assemble(req.Source())

	r.mu.Lock()
	defer r.mu.Unlock()

	// GL contexts are bound to the thread that made them current.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	log := r.logger.With("provider", r.provider.Name(), "width", req.Width, "height", req.Height)
	start := time.Now()

	ctx, err := r.provider.Create(req.Width, req.Height)
	if err != nil {
		return nil, fmt.Errorf("failed to create render context: %w", err)
	}
	r.setState(ContextActive)
	log.Debug("render context created", "kind", ctx.Kind())

	defer func() {
		if derr := r.provider.Destroy(ctx); derr != nil {
			log.Error("failed to destroy render context", "error", derr)
			if err == nil {
				out, err = nil, fmt.Errorf("failed to destroy render context: %w", derr)
			}
		}
		r.setState(Destroyed)
		log.Debug("render context destroyed")
	}()

	dev, err := r.newDevice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load GL: %w", err)
	}

	prog, err := gpu.Compile(dev, source)
	if err != nil {
		return nil, fmt.Errorf("failed to build shader program: %w", err)
	}
	defer prog.Release()

	// The core profile refuses to draw without a vertex array bound, even
	// though the vertex stage reads no attributes.
	vao := dev.GenVertexArray()
	dev.BindVertexArray(vao)
	defer dev.DeleteVertexArray(vao)

	fb, err := gpu.NewFramebuffer(dev, req.Width, req.Height)
	if err != nil {
		return nil, fmt.Errorf("failed to create render target: %w", err)
	}
	defer fb.Release()

	channels := gpu.NewChannels(dev)
	defer channels.Release()

	extras := slices.Sorted(maps.Keys(req.Uniforms))
	batch := frames.NewBatch(req.FrameCount, req.Width, req.Height)

	for i := 0; i < req.FrameCount; i++ {
		r.setState(Rendering)

		prog.BindFrame(gpu.NewFrameParams(i, req.FPS, req.Width, req.Height))
		if off, ok := req.offset(i); ok {
			if err := prog.SetFloat(glsl.OffsetUniform, off, 0); err != nil {
				return nil, err
			}
		}
		for _, name := range extras {
			if err := prog.SetFloat(name, req.Uniforms[name]...); err != nil {
				return nil, err
			}
		}

		for slot, b := range req.Channels {
			if b == nil {
				continue
			}
			if err := channels.Update(slot, b.Clamped(i)); err != nil {
				return nil, fmt.Errorf("frame %d: %w", i, err)
			}
		}
		channels.Bind(prog)

		fb.Draw(prog)
		fb.ReadInto(batch.Frame(i))
		r.setState(ContextActive)

		if r.progressInterval > 0 && (i+1)%r.progressInterval == 0 {
			log.Info("render progress", "frame", i+1, "total", req.FrameCount)
		}
	}

	elapsed := time.Since(start)
	log.Info("render pass complete",
		"frames", req.FrameCount,
		"elapsed", elapsed,
		"fps", float64(req.FrameCount)/elapsed.Seconds())
	return batch, nil
}
