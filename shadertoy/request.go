// Package shadertoy renders Shadertoy-style fragment shaders offscreen into
// batches of frames.
package shadertoy

import (
	"fmt"

	"github.com/valerio/go-shadertoy/shadertoy/frames"
	"github.com/valerio/go-shadertoy/shadertoy/glsl"
	"github.com/valerio/go-shadertoy/shadertoy/gpu"
)

// Request bounds.
const (
	MinResolution  = 64
	MaxResolution  = 16384
	ResolutionStep = 8
	MaxFrameCount  = 262144
	MinFPS         = 1
	MaxFPS         = 120
)

// Request holds every input of one render pass.
type Request struct {
	Width      int
	Height     int
	FrameCount int
	FPS        int

	// Shader is a mainImage body. Empty selects a built-in shader.
	Shader string

	// Offsets feeds the vec2 "offset" uniform as (Offsets[i], 0). A sequence
	// shorter than FrameCount repeats its last value.
	Offsets []float32

	// Channels are bound to iChannel0..3. A batch shorter than FrameCount
	// repeats its last frame.
	Channels [gpu.ChannelCount]*frames.Batch

	// Uniforms are extra float uniforms of arity 1 to 4, set every frame.
	Uniforms map[string][]float32
}

// ValidationError reports a request field outside its accepted range.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

var reservedUniforms = map[string]bool{
	gpu.UniformResolution: true,
	gpu.UniformMouse:      true,
	gpu.UniformTime:       true,
	gpu.UniformTimeDelta:  true,
	gpu.UniformFrameRate:  true,
	gpu.UniformFrame:      true,
}

func init() {
	for slot := 0; slot < gpu.ChannelCount; slot++ {
		reservedUniforms[gpu.ChannelUniform(slot)] = true
	}
}

func checkResolution(field string, v int) error {
	if v < MinResolution || v > MaxResolution {
		return &ValidationError{Field: field, Value: v, Reason: fmt.Sprintf("must be in [%d, %d]", MinResolution, MaxResolution)}
	}
	if v%ResolutionStep != 0 {
		return &ValidationError{Field: field, Value: v, Reason: fmt.Sprintf("must be a multiple of %d", ResolutionStep)}
	}
	return nil
}

// Validate checks the request without touching any GPU resource.
func (r *Request) Validate() error {
	if err := checkResolution("width", r.Width); err != nil {
		return err
	}
	if err := checkResolution("height", r.Height); err != nil {
		return err
	}
	if r.FrameCount < 1 || r.FrameCount > MaxFrameCount {
		return &ValidationError{Field: "frame count", Value: r.FrameCount, Reason: fmt.Sprintf("must be in [1, %d]", MaxFrameCount)}
	}
	if r.FPS < MinFPS || r.FPS > MaxFPS {
		return &ValidationError{Field: "fps", Value: r.FPS, Reason: fmt.Sprintf("must be in [%d, %d]", MinFPS, MaxFPS)}
	}
	for slot, b := range r.Channels {
		if b == nil {
			continue
		}
		if err := b.Validate(); err != nil {
			return &ValidationError{Field: gpu.ChannelUniform(slot), Value: b.Shape(), Reason: err.Error()}
		}
	}
	for name, v := range r.Uniforms {
		switch {
		case name == "":
			return &ValidationError{Field: "uniform", Value: name, Reason: "empty name"}
		case reservedUniforms[name]:
			return &ValidationError{Field: "uniform", Value: name, Reason: "name is set by the renderer"}
		case name == glsl.OffsetUniform && len(r.Offsets) > 0:
			return &ValidationError{Field: "uniform", Value: name, Reason: "conflicts with the offset sequence"}
		case len(v) < 1 || len(v) > 4:
			return &ValidationError{Field: "uniform " + name, Value: len(v), Reason: "arity must be 1 to 4"}
		}
	}
	return nil
}

// Source returns the mainImage body the request renders: the supplied
// shader, else pass-through when channel 0 is bound, else the default gradient.
func (r *Request) Source() string {
	switch {
	case r.Shader != "":
		return r.Shader
	case r.Channels[0] != nil:
		return glsl.Passthrough
	}
	return glsl.Default
}

// offset returns the offset for frame i, clamped to the last supplied value.
func (r *Request) offset(i int) (float32, bool) {
	if len(r.Offsets) == 0 {
		return 0, false
	}
	return r.Offsets[min(i, len(r.Offsets)-1)], true
}
