package gpu

import "fmt"

// FrameParams is the per-frame state exposed to the shader through the
// built-in uniforms. Mouse input is not modeled and is always zero.
type FrameParams struct {
	Index     int
	Time      float32
	TimeDelta float32
	FrameRate float32
	Width     int
	Height    int
}

// NewFrameParams derives the frame state for index at a fixed frame rate.
func NewFrameParams(index, fps, width, height int) FrameParams {
	return FrameParams{
		Index:     index,
		Time:      float32(float64(index) / float64(fps)),
		TimeDelta: float32(1 / float64(fps)),
		FrameRate: float32(fps),
		Width:     width,
		Height:    height,
	}
}

// BindFrame makes the program current and sets every built-in uniform.
func (p *Program) BindFrame(fp FrameParams) {
	p.Use()
	p.dev.Uniform3f(p.Location(UniformResolution), float32(fp.Width), float32(fp.Height), 0)
	p.dev.Uniform4f(p.Location(UniformMouse), 0, 0, 0, 0)
	p.dev.Uniform1f(p.Location(UniformTime), fp.Time)
	p.dev.Uniform1f(p.Location(UniformTimeDelta), fp.TimeDelta)
	p.dev.Uniform1f(p.Location(UniformFrameRate), fp.FrameRate)
	p.dev.Uniform1i(p.Location(UniformFrame), int32(fp.Index))
}

// SetFloat sets a float, vec2, vec3 or vec4 uniform on the current program.
// Names the program does not declare are ignored.
func (p *Program) SetFloat(name string, v ...float32) error {
	if len(v) < 1 || len(v) > 4 {
		return fmt.Errorf("uniform %q: unsupported arity %d", name, len(v))
	}
	loc := p.Location(name)
	if loc < 0 {
		return nil
	}
	switch len(v) {
	case 1:
		p.dev.Uniform1f(loc, v[0])
	case 2:
		p.dev.Uniform2f(loc, v[0], v[1])
	case 3:
		p.dev.Uniform3f(loc, v[0], v[1], v[2])
	case 4:
		p.dev.Uniform4f(loc, v[0], v[1], v[2], v[3])
	}
	return nil
}

// SetInt sets an int, ivec2, ivec3 or ivec4 (or sampler) uniform on the
// current program. Names the program does not declare are ignored.
func (p *Program) SetInt(name string, v ...int32) error {
	if len(v) < 1 || len(v) > 4 {
		return fmt.Errorf("uniform %q: unsupported arity %d", name, len(v))
	}
	loc := p.Location(name)
	if loc < 0 {
		return nil
	}
	switch len(v) {
	case 1:
		p.dev.Uniform1i(loc, v[0])
	case 2:
		p.dev.Uniform2i(loc, v[0], v[1])
	case 3:
		p.dev.Uniform3i(loc, v[0], v[1], v[2])
	case 4:
		p.dev.Uniform4i(loc, v[0], v[1], v[2], v[3])
	}
	return nil
}
