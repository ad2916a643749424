package gpu

import (
	"fmt"

	"github.com/valerio/go-shadertoy/shadertoy/glsl"
)

// Built-in uniform names.
const (
	UniformResolution = "iResolution"
	UniformMouse      = "iMouse"
	UniformTime       = "iTime"
	UniformTimeDelta  = "iTimeDelta"
	UniformFrameRate  = "iFrameRate"
	UniformFrame      = "iFrame"
)

// ChannelCount is the number of iChannel samplers every program declares.
const ChannelCount = 4

// ChannelUniform returns the sampler name for a channel slot.
func ChannelUniform(slot int) string {
	return fmt.Sprintf("iChannel%d", slot)
}

var builtinUniforms = []string{
	UniformResolution,
	UniformMouse,
	UniformTime,
	UniformTimeDelta,
	UniformFrameRate,
	UniformFrame,
}

// Program is a linked shader program together with its uniform locations.
// Locations are looked up at most once per name.
type Program struct {
	dev       Device
	id        uint32
	locations map[string]int32
}

// Compile builds a program from the fixed full-screen triangle vertex stage
// and the given, already assembled, fragment source.
func Compile(dev Device, fragmentSource string) (*Program, error) {
	vs, err := compileShader(dev, StageVertex, glsl.Vertex)
	if err != nil {
		return nil, err
	}
	defer dev.DeleteShader(vs)

	fs, err := compileShader(dev, StageFragment, fragmentSource)
	if err != nil {
		return nil, err
	}
	defer dev.DeleteShader(fs)

	id := dev.CreateProgram()
	dev.AttachShader(id, vs)
	dev.AttachShader(id, fs)
	dev.LinkProgram(id)
	if !dev.ProgramLinked(id) {
		log := dev.ProgramInfoLog(id)
		dev.DeleteProgram(id)
		return nil, &ShaderLinkError{Log: log}
	}

	p := &Program{
		dev:       dev,
		id:        id,
		locations: make(map[string]int32, len(builtinUniforms)+ChannelCount),
	}
	for _, name := range builtinUniforms {
		p.Location(name)
	}
	for slot := 0; slot < ChannelCount; slot++ {
		p.Location(ChannelUniform(slot))
	}
	return p, nil
}

func compileShader(dev Device, stage Stage, source string) (uint32, error) {
	shader := dev.CreateShader(stage)
	dev.ShaderSource(shader, source)
	dev.CompileShader(shader)
	if !dev.ShaderCompiled(shader) {
		log := dev.ShaderInfoLog(shader)
		dev.DeleteShader(shader)
		return 0, &ShaderCompileError{Stage: stage, Log: log}
	}
	return shader, nil
}

// ID returns the GL program name.
func (p *Program) ID() uint32 {
	return p.id
}

// Use makes the program current. Uniform setters act on the current program.
func (p *Program) Use() {
	p.dev.UseProgram(p.id)
}

// Location returns the cached location of a uniform, resolving it on first use.
func (p *Program) Location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := p.dev.UniformLocation(p.id, name)
	p.locations[name] = loc
	return loc
}

// Release deletes the program.
func (p *Program) Release() {
	if p.id != 0 {
		p.dev.DeleteProgram(p.id)
		p.id = 0
	}
}
