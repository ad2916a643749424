// Package gpu implements the GL-side pieces of a render pass: program
// compilation, the offscreen framebuffer, channel textures and uniforms.
//
// Everything here talks to the GPU through Device, a narrow slice of the
// OpenGL 3.3 core API. glcore provides the real implementation and gputest a
// CPU fake used by tests.
package gpu

// Stage identifies a shader pipeline stage.
type Stage int

const (
	StageVertex Stage = iota
	StageFragment
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	}
	return "unknown"
}

// TexParam names a texture parameter. Values match the OpenGL enums.
type TexParam uint32

const (
	TexMagFilter TexParam = 0x2800
	TexMinFilter TexParam = 0x2801
	TexWrapS     TexParam = 0x2802
	TexWrapT     TexParam = 0x2803
)

// Texture parameter values.
const (
	Linear      int32 = 0x2601
	ClampToEdge int32 = 0x812F
)

// FramebufferComplete is the status reported for a usable framebuffer.
const FramebufferComplete uint32 = 0x8CD5

// Device is the subset of OpenGL used by a render pass. Object handles are
// plain GL names; zero is never a valid object.
type Device interface {
	CreateShader(stage Stage) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	ShaderCompiled(shader uint32) bool
	ShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	ProgramLinked(program uint32) bool
	ProgramInfoLog(program uint32) string
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	// UniformLocation returns -1 when the program has no active uniform with that name.
	UniformLocation(program uint32, name string) int32
	Uniform1f(loc int32, v0 float32)
	Uniform2f(loc int32, v0, v1 float32)
	Uniform3f(loc int32, v0, v1, v2 float32)
	Uniform4f(loc int32, v0, v1, v2, v3 float32)
	Uniform1i(loc int32, v0 int32)
	Uniform2i(loc int32, v0, v1 int32)
	Uniform3i(loc int32, v0, v1, v2 int32)
	Uniform4i(loc int32, v0, v1, v2, v3 int32)

	GenTextures(n int) []uint32
	DeleteTextures(textures []uint32)
	ActiveTexture(unit int)
	BindTexture(texture uint32)
	TexParameteri(param TexParam, value int32)
	// TexImageRGB8 allocates uninitialized 8-bit RGB storage for the bound texture.
	TexImageRGB8(width, height int)
	// TexImageRGBFloat uploads float RGB data, bottom row first, into the bound texture.
	TexImageRGBFloat(width, height int, pix []float32)

	GenFramebuffer() uint32
	BindFramebuffer(fbo uint32)
	FramebufferTexture(texture uint32)
	CheckFramebufferStatus() uint32
	DeleteFramebuffer(fbo uint32)

	GenVertexArray() uint32
	BindVertexArray(vao uint32)
	DeleteVertexArray(vao uint32)

	Viewport(width, height int)
	ClearColor(r, g, b, a float32)
	Clear()
	DrawTriangles(count int)
	// ReadPixelsRGB reads the bound framebuffer into dst as 8-bit RGB, bottom row first.
	ReadPixelsRGB(width, height int, dst []byte)
}
