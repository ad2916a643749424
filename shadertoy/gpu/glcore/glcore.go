// Package glcore implements gpu.Device on top of the go-gl OpenGL 3.3 core
// bindings. A context must be current on the calling thread before New.
package glcore

import (
	"fmt"
	"log/slog"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/valerio/go-shadertoy/shadertoy/backend"
	"github.com/valerio/go-shadertoy/shadertoy/gpu"
)

// Device forwards gpu.Device calls to the current OpenGL context.
type Device struct{}

var _ gpu.Device = (*Device)(nil)

// New loads the GL entry points for ctx, which must be current.
// Function pointers are reloaded on every call since each pass creates a
// fresh context.
func New(ctx backend.Context) (gpu.Device, error) {
	var err error
	if ctx.ProcAddress("glGetString") != nil {
		err = gl.InitWithProcAddrFunc(ctx.ProcAddress)
	} else {
		err = gl.Init()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	slog.Debug("OpenGL initialized", "version", Version(), "kind", ctx.Kind())
	return &Device{}, nil
}

// Version returns the GL_VERSION string of the current context.
func Version() string {
	if v := gl.GetString(gl.VERSION); v != nil {
		return gl.GoStr(v)
	}
	return ""
}

func stageEnum(stage gpu.Stage) uint32 {
	if stage == gpu.StageVertex {
		return gl.VERTEX_SHADER
	}
	return gl.FRAGMENT_SHADER
}

func (d *Device) CreateShader(stage gpu.Stage) uint32 {
	return gl.CreateShader(stageEnum(stage))
}

func (d *Device) ShaderSource(shader uint32, source string) {
	csources, free := gl.Strs(source + "\x00")
	defer free()
	gl.ShaderSource(shader, 1, csources, nil)
}

func (d *Device) CompileShader(shader uint32) {
	gl.CompileShader(shader)
}

func (d *Device) ShaderCompiled(shader uint32) bool {
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	return status == gl.TRUE
}

func (d *Device) ShaderInfoLog(shader uint32) string {
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (d *Device) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (d *Device) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (d *Device) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (d *Device) LinkProgram(program uint32) {
	gl.LinkProgram(program)
}

func (d *Device) ProgramLinked(program uint32) bool {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	return status == gl.TRUE
}

func (d *Device) ProgramInfoLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (d *Device) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (d *Device) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (d *Device) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (d *Device) Uniform1f(loc int32, v0 float32) {
	gl.Uniform1f(loc, v0)
}

func (d *Device) Uniform2f(loc int32, v0, v1 float32) {
	gl.Uniform2f(loc, v0, v1)
}

func (d *Device) Uniform3f(loc int32, v0, v1, v2 float32) {
	gl.Uniform3f(loc, v0, v1, v2)
}

func (d *Device) Uniform4f(loc int32, v0, v1, v2, v3 float32) {
	gl.Uniform4f(loc, v0, v1, v2, v3)
}

func (d *Device) Uniform1i(loc int32, v0 int32) {
	gl.Uniform1i(loc, v0)
}

func (d *Device) Uniform2i(loc int32, v0, v1 int32) {
	gl.Uniform2i(loc, v0, v1)
}

func (d *Device) Uniform3i(loc int32, v0, v1, v2 int32) {
	gl.Uniform3i(loc, v0, v1, v2)
}

func (d *Device) Uniform4i(loc int32, v0, v1, v2, v3 int32) {
	gl.Uniform4i(loc, v0, v1, v2, v3)
}

func (d *Device) GenTextures(n int) []uint32 {
	ids := make([]uint32, n)
	gl.GenTextures(int32(n), &ids[0])
	return ids
}

func (d *Device) DeleteTextures(textures []uint32) {
	if len(textures) == 0 {
		return
	}
	gl.DeleteTextures(int32(len(textures)), &textures[0])
}

func (d *Device) ActiveTexture(unit int) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
}

func (d *Device) BindTexture(texture uint32) {
	gl.BindTexture(gl.TEXTURE_2D, texture)
}

func (d *Device) TexParameteri(param gpu.TexParam, value int32) {
	gl.TexParameteri(gl.TEXTURE_2D, uint32(param), value)
}

func (d *Device) TexImageRGB8(width, height int) {
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGB8, int32(width), int32(height), 0, gl.RGB, gl.UNSIGNED_BYTE, nil)
}

func (d *Device) TexImageRGBFloat(width, height int, pix []float32) {
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGB32F, int32(width), int32(height), 0, gl.RGB, gl.FLOAT, unsafe.Pointer(&pix[0]))
}

func (d *Device) GenFramebuffer() uint32 {
	var fbo uint32
	gl.GenFramebuffers(1, &fbo)
	return fbo
}

func (d *Device) BindFramebuffer(fbo uint32) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)
}

func (d *Device) FramebufferTexture(texture uint32) {
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, texture, 0)
}

func (d *Device) CheckFramebufferStatus() uint32 {
	return gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
}

func (d *Device) DeleteFramebuffer(fbo uint32) {
	gl.DeleteFramebuffers(1, &fbo)
}

func (d *Device) GenVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (d *Device) BindVertexArray(vao uint32) {
	gl.BindVertexArray(vao)
}

func (d *Device) DeleteVertexArray(vao uint32) {
	gl.DeleteVertexArrays(1, &vao)
}

func (d *Device) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (d *Device) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (d *Device) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (d *Device) DrawTriangles(count int) {
	gl.DrawArrays(gl.TRIANGLES, 0, int32(count))
}

func (d *Device) ReadPixelsRGB(width, height int, dst []byte) {
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGB, gl.UNSIGNED_BYTE, unsafe.Pointer(&dst[0]))
}
