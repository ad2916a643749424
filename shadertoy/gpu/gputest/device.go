// Package gputest provides a CPU implementation of gpu.Device for tests.
//
// The fake keeps GL-like object tables, records uniform values per program,
// and evaluates draws with Go reference versions of the built-in shaders
// (picked by inspecting the linked fragment source).
package gputest

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/valerio/go-shadertoy/shadertoy/gpu"
)

var uniformDecl = regexp.MustCompile(`uniform\s+(\w+)\s+(\w+)\s*(?:=\s*([^;]+))?;`)

type shader struct {
	stage    gpu.Stage
	source   string
	compiled bool
	log      string
}

type program struct {
	shaders []uint32
	source  string
	linked  bool
	log     string
	shade   ShadeFunc
	names   map[string]int32
	values  map[int32][]float32
	deleted bool
}

type texture struct {
	width, height int
	rgb8          bool
	pix           []float32
	params        map[gpu.TexParam]int32
}

// Device is a fake gpu.Device. The exported fields configure failures and
// expose what the render pass did.
type Device struct {
	// FailCompile returns a non-empty compiler log to fail the given stage.
	FailCompile func(stage gpu.Stage, source string) string

	// FailLink, when non-empty, is returned as the linker log.
	FailLink string

	// FramebufferStatus overrides the completeness status when non-zero.
	FramebufferStatus uint32

	// Shade is used for fragment sources no reference shader recognizes.
	Shade ShadeFunc

	Draws      int
	Uploads    []Upload
	Lookups    map[string]int
	GLErrors   []string
	LastSource string

	next     uint32
	shaders  map[uint32]*shader
	programs map[uint32]*program
	textures map[uint32]*texture
	fbos     map[uint32]uint32
	vaos     map[uint32]bool

	current    uint32
	activeUnit int
	units      [gpu.ChannelCount]uint32
	fbo        uint32
	vao        uint32
	viewport   [2]int
}

// Upload records one channel texture upload.
type Upload struct {
	Texture uint32
	Width   int
	Height  int
}

var _ gpu.Device = (*Device)(nil)

// New creates an empty fake device.
func New() *Device {
	return &Device{
		Lookups:  make(map[string]int),
		shaders:  make(map[uint32]*shader),
		programs: make(map[uint32]*program),
		textures: make(map[uint32]*texture),
		fbos:     make(map[uint32]uint32),
		vaos:     make(map[uint32]bool),
	}
}

func (d *Device) id() uint32 {
	d.next++
	return d.next
}

func (d *Device) glError(format string, args ...any) {
	d.GLErrors = append(d.GLErrors, fmt.Sprintf(format, args...))
}

// Live reports how many objects of each kind have not been deleted.
func (d *Device) Live() map[string]int {
	live := map[string]int{
		"shaders":      len(d.shaders),
		"textures":     len(d.textures),
		"framebuffers": len(d.fbos),
		"vertexArrays": len(d.vaos),
	}
	for _, p := range d.programs {
		if !p.deleted {
			live["programs"]++
		}
	}
	return live
}

// LiveTotal is the sum of Live.
func (d *Device) LiveTotal() int {
	n := 0
	for _, v := range d.Live() {
		n += v
	}
	return n
}

func (d *Device) CreateShader(stage gpu.Stage) uint32 {
	id := d.id()
	d.shaders[id] = &shader{stage: stage}
	return id
}

func (d *Device) ShaderSource(id uint32, source string) {
	if s, ok := d.shaders[id]; ok {
		s.source = source
	}
}

func (d *Device) CompileShader(id uint32) {
	s, ok := d.shaders[id]
	if !ok {
		d.glError("compile of unknown shader %d", id)
		return
	}
	s.compiled = true
	if d.FailCompile != nil {
		if log := d.FailCompile(s.stage, s.source); log != "" {
			s.compiled, s.log = false, log
		}
	}
}

func (d *Device) ShaderCompiled(id uint32) bool {
	s, ok := d.shaders[id]
	return ok && s.compiled
}

func (d *Device) ShaderInfoLog(id uint32) string {
	if s, ok := d.shaders[id]; ok {
		return s.log
	}
	return ""
}

func (d *Device) DeleteShader(id uint32) {
	delete(d.shaders, id)
}

func (d *Device) CreateProgram() uint32 {
	id := d.id()
	d.programs[id] = &program{
		names:  make(map[string]int32),
		values: make(map[int32][]float32),
	}
	return id
}

func (d *Device) AttachShader(prog, sh uint32) {
	p, ok := d.programs[prog]
	if !ok {
		d.glError("attach to unknown program %d", prog)
		return
	}
	p.shaders = append(p.shaders, sh)
}

func (d *Device) LinkProgram(id uint32) {
	p, ok := d.programs[id]
	if !ok {
		d.glError("link of unknown program %d", id)
		return
	}
	if d.FailLink != "" {
		p.log = d.FailLink
		return
	}
	var loc int32
	for _, sh := range p.shaders {
		s, ok := d.shaders[sh]
		if !ok || !s.compiled {
			p.log = fmt.Sprintf("shader %d is not compiled", sh)
			return
		}
		if s.stage == gpu.StageFragment {
			p.source = s.source
		}
		for _, m := range uniformDecl.FindAllStringSubmatch(s.source, -1) {
			if _, dup := p.names[m[2]]; dup {
				continue
			}
			p.names[m[2]] = loc
			if v, err := strconv.ParseFloat(strings.TrimSpace(m[3]), 32); err == nil {
				p.values[loc] = []float32{float32(v)}
			}
			loc++
		}
	}
	p.linked = true
	p.shade = d.resolveShade(p.source)
	d.LastSource = p.source
}

func (d *Device) ProgramLinked(id uint32) bool {
	p, ok := d.programs[id]
	return ok && p.linked
}

func (d *Device) ProgramInfoLog(id uint32) string {
	if p, ok := d.programs[id]; ok {
		return p.log
	}
	return ""
}

func (d *Device) UseProgram(id uint32) {
	if id != 0 {
		if p, ok := d.programs[id]; !ok || p.deleted || !p.linked {
			d.glError("use of invalid program %d", id)
			return
		}
	}
	d.current = id
}

func (d *Device) DeleteProgram(id uint32) {
	if p, ok := d.programs[id]; ok {
		p.deleted = true
	}
	if d.current == id {
		d.current = 0
	}
}

func (d *Device) UniformLocation(id uint32, name string) int32 {
	d.Lookups[name]++
	p, ok := d.programs[id]
	if !ok || !p.linked {
		d.glError("uniform lookup on invalid program %d", id)
		return -1
	}
	if loc, ok := p.names[name]; ok {
		return loc
	}
	return -1
}

// Uniform returns the last value set for a uniform of a program.
func (d *Device) Uniform(id uint32, name string) ([]float32, bool) {
	p, ok := d.programs[id]
	if !ok {
		return nil, false
	}
	loc, ok := p.names[name]
	if !ok {
		return nil, false
	}
	v, ok := p.values[loc]
	return v, ok
}

func (d *Device) setUniform(loc int32, v ...float32) {
	if loc < 0 {
		return
	}
	p, ok := d.programs[d.current]
	if !ok || d.current == 0 {
		d.glError("uniform set without a current program")
		return
	}
	p.values[loc] = append([]float32(nil), v...)
}

func (d *Device) Uniform1f(loc int32, v0 float32) {
	d.setUniform(loc, v0)
}

func (d *Device) Uniform2f(loc int32, v0, v1 float32) {
	d.setUniform(loc, v0, v1)
}

func (d *Device) Uniform3f(loc int32, v0, v1, v2 float32) {
	d.setUniform(loc, v0, v1, v2)
}

func (d *Device) Uniform4f(loc int32, v0, v1, v2, v3 float32) {
	d.setUniform(loc, v0, v1, v2, v3)
}

func (d *Device) Uniform1i(loc int32, v0 int32) {
	d.setUniform(loc, float32(v0))
}

func (d *Device) Uniform2i(loc int32, v0, v1 int32) {
	d.setUniform(loc, float32(v0), float32(v1))
}

func (d *Device) Uniform3i(loc int32, v0, v1, v2 int32) {
	d.setUniform(loc, float32(v0), float32(v1), float32(v2))
}

func (d *Device) Uniform4i(loc int32, v0, v1, v2, v3 int32) {
	d.setUniform(loc, float32(v0), float32(v1), float32(v2), float32(v3))
}

func (d *Device) GenTextures(n int) []uint32 {
	ids := make([]uint32, n)
	for i := range ids {
		ids[i] = d.id()
		d.textures[ids[i]] = &texture{params: make(map[gpu.TexParam]int32)}
	}
	return ids
}

func (d *Device) DeleteTextures(ids []uint32) {
	for _, id := range ids {
		delete(d.textures, id)
		for u, bound := range d.units {
			if bound == id {
				d.units[u] = 0
			}
		}
	}
}

func (d *Device) ActiveTexture(unit int) {
	if unit < 0 || unit >= len(d.units) {
		d.glError("texture unit %d out of range", unit)
		return
	}
	d.activeUnit = unit
}

func (d *Device) BindTexture(id uint32) {
	if _, ok := d.textures[id]; !ok && id != 0 {
		d.glError("bind of unknown texture %d", id)
		return
	}
	d.units[d.activeUnit] = id
}

func (d *Device) bound() *texture {
	t, ok := d.textures[d.units[d.activeUnit]]
	if !ok {
		d.glError("no texture bound to unit %d", d.activeUnit)
		return nil
	}
	return t
}

// TexParam returns a parameter of a texture.
func (d *Device) TexParam(id uint32, param gpu.TexParam) int32 {
	if t, ok := d.textures[id]; ok {
		return t.params[param]
	}
	return 0
}

func (d *Device) TexParameteri(param gpu.TexParam, value int32) {
	if t := d.bound(); t != nil {
		t.params[param] = value
	}
}

func (d *Device) TexImageRGB8(width, height int) {
	if t := d.bound(); t != nil {
		t.width, t.height, t.rgb8 = width, height, true
		t.pix = make([]float32, width*height*3)
	}
}

func (d *Device) TexImageRGBFloat(width, height int, pix []float32) {
	t := d.bound()
	if t == nil {
		return
	}
	if len(pix) != width*height*3 {
		d.glError("texture upload of %d components for %dx%d", len(pix), width, height)
		return
	}
	t.width, t.height, t.rgb8 = width, height, false
	t.pix = append([]float32(nil), pix...)
	d.Uploads = append(d.Uploads, Upload{Texture: d.units[d.activeUnit], Width: width, Height: height})
}

func (d *Device) GenFramebuffer() uint32 {
	id := d.id()
	d.fbos[id] = 0
	return id
}

func (d *Device) BindFramebuffer(id uint32) {
	if _, ok := d.fbos[id]; !ok && id != 0 {
		d.glError("bind of unknown framebuffer %d", id)
		return
	}
	d.fbo = id
}

func (d *Device) FramebufferTexture(tex uint32) {
	if d.fbo == 0 {
		d.glError("attach to the default framebuffer")
		return
	}
	d.fbos[d.fbo] = tex
}

func (d *Device) CheckFramebufferStatus() uint32 {
	if d.FramebufferStatus != 0 {
		return d.FramebufferStatus
	}
	if t, ok := d.textures[d.fbos[d.fbo]]; !ok || t.width == 0 {
		return 0x8CD6 // incomplete attachment
	}
	return gpu.FramebufferComplete
}

func (d *Device) DeleteFramebuffer(id uint32) {
	delete(d.fbos, id)
	if d.fbo == id {
		d.fbo = 0
	}
}

func (d *Device) GenVertexArray() uint32 {
	id := d.id()
	d.vaos[id] = true
	return id
}

func (d *Device) BindVertexArray(id uint32) {
	if id != 0 && !d.vaos[id] {
		d.glError("bind of unknown vertex array %d", id)
		return
	}
	d.vao = id
}

func (d *Device) DeleteVertexArray(id uint32) {
	delete(d.vaos, id)
	if d.vao == id {
		d.vao = 0
	}
}

func (d *Device) Viewport(width, height int) {
	d.viewport = [2]int{width, height}
}

func (d *Device) ClearColor(r, g, b, a float32) {}

func (d *Device) Clear() {
	if t := d.target(); t != nil {
		clear(t.pix)
	}
}

func (d *Device) target() *texture {
	t, ok := d.textures[d.fbos[d.fbo]]
	if !ok || d.fbo == 0 {
		d.glError("no framebuffer target bound")
		return nil
	}
	return t
}

func (d *Device) DrawTriangles(count int) {
	if count != 3 {
		d.glError("draw of %d vertices", count)
	}
	if d.vao == 0 {
		d.glError("draw without a bound vertex array")
		return
	}
	p, ok := d.programs[d.current]
	if !ok || d.current == 0 {
		d.glError("draw without a current program")
		return
	}
	t := d.target()
	if t == nil {
		return
	}
	d.Draws++

	in := &Inputs{dev: d, prog: p}
	w, h := min(d.viewport[0], t.width), min(d.viewport[1], t.height)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := p.shade([2]float32{float32(x) + 0.5, float32(y) + 0.5}, in)
			i := (y*t.width + x) * 3
			for k := 0; k < 3; k++ {
				t.pix[i+k] = quantize(c[k])
			}
		}
	}
}

func (d *Device) ReadPixelsRGB(width, height int, dst []byte) {
	t := d.target()
	if t == nil {
		return
	}
	if len(dst) < width*height*3 {
		d.glError("read buffer too small")
		return
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			for k := 0; k < 3; k++ {
				dst[(y*width+x)*3+k] = toByte(t.pix[(y*t.width+x)*3+k])
			}
		}
	}
}
