package gpu

import "github.com/valerio/go-shadertoy/shadertoy/frames"

// Framebuffer is an offscreen RGB8 color target. There is no depth or
// stencil attachment.
type Framebuffer struct {
	dev     Device
	fbo     uint32
	texture uint32
	width   int
	height  int
	readBuf []byte
}

// NewFramebuffer allocates the color texture and attaches it to a new
// framebuffer object, which is left bound.
func NewFramebuffer(dev Device, width, height int) (*Framebuffer, error) {
	tex := dev.GenTextures(1)[0]
	dev.BindTexture(tex)
	dev.TexImageRGB8(width, height)
	dev.TexParameteri(TexMinFilter, Linear)
	dev.TexParameteri(TexMagFilter, Linear)

	fbo := dev.GenFramebuffer()
	dev.BindFramebuffer(fbo)
	dev.FramebufferTexture(tex)
	if status := dev.CheckFramebufferStatus(); status != FramebufferComplete {
		dev.BindFramebuffer(0)
		dev.DeleteFramebuffer(fbo)
		dev.DeleteTextures([]uint32{tex})
		return nil, &FramebufferIncompleteError{Status: status}
	}

	return &Framebuffer{
		dev:     dev,
		fbo:     fbo,
		texture: tex,
		width:   width,
		height:  height,
	}, nil
}

// Size returns the framebuffer dimensions.
func (fb *Framebuffer) Size() (int, int) {
	return fb.width, fb.height
}

// Draw clears the target and issues the full-screen triangle with the program.
func (fb *Framebuffer) Draw(p *Program) {
	fb.dev.BindFramebuffer(fb.fbo)
	fb.dev.Viewport(fb.width, fb.height)
	fb.dev.ClearColor(0, 0, 0, 1)
	fb.dev.Clear()
	p.Use()
	fb.dev.DrawTriangles(3)
}

// ReadInto reads the color buffer back into dst, restoring top-left origin
// and normalizing to [0,1]. dst must be width x height.
func (fb *Framebuffer) ReadInto(dst frames.Image) {
	n := fb.width * fb.height * frames.Channels
	if len(fb.readBuf) != n {
		fb.readBuf = make([]byte, n)
	}
	fb.dev.BindFramebuffer(fb.fbo)
	fb.dev.ReadPixelsRGB(fb.width, fb.height, fb.readBuf)

	stride := fb.width * frames.Channels
	for y := 0; y < fb.height; y++ {
		src := fb.readBuf[(fb.height-1-y)*stride : (fb.height-y)*stride]
		row := dst.Pix[y*stride : (y+1)*stride]
		for i, b := range src {
			row[i] = float32(b) / 255
		}
	}
}

// Release deletes the framebuffer and its color texture.
func (fb *Framebuffer) Release() {
	if fb.fbo == 0 {
		return
	}
	fb.dev.BindFramebuffer(0)
	fb.dev.DeleteFramebuffer(fb.fbo)
	fb.dev.DeleteTextures([]uint32{fb.texture})
	fb.fbo, fb.texture = 0, 0
}
