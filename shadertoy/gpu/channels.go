package gpu

import (
	"fmt"

	"github.com/valerio/go-shadertoy/shadertoy/frames"
)

// Channels owns the four input textures sampled as iChannel0..3. All four are
// allocated up front whether or not a slot ever receives data.
type Channels struct {
	dev      Device
	textures []uint32
}

// NewChannels allocates the channel textures.
func NewChannels(dev Device) *Channels {
	return &Channels{
		dev:      dev,
		textures: dev.GenTextures(ChannelCount),
	}
}

// Texture returns the texture name backing a slot.
func (c *Channels) Texture(slot int) uint32 {
	return c.textures[slot]
}

// Update uploads img into a slot. The image is flipped to bottom-left origin
// and sampling state is set on every call.
func (c *Channels) Update(slot int, img frames.Image) error {
	if slot < 0 || slot >= ChannelCount {
		return fmt.Errorf("channel slot %d out of range", slot)
	}
	if err := img.Validate(); err != nil {
		return fmt.Errorf("channel %d: %w", slot, err)
	}
	flipped := img.FlipVertical()

	c.dev.BindTexture(c.textures[slot])
	c.dev.TexImageRGBFloat(flipped.Width, flipped.Height, flipped.Pix)
	c.dev.TexParameteri(TexMinFilter, Linear)
	c.dev.TexParameteri(TexMagFilter, Linear)
	c.dev.TexParameteri(TexWrapS, ClampToEdge)
	c.dev.TexParameteri(TexWrapT, ClampToEdge)
	return nil
}

// Bind attaches every slot to its texture unit and points the samplers at them.
func (c *Channels) Bind(p *Program) {
	p.Use()
	for slot, tex := range c.textures {
		c.dev.ActiveTexture(slot)
		c.dev.BindTexture(tex)
		// arity is fixed, the error is impossible
		_ = p.SetInt(ChannelUniform(slot), int32(slot))
	}
}

// Release deletes the channel textures.
func (c *Channels) Release() {
	if len(c.textures) == 0 {
		return
	}
	c.dev.DeleteTextures(c.textures)
	c.textures = nil
}
