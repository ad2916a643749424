package gputest

import (
	"strings"

	"github.com/chewxy/math32"
	"github.com/valerio/go-shadertoy/shadertoy/glsl"
	"github.com/valerio/go-shadertoy/shadertoy/gpu"
)

// ShadeFunc computes the color of one fragment.
type ShadeFunc func(fragCoord [2]float32, in *Inputs) [4]float32

// Inputs gives a ShadeFunc access to the uniforms and samplers of the
// program being drawn.
type Inputs struct {
	dev  *Device
	prog *program
}

// Float returns the value of a uniform, or nil when it was never set.
func (in *Inputs) Float(name string) []float32 {
	loc, ok := in.prog.names[name]
	if !ok {
		return nil
	}
	return in.prog.values[loc]
}

// Resolution returns iResolution.xy.
func (in *Inputs) Resolution() [2]float32 {
	v := in.Float(gpu.UniformResolution)
	if len(v) < 2 {
		return [2]float32{1, 1}
	}
	return [2]float32{v[0], v[1]}
}

// Sample reads iChannelN at uv with nearest filtering and clamp-to-edge
// wrapping. Unbound or empty textures sample as transparent black.
func (in *Inputs) Sample(channel int, uv [2]float32) [4]float32 {
	unit := in.Float(gpu.ChannelUniform(channel))
	if len(unit) == 0 {
		return [4]float32{}
	}
	u := int(unit[0])
	if u < 0 || u >= len(in.dev.units) {
		return [4]float32{}
	}
	t, ok := in.dev.textures[in.dev.units[u]]
	if !ok || t.width == 0 || t.height == 0 {
		return [4]float32{}
	}
	x := clampIndex(int(math32.Floor(uv[0]*float32(t.width))), t.width)
	y := clampIndex(int(math32.Floor(uv[1]*float32(t.height))), t.height)
	i := (y*t.width + x) * 3
	return [4]float32{t.pix[i], t.pix[i+1], t.pix[i+2], 1}
}

func clampIndex(i, n int) int {
	return max(0, min(n-1, i))
}

func (d *Device) resolveShade(source string) ShadeFunc {
	switch {
	case strings.Contains(source, glsl.Default):
		return Gradient
	case strings.Contains(source, glsl.Passthrough):
		return Passthrough
	case strings.Contains(source, "uniform float "+glsl.ColorChannelUniform):
		return ChannelOffset
	case d.Shade != nil:
		return d.Shade
	}
	return Black
}

// Gradient mirrors glsl.Default.
func Gradient(fragCoord [2]float32, in *Inputs) [4]float32 {
	res := in.Resolution()
	var t float32
	if v := in.Float(gpu.UniformTime); len(v) > 0 {
		t = v[0]
	}
	return GradientAt(fragCoord, res, t)
}

// GradientAt evaluates 0.5 + 0.5*cos(time + uv.xyx + (0,2,4)).
func GradientAt(fragCoord, res [2]float32, time float32) [4]float32 {
	u, v := fragCoord[0]/res[0], fragCoord[1]/res[1]
	return [4]float32{
		0.5 + 0.5*math32.Cos(time+u+0),
		0.5 + 0.5*math32.Cos(time+v+2),
		0.5 + 0.5*math32.Cos(time+u+4),
		1,
	}
}

// Passthrough mirrors glsl.Passthrough.
func Passthrough(fragCoord [2]float32, in *Inputs) [4]float32 {
	res := in.Resolution()
	return in.Sample(0, [2]float32{fragCoord[0] / res[0], fragCoord[1] / res[1]})
}

// ChannelOffset mirrors glsl.ChannelOffset.
func ChannelOffset(fragCoord [2]float32, in *Inputs) [4]float32 {
	res := in.Resolution()
	uv := [2]float32{fragCoord[0] / res[0], fragCoord[1] / res[1]}
	var off [2]float32
	if v := in.Float(glsl.OffsetUniform); len(v) == 2 {
		off = [2]float32{v[0], v[1]}
	}
	ch := 0
	if v := in.Float(glsl.ColorChannelUniform); len(v) > 0 {
		ch = int(v[0])
	}
	c := in.Sample(0, uv)
	c[ch] = in.Sample(0, [2]float32{uv[0] - off[0], uv[1] - off[1]})[ch]
	return c
}

// Black ignores its inputs.
func Black(fragCoord [2]float32, in *Inputs) [4]float32 {
	return [4]float32{0, 0, 0, 1}
}

func quantize(v float32) float32 {
	return float32(toByte(v)) / 255
}

func toByte(v float32) uint8 {
	v = math32.Max(0, math32.Min(1, v))
	return uint8(math32.Round(v * 255))
}
