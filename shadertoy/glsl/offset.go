package glsl

import (
	"fmt"
	"strings"
)

const (
	// OffsetUniform is the vec2 uniform fed from the per-frame offset sequence.
	OffsetUniform = "offset"
	// ColorChannelUniform selects which color component ChannelOffset shifts.
	ColorChannelUniform = "colorChannel"
)

// MaxColorChannel is the highest component index ChannelOffset accepts (alpha).
const MaxColorChannel = 3

const channelOffsetTemplate = `
uniform vec2 offset = vec2(0, 0);
uniform float colorChannel = {{channel}};

void mainImage(out vec4 fragColor, in vec2 fragCoord)
{
	vec2 texCoord = fragCoord.xy / iResolution.xy;
	fragColor = texture(iChannel0, texCoord);
	int channel = int(colorChannel);
	fragColor[channel] = texture(iChannel0, texCoord - offset)[channel];
}
`

// ChannelOffset returns a mainImage body that copies iChannel0 but samples
// one color component at fragCoord minus the offset uniform.
func ChannelOffset(channel int) (string, error) {
	if channel < 0 || channel > MaxColorChannel {
		return "", fmt.Errorf("color channel %d out of range [0, %d]", channel, MaxColorChannel)
	}
	return strings.Replace(channelOffsetTemplate, "{{channel}}", fmt.Sprintf("%d.0", channel), 1), nil
}
