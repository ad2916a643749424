// Package glsl holds the shader source templates used to turn a Shadertoy
// style mainImage body into a complete GLSL program.
package glsl

import "strings"

// Version is the GLSL version directive shared by both pipeline stages.
const Version = "#version 330 core\n"

// Vertex emits a single triangle covering the whole viewport. Positions are
// derived from gl_VertexID so no vertex buffer is needed.
const Vertex = Version + `
void main()
{
	vec2 verts[3] = vec2[](vec2(-1, -1), vec2(3, -1), vec2(-1, 3));
	gl_Position = vec4(verts[gl_VertexID], 0, 1);
}
`

// Header declares the built-in Shadertoy uniforms.
const Header = Version + `
precision highp float;

uniform vec3      iResolution;
uniform vec4      iMouse;
uniform float     iTime;
uniform float     iTimeDelta;
uniform float     iFrameRate;
uniform int       iFrame;

uniform sampler2D iChannel0;
uniform sampler2D iChannel1;
uniform sampler2D iChannel2;
uniform sampler2D iChannel3;

#define texture2D texture

`

// Footer routes mainImage into the sole color output.
const Footer = `

layout(location = 0) out vec4 _fragColor;

void main()
{
	mainImage(_fragColor, gl_FragCoord.xy);
}
`

// Default is the animated gradient used when no shader and no channel 0 input
// are supplied.
const Default = `
void mainImage(out vec4 fragColor, in vec2 fragCoord)
{
	// Normalized pixel coordinates (from 0 to 1)
	vec2 uv = fragCoord/iResolution.xy;

	// Time varying pixel color
	vec3 col = 0.5 + 0.5*cos(iTime+uv.xyx+vec3(0,2,4));

	fragColor = vec4(col,1.0);
}
`

// Passthrough copies channel 0 unmodified.
const Passthrough = `
void mainImage(out vec4 fragColor, in vec2 fragCoord)
{
	vec2 uv = fragCoord.xy / iResolution.xy;
	fragColor = texture(iChannel0, uv);
}
`

// Assemble wraps a mainImage body with Header and Footer.
func Assemble(body string) string {
	var sb strings.Builder
	sb.Grow(len(Header) + len(body) + len(Footer))
	sb.WriteString(Header)
	sb.WriteString(body)
	sb.WriteString(Footer)
	return sb.String()
}
