package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-shadertoy/shadertoy/config"
)

func writeJob(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
	}{
		{
			name: "toml",
			file: "job.toml",
			body: `
width = 256
height = 128
frames = 48
fps = 24
shader = "shaders/plasma.glsl"
channels = ["input.png", "", "/abs/noise.png"]
offsets = [0.0, 0.05, 0.1]
offset_channel = 2
out = "render"
gif = "render.gif"

[uniforms]
gain = [0.5, 1.0]
`,
		},
		{
			name: "yaml",
			file: "job.yaml",
			body: `
width: 256
height: 128
frames: 48
fps: 24
shader: shaders/plasma.glsl
channels: [input.png, "", /abs/noise.png]
offsets: [0.0, 0.05, 0.1]
offset_channel: 2
out: render
gif: render.gif
uniforms:
  gain: [0.5, 1.0]
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeJob(t, tt.file, tt.body)
			base := filepath.Dir(path)

			job, err := config.Load(path)
			require.NoError(t, err)

			assert.Equal(t, 256, job.Width)
			assert.Equal(t, 128, job.Height)
			assert.Equal(t, 48, job.Frames)
			assert.Equal(t, 24, job.FPS)
			assert.Equal(t, filepath.Join(base, "shaders/plasma.glsl"), job.Shader)
			assert.Equal(t, []string{filepath.Join(base, "input.png"), "", "/abs/noise.png"}, job.Channels)
			assert.Equal(t, []float32{0, 0.05, 0.1}, job.Offsets)
			require.NotNil(t, job.OffsetChannel)
			assert.Equal(t, 2, *job.OffsetChannel)
			assert.Equal(t, map[string][]float32{"gain": {0.5, 1}}, job.Uniforms)
			assert.Equal(t, filepath.Join(base, "render"), job.Out)
			assert.Equal(t, filepath.Join(base, "render.gif"), job.GIF)
		})
	}
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := writeJob(t, "job.yml", "frames: 10\n")
	job, err := config.Load(path)
	require.NoError(t, err)

	def := config.Default()
	assert.Equal(t, def.Width, job.Width)
	assert.Equal(t, def.Height, job.Height)
	assert.Equal(t, def.FPS, job.FPS)
	assert.Equal(t, 10, job.Frames)
	assert.Nil(t, job.OffsetChannel)
}

func TestLoadEmptyYAML(t *testing.T) {
	job, err := config.Load(writeJob(t, "job.yaml", ""))
	require.NoError(t, err)
	assert.Equal(t, config.Default().Width, job.Width)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		body    string
		message string
	}{
		{"unknown extension", "job.json", "{}", "unsupported format"},
		{"unknown toml key", "job.toml", "widht = 64\n", "failed to parse"},
		{"unknown yaml key", "job.yaml", "widht: 64\n", "failed to parse"},
		{"bad toml", "job.toml", "width = \n", "failed to parse"},
		{"too many channels", "job.toml", `channels = ["a", "b", "c", "d", "e"]`, "at most 4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(writeJob(t, tt.file, tt.body))
			assert.ErrorContains(t, err, tt.message)
		})
	}

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
