// Package config loads render jobs from TOML or YAML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// MaxChannels is the number of channel inputs a job can bind.
const MaxChannels = 4

// Job describes one render pass and where its inputs and outputs live.
// Relative paths are resolved against the job file's directory by Load.
type Job struct {
	Width  int `toml:"width" yaml:"width"`
	Height int `toml:"height" yaml:"height"`
	Frames int `toml:"frames" yaml:"frames"`
	FPS    int `toml:"fps" yaml:"fps"`

	// Shader is a path to a mainImage body; ShaderSource holds one inline.
	Shader       string `toml:"shader" yaml:"shader"`
	ShaderSource string `toml:"shader_source" yaml:"shader_source"`

	// OffsetChannel selects the generated channel-offset shader when set.
	OffsetChannel *int `toml:"offset_channel" yaml:"offset_channel"`

	// Channels lists input paths for iChannel0 onwards; empty entries are unbound.
	Channels       []string             `toml:"channels" yaml:"channels"`
	ResizeChannels bool                 `toml:"resize_channels" yaml:"resize_channels"`
	Offsets        []float32            `toml:"offsets" yaml:"offsets"`
	Uniforms       map[string][]float32 `toml:"uniforms" yaml:"uniforms"`

	Platform string `toml:"platform" yaml:"platform"`
	Provider string `toml:"provider" yaml:"provider"`

	Out string `toml:"out" yaml:"out"`
	GIF string `toml:"gif" yaml:"gif"`
}

// Default returns the job used when nothing is configured.
func Default() Job {
	return Job{
		Width:  512,
		Height: 512,
		Frames: 1,
		FPS:    1,
		Out:    "frames",
	}
}

// Load reads a job file on top of Default. The format follows the file
// extension: .toml, .yaml or .yml.
func Load(path string) (Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Job{}, fmt.Errorf("failed to read job file: %w", err)
	}

	job := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = decodeTOML(data, &job)
	case ".yaml", ".yml":
		err = decodeYAML(data, &job)
	default:
		return Job{}, fmt.Errorf("job file %s: unsupported format %q (want .toml, .yaml or .yml)", path, ext)
	}
	if err != nil {
		return Job{}, fmt.Errorf("failed to parse job file %s: %w", path, err)
	}

	if len(job.Channels) > MaxChannels {
		return Job{}, fmt.Errorf("job file %s: %d channels given, at most %d are supported", path, len(job.Channels), MaxChannels)
	}
	job.resolvePaths(filepath.Dir(path))
	return job, nil
}

func decodeTOML(data []byte, job *Job) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(job)
}

func decodeYAML(data []byte, job *Job) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	err := dec.Decode(job)
	if errors.Is(err, io.EOF) {
		// empty document
		return nil
	}
	return err
}

func (j *Job) resolvePaths(base string) {
	resolve := func(p string) string {
		if p == "" || p == "-" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}
	j.Shader = resolve(j.Shader)
	for i := range j.Channels {
		j.Channels[i] = resolve(j.Channels[i])
	}
	j.Out = resolve(j.Out)
	j.GIF = resolve(j.GIF)
}
