// Package platform selects a context provider for the host and wires it to
// the real GL device.
package platform

import (
	"fmt"
	"os"
	"runtime"
	"sort"
	"strings"

	"github.com/valerio/go-shadertoy/shadertoy"
	"github.com/valerio/go-shadertoy/shadertoy/backend"
	"github.com/valerio/go-shadertoy/shadertoy/backend/headless"
	"github.com/valerio/go-shadertoy/shadertoy/backend/native"
	"github.com/valerio/go-shadertoy/shadertoy/backend/sdl2"
	"github.com/valerio/go-shadertoy/shadertoy/backend/windowed"
	"github.com/valerio/go-shadertoy/shadertoy/gpu/glcore"
)

var providers = map[string]func() backend.Provider{
	"cgl":  func() backend.Provider { return native.New() },
	"egl":  func() backend.Provider { return headless.New() },
	"glfw": func() backend.Provider { return windowed.New() },
	"sdl2": func() backend.Provider { return sdl2.New() },
}

var defaults = map[backend.Kind]string{
	backend.Native:   "cgl",
	backend.Headless: "egl",
	backend.Windowed: "glfw",
}

// Names lists the providers that can be requested by name.
func Names() []string {
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Detect picks the strategy for the running process.
func Detect() (backend.Kind, error) {
	return backend.Detect(runtime.GOOS, os.Getenv)
}

// New returns the provider called name, or the default provider for kind
// when name is empty. A named provider must implement kind.
func New(kind backend.Kind, name string) (backend.Provider, error) {
	if name == "" {
		name = defaults[kind]
	}
	ctor, ok := providers[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown provider %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	p := ctor()
	if p.Kind() != kind {
		return nil, fmt.Errorf("provider %s is %s, not %s", p.Name(), p.Kind(), kind)
	}
	return p, nil
}

// NewRenderer creates a renderer that draws through go-gl on contexts from p.
func NewRenderer(p backend.Provider, opts ...shadertoy.Option) *shadertoy.Renderer {
	opts = append([]shadertoy.Option{shadertoy.WithDeviceFactory(glcore.New)}, opts...)
	return shadertoy.NewRenderer(p, opts...)
}
