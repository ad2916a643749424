package backend

import (
	"fmt"
	"strings"
	"unsafe"
)

// Kind identifies one of the platform strategies for acquiring a GL context.
type Kind int

const (
	// Native is a desktop GL context created without any surface (CGL).
	Native Kind = iota
	// Headless is an off-screen pixel-buffer surface on a display-less host (EGL).
	Headless
	// Windowed is the context of a window that is never shown.
	Windowed
)

var kindNames = map[Kind]string{
	Native:   "native",
	Headless: "headless",
	Windowed: "windowed",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind parses a strategy name as printed by Kind.String.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(s, name) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown platform %q (want native, headless or windowed)", s)
}

// Context is a live GL context made current on the thread that created it.
// It is owned by a single render pass and must be released with the
// Destroy of the Provider that created it.
type Context interface {
	Kind() Kind
	Size() (width, height int)
	// ProcAddress resolves a GL entry point. It returns nil when the platform
	// relies on the default loader of the GL bindings.
	ProcAddress(name string) unsafe.Pointer
}

// Provider creates and destroys GL contexts for one platform strategy.
// Providers hold no live GPU state between calls:
// - Create acquires every platform resource needed and makes the context current
// - Destroy releases them in reverse order of acquisition
// A failed Create releases whatever it acquired before returning.
type Provider interface {
	Name() string
	Kind() Kind
	Create(width, height int) (Context, error)
	Destroy(ctx Context) error
}
