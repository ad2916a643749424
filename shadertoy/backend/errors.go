package backend

import "fmt"

// Cause is the step of context acquisition that failed.
type Cause int

const (
	CauseUnsupported Cause = iota
	CauseNoDisplay
	CauseInit
	CauseNoConfig
	CausePixelFormat
	CauseContext
	CauseSurface
	CauseWindow
	CauseMakeCurrent
)

var causeText = map[Cause]string{
	CauseUnsupported: "platform not supported by this build",
	CauseNoDisplay:   "no display connection available",
	CauseInit:        "platform initialization failed",
	CauseNoConfig:    "no matching framebuffer configuration",
	CausePixelFormat: "no suitable pixel format",
	CauseContext:     "unable to create context",
	CauseSurface:     "unable to create offscreen surface",
	CauseWindow:      "unable to create window",
	CauseMakeCurrent: "unable to make context current",
}

func (c Cause) String() string {
	if s, ok := causeText[c]; ok {
		return s
	}
	return fmt.Sprintf("Cause(%d)", int(c))
}

// ContextCreationError reports a failed Create.
type ContextCreationError struct {
	Provider string
	Kind     Kind
	Cause    Cause
	Err      error
}

func (e *ContextCreationError) Error() string {
	msg := fmt.Sprintf("%s (%s): %s", e.Provider, e.Kind, e.Cause)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ContextCreationError) Unwrap() error {
	return e.Err
}

// ForeignContextError is returned by Destroy when handed a context another
// provider created.
type ForeignContextError struct {
	Provider string
	Context  Context
}

func (e *ForeignContextError) Error() string {
	return fmt.Sprintf("%s: cannot destroy context of type %T", e.Provider, e.Context)
}
