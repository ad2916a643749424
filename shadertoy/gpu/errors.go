package gpu

import "fmt"

// ShaderCompileError carries the compiler diagnostic of a failed stage.
type ShaderCompileError struct {
	Stage Stage
	Log   string
}

func (e *ShaderCompileError) Error() string {
	return fmt.Sprintf("failed to compile %s shader: %s", e.Stage, e.Log)
}

// ShaderLinkError carries the linker diagnostic of a failed program.
type ShaderLinkError struct {
	Log string
}

func (e *ShaderLinkError) Error() string {
	return fmt.Sprintf("failed to link shader program: %s", e.Log)
}

// FramebufferIncompleteError reports a framebuffer that failed its completeness check.
type FramebufferIncompleteError struct {
	Status uint32
}

func (e *FramebufferIncompleteError) Error() string {
	return fmt.Sprintf("framebuffer is not complete (status 0x%04X)", e.Status)
}
