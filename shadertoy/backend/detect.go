package backend

import "strings"

// EnvPlatform overrides platform detection when set.
const EnvPlatform = "SHADERTOY_PLATFORM"

// Detect picks the strategy for the host: an explicit override first, then
// macOS uses the native context, a POSIX host without an X display goes
// headless, and everything else gets a hidden window.
func Detect(goos string, getenv func(string) string) (Kind, error) {
	if override := strings.TrimSpace(getenv(EnvPlatform)); override != "" {
		return ParseKind(override)
	}
	switch {
	case goos == "darwin":
		return Native, nil
	case goos != "windows" && getenv("DISPLAY") == "":
		return Headless, nil
	}
	return Windowed, nil
}
