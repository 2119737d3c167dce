package ffmpeg

import (
	"os/exec"
	"strings"
)

// Resolve returns the absolute path of the engine binary when it can be
// found on PATH, falling back to the configured name otherwise. Preflight
// uses the boolean to distinguish the two.
func Resolve(binary string) (string, bool) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	if resolved, err := exec.LookPath(binary); err == nil {
		return resolved, true
	}
	return binary, false
}
