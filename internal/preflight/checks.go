package preflight

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"dragonfly/internal/config"
	"dragonfly/internal/ffmpeg"
)

// Result reports one environment check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// minFreeBytes is the headroom required on the media filesystem. Conversions
// briefly hold source and target side by side, so a nearly full disk fails a
// run late and messily; better to refuse up front.
const minFreeBytes = 1 << 30

// CheckEngine verifies the configured engine binary resolves on PATH.
func CheckEngine(binary string) Result {
	const name = "Transcoding engine"
	resolved, found := ffmpeg.Resolve(binary)
	if !found {
		return Result{Name: name, Detail: fmt.Sprintf("binary %q not found", resolved)}
	}
	return Result{Name: name, Passed: true, Detail: resolved}
}

// CheckDirectoryAccess verifies that the directory exists and is readable.
// A missing library directory passes: the scanner treats it as an empty
// category, not an error.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (missing, treated as empty)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckDiskSpace verifies the filesystem holding path has enough free space
// for conversion output. A missing path passes for the same reason missing
// library directories do.
func CheckDiskSpace(path string) Result {
	const name = "Disk space"
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Passed: true, Detail: "media root missing, nothing to convert"}
		}
		return Result{Name: name, Detail: fmt.Sprintf("statfs %s: %v", path, err)}
	}
	free := stat.Bavail * uint64(stat.Bsize)
	detail := fmt.Sprintf("%.1f GiB available", float64(free)/(1<<30))
	if free < minFreeBytes {
		return Result{Name: name, Detail: detail + " (below 1 GiB minimum)"}
	}
	return Result{Name: name, Passed: true, Detail: detail}
}

// Run evaluates every check for the given config.
func Run(cfg *config.Config) []Result {
	return []Result{
		CheckEngine(cfg.Transcode.FFmpegBinary),
		CheckDirectoryAccess("Movie library", cfg.MoviesRoot()),
		CheckDirectoryAccess("TV library", cfg.TVRoot()),
		CheckDiskSpace(cfg.Paths.MediaRoot),
	}
}

// Passed reports whether every result passed.
func Passed(results []Result) bool {
	for _, result := range results {
		if !result.Passed {
			return false
		}
	}
	return true
}
