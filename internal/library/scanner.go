package library

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"dragonfly/internal/services"
)

// TargetExtension is the container every conversion produces.
const TargetExtension = ".mp4"

// sourceExtensions are the formats that mark a file as needing conversion.
var sourceExtensions = map[string]struct{}{
	".avi": {},
	".mkv": {},
}

// IsSource reports whether the file name carries a source-format extension.
// The check is case-insensitive.
func IsSource(name string) bool {
	_, ok := sourceExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// TargetPath returns the path the converted output will be written to: the
// source path with its extension replaced by the target extension.
func TargetPath(source string) string {
	ext := filepath.Ext(source)
	return source[:len(source)-len(ext)] + TargetExtension
}

// Scan returns the source-format files under root in enumeration order.
// Non-recursive mode inspects only direct children; recursive mode walks the
// full subtree. A root that does not exist is skipped silently.
func Scan(root string, recursive bool) ([]string, error) {
	if recursive {
		return scanTree(root)
	}
	return scanFlat(root)
}

func scanFlat(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, services.Wrap(services.ErrFilesystem, "library", "scan", root, err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !IsSource(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(root, entry.Name()))
	}
	return files, nil
}

func scanTree(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root && errors.Is(err, fs.ErrNotExist) {
				return filepath.SkipAll
			}
			return err
		}
		if d.IsDir() || !IsSource(d.Name()) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, services.Wrap(services.ErrFilesystem, "library", "scan", root, err)
	}
	return files, nil
}
