package api

import (
	"dragonfly/internal/config"
	"dragonfly/internal/fileutil"
	"dragonfly/internal/library"
)

// ScanEntry is one file in a dry-run listing.
type ScanEntry struct {
	Path string
	Size int64
}

// ScanResult is the outcome of a scan-only dry run. Candidates are files a
// conversion run would convert; Deletable are source files whose target
// already exists, left behind when a previous run was interrupted between
// verification and replacement.
type ScanResult struct {
	Candidates     []ScanEntry
	Deletable      []ScanEntry
	CandidateBytes int64
	DeletableBytes int64
}

// ScanLibrary walks both library roots without mutating anything and
// partitions the source files it finds by whether their target exists.
func ScanLibrary(cfg *config.Config) (*ScanResult, error) {
	movies, err := library.Scan(cfg.MoviesRoot(), false)
	if err != nil {
		return nil, err
	}
	episodes, err := library.Scan(cfg.TVRoot(), true)
	if err != nil {
		return nil, err
	}

	result := &ScanResult{}
	for _, path := range append(movies, episodes...) {
		size, err := fileutil.Size(path)
		if err != nil {
			// File vanished between enumeration and stat; a later run will
			// simply not see it.
			continue
		}
		entry := ScanEntry{Path: path, Size: size}
		if fileutil.Exists(library.TargetPath(path)) {
			result.Deletable = append(result.Deletable, entry)
			result.DeletableBytes += size
			continue
		}
		result.Candidates = append(result.Candidates, entry)
		result.CandidateBytes += size
	}
	return result, nil
}
