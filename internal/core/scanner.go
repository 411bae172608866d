package core

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// DiscoverFiles walks root and returns slash-separated paths relative to
// root that match pattern and none of the exclude patterns, sorted.
// Pattern semantics follow Python's pathlib.Path.glob, which the original
// tool exposed: "**" matches zero or more path segments, "*" and "?" match
// within a segment.
func DiscoverFiles(root, pattern string, exclude []string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if !MatchPattern(pattern, rel) {
			return nil
		}
		for _, ex := range exclude {
			if MatchPattern(ex, rel) {
				return nil
			}
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

// MatchPattern reports whether a slash-separated relative path matches a
// glob pattern with "**" support.
func MatchPattern(pattern, path string) bool {
	return matchSegments(strings.Split(pattern, "/"), strings.Split(path, "/"))
}

func matchSegments(pat, segs []string) bool {
	if len(pat) == 0 {
		return len(segs) == 0
	}
	if pat[0] == "**" {
		// "**" spans zero or more leading segments.
		for skip := 0; skip <= len(segs); skip++ {
			if matchSegments(pat[1:], segs[skip:]) {
				return true
			}
		}
		return false
	}
	if len(segs) == 0 {
		return false
	}
	if !matchSegment(pat[0], segs[0]) {
		return false
	}
	return matchSegments(pat[1:], segs[1:])
}

// matchSegment matches one path segment against one pattern segment
// supporting "*", "?", and "[...]" character classes.
func matchSegment(pat, seg string) bool {
	ok, err := filepath.Match(pat, seg)
	return err == nil && ok
}
