package source

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Expand turns location patterns into concrete locations. Local patterns may
// use doublestar globs ("ontologies/**/*.obo"); remote locations and plain
// paths are returned unchanged. Duplicates are dropped and input order is
// kept, with the matches of a single pattern sorted.
func Expand(patterns []string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		matches, err := expandPattern(pattern)
		if err != nil {
			return nil, fmt.Errorf("expand %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	return out, nil
}

func expandPattern(pattern string) ([]string, error) {
	if hasScheme(pattern) || !containsGlob(pattern) {
		return []string{pattern}, nil
	}

	if !doublestar.ValidatePathPattern(pattern) {
		return nil, fmt.Errorf("%w: invalid glob", doublestar.ErrBadPattern)
	}

	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob error: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: no files match", ErrNotFound)
	}

	for i, m := range matches {
		matches[i] = filepath.Clean(m)
	}
	sort.Strings(matches)
	return matches, nil
}

func containsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
