package fs

import (
	"path"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/depcache/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.InputResolver = (*Resolver)(nil)

// Resolver expands input patterns. "*" matches within one path segment, "**" matches any number of segments.
type Resolver struct {
	walker *Walker
}

// NewResolver creates a new Resolver.
func NewResolver(walker *Walker) *Resolver {
	return &Resolver{walker: walker}
}

// ResolveInputs expands patterns relative to root into sorted, deduplicated absolute paths.
// A pattern without matches contributes nothing.
func (r *Resolver) ResolveInputs(patterns []string, root string) ([]string, error) {
	unique := make(map[string]struct{})

	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if _, err := path.Match(strings.ReplaceAll(pattern, "**", "*"), ""); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "invalid glob pattern"), "pattern", pattern)
		}

		if !strings.Contains(pattern, "**") {
			matches, err := filepath.Glob(filepath.Join(root, filepath.FromSlash(pattern)))
			if err != nil {
				return nil, zerr.With(zerr.Wrap(err, "failed to glob path"), "pattern", pattern)
			}
			for _, m := range matches {
				unique[m] = struct{}{}
			}
			continue
		}

		patternParts := strings.Split(pattern, "/")
		for file := range r.walker.WalkFiles(root, nil) {
			rel, err := filepath.Rel(root, file)
			if err != nil {
				continue
			}
			if matchSegments(patternParts, strings.Split(filepath.ToSlash(rel), "/")) {
				unique[file] = struct{}{}
			}
		}
	}

	result := make([]string, 0, len(unique))
	for p := range unique {
		result = append(result, p)
	}
	slices.Sort(result)
	return result, nil
}

// matchSegments matches a split path against a split pattern where "**" spans zero or more segments.
func matchSegments(pattern, parts []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			rest := pattern[1:]
			for i := 0; i <= len(parts); i++ {
				if matchSegments(rest, parts[i:]) {
					return true
				}
			}
			return false
		}
		if len(parts) == 0 {
			return false
		}
		if ok, _ := path.Match(pattern[0], parts[0]); !ok {
			return false
		}
		pattern, parts = pattern[1:], parts[1:]
	}
	return len(parts) == 0
}
