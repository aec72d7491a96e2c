// Package filter decides which files a mirror run skips.
package filter

import (
	"fmt"
	"regexp"
)

// Set is an ordered list of compiled exclusion patterns, built once at
// run start. A nil or empty Set excludes nothing.
type Set struct {
	patterns []*regexp.Regexp
}

// Compile builds a Set from regex source strings. A malformed pattern
// is a configuration error.
func Compile(patterns []string) (*Set, error) {
	s := &Set{patterns: make([]*regexp.Regexp, 0, len(patterns))}
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("exclude pattern %q: %w", p, err)
		}
		s.patterns = append(s.patterns, re)
	}
	return s, nil
}

// Len returns the number of patterns in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.patterns)
}

// Excluded reports whether path matches at least one pattern. Matching
// uses search semantics: a pattern matches anywhere in the path unless
// it anchors itself. Paths are given relative to the source root so
// that patterns behave the same for relative and absolute invocations.
func (s *Set) Excluded(path string) bool {
	if s == nil {
		return false
	}
	for _, re := range s.patterns {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}
