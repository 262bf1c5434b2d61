package blacklist

import (
	"regexp"

	"github.com/pkg/errors"
)

// Blacklist holds the patterns of input lines which must never be ranked.
// A nil Blacklist excludes nothing.
type Blacklist struct {
	patterns []*regexp.Regexp
}

// New returns a blacklist built from the given patterns
func New(patterns ...string) (*Blacklist, error) {
	b := &Blacklist{}
	if err := b.Add(patterns...); err != nil {
		return nil, err
	}
	return b, nil
}

// Excludes returns true if the line matches any pattern
func (b *Blacklist) Excludes(line string) bool {
	if b == nil {
		return false
	}
	for _, reg := range b.patterns {
		if reg.MatchString(line) {
			return true
		}
	}
	return false
}

// Add compiles and appends the given patterns. Nothing is added if one of
// them is invalid.
func (b *Blacklist) Add(patterns ...string) error {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		reg, err := regexp.Compile(p)
		if err != nil {
			return errors.Wrapf(err, "invalid exclude pattern %q", p)
		}
		compiled = append(compiled, reg)
	}
	b.patterns = append(b.patterns, compiled...)
	return nil
}

// Patterns returns the source of every pattern in the blacklist
func (b *Blacklist) Patterns() []string {
	if b == nil {
		return nil
	}
	patterns := make([]string, len(b.patterns))
	for i, pattern := range b.patterns {
		patterns[i] = pattern.String()
	}
	return patterns
}

// Len returns the number of patterns
func (b *Blacklist) Len() int {
	if b == nil {
		return 0
	}
	return len(b.patterns)
}
