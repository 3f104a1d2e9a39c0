package permission

import "sort"

// Tag is an opaque permission identifier. Comparison is exact and
// case-sensitive; the library never interprets tag contents.
type Tag string

// Set is the collection of tags a caller holds for the duration of one
// request. It is owned by that request and must not be shared.
type Set map[Tag]struct{}

// NewSet builds a Set from the given tags. Duplicates collapse.
func NewSet(tags ...Tag) Set {
	s := make(Set, len(tags))
	for _, t := range tags {
		s[t] = struct{}{}
	}
	return s
}

// NewSetFromStrings builds a Set from raw strings, as delivered by external
// grant sources (JWT claims, Redis members).
func NewSetFromStrings(tags []string) Set {
	s := make(Set, len(tags))
	for _, t := range tags {
		s[Tag(t)] = struct{}{}
	}
	return s
}

// Has reports whether the set contains the tag.
func (s Set) Has(t Tag) bool {
	_, ok := s[t]
	return ok
}

// Add inserts a tag into the set.
func (s Set) Add(t Tag) {
	s[t] = struct{}{}
}

// Intersect returns the tags of required that the set holds, preserving the
// order of required. A non-empty result means the caller satisfies a
// disjunctive (any-of) requirement.
func (s Set) Intersect(required []Tag) []Tag {
	if len(s) == 0 || len(required) == 0 {
		return nil
	}
	var matched []Tag
	for _, t := range required {
		if _, ok := s[t]; ok {
			matched = append(matched, t)
		}
	}
	return matched
}

// Tags returns the set's tags sorted lexicographically, for stable audit
// output.
func (s Set) Tags() []Tag {
	out := make([]Tag, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Strings returns the sorted tags as plain strings.
func (s Set) Strings() []string {
	tags := s.Tags()
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = string(t)
	}
	return out
}

// TagStrings converts an ordered tag slice to plain strings, keeping order.
func TagStrings(tags []Tag) []string {
	if tags == nil {
		return nil
	}
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = string(t)
	}
	return out
}
