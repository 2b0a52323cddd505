package collision

import (
	"strings"

	"github.com/zeebo/xxh3"
)

// Tag is a hashed actor tag. Tags are compared by hash so that queries never touch strings on the
// hot path.
type Tag uint64

// NewTag hashes a tag name. Names are case-insensitive.
func NewTag(name string) Tag {
	return Tag(xxh3.HashString(strings.ToLower(name)))
}

// TagSet is a small set of tags attached to a body.
type TagSet []Tag

// Tags builds a tag set from the given names, skipping duplicates.
func Tags(names ...string) TagSet {
	set := make(TagSet, 0, len(names))
	for _, name := range names {
		set = set.With(NewTag(name))
	}
	return set
}

// Has returns true if the set contains the tag.
func (s TagSet) Has(t Tag) bool {
	for _, tag := range s {
		if tag == t {
			return true
		}
	}
	return false
}

// With returns the set with the tag added.
func (s TagSet) With(t Tag) TagSet {
	if s.Has(t) {
		return s
	}
	return append(s, t)
}
