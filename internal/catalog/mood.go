package catalog

import (
	"sort"
	"strings"
)

// CategorySet is an unordered set of categories.
type CategorySet map[Category]struct{}

// NewCategorySet builds a set from cs.
func NewCategorySet(cs ...Category) CategorySet {
	s := make(CategorySet, len(cs))
	for _, c := range cs {
		s[c] = struct{}{}
	}
	return s
}

// Contains reports whether c is in the set.
func (s CategorySet) Contains(c Category) bool {
	_, ok := s[c]
	return ok
}

// Strings returns the members sorted, for queries and stable output.
func (s CategorySet) Strings() []string {
	out := make([]string, 0, len(s))
	for c := range s {
		out = append(out, string(c))
	}
	sort.Strings(out)
	return out
}

var moodCategories = map[string][]Category{
	"calm":      {Art, Meetup, Date},
	"energetic": {Music, Workshop},
	"anxious":   {Meetup, Workshop},
	"social":    {Meetup, Workshop, Comedy, Date},
}

// CategoriesFor returns the categories that suit mood. The lookup ignores case
// and surrounding space. An unknown mood returns the whole taxonomy and false,
// meaning the caller should not filter at all.
func CategoriesFor(mood string) (CategorySet, bool) {
	cs, ok := moodCategories[strings.ToLower(strings.TrimSpace(mood))]
	if !ok {
		return NewCategorySet(Taxonomy()...), false
	}
	return NewCategorySet(cs...), true
}
