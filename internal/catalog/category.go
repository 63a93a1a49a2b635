package catalog

import "strings"

// Category is one label of the fixed event taxonomy.
type Category string

const (
	Music    Category = "music"
	Art      Category = "art"
	Workshop Category = "workshop"
	Meetup   Category = "meetup"
	Sports   Category = "sports"
	Date     Category = "date"
	Comedy   Category = "comedy"
	General  Category = "general"
)

// categoryRule maps keywords to a category. Rules are evaluated in order.
type categoryRule struct {
	category Category
	keywords []string
}

// rules is ordered by priority: the first rule with a keyword hit wins.
var rules = []categoryRule{
	{Music, []string{"concert", "music", "gig"}},
	{Art, []string{"art", "exhibition", "gallery"}},
	{Workshop, []string{"workshop", "class", "training"}},
	{Meetup, []string{"meetup", "network", "community"}},
	{Sports, []string{"sports", "game", "tournament"}},
	{Date, []string{"date"}},
	{Comedy, []string{"comedy"}},
}

// Taxonomy returns every category, in priority order, ending with General.
func Taxonomy() []Category {
	out := make([]Category, 0, len(rules)+1)
	for _, r := range rules {
		out = append(out, r.category)
	}
	return append(out, General)
}

// Valid reports whether c belongs to the taxonomy.
func (c Category) Valid() bool {
	for _, t := range Taxonomy() {
		if c == t {
			return true
		}
	}
	return false
}

// Classify maps a raw external type tag and an event title to a category.
// It never fails; unmatched input yields General.
func Classify(rawType, title string) Category {
	c, _ := ClassifyChecked(rawType, title)
	return c
}

// ClassifyChecked also reports whether no rule matched and General was used.
func ClassifyChecked(rawType, title string) (Category, bool) {
	rawType = strings.ToLower(rawType)
	title = strings.ToLower(title)

	for _, r := range rules {
		for _, k := range r.keywords {
			if strings.Contains(rawType, k) || strings.Contains(title, k) {
				return r.category, false
			}
		}
	}
	return General, true
}
