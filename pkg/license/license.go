// Package license classifies image-usage-rights tags into the closed set
// of categories used by the source imagery corpus.
package license

// Category is one of the fixed image license categories.
type Category int

const (
	CCBY Category = iota + 1
	CCBYSA
	CCBYND
	CCBYNC
	CCBYNCSA
	CCBYNCND
	Other
	CC0
)

// Categories returns all categories in their canonical order.
func Categories() []Category {
	return []Category{CCBY, CCBYSA, CCBYND, CCBYNC, CCBYNCSA, CCBYNCND, Other, CC0}
}

var names = map[Category]string{
	CCBY:     "Attribution License",
	CCBYSA:   "Attribution-ShareAlike License",
	CCBYND:   "Attribution-NoDerivs License",
	CCBYNC:   "Attribution-NonCommercial License",
	CCBYNCSA: "Attribution-NonCommercial-ShareAlike License",
	CCBYNCND: "Attribution-NonCommercial-NoDerivs License",
	Other:    "No known copyright restrictions",
	CC0:      "United States Government Work",
}

var urls = map[Category]string{
	CCBY:     "https://creativecommons.org/licenses/by/4.0/",
	CCBYSA:   "https://creativecommons.org/licenses/by-sa/4.0/",
	CCBYND:   "https://creativecommons.org/licenses/by-nd/4.0/",
	CCBYNC:   "https://creativecommons.org/licenses/by-nc/4.0/",
	CCBYNCSA: "https://creativecommons.org/licenses/by-nc-sa/4.0/",
	CCBYNCND: "https://creativecommons.org/licenses/by-nc-nd/4.0/",
	Other:    "http://flickr.com/commons/usage/e",
	CC0:      "http://www.usa.gov/copyright.shtml",
}

// Name returns the category's display name as it appears in corpus
// license tags.
func (c Category) Name() string {
	return names[c]
}

// URL returns the canonical license text location.
func (c Category) URL() string {
	return urls[c]
}

func (c Category) String() string {
	return c.Name()
}

// FromName maps a license display name to its category. Unrecognized or
// missing names deliberately fall back to CC0 rather than erroring, so a
// tally always places every sample somewhere.
func FromName(name string) Category {
	for _, c := range Categories() {
		if names[c] == name {
			return c
		}
	}
	return CC0
}
