// Package categorize assigns spending categories to transaction
// descriptions using an ordered keyword rule list.
package categorize

import "strings"

// Reserved category names. Both always exist and cannot be deleted.
const (
	Other    = "Other"
	Excluded = "Excluded"
)

// Rule maps a keyword to a category. Matching is case-insensitive.
type Rule struct {
	Keyword  string
	Category string
}

// Categorize returns the category of the first rule whose keyword occurs in
// the description, or Other when none matches. Rules are evaluated in the
// order supplied; an earlier, more general keyword deliberately shadows a
// later, more specific one. Callers must preserve storage order.
func Categorize(description string, rules []Rule) string {
	upper := strings.ToUpper(description)
	for _, r := range rules {
		if strings.Contains(upper, strings.ToUpper(r.Keyword)) {
			return r.Category
		}
	}
	return Other
}
