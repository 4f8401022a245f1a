package extract

import (
	"regexp"
	"strings"
	"sync"
)

// CategoryOther is the fallback when nothing in the text names a category.
const CategoryOther = "other"

// Categories is the closed set of expense categories, in check order.
var Categories = []string{
	"food",
	"transportation",
	"entertainment",
	"utilities",
	"healthcare",
	"shopping",
	"electronics",
	"travel",
	"education",
}

// categorySynonyms maps each category to trigger words that imply it.
var categorySynonyms = map[string][]string{
	"food":           {"lunch", "dinner", "breakfast", "snack", "restaurant", "coffee", "grocery", "groceries", "meal"},
	"transportation": {"transport", "cab", "taxi", "uber", "auto", "rickshaw", "bus", "train", "fuel", "petrol", "parking"},
	"entertainment":  {"movie", "cinema", "concert", "game", "netflix", "subscription"},
	"utilities":      {"electricity", "water bill", "internet", "wifi", "phone bill", "rent"},
	"healthcare":     {"doctor", "medicine", "pharmacy", "hospital", "dental"},
	"shopping":       {"clothes", "shoes", "mall", "amazon"},
	"electronics":    {"laptop", "phone", "headphones", "gadget", "charger"},
	"travel":         {"flight", "hotel", "trip", "vacation"},
	"education":      {"course", "book", "books", "tuition", "class"},
}

// Category maps text to one of the closed expense categories. Exact
// category-name matches are checked for every category before any synonym
// is considered, so a literal "food" beats a co-occurring "uber". Never
// fails: unmatched text maps to "other".
func Category(text string) string {
	lower := strings.ToLower(text)

	for _, cat := range Categories {
		if ContainsWord(lower, cat) {
			return cat
		}
	}

	for _, cat := range Categories {
		for _, syn := range categorySynonyms[cat] {
			if ContainsWord(lower, syn) {
				return cat
			}
		}
	}

	return CategoryOther
}

var wordPatterns sync.Map

// ContainsWord reports whether lower contains the keyword on word
// boundaries. Plain substring containment would let "update" trigger "ate".
func ContainsWord(lower, keyword string) bool {
	if re, ok := wordPatterns.Load(keyword); ok {
		return re.(*regexp.Regexp).MatchString(lower)
	}
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(keyword) + `\b`)
	wordPatterns.Store(keyword, re)
	return re.MatchString(lower)
}
