package constants

import (
	"strings"
)

// Category is a grocery category label attached to a parsed item.
type Category string

const (
	Produce       Category = "Produce"
	Dairy         Category = "Dairy"
	Meat          Category = "Meat"
	Bakery        Category = "Bakery"
	Pantry        Category = "Pantry"
	Snacks        Category = "Snacks"
	Beverages     Category = "Beverages"
	Frozen        Category = "Frozen"
	PreparedFoods Category = "Prepared Foods"
	Other         Category = "Other"
)

var allCategories = []Category{
	Produce,
	Dairy,
	Meat,
	Bakery,
	Pantry,
	Snacks,
	Beverages,
	Frozen,
	PreparedFoods,
	Other,
}

func AsStringSlice() []string {
	result := make([]string, len(allCategories))
	for i, cat := range allCategories {
		result[i] = string(cat)
	}
	return result
}

// Canonicalize maps a free-form label (e.g. from an LLM response) onto the
// category vocabulary. Returns (Other, false) when the label is unknown.
func Canonicalize(input string) (Category, bool) {
	if input == "" {
		return Other, false
	}

	normalized := strings.ToLower(strings.TrimSpace(input))

	// synonyms map
	synonyms := map[string]Category{
		"fruit":        Produce,
		"fruits":       Produce,
		"vegetables":   Produce,
		"veggies":      Produce,
		"seafood":      Meat,
		"fish":         Meat,
		"deli":         PreparedFoods,
		"prepared":     PreparedFoods,
		"ready meals":  PreparedFoods,
		"drinks":       Beverages,
		"soda":         Beverages,
		"bread":        Bakery,
		"baked goods":  Bakery,
		"dry goods":    Pantry,
		"canned goods": Pantry,
		"candy":        Snacks,
		"freezer":      Frozen,
	}

	if cat, ok := synonyms[normalized]; ok {
		return cat, true
	}

	// check if it matches any category string
	for _, cat := range allCategories {
		if normalized == strings.ToLower(string(cat)) {
			return cat, true
		}
	}

	return Other, false
}
