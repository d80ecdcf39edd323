package parser

import (
	"strings"

	"github.com/pantrypilot/receipt-scanner/constants"
)

type categoryKeywords struct {
	category constants.Category
	keywords []string
}

// Ordered: the first category with a keyword substring match wins, so the
// more specific buckets come before the catch-all pantry staples.
var categoryTable = []categoryKeywords{
	{constants.Produce, []string{
		"apple", "banana", "orange", "lemon", "lime", "grape", "berry",
		"berries", "strawberr", "blueberr", "raspberr", "melon", "mango",
		"peach", "pear", "plum", "avocado", "tomato", "potato", "onion",
		"garlic", "carrot", "celery", "lettuce", "spinach", "kale", "arugula",
		"broccoli", "cauliflower", "pepper", "cucumber", "zucchini", "squash",
		"mushroom", "corn", "beet", "radish", "cabbage", "herb", "cilantro",
		"parsley", "basil", "ginger", "salad", "greens", "fruit", "vegetable",
	}},
	{constants.Dairy, []string{
		"milk", "cheese", "yogurt", "butter", "cream", "egg", "kefir",
		"cottage", "mozzarella", "cheddar", "parmesan", "feta", "brie",
		"half and half", "half & half", "sour cream",
	}},
	{constants.Meat, []string{
		"chicken", "beef", "pork", "turkey", "lamb", "bacon", "sausage",
		"ham", "steak", "ground", "salmon", "tuna", "shrimp", "fish", "crab",
		"tilapia", "cod", "meat", "ribs", "brisket", "wing", "thigh",
		"breast", "drumstick",
	}},
	{constants.Bakery, []string{
		"bread", "bagel", "muffin", "croissant", "roll", "bun", "tortilla",
		"pita", "baguette", "donut", "doughnut", "cake", "pie", "pastry",
		"cookie", "brownie",
	}},
	{constants.Frozen, []string{
		"frozen", "ice cream", "popsicle", "sorbet", "gelato", "pizza",
		"freeze dried", "freezedried",
	}},
	{constants.Beverages, []string{
		"water", "juice", "soda", "coffee", "tea", "kombucha", "sparkling",
		"lemonade", "cider", "beer", "wine", "drink", "beverage", "spindrift",
		"punch",
	}},
	{constants.Snacks, []string{
		"chip", "cracker", "pretzel", "popcorn", "nut", "almond", "cashew",
		"peanut", "pistachio", "trail mix", "granola bar", "candy",
		"chocolate", "snack", "jerky",
	}},
	{constants.PreparedFoods, []string{
		"sandwich", "wrap", "sushi", "soup", "deli", "rotisserie", "prepared",
		"hummus", "guacamole", "salsa", "dip", "kimbap", "masala", "burrito",
		"bowl",
	}},
	{constants.Pantry, []string{
		"rice", "pasta", "noodle", "bean", "lentil", "quinoa", "oat",
		"cereal", "flour", "sugar", "salt", "spice", "oil", "vinegar",
		"sauce", "ketchup", "mustard", "mayo", "honey", "syrup", "jam",
		"jelly", "peanut butter", "broth", "stock", "canned", "tomato sauce",
		"granola", "seasoning", "baking",
	}},
}

// CategorizeItem maps an item name to a grocery category by ordered keyword
// matching. Unmatched names always get the Other bucket, never an empty value.
func CategorizeItem(name string) constants.Category {
	lower := strings.ToLower(name)
	if strings.TrimSpace(lower) == "" {
		return constants.Other
	}
	for _, entry := range categoryTable {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.category
			}
		}
	}
	return constants.Other
}
