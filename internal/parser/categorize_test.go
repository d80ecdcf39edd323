package parser

import (
	"testing"

	"github.com/pantrypilot/receipt-scanner/constants"
)

func TestCategorizeItem(t *testing.T) {
	tests := []struct {
		name string
		item string
		want constants.Category
	}{
		{"spinach is produce", "organic baby spinach", constants.Produce},
		{"bananas", "Bananas", constants.Produce},
		{"milk", "Whole Milk", constants.Dairy},
		{"cheddar", "Sharp Cheddar", constants.Dairy},
		{"chicken", "Chicken Thighs", constants.Meat},
		{"salmon", "Atlantic Salmon Fillet", constants.Meat},
		{"sourdough", "Sourdough Bread", constants.Bakery},
		{"frozen pizza", "Frozen Margherita Pizza", constants.Frozen},
		{"sparkling water", "Sparkling Water", constants.Beverages},
		{"noodles", "Rice Noodles", constants.Pantry},
		{"cashews", "Sesame Honey Cashews", constants.Snacks},
		{"sushi", "Sushi Platter", constants.PreparedFoods},
		{"unknown", "Paper Towels", constants.Other},
		{"empty", "", constants.Other},
		{"whitespace", "   ", constants.Other},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CategorizeItem(tt.item)
			if got != tt.want {
				t.Errorf("CategorizeItem(%q) = %q, want %q", tt.item, got, tt.want)
			}
			if got == "" {
				t.Errorf("CategorizeItem(%q) returned empty category", tt.item)
			}
		})
	}
}
