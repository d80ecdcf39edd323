package parser

import (
	"math"
	"testing"

	"github.com/pantrypilot/receipt-scanner/constants"
)

func TestExtractItemDetails(t *testing.T) {
	tests := []struct {
		name      string
		anchor    string
		store     constants.StoreProfile
		wantName  string
		wantPrice float64
	}{
		{"wf taxed item", "ORGANIC BANANAS $2.99 F", constants.WholeFoods, "ORGANIC BANANAS", 2.99},
		{"wf reg discount anchor", "ALMOND BUTTER Reg$7.99", constants.WholeFoods, "ALMOND BUTTER", 7.99},
		{"wf plain price", "SOURDOUGH BREAD 4.49", constants.WholeFoods, "SOURDOUGH BREAD", 4.49},
		{"missing decimal corrected", "CHEDDAR CHEESE 599", constants.WholeFoods, "CHEDDAR CHEESE", 5.99},
		{"letter for decimal corrected", "OAT MILK 3B49", constants.WholeFoods, "OAT MILK", 3.49},
		{"tj prefixed item", "T ORG SPINACH 2.99", constants.TraderJoes, "ORG SPINACH", 2.99},
		{"tj each item", "BANANA EACH 0.23", constants.TraderJoes, "BANANA", 0.23},
		{"generic item", "MILK $3.49", constants.Generic, "MILK", 3.49},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractItemDetails(tt.anchor, tt.store)
			if got == nil {
				t.Fatalf("ExtractItemDetails(%q, %s) = nil", tt.anchor, tt.store)
			}
			if got.Name != tt.wantName {
				t.Errorf("name = %q, want %q", got.Name, tt.wantName)
			}
			if math.Abs(got.Price-tt.wantPrice) > 1e-9 {
				t.Errorf("price = %v, want %v", got.Price, tt.wantPrice)
			}
			if got.Confidence != constants.ConfidenceMedium {
				t.Errorf("confidence = %q, want medium", got.Confidence)
			}
		})
	}
}

func TestExtractItemDetailsRejects(t *testing.T) {
	tests := []struct {
		name   string
		anchor string
		store  constants.StoreProfile
	}{
		{"total line", "TOTAL $45.67", constants.WholeFoods},
		{"total line generic", "TOTAL $45.67", constants.Generic},
		{"total line tj", "TOTAL $45.67", constants.TraderJoes},
		{"subtotal", "SUBTOTAL 42.01", constants.Generic},
		{"change due", "CHANGE 0.33", constants.Generic},
		{"price above wf band", "CAVIAR 89.99", constants.WholeFoods},
		{"tj unpriced anchor", "T ORG SPINACH", constants.TraderJoes},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractItemDetails(tt.anchor, tt.store); got != nil {
				t.Errorf("ExtractItemDetails(%q, %s) = %+v, want nil", tt.anchor, tt.store, got)
			}
		})
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"2.99", 2.99},
		{"$2.99", 2.99},
		{"299", 2.99},
		{"10000", 1.00},
		{"45999", 4.5999},
		{"3B49", 3.49},
		{"2O99", 2.99},
		{"", 0},
		{"abc", 0},
	}
	for _, tt := range tests {
		if got := parsePrice(tt.raw); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("parsePrice(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
