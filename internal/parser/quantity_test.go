package parser

import (
	"testing"

	"github.com/pantrypilot/receipt-scanner/constants"
)

func TestExtractQuantityAndUnit(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		store    constants.StoreProfile
		wantQty  float64
		wantUnit string
		wantOK   bool
	}{
		{"pounds", "1.5 lb", constants.Generic, 1.5, "lb", true},
		{"pounds no space", "2lbs", constants.Generic, 2, "lb", true},
		{"ounces", "12 oz", constants.Generic, 12, "oz", true},
		{"count", "6 ct", constants.Generic, 6, "ct", true},
		{"multiplier", "2 x ea", constants.Generic, 2, "ea", true},
		{"bottle", "1 bottle", constants.Generic, 1, "bottle", true},
		{"tj each with price", "2EA$7.98", constants.TraderJoes, 2, "ea", true},
		{"wf prime modifier", "2 ea withPrime$5.98", constants.WholeFoods, 2, "ea", true},
		{"wf weighed reg modifier", "1.23 lb Reg$2.99", constants.WholeFoods, 1.23, "lb", true},

		{"no quantity", "ORGANIC BANANAS", constants.Generic, 0, "", false},
		{"totals rejected", "TOTAL 45.67", constants.Generic, 0, "", false},
		{"tax rejected", "SALES TAX 1.23", constants.Generic, 0, "", false},
		{"absurd quantity rejected", "500 ct", constants.Generic, 0, "", false},
		{"zero quantity rejected", "0 lb", constants.Generic, 0, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qty, unit, ok := ExtractQuantityAndUnit(tt.line, tt.store)
			if ok != tt.wantOK || qty != tt.wantQty || unit != tt.wantUnit {
				t.Errorf("ExtractQuantityAndUnit(%q, %s) = (%v, %q, %v), want (%v, %q, %v)",
					tt.line, tt.store, qty, unit, ok, tt.wantQty, tt.wantUnit, tt.wantOK)
			}
		})
	}
}
