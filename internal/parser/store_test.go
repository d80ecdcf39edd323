package parser

import (
	"testing"

	"github.com/pantrypilot/receipt-scanner/constants"
)

func TestIdentifyStore(t *testing.T) {
	tests := []struct {
		name string
		text string
		want constants.StoreProfile
	}{
		{"whole foods header", "WHOLE FOODS MARKET\n123 Main St\nBANANAS $1.99", constants.WholeFoods},
		{"whole foods lowercase", "whole foods market #10233", constants.WholeFoods},
		{"trader joes", "TRADER JOE'S #552\nOPEN 8AM", constants.TraderJoes},
		{"trader joe singular", "Trader Joe receipt", constants.TraderJoes},
		{"unknown store", "SAFEWAY\nMILK $3.49", constants.Generic},
		{"empty", "", constants.Generic},
		{"garbage", "@@@###!!!", constants.Generic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IdentifyStore(tt.text); got != tt.want {
				t.Errorf("IdentifyStore(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestIdentifyStoreDeterministic(t *testing.T) {
	text := "WHOLE FOODS MARKET\nBANANAS $1.99"
	first := IdentifyStore(text)
	for i := 0; i < 10; i++ {
		if got := IdentifyStore(text); got != first {
			t.Fatalf("IdentifyStore not deterministic: got %q then %q", first, got)
		}
	}
}
