package parser

import (
	"strings"

	"github.com/pantrypilot/receipt-scanner/constants"
)

// IdentifyStore classifies receipt text into a store profile by scanning for
// store-name substrings. Pure function of its input; unknown text maps to the
// generic profile.
func IdentifyStore(text string) constants.StoreProfile {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "whole foods"):
		return constants.WholeFoods
	case strings.Contains(lower, "trader joe"):
		return constants.TraderJoes
	default:
		return constants.Generic
	}
}
