package parser

import "github.com/pantrypilot/receipt-scanner/constants"

// ParsedItem is one purchase recovered from receipt text. This is the only
// shape callers of the parser depend on.
type ParsedItem struct {
	Name       string               `json:"name"`
	Quantity   float64              `json:"quantity"`
	Unit       string               `json:"unit"`
	Price      float64              `json:"price"`
	Category   constants.Category   `json:"category"`
	Confidence constants.Confidence `json:"confidence"`
}

// LineGroup is one item anchor line plus the modifier lines that follow it.
type LineGroup struct {
	Anchor    string
	Modifiers []string
}

// ItemDetail is the raw (name, price) pulled off an anchor line before
// cleaning and categorization.
type ItemDetail struct {
	Name       string
	Price      float64
	Confidence constants.Confidence
}
