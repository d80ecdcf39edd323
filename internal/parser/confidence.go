package parser

import (
	"strings"

	"github.com/pantrypilot/receipt-scanner/constants"
)

// ScoreConfidence rates an extracted (name, price) pair. One point each for:
// a name longer than three characters, a multi-word name, a name that is not
// purely numeric, a price above $0.10, and a positive price below $50. Four
// or more points is high confidence, two or three is medium, anything less
// is low. An unpriced item can never score high.
func ScoreConfidence(name string, price float64) constants.Confidence {
	score := 0
	if len(name) > 3 {
		score++
	}
	if strings.Contains(name, " ") {
		score++
	}
	if !reNumeric.MatchString(strings.ReplaceAll(name, " ", "")) {
		score++
	}
	if price > 0.10 {
		score++
	}
	if price > 0 && price < 50.00 {
		score++
	}
	switch {
	case score >= 4:
		return constants.ConfidenceHigh
	case score >= 2:
		return constants.ConfidenceMedium
	default:
		return constants.ConfidenceLow
	}
}
