package parser

import (
	"strconv"

	"github.com/pantrypilot/receipt-scanner/constants"
)

const (
	defaultQuantity = 1.0
	defaultUnit     = "ea"

	minQuantity = 0.01
	maxQuantity = 100.0
)

// ExtractQuantityAndUnit scans one line for a quantity+unit pattern, generic
// patterns first then store-specific ones. The first match whose quantity
// lands in [0.01, 100] wins. Lines that look like totals or tax never match.
// A miss is not an error: callers fall back to quantity 1, unit "ea".
func ExtractQuantityAndUnit(line string, store constants.StoreProfile) (float64, string, bool) {
	if reTotalLine.MatchString(line) || reTaxLine.MatchString(line) {
		return 0, "", false
	}
	for _, set := range [][]quantityPattern{genericQuantityPatterns, rulesFor(store).quantity} {
		for _, qp := range set {
			m := qp.re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			qty, err := strconv.ParseFloat(m[1], 64)
			if err != nil || qty < minQuantity || qty > maxQuantity {
				continue
			}
			return qty, qp.unit, true
		}
	}
	return 0, "", false
}
