package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pantrypilot/receipt-scanner/constants"
)

var (
	reLetter     = regexp.MustCompile(`[A-Za-z]`)
	reLeadingNum = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// ExtractItemDetails applies the store's ordered detail templates, then the
// generic ones, to a group anchor line and pulls out (name, price). Anchors
// whose name resolves to receipt bookkeeping, or whose corrected price falls
// outside the store's sanity band, yield nil: dropping is the designed
// response to a suspect line, not an error.
func ExtractItemDetails(anchor string, store constants.StoreProfile) *ItemDetail {
	if reTotalLine.MatchString(anchor) {
		return nil
	}
	rules := rulesFor(store)

	// A template whose optional price group came up empty is only a
	// provisional hit: a later template may still capture the price (OCR
	// letter-for-decimal garbling shifts which pattern fits). A price that
	// parsed but fell outside the sanity band condemns the whole anchor.
	var pending *ItemDetail
	outOfBand := false

	for _, set := range [][]detailTemplate{rules.detail, genericDetailTemplates} {
		for _, tmpl := range set {
			m := tmpl.re.FindStringSubmatch(anchor)
			if m == nil {
				continue
			}
			name := strings.TrimSpace(m[tmpl.nameIdx])
			if name == "" || reNonItemName.MatchString(name) {
				continue
			}

			if tmpl.priceIdx <= 0 || tmpl.priceIdx >= len(m) || m[tmpl.priceIdx] == "" {
				if !rules.requirePrice && pending == nil {
					pending = &ItemDetail{Name: name, Confidence: constants.ConfidenceLow}
				}
				continue
			}

			price := parsePrice(m[tmpl.priceIdx])
			if price < rules.prices.min || price > rules.prices.max {
				outOfBand = true
				continue
			}
			return &ItemDetail{Name: name, Price: price, Confidence: constants.ConfidenceMedium}
		}
	}
	if pending != nil && !outOfBand {
		return pending
	}
	return nil
}

// parsePrice turns raw captured price text into a float, repairing the two
// OCR failure modes seen on real receipts: a letter standing in for the
// decimal point, and a missing decimal point entirely (1299 → 12.99).
func parsePrice(raw string) float64 {
	s := reLetter.ReplaceAllString(raw, ".")
	s = strings.TrimPrefix(s, "$")
	num := reLeadingNum.FindString(s)
	if num == "" {
		return 0
	}
	price, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	if price >= 10000 {
		price = price / 10000
	} else if price > 100 {
		price = price / 100
	}
	return price
}
