package parser

import (
	"strings"

	"github.com/pantrypilot/receipt-scanner/constants"
)

// fallbackParse is the pure-regex path: group lines, reject obvious
// non-purchase groups, then pull name, price and quantity out of each group.
// Low-confidence extractions are dropped and names are deduplicated within
// the run. Precision over recall throughout.
func fallbackParse(text string, store constants.StoreProfile) []ParsedItem {
	lines := splitLines(text)
	groups := GroupLines(lines, store)
	band := rulesFor(store).prices

	items := make([]ParsedItem, 0, len(groups))
	seen := make(map[string]bool, len(groups))

	for _, group := range groups {
		if shouldSkipGroup(group, store) {
			continue
		}
		detail := ExtractItemDetails(group.Anchor, store)
		if detail == nil {
			continue
		}
		if detail.Price < band.min || detail.Price > band.max {
			continue
		}

		qty, unit := defaultQuantity, defaultUnit
		for _, mod := range group.Modifiers {
			if q, u, ok := ExtractQuantityAndUnit(mod, store); ok {
				qty, unit = q, u
				break
			}
		}

		name := CleanItemName(detail.Name, store)
		if name == "" || reNonItemName.MatchString(name) {
			continue
		}
		conf := ScoreConfidence(name, detail.Price)
		if conf == constants.ConfidenceLow {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true

		items = append(items, ParsedItem{
			Name:       name,
			Quantity:   qty,
			Unit:       unit,
			Price:      detail.Price,
			Category:   CategorizeItem(name),
			Confidence: conf,
		})
	}
	return items
}

// shouldSkipGroup rejects a whole group when any of its lines carries an
// ignore word or looks like an address or tax line.
func shouldSkipGroup(group LineGroup, store constants.StoreProfile) bool {
	rules := rulesFor(store)
	all := append([]string{group.Anchor}, group.Modifiers...)
	for _, line := range all {
		lower := strings.ToLower(line)
		for _, w := range commonIgnoreWords {
			if strings.Contains(lower, w) {
				return true
			}
		}
		for _, w := range rules.ignoreWords {
			if strings.Contains(lower, w) {
				return true
			}
		}
		if reAddress.MatchString(line) || reTaxLine.MatchString(line) {
			return true
		}
	}
	return false
}

func splitLines(text string) []string {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	raw := strings.Split(normalized, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
