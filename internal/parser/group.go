package parser

import (
	"strings"

	"github.com/pantrypilot/receipt-scanner/constants"
)

// GroupLines partitions trimmed receipt lines into item+modifier groups.
// Walks lines once: an item line opens a group, modifier lines attach to the
// open group, anything else closes it. Ambiguous interleavings are not
// backtracked; the greedy forward pass is the tie-break.
func GroupLines(lines []string, store constants.StoreProfile) []LineGroup {
	rules := rulesFor(store)
	var groups []LineGroup
	var open *LineGroup

	closeGroup := func() {
		if open != nil {
			groups = append(groups, *open)
			open = nil
		}
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		switch {
		case isItemLine(line, rules):
			closeGroup()
			open = &LineGroup{Anchor: line}
		case open != nil && isModifierLine(line, rules):
			open.Modifiers = append(open.Modifiers, line)
		default:
			closeGroup()
		}
	}
	closeGroup()
	return groups
}

// isItemLine reports whether a line looks like a priced purchase for this
// store. Shared disqualifiers (totals, addresses, transaction IDs) veto the
// store patterns.
func isItemLine(line string, rules *storeRules) bool {
	if disqualified(line) {
		return false
	}
	lower := strings.ToLower(line)
	for _, w := range itemLineStopWords {
		if strings.Contains(lower, w) {
			return false
		}
	}
	if rules.skipNoise && (len(line) < 3 || reNumeric.MatchString(line)) {
		return false
	}
	for _, re := range rules.notItemLine {
		if re.MatchString(line) {
			return false
		}
	}
	for _, re := range rules.itemLine {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// isModifierLine reports whether a line is a price/quantity continuation of
// the item above it. Single stray characters never qualify.
func isModifierLine(line string, rules *storeRules) bool {
	if len(line) < 2 || disqualified(line) {
		return false
	}
	for _, re := range rules.modifierLine {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

func disqualified(line string) bool {
	return reZipCode.MatchString(line) ||
		reStateZip.MatchString(line) ||
		reLongID.MatchString(line) ||
		reAddress.MatchString(line) ||
		reTotalLine.MatchString(line)
}
