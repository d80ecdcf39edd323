package parser

import (
	"regexp"
	"strings"

	"github.com/pantrypilot/receipt-scanner/constants"
)

var (
	reCamelBoundary = regexp.MustCompile(`([a-z])([A-Z])`)
	reNonAlnum      = regexp.MustCompile(`[^a-zA-Z0-9\s]+`)
	reSpaces        = regexp.MustCompile(`\s+`)
)

// CleanItemName normalizes a raw anchor-line name fragment into a
// human-readable string. Store-specific strips and garble substitutions run
// first, then the generic pass: punctuation removal, OCR digit/letter fixes,
// title casing. Returns "" when nothing readable remains; callers reject
// those items.
func CleanItemName(raw string, store constants.StoreProfile) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return ""
	}

	rules := rulesFor(store)
	if rules.stripPrefix != nil {
		name = rules.stripPrefix.ReplaceAllString(name, "")
	}
	for _, re := range rules.stripSuffixes {
		name = re.ReplaceAllString(name, "")
	}
	for _, re := range genericStripSuffixes {
		name = re.ReplaceAllString(name, "")
	}
	for _, sub := range rules.substitutions {
		name = sub.re.ReplaceAllString(name, sub.repl)
	}
	for _, sub := range genericSubstitutions {
		name = sub.re.ReplaceAllString(name, sub.repl)
	}

	// Receipts often run words together; split on lower→upper boundaries
	// before stripping punctuation.
	name = reCamelBoundary.ReplaceAllString(name, "$1 $2")
	name = reNonAlnum.ReplaceAllString(name, " ")
	name = reSpaces.ReplaceAllString(strings.TrimSpace(name), " ")
	if name == "" {
		return ""
	}

	words := strings.Fields(name)
	for i, w := range words {
		words[i] = titleWord(fixDigitConfusions(w))
	}
	return strings.Join(words, " ")
}

// fixDigitConfusions repairs common OCR digit-for-letter swaps (0→O, 1→I,
// 5→S, 8→B), but only inside tokens that are clearly words. Tokens that are
// mostly digits are quantities or codes and are left alone.
func fixDigitConfusions(token string) string {
	letters, digits := 0, 0
	for _, r := range token {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			letters++
		}
	}
	if digits == 0 || letters < 3 || digits >= letters {
		return token
	}
	repl := strings.NewReplacer("0", "O", "1", "I", "5", "S", "8", "B")
	return repl.Replace(token)
}

// titleWord capitalizes a word, preserving short all-caps runs that are
// likely abbreviations.
func titleWord(w string) string {
	if w == "" {
		return w
	}
	if len(w) <= 3 && w == strings.ToUpper(w) && strings.IndexFunc(w, isASCIILetter) >= 0 {
		return w
	}
	lower := strings.ToLower(w)
	return strings.ToUpper(lower[:1]) + lower[1:]
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
