package llm

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ExtractJSONArray pulls the first top-level bracketed array out of model
// text, tolerating prose or markdown fences around it. Returns false when no
// array is present; that is a normal outcome for a confused model, not an
// error.
func ExtractJSONArray(text string) (string, bool) {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

// DecodeCandidates parses a model reply into item candidates. The strict
// path validates the extracted array against the items schema and decodes it
// directly; on validation failure the lenient path re-decodes field by
// field, coercing string-typed numbers, so one malformed record does not
// discard the whole reply.
func DecodeCandidates(modelText string) ([]ItemCandidate, bool) {
	arr, ok := ExtractJSONArray(modelText)
	if !ok {
		return nil, false
	}

	if err := ValidateJSONAgainstSchema([]byte(arr), BuildItemsJSONSchema()); err == nil {
		var out []ItemCandidate
		if json.Unmarshal([]byte(arr), &out) == nil {
			return out, true
		}
	}

	var loose []map[string]any
	if err := json.Unmarshal([]byte(arr), &loose); err != nil {
		return nil, false
	}
	out := make([]ItemCandidate, 0, len(loose))
	for _, rec := range loose {
		c := ItemCandidate{
			Name:     asString(rec["name"]),
			Quantity: asNumber(rec["quantity"]),
			Unit:     asString(rec["unit"]),
			Price:    asNumber(rec["price"]),
		}
		if strings.TrimSpace(c.Name) == "" {
			continue
		}
		out = append(out, c)
	}
	return out, true
}

func asString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

// asNumber accepts JSON numbers and numeric strings, including strings with
// a leading currency symbol.
func asNumber(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		s := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(n), "$"))
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
