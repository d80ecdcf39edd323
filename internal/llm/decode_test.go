package llm

import (
	"testing"
)

func TestExtractJSONArray(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{"bare array", `[{"name":"Milk"}]`, `[{"name":"Milk"}]`, true},
		{"prose around array", "Here are the items:\n[1, 2]\nHope that helps!", "[1, 2]", true},
		{"markdown fence", "```json\n[]\n```", "[]", true},
		{"no array", "I could not find any items.", "", false},
		{"empty", "", "", false},
		{"close before open", "] nothing [", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractJSONArray(tt.text)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ExtractJSONArray(%q) = (%q, %v), want (%q, %v)", tt.text, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestDecodeCandidatesStrict(t *testing.T) {
	reply := `Sure! [{"name":"Organic Bananas","quantity":1.5,"unit":"lb","price":2.99},{"name":"Milk","price":3.49}]`
	got, ok := DecodeCandidates(reply)
	if !ok {
		t.Fatal("DecodeCandidates returned not ok")
	}
	if len(got) != 2 {
		t.Fatalf("got %d candidates, want 2: %+v", len(got), got)
	}
	if got[0].Name != "Organic Bananas" || got[0].Quantity != 1.5 || got[0].Unit != "lb" || got[0].Price != 2.99 {
		t.Errorf("first candidate = %+v", got[0])
	}
	if got[1].Name != "Milk" || got[1].Price != 3.49 {
		t.Errorf("second candidate = %+v", got[1])
	}
}

func TestDecodeCandidatesLenient(t *testing.T) {
	// String-typed numbers fail schema validation but are coerced on the
	// lenient path instead of discarding the reply.
	reply := `[{"name":"Milk","quantity":"2","unit":"ea","price":"$3.49"},{"name":"  ","price":1.00},{"name":"Eggs","price":"4.99"}]`
	got, ok := DecodeCandidates(reply)
	if !ok {
		t.Fatal("DecodeCandidates returned not ok")
	}
	if len(got) != 2 {
		t.Fatalf("got %d candidates, want 2 (blank name dropped): %+v", len(got), got)
	}
	if got[0].Quantity != 2 || got[0].Price != 3.49 {
		t.Errorf("coercion failed: %+v", got[0])
	}
	if got[1].Name != "Eggs" || got[1].Price != 4.99 {
		t.Errorf("second candidate = %+v", got[1])
	}
}

func TestDecodeCandidatesGarbage(t *testing.T) {
	for _, reply := range []string{
		"no array here",
		"[not valid json]",
		"",
	} {
		if got, ok := DecodeCandidates(reply); ok {
			t.Errorf("DecodeCandidates(%q) = (%+v, true), want not ok", reply, got)
		}
	}
}
