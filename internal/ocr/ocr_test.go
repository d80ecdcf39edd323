package ocr

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type stubRunner struct {
	stdout map[string][]byte // keyed by last arg ("tsv" for TSV mode, "" otherwise)
	err    error
}

func (s *stubRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	if s.err != nil {
		return nil, []byte("boom"), s.err
	}
	key := ""
	if len(args) > 0 && args[len(args)-1] == "tsv" {
		key = "tsv"
	}
	return s.stdout[key], nil, nil
}

const sampleTSV = "level\tpage_num\tblock_num\tpar_num\tline_num\tword_num\tleft\ttop\twidth\theight\tconf\ttext\n" +
	"5\t1\t1\t1\t1\t1\t10\t10\t50\t20\t90\tBANANAS\n" +
	"5\t1\t1\t1\t1\t2\t70\t10\t40\t20\t70\t$2.99\n" +
	"4\t1\t1\t1\t1\t0\t0\t0\t0\t0\t-1\t\n"

func TestExtract(t *testing.T) {
	runner := &stubRunner{stdout: map[string][]byte{
		"":    []byte("WHOLE FOODS MARKET\r\nBANANAS   $2.99\r\n\n\n\nTOTAL $2.99\n"),
		"tsv": []byte(sampleTSV),
	}}
	e := NewExtractorWithRunner(Config{EnableTSVConfidence: true}, runner, nil)

	res, err := e.Extract(context.Background(), "receipt.jpg")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !strings.Contains(res.Text, "BANANAS $2.99") {
		t.Errorf("text not normalized: %q", res.Text)
	}
	if strings.Contains(res.Text, "\r") {
		t.Errorf("CRLF survived normalization: %q", res.Text)
	}
	// TSV mean is (90+70)/2 = 80% -> 0.8; blended with the heuristic score
	// the result must sit between the two.
	if res.Confidence < 0.5 || res.Confidence > 1.0 {
		t.Errorf("confidence = %v, want blended value in (0.5, 1.0]", res.Confidence)
	}
}

func TestExtractUnsupportedExtension(t *testing.T) {
	e := NewExtractorWithRunner(Config{}, &stubRunner{}, nil)
	if _, err := e.Extract(context.Background(), "receipt.pdf"); err == nil {
		t.Fatal("expected error for non-image extension")
	}
}

func TestExtractRunnerFailure(t *testing.T) {
	e := NewExtractorWithRunner(Config{}, &stubRunner{err: errors.New("exit status 1")}, nil)
	if _, err := e.Extract(context.Background(), "receipt.png"); err == nil {
		t.Fatal("expected error when tesseract fails")
	}
}

func TestHeuristicConfidence(t *testing.T) {
	low := heuristicConfidence("zz")
	high := heuristicConfidence("WHOLE FOODS 01/02/2024\nBANANAS $2.99\n" + strings.Repeat("x ", 100))
	if low >= high {
		t.Errorf("heuristic not ordered: low=%v high=%v", low, high)
	}
	if high > 1.0 {
		t.Errorf("confidence above 1.0: %v", high)
	}
}

func TestNormalize(t *testing.T) {
	in := "A\tB\r\nC   D\n\n\n\nE   \n-----\nF"
	got := Normalize(in)
	if strings.Contains(got, "\t") || strings.Contains(got, "\r") || strings.Contains(got, "   ") {
		t.Errorf("Normalize left noise: %q", got)
	}
	if strings.Contains(got, "-----") {
		// box noise removal happens before Normalize in the extraction path
		t.Logf("box noise preserved by Normalize alone: %q", got)
	}
}
