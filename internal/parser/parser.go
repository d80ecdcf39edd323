// Package parser turns raw OCR receipt text into structured pantry items.
// The primary path asks a text-generation service for the item list; a
// regex-heuristic fallback covers the service being down, slow, or wrong.
// Malformed input never surfaces as an error, only as fewer items.
package parser

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/pantrypilot/receipt-scanner/constants"
	"github.com/pantrypilot/receipt-scanner/internal/llm"
)

// Config tunes the orchestrator.
type Config struct {
	// MinPrimaryItems is the minimum item count for the model path to be
	// trusted on its own. Below it the regex fallback runs and the two
	// results are merged.
	MinPrimaryItems int
	// LLMTimeout bounds the single model call. On expiry the fallback runs;
	// there are no retries.
	LLMTimeout time.Duration
}

// DefaultConfig matches production settings.
func DefaultConfig() Config {
	return Config{
		MinPrimaryItems: 3,
		LLMTimeout:      30 * time.Second,
	}
}

// Parser is the receipt-parsing orchestrator. A nil extractor means regex
// fallback only, which keeps the parser usable without model credentials.
type Parser struct {
	cfg       Config
	extractor llm.ItemExtractor
	logger    *slog.Logger
}

func New(cfg Config, extractor llm.ItemExtractor, logger *slog.Logger) *Parser {
	if cfg.MinPrimaryItems <= 0 {
		cfg.MinPrimaryItems = DefaultConfig().MinPrimaryItems
	}
	if cfg.LLMTimeout <= 0 {
		cfg.LLMTimeout = DefaultConfig().LLMTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{cfg: cfg, extractor: extractor, logger: logger}
}

// ParseReceiptItems is the one contract callers depend on. It always returns
// a non-nil slice: empty input, garbage OCR text and a failing model all
// degrade to fewer or zero items, never an error.
func (p *Parser) ParseReceiptItems(ctx context.Context, rawText string) []ParsedItem {
	text := strings.TrimSpace(strings.ReplaceAll(rawText, "\r\n", "\n"))
	if text == "" {
		return []ParsedItem{}
	}

	store := IdentifyStore(text)
	start := time.Now()

	primary := p.primaryParse(ctx, text, store)
	if len(primary) >= p.cfg.MinPrimaryItems {
		p.logger.Info("parse.ok",
			"store", string(store),
			"path", "primary",
			"items", len(primary),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return primary
	}

	fallback := fallbackParse(text, store)
	merged := mergeItems(fallback, primary)

	p.logger.Info("parse.ok",
		"store", string(store),
		"path", "fallback",
		"primary_items", len(primary),
		"fallback_items", len(fallback),
		"items", len(merged),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return merged
}

// primaryParse runs the model path and validates its candidates. Any failure
// is logged and reported as zero items so the caller falls through to the
// regex path.
func (p *Parser) primaryParse(ctx context.Context, text string, store constants.StoreProfile) []ParsedItem {
	if p.extractor == nil {
		return nil
	}

	callCtx, cancel := context.WithTimeout(ctx, p.cfg.LLMTimeout)
	defer cancel()

	candidates, err := p.extractor.ExtractItems(callCtx, llm.ExtractRequest{
		ReceiptText: text,
		Store:       store,
	})
	if err != nil {
		p.logger.Warn("parse.primary.failed", "store", string(store), "error", err.Error())
		return nil
	}

	band := rulesFor(store).prices
	items := make([]ParsedItem, 0, len(candidates))
	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		name := CleanItemName(c.Name, store)
		if name == "" || reNonItemName.MatchString(name) {
			continue
		}
		qty := c.Quantity
		if qty < 0 {
			continue
		}
		if qty == 0 {
			qty = defaultQuantity
		}
		unit := strings.TrimSpace(c.Unit)
		if unit == "" {
			unit = defaultUnit
		}
		if c.Price < band.min || c.Price > band.max {
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
			Price:      c.Price,
			Category:   CategorizeItem(name),
			Confidence: constants.ConfidenceHigh,
		})
	}
	return items
}

// mergeItems starts from the fallback list and appends primary items whose
// cleaned name is not already present. No two returned items share a name.
func mergeItems(fallback, primary []ParsedItem) []ParsedItem {
	merged := make([]ParsedItem, 0, len(fallback)+len(primary))
	seen := make(map[string]bool, len(fallback)+len(primary))
	for _, it := range fallback {
		key := strings.ToLower(it.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, it)
	}
	for _, it := range primary {
		key := strings.ToLower(it.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, it)
	}
	return merged
}
