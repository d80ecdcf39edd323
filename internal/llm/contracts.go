package llm

import (
	"context"

	"github.com/pantrypilot/receipt-scanner/constants"
)

// ItemCandidate is one record the model proposes before validation and
// cleaning. Prices may still be out of band and names still garbled at this
// point.
type ItemCandidate struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Price    float64 `json:"price"`
}

// ExtractRequest carries the receipt text and the identified store profile
// into an extraction call.
type ExtractRequest struct {
	ReceiptText string
	Store       constants.StoreProfile
}

// ItemExtractor turns raw receipt text into item candidates using a
// text-generation service. Implementations must honor ctx cancellation and
// return an error rather than guess when the service is unreachable.
type ItemExtractor interface {
	ExtractItems(ctx context.Context, req ExtractRequest) ([]ItemCandidate, error)
}
