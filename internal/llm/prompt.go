package llm

import (
	"fmt"
	"strings"

	"github.com/pantrypilot/receipt-scanner/constants"
)

// SystemPrompt pins the model to structured extraction only.
const SystemPrompt = `You are a receipt parsing assistant. You extract purchased grocery items from OCR receipt text. Respond with ONLY a JSON array, no explanations and no markdown fences.`

const wholeFoodsRulesBlock = `Store layout notes (Whole Foods):
- Item lines usually end with a price, sometimes followed by "F" or "FT" tax flags.
- "Reg$X.XX" and "SavingswithPrime$X.XX" lines are discount annotations for the item above them, not separate items.
- Lines starting with a number followed by "WFM" are store-brand items; the digits are a product code, not a quantity.
- "Qty N $X.XX ea" lines give the quantity and unit price of the item above.`

const traderJoesRulesBlock = `Store layout notes (Trader Joe's):
- Item names are often prefixed with a single "T" or "R" character; strip it.
- Names are frequently truncated or have vowels dropped by the register (e.g. "SPNCH" is spinach).
- Lines starting with "@" and bare "lb"/"ea" lines describe the weight or count of the item above.
- "NNNg$X.XX" suffixes give weight and price together.`

// BuildUserPrompt embeds the receipt text and the store's layout quirks into
// the extraction request.
func BuildUserPrompt(req ExtractRequest) string {
	var b strings.Builder
	b.WriteString("Extract every purchased item from this receipt.\n\n")
	fmt.Fprintf(&b, "Store: %s\n\n", req.Store)

	switch req.Store {
	case constants.WholeFoods:
		b.WriteString(wholeFoodsRulesBlock)
		b.WriteString("\n\n")
	case constants.TraderJoes:
		b.WriteString(traderJoesRulesBlock)
		b.WriteString("\n\n")
	}

	b.WriteString(`Return a JSON array where each element is {"name": string, "quantity": number, "unit": string, "price": number}.
Rules:
- name: the cleaned, human-readable product name
- quantity: default 1 if not shown
- unit: one of ea, lb, oz, g, kg, ml, l, ct, pk (default "ea")
- price: the final price paid in dollars
- Exclude totals, tax, change, payment lines, and store headers.

Receipt text:
`)
	b.WriteString(req.ReceiptText)
	return b.String()
}
