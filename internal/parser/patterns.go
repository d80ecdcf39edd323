package parser

import (
	"regexp"

	"github.com/pantrypilot/receipt-scanner/constants"
)

// detailTemplate pulls (name, price) out of an anchor line. priceIdx is 0 for
// templates that capture no price.
type detailTemplate struct {
	re       *regexp.Regexp
	nameIdx  int
	priceIdx int
}

// quantityPattern captures a quantity in group 1 and carries the canonical
// unit the pattern implies.
type quantityPattern struct {
	re   *regexp.Regexp
	unit string
}

type priceBand struct {
	min float64
	max float64
}

type substitution struct {
	re   *regexp.Regexp
	repl string
}

// storeRules is the full pattern configuration for one receipt-layout family.
// All store-to-store divergence lives in this table; the parsing code itself
// is store-agnostic.
type storeRules struct {
	itemLine     []*regexp.Regexp
	notItemLine  []*regexp.Regexp // store disqualifiers checked before itemLine
	modifierLine []*regexp.Regexp
	detail       []detailTemplate // tried before the generic templates
	quantity     []quantityPattern
	ignoreWords  []string // merged with commonIgnoreWords
	prices       priceBand
	requirePrice bool // drop anchors whose template captured no price
	skipNoise    bool // drop very short or purely numeric lines

	stripPrefix   *regexp.Regexp
	stripSuffixes []*regexp.Regexp
	substitutions []substitution
}

// Shared disqualifiers: lines that are never items or modifiers regardless of
// store (totals, addresses, transaction IDs).
var (
	reZipCode   = regexp.MustCompile(`^\d{5}`)
	reStateZip  = regexp.MustCompile(`^[A-Z]{2}\s*\d{5}`)
	reLongID    = regexp.MustCompile(`^\d{10,}`)
	reAddress   = regexp.MustCompile(`,\s*[A-Z]{2}\s*\d{5}`)
	reTaxLine   = regexp.MustCompile(`(?i)\btax\b|\bte\s+\d+\.\d+`)
	reNumeric   = regexp.MustCompile(`^\d+$`)
	reTotalLine = regexp.MustCompile(`(?i)^(TOTAL|SUBTOTAL|TAX|BALANCE|DUE|PAID|CHANGE)`)

	// Extracted names that are receipt bookkeeping, never purchases.
	reNonItemName = regexp.MustCompile(`(?i)^(TOTAL|SUBTOTAL|TAX|BALANCE|DUE|PAID|CHANGE|CARD|CREDIT|DEBIT|PAYMENT|TRANSACTION|COPY|CHIP|VERIFICATION|DEPOSIT|BOTTLE|ITEMS|SOLD|NET|SALES|CUSTOMER)$`)
)

// Substring matches on a lowercased line disqualify it from being an item.
var itemLineStopWords = []string{
	"total", "subtotal", "tax", "balance", "change", "card", "deposit",
}

// Lowercased substrings that cause the fallback parser to skip a whole
// group. Store conventions that legitimately appear on modifier lines
// ("reg", "prime", "savings") are deliberately absent; listing them here
// would discard the very groups those modifiers belong to.
var commonIgnoreWords = []string{
	"total", "subtotal", "tax", "balance", "change", "card", "credit", "debit",
	"payment", "paid", "due", "receipt", "store", "thank", "welcome", "date",
	"time", "order", "loyalty", "points", "rewards",
	"sold", "items", "net", "sales", "customer", "copy", "chip",
	"visa", "mastercard", "amex", "returns", "require", "proof",
}

// Generic structural strips applied to every store: trailing embedded price,
// trailing quantity+unit run-ons.
var genericStripSuffixes = []*regexp.Regexp{
	regexp.MustCompile(`\s+\$?\d+\.?\d+$`),
	regexp.MustCompile(`(?i)\s*\d+(?:\.\d+)?\s*(?:lbs?|oz|ea|each|ct|pk|kg|g)$`),
}

// OCR garbling fixes that recur regardless of store.
var genericSubstitutions = []substitution{
	{regexp.MustCompile(`(?i)\bPTACHPS\b`), "Potato Chips"},
	{regexp.MustCompile(`(?i)\bWICHIPS\b`), "Chips"},
	{regexp.MustCompile(`(?i)\b0G\b`), "Organic"},
	{regexp.MustCompile(`(?i)\b0RGANIC\b`), "Organic"},
}

// Generic unit patterns, tried before any store-specific ones. Order matters:
// compound units (kg, ml) precede their single-letter tails.
var genericQuantityPatterns = []quantityPattern{
	{regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*x\s*(?:ea|each)`), "ea"},
	{regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:lbs?|pounds?)`), "lb"},
	{regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:oz|ounces?)`), "oz"},
	{regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:kg|kilos?)`), "kg"},
	{regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:grams?|g)\b`), "g"},
	{regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:ml|milliliters?)`), "ml"},
	{regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:liters?|l)\b`), "l"},
	{regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:ct|counts?)`), "ct"},
	{regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:pk|packs?)`), "pk"},
	{regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*box(?:es)?`), "box"},
	{regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*bags?`), "bag"},
	{regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*bottles?`), "bottle"},
	{regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*jars?`), "jar"},
	{regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*cans?`), "can"},
	{regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*rolls?`), "roll"},
	{regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*pieces?`), "piece"},
	{regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*units?`), "unit"},
}

// Generic detail templates, appended after the store-specific set for every
// profile.
var genericDetailTemplates = []detailTemplate{
	{regexp.MustCompile(`(?i)^(.+?)(?:\s+\$?(\d+\.?\d*))?$`), 1, 2},
	{regexp.MustCompile(`(?i)^(.+?)(?:\s+\$?(\d+[A-Za-z]?\d+))?$`), 1, 2},
	{regexp.MustCompile(`(?i)^(.+?)(?:\$(\d+\.?\d*))?$`), 1, 2},
}

var wholeFoodsRules = storeRules{
	itemLine: []*regexp.Regexp{
		regexp.MustCompile(`(?i)^[A-Z0-9\s]+\s+\$?\d+\.?\d+\s*FT?$`),
		regexp.MustCompile(`(?i)^[0-9]+WFM[A-Z0-9\s]+\s+\$?\d+\.?\d+$`),
		regexp.MustCompile(`(?i)^[A-Z0-9\s]+\s+Reg\$\d+\.?\d+$`),
		regexp.MustCompile(`(?i)^[A-Z0-9\s]+\s+SavingswithPrime\$\d+\.?\d+$`),
		regexp.MustCompile(`(?i)^Qty\d+\s+\$?\d+\.?\d+\s*ea$`),
		regexp.MustCompile(`(?i)^[A-Z0-9\s]+\s+\$?\d+\.?\d+$`),
		regexp.MustCompile(`(?i)^[A-Z0-9\s]+\s+lb\$\d+\.?\d+$`),
		regexp.MustCompile(`(?i)^[A-Z0-9\s]+\s+ea\$\d+\.?\d+$`),
	},
	notItemLine: []*regexp.Regexp{
		regexp.MustCompile(`(?i)^Reg\$`),
		regexp.MustCompile(`(?i)^SavingswithPrime\$`),
		regexp.MustCompile(`(?i)^withPrime\$`),
		regexp.MustCompile(`(?i)^ea\$`),
		regexp.MustCompile(`(?i)^lb\$`),
		regexp.MustCompile(`(?i)^Qty\d+$`),
	},
	modifierLine: []*regexp.Regexp{
		regexp.MustCompile(`(?i)^Reg\$\d+\.?\d+$`),
		regexp.MustCompile(`(?i)^SavingswithPrime\$\d+\.?\d+$`),
		regexp.MustCompile(`(?i)^Qty\d+\s+\$?\d+\.?\d+\s*ea$`),
		regexp.MustCompile(`(?i)^withPrime\$\d+\.?\d+$`),
		regexp.MustCompile(`(?i)^lb\$\d+\.?\d+$`),
		regexp.MustCompile(`(?i)^ea\$\d+\.?\d+$`),
		regexp.MustCompile(`(?i)^Reg\$`),
		regexp.MustCompile(`(?i)^SavingswithPrime\$`),
		regexp.MustCompile(`(?i)^withPrime\$`),
		regexp.MustCompile(`(?i)^lb$`),
		regexp.MustCompile(`(?i)^ea$`),
		regexp.MustCompile(`(?i)^Qty\d+$`),
	},
	detail: []detailTemplate{
		{regexp.MustCompile(`(?i)^(.+?)\s+\$?(\d+\.?\d+)\s*FT?$`), 1, 2},
		{regexp.MustCompile(`(?i)^([0-9]+WFM[A-Z0-9\s]+)\s+\$?(\d+\.?\d+)$`), 1, 2},
		{regexp.MustCompile(`(?i)^(.+?)\s+Reg\$(\d+\.?\d+)$`), 1, 2},
		{regexp.MustCompile(`(?i)^(.+?)\s+SavingswithPrime\$(\d+\.?\d+)$`), 1, 2},
		{regexp.MustCompile(`(?i)^(.+?)\s+Qty\d+\s+\$?(\d+\.?\d+)\s*ea$`), 1, 2},
		{regexp.MustCompile(`(?i)^(.+?)\s+lb\$(\d+\.?\d+)$`), 1, 2},
		{regexp.MustCompile(`(?i)^(.+?)\s+ea\$(\d+\.?\d+)$`), 1, 2},
		{regexp.MustCompile(`(?i)^(.+?)\s+\$?(\d+\.?\d+)\s*$`), 1, 2},
	},
	quantity: []quantityPattern{
		{regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:ea|each)\s*withPrime\$\d+\.?\d+$`), "ea"},
		{regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*lbs?\s*Reg\$\d+\.?\d+$`), "lb"},
		{regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:ea|each)\s*Reg\$\d+\.?\d+$`), "ea"},
	},
	ignoreWords: []string{"whole foods", "market"},
	prices:      priceBand{min: 0.10, max: 50.00},

	stripPrefix: regexp.MustCompile(`(?i)^\d+\s*WFM\s*`),
	stripSuffixes: []*regexp.Regexp{
		regexp.MustCompile(`(?i)\s+\$?\d+\.?\d+\s*FT?$`),
		regexp.MustCompile(`(?i)\s+Reg\$\d+\.?\d+$`),
		regexp.MustCompile(`(?i)\s+SavingswithPrime\$\d+\.?\d+$`),
	},
	substitutions: []substitution{
		{regexp.MustCompile(`(?i)\bOGBABYSPINACH\b`), "Organic Baby Spinach"},
		{regexp.MustCompile(`(?i)\bLONGGRAINRICE\b`), "Long Grain Rice"},
		{regexp.MustCompile(`(?i)\bOGMILK\b`), "Organic Milk"},
		{regexp.MustCompile(`(?i)^OG\b`), "Organic"},
	},
}

var traderJoesRules = storeRules{
	itemLine: []*regexp.Regexp{
		regexp.MustCompile(`(?i)^T[A-Z0-9\s]+(?:\s+\$?\d+\.?\d+)?$`),
		regexp.MustCompile(`(?i)^R[A-Z0-9\s]+(?:\s+\$?\d+\.?\d+)?$`),
		regexp.MustCompile(`(?i)^[A-Z0-9\s]+\d+(?:DOUBLE|ROLL|PK|CT|OZ|LB|EA)(?:\s+\$?\d+\.?\d+)?$`),
		regexp.MustCompile(`(?i)^[A-Z0-9\s]+\d+(?:G|EA)\$?\d+\.?\d+$`),
		regexp.MustCompile(`(?i)^[A-Z0-9\s]+(?:EACH|\d+(?:G|EA))(?:\s+\$?\d+\.?\d+)?$`),
		regexp.MustCompile(`(?i)^[A-Z0-9\s]+\s+\$?\d+\.?\d+$`),
	},
	notItemLine: []*regexp.Regexp{
		regexp.MustCompile(`^@`),
		regexp.MustCompile(`(?i)^lb$`),
		regexp.MustCompile(`(?i)^ea$`),
		regexp.MustCompile(`(?i)^oz$`),
		regexp.MustCompile(`(?i)^G$`),
		regexp.MustCompile(`(?i)^EACH$`),
	},
	modifierLine: []*regexp.Regexp{
		regexp.MustCompile(`^@`),
		regexp.MustCompile(`(?i)^lb$`),
		regexp.MustCompile(`(?i)^ea$`),
		regexp.MustCompile(`(?i)^oz$`),
		regexp.MustCompile(`(?i)^G$`),
		regexp.MustCompile(`(?i)^\d+(?:G|EA)\$?\d+\.?\d+$`),
		regexp.MustCompile(`(?i)^EACH$`),
		regexp.MustCompile(`(?i)^\d+(?:G|EA)$`),
		regexp.MustCompile(`(?i)^\$?\d+\.?\d+$`),
	},
	detail: []detailTemplate{
		{regexp.MustCompile(`(?i)^T\s*(.+?)\s+\$?(\d+\.?\d+)$`), 1, 2},
		{regexp.MustCompile(`(?i)^R\s*(.+?)\s+\$?(\d+\.?\d+)$`), 1, 2},
		{regexp.MustCompile(`(?i)^(.+?)\s+\d+(?:G|EA)\s+\$?(\d+\.?\d+)$`), 1, 2},
		{regexp.MustCompile(`(?i)^(.+?)\s+EACH\s+\$?(\d+\.?\d+)$`), 1, 2},
		{regexp.MustCompile(`(?i)^(.+?)\s+\$?(\d+\.?\d+)$`), 1, 2},
	},
	quantity: []quantityPattern{
		{regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)G\$?\d+\.?\d+$`), "g"},
		{regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)EA\$?\d+\.?\d+$`), "ea"},
		{regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:DOUBLE|ROLL)\b`), "roll"},
	},
	ignoreWords: []string{
		"transaction", "trader", "purchase", "contactless", "type",
		"bottle", "deposit", "verification",
	},
	prices:       priceBand{min: 0.01, max: 100.00},
	requirePrice: true,
	skipNoise:    true,

	stripPrefix: regexp.MustCompile(`(?i)^[TR]\s+`),
	stripSuffixes: []*regexp.Regexp{
		regexp.MustCompile(`(?i)\d+(?:DOUBLE|ROLL|PK|CT|OZ|LB|EA)$`),
		regexp.MustCompile(`(?i)\d+(?:G|EA)$`),
		regexp.MustCompile(`(?i)EACH$`),
	},
	substitutions: []substitution{
		{regexp.MustCompile(`(?i)\bPTACHPS\b`), "Potato Chips"},
		{regexp.MustCompile(`(?i)\bSPNCH\b`), "Spinach"},
		{regexp.MustCompile(`(?i)\bKALEF\b`), "Kale"},
		{regexp.MustCompile(`(?i)\bRSPBRRS\b`), "Raspberries"},
		{regexp.MustCompile(`(?i)\bBLUBRRS\b`), "Blueberries"},
		{regexp.MustCompile(`(?i)\bBTLDEP\b`), "Bottle Deposit"},
		{regexp.MustCompile(`(?i)\bQRGRIC\b`), "Organic"},
		{regexp.MustCompile(`(?i)\bREEZEDRIED\b`), "Freeze Dried"},
		{regexp.MustCompile(`(?i)\bSALADARUGULA\b`), "Arugula Salad"},
		{regexp.MustCompile(`(?i)\bEGGSLARGE\b`), "Large Eggs"},
		{regexp.MustCompile(`(?i)\bSALADBABY\b`), "Baby Salad"},
		{regexp.MustCompile(`(?i)\bALMONDSALTANDSUGARDK\b`), "Almond Salt and Sugar Dark Chocolate"},
		{regexp.MustCompile(`(?i)\bPEASENGLISHSHELLED\b`), "English Shelled Peas"},
		{regexp.MustCompile(`(?i)\bSALAUCHICORYBLEND\b`), "Chicory Blend Salad"},
		{regexp.MustCompile(`(?i)\bHANDSOMECUTPOTATOFRIE\b`), "Handsome Cut Potato Fries"},
		{regexp.MustCompile(`(?i)\bKIMBAPKOREANSEAWEEDRI\b`), "Kimbap Korean Seaweed Rice"},
		{regexp.MustCompile(`(?i)\bSPINDRIFTISLANDPUNCHC\b`), "Spindrift Island Punch"},
		{regexp.MustCompile(`(?i)\bSESAMEHONEYCASHEWS\b`), "Sesame Honey Cashews"},
		{regexp.MustCompile(`(?i)\bSAUCECHIMICHURRI\b`), "Chimichurri Sauce"},
		{regexp.MustCompile(`(?i)\bBATHTISSUE\b`), "Bath Tissue"},
		{regexp.MustCompile(`(?i)\bCHANNAMASALA\b`), "Channa Masala"},
		{regexp.MustCompile(`(?i)\bBEVERAGEORIGIN\b`), "Rice Beverage"},
		{regexp.MustCompile(`(?i)\bBABYLETTUCEORG\b`), "Baby Lettuce"},
		{regexp.MustCompile(`(?i)\bBANANAEACH\b`), "Banana"},
		{regexp.MustCompile(`(?i)\bCHS\b`), "Cheese"},
		{regexp.MustCompile(`(?i)\bORG\b`), "Organic"},
	},
}

var genericRules = storeRules{
	itemLine: []*regexp.Regexp{
		regexp.MustCompile(`\$?\d+\.?\d+$`),
	},
	modifierLine: []*regexp.Regexp{
		regexp.MustCompile(`(?i)^Qty`),
		regexp.MustCompile(`(?i)^lb$`),
		regexp.MustCompile(`(?i)^ea$`),
		regexp.MustCompile(`(?i)^\d+(?:\.\d+)?\s*(?:lbs?|oz|ea|each|ct|pk)\b`),
	},
	prices: priceBand{min: 0.10, max: 50.00},
}

var storeRulesByProfile = map[constants.StoreProfile]*storeRules{
	constants.WholeFoods: &wholeFoodsRules,
	constants.TraderJoes: &traderJoesRules,
	constants.Generic:    &genericRules,
}

// rulesFor returns the pattern table for the profile, falling back to the
// generic table for unknown profiles so every lookup is total.
func rulesFor(store constants.StoreProfile) *storeRules {
	if r, ok := storeRulesByProfile[store]; ok {
		return r
	}
	return &genericRules
}
