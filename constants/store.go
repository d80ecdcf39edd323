package constants

// StoreProfile is the receipt-layout family a receipt belongs to. It is
// selected once per receipt and drives every store-keyed pattern table
// downstream.
type StoreProfile string

// Stable values (store these exact strings in DB).
const (
	WholeFoods StoreProfile = "WHOLE_FOODS"
	TraderJoes StoreProfile = "TRADER_JOES"
	Generic    StoreProfile = "GENERIC"
)

var allProfiles = []StoreProfile{WholeFoods, TraderJoes, Generic}

// AllStoreProfiles returns the known profiles in a stable order.
func AllStoreProfiles() []StoreProfile {
	out := make([]StoreProfile, len(allProfiles))
	copy(out, allProfiles)
	return out
}
