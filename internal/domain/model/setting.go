package model

// Setting is a key-value configuration row. No versioning; writes upsert and
// the last write wins.
type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Well-known setting keys.
const (
	SettingDiscountRate         = "discount_rate"          // referral discount percentage, integer string
	SettingColumns              = "columns"                // portal grid layout hint
	SettingCampayEnabled        = "campay_enabled"         // "true" enables the Campay provider
	SettingFlutterwaveEnabled   = "flutterwave_enabled"    // "true" enables the Flutterwave provider
	SettingFlutterwavePublicKey = "flutterwave_public_key" // exposed to the checkout UI
)

// DefaultColumns is served when neither the requested key nor the columns
// fallback row exists.
const DefaultColumns = "2"
