package domain

// Environment selects which gateway endpoint credentials are valid for.
type Environment string

const (
	EnvironmentSandbox    Environment = "sandbox"
	EnvironmentProduction Environment = "production"
)

// Valid reports whether the environment is one of the two known values.
func (e Environment) Valid() bool {
	return e == EnvironmentSandbox || e == EnvironmentProduction
}

// Credentials identify the merchant against the payment gateway.
// The environment is fixed at login; switching it requires a fresh login.
type Credentials struct {
	IdentityID  string      `json:"identity_id"`
	SecretKey   string      `json:"-"` // Never serialized outward; persisted only encrypted
	Environment Environment `json:"environment"`
}

// MerchantSettings holds the per-session display and tax configuration
// entered during onboarding.
type MerchantSettings struct {
	Currency               string  `json:"currency"`
	TaxRatePercent         float64 `json:"tax_rate_percent"`
	HasCompletedOnboarding bool    `json:"has_completed_onboarding"`
}

// DefaultSettings returns the initial settings for a fresh session.
func DefaultSettings() MerchantSettings {
	return MerchantSettings{Currency: "USD"}
}
