package dto

import (
	"merchant-pos/internal/core/domain"
)

// LoginRequest is the request body for gateway credential login.
type LoginRequest struct {
	IdentityID  string `json:"identity_id" binding:"required,min=1,max=64"`
	SecretKey   string `json:"secret_key" binding:"required,min=1,max=128"`
	Environment string `json:"environment" binding:"required,oneof=sandbox production"`
}

// LoginResponse is the response body for successful login.
type LoginResponse struct {
	Token   string                  `json:"token"`
	Expiry  int64                   `json:"expiry"` // Unix timestamp
	Profile *domain.MerchantProfile `json:"profile"`
}

// UnlockRequest carries the app-lock passcode.
type UnlockRequest struct {
	Passcode string `json:"passcode" binding:"required"`
}

// PasscodeRequest sets a new app-lock passcode.
type PasscodeRequest struct {
	Passcode string `json:"passcode" binding:"required,min=4,max=64"`
}

// SettingsRequest is the request body for updating merchant settings.
type SettingsRequest struct {
	Currency               string  `json:"currency" binding:"required,len=3"`
	TaxRatePercent         float64 `json:"tax_rate_percent" binding:"gte=0,lte=100"`
	HasCompletedOnboarding bool    `json:"has_completed_onboarding"`
}

// ProfileResponse adds the derived display fields to the raw profile.
type ProfileResponse struct {
	DisplayName      string                  `json:"display_name"`
	ContactName      string                  `json:"contact_name,omitempty"`
	FormattedAddress string                  `json:"formatted_address,omitempty"`
	Profile          *domain.MerchantProfile `json:"profile"`
}

// NewProfileResponse builds a ProfileResponse from a domain profile.
func NewProfileResponse(p *domain.MerchantProfile) ProfileResponse {
	return ProfileResponse{
		DisplayName:      p.DisplayName(),
		ContactName:      p.ContactName(),
		FormattedAddress: p.FormattedAddress(),
		Profile:          p,
	}
}

// SaleResponse reports a draft's identifier and current wizard step.
type SaleResponse struct {
	ID    string `json:"id"`
	State string `json:"state"`
}

// AmountRequest is the request body for the amount step, in minor units.
type AmountRequest struct {
	AmountMinor int64 `json:"amount_minor" binding:"required,gt=0"`
}

// QuoteResponse renders a sale quote with display-formatted amounts.
type QuoteResponse struct {
	AmountMinor int64  `json:"amount_minor"`
	TaxMinor    int64  `json:"tax_minor"`
	TotalMinor  int64  `json:"total_minor"`
	Amount      string `json:"amount"`
	Tax         string `json:"tax"`
	Total       string `json:"total"`
	Currency    string `json:"currency"`
}

// NewQuoteResponse builds a QuoteResponse from a domain quote.
func NewQuoteResponse(q *domain.SaleQuote) QuoteResponse {
	return QuoteResponse{
		AmountMinor: q.AmountMinor,
		TaxMinor:    q.TaxMinor,
		TotalMinor:  q.TotalMinor,
		Amount:      domain.FormatAmount(q.AmountMinor),
		Tax:         domain.FormatAmount(q.TaxMinor),
		Total:       domain.FormatAmount(q.TotalMinor),
		Currency:    q.Currency,
	}
}

// CardRequest is the request body for the card step. The number may contain
// spaces or dashes; it is normalized before validation.
type CardRequest struct {
	Number          string `json:"number" binding:"required,min=13,max=23"`
	ExpirationMonth int    `json:"expiration_month" binding:"required,min=1,max=12"`
	ExpirationYear  int    `json:"expiration_year" binding:"required,min=2000,max=2100"`
	CVV             string `json:"cvv" binding:"required,min=3,max=4"`
}

// CustomerRequest is the request body for the customer step. Every field is
// required before submission.
type CustomerRequest struct {
	FirstName string `json:"first_name" binding:"required,max=50"`
	LastName  string `json:"last_name" binding:"required,max=50"`
	Email     string `json:"email" binding:"required,email,max=255"`
	Address   string `json:"address" binding:"required,max=100"`
	City      string `json:"city" binding:"required,max=50"`
	State     string `json:"state" binding:"required,max=40"`
	Zip       string `json:"zip" binding:"required,max=20"`
	Country   string `json:"country" binding:"required,max=60"`
}

// ToDomain converts the request into the domain billing block.
func (r CustomerRequest) ToDomain() domain.CustomerDetails {
	return domain.CustomerDetails{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Address:   r.Address,
		City:      r.City,
		State:     r.State,
		Zip:       r.Zip,
		Country:   r.Country,
	}
}

// TransactionResponse renders one historical transaction for display.
type TransactionResponse struct {
	TransactionID     string `json:"transaction_id"`
	SubmittedAtUTC    string `json:"submitted_at_utc,omitempty"`
	Status            string `json:"status"`
	CustomerName      string `json:"customer_name"`
	MaskedAccount     string `json:"masked_account"`
	AccountType       string `json:"account_type,omitempty"`
	SettleAmountMinor int64  `json:"settle_amount_minor"`
	SettleAmount      string `json:"settle_amount"`
}

// NewTransactionResponse builds a TransactionResponse from a domain record.
func NewTransactionResponse(t domain.Transaction) TransactionResponse {
	var accountType string
	if t.AccountType != nil {
		accountType = *t.AccountType
	}
	return TransactionResponse{
		TransactionID:     t.TransactionID,
		SubmittedAtUTC:    t.SubmittedAtUTC,
		Status:            string(t.Status),
		CustomerName:      t.CustomerName(),
		MaskedAccount:     t.MaskedAccount(),
		AccountType:       accountType,
		SettleAmountMinor: t.SettleAmountMinor,
		SettleAmount:      domain.FormatAmount(t.SettleAmountMinor),
	}
}

// DailyTotalResponse is the response body for the dashboard total.
type DailyTotalResponse struct {
	TotalMinor int64  `json:"total_minor"`
	Total      string `json:"total"`
	Currency   string `json:"currency"`
}
