package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SaleState is the wizard step a sale draft is currently in.
type SaleState string

const (
	SaleStateAmountEntry   SaleState = "AMOUNT_ENTRY"
	SaleStateCardEntry     SaleState = "CARD_ENTRY"
	SaleStateCustomerEntry SaleState = "CUSTOMER_ENTRY"
	SaleStateSubmitting    SaleState = "SUBMITTING"
	SaleStateApproved      SaleState = "APPROVED"
	SaleStateDeclined      SaleState = "DECLINED"
	SaleStateFailed        SaleState = "FAILED"
)

// IsTerminal reports whether the sale has reached a final outcome.
func (s SaleState) IsTerminal() bool {
	return s == SaleStateApproved || s == SaleStateDeclined || s == SaleStateFailed
}

// CustomerDetails is the billing block entered in the final wizard step.
// Every field is required non-empty before submission.
type CustomerDetails struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
	Country   string `json:"country"`
}

// SaleDraft is the mutable wizard state. It lives in memory only and is
// discarded once the sale reaches a terminal state, approved or not.
type SaleDraft struct {
	ID              uuid.UUID       `json:"id"`
	State           SaleState       `json:"state"`
	AmountMinor     int64           `json:"amount_minor"`
	CardNumber      string          `json:"-"` // digits only, never serialized
	ExpirationMonth int             `json:"-"`
	ExpirationYear  int             `json:"-"`
	CVV             string          `json:"-"`
	Customer        CustomerDetails `json:"customer"`
	CreatedAt       time.Time       `json:"created_at"`
}

// NewSaleDraft opens a fresh wizard at the amount step.
func NewSaleDraft() *SaleDraft {
	return &SaleDraft{
		ID:        uuid.New(),
		State:     SaleStateAmountEntry,
		CreatedAt: time.Now().UTC(),
	}
}

// NormalizeCardNumber strips spaces and dashes, leaving digits for validation.
func NormalizeCardNumber(raw string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, raw)
}

// ValidateAmount gates the AmountEntry step.
func (d *SaleDraft) ValidateAmount() error {
	if d.AmountMinor <= 0 {
		return fmt.Errorf("amount must be greater than zero")
	}
	return nil
}

// ValidateCard gates the CardEntry step.
func (d *SaleDraft) ValidateCard(now time.Time) error {
	n := len(d.CardNumber)
	if n < 13 || n > 19 {
		return fmt.Errorf("card number must be 13 to 19 digits")
	}
	for _, r := range d.CardNumber {
		if r < '0' || r > '9' {
			return fmt.Errorf("card number must contain only digits")
		}
	}
	if d.ExpirationMonth < 1 || d.ExpirationMonth > 12 {
		return fmt.Errorf("expiration month must be between 01 and 12")
	}
	if d.ExpirationYear < now.Year() ||
		(d.ExpirationYear == now.Year() && time.Month(d.ExpirationMonth) < now.Month()) {
		return fmt.Errorf("card has expired")
	}
	if l := len(d.CVV); l != 3 && l != 4 {
		return fmt.Errorf("cvv must be 3 or 4 digits")
	}
	for _, r := range d.CVV {
		if r < '0' || r > '9' {
			return fmt.Errorf("cvv must contain only digits")
		}
	}
	return nil
}

// ValidateCustomer gates the CustomerEntry step and the submission itself.
func (d *SaleDraft) ValidateCustomer() error {
	fields := map[string]string{
		"first_name": d.Customer.FirstName,
		"last_name":  d.Customer.LastName,
		"email":      d.Customer.Email,
		"address":    d.Customer.Address,
		"city":       d.Customer.City,
		"state":      d.Customer.State,
		"zip":        d.Customer.Zip,
		"country":    d.Customer.Country,
	}
	for _, name := range []string{"first_name", "last_name", "email", "address", "city", "state", "zip", "country"} {
		if strings.TrimSpace(fields[name]) == "" {
			return fmt.Errorf("%s is required", name)
		}
	}
	return nil
}

// PaymentRequest is the immutable, fully validated projection of a SaleDraft,
// built only at submission time.
type PaymentRequest struct {
	SaleID         uuid.UUID
	AmountMinor    int64
	TaxMinor       int64
	TotalMinor     int64
	Currency       string
	CardNumber     string
	ExpirationDate string // YYYY-MM, the gateway wire format
	CVV            string
	Customer       CustomerDetails
}

// BuildPaymentRequest projects a draft into a PaymentRequest using the
// session's tax rate and currency. The draft must already have passed all
// three step validations.
func BuildPaymentRequest(d *SaleDraft, settings MerchantSettings) PaymentRequest {
	tax := TaxMinor(d.AmountMinor, settings.TaxRatePercent)
	return PaymentRequest{
		SaleID:         d.ID,
		AmountMinor:    d.AmountMinor,
		TaxMinor:       tax,
		TotalMinor:     d.AmountMinor + tax,
		Currency:       settings.Currency,
		CardNumber:     d.CardNumber,
		ExpirationDate: strconv.Itoa(d.ExpirationYear) + "-" + fmt.Sprintf("%02d", d.ExpirationMonth),
		CVV:            d.CVV,
		Customer:       d.Customer,
	}
}

// SaleQuote is the derived tax/total pair recomputed on every amount change.
type SaleQuote struct {
	AmountMinor int64  `json:"amount_minor"`
	TaxMinor    int64  `json:"tax_minor"`
	TotalMinor  int64  `json:"total_minor"`
	Currency    string `json:"currency"`
}
