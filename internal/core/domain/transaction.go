package domain

import "strings"

// TransactionStatus mirrors the status strings the gateway reports for
// historical transactions.
type TransactionStatus string

const (
	TransactionStatusSettled       TransactionStatus = "settledSuccessfully"
	TransactionStatusPendingSettle TransactionStatus = "capturedPendingSettlement"
	TransactionStatusDeclined      TransactionStatus = "declined"
	TransactionStatusError         TransactionStatus = "error"
	TransactionStatusVoided        TransactionStatus = "voided"
	TransactionStatusUnknown       TransactionStatus = "unknown"
)

// Transaction is an immutable historical record produced only by parsing
// gateway replies; it is never mutated locally and never persisted.
type Transaction struct {
	TransactionID     string            `json:"transaction_id"`
	SubmittedAtUTC    string            `json:"submitted_at_utc"`   // ISO-8601, as reported
	SubmittedAtLocal  string            `json:"submitted_at_local"` // ISO-8601, as reported
	Status            TransactionStatus `json:"status"`
	AccountType       *string           `json:"account_type,omitempty"`
	AccountLastFour   *string           `json:"account_last_four,omitempty"`
	SettleAmountMinor int64             `json:"settle_amount_minor"`
	FirstName         *string           `json:"first_name,omitempty"`
	LastName          *string           `json:"last_name,omitempty"`
}

// CustomerName joins the optional name parts for display.
func (t *Transaction) CustomerName() string {
	var first, last string
	if t.FirstName != nil {
		first = *t.FirstName
	}
	if t.LastName != nil {
		last = *t.LastName
	}
	name := strings.TrimSpace(first + " " + last)
	if name == "" {
		return "Unknown Customer"
	}
	return name
}

// MaskedAccount renders the stored last-four digits as a masked card number.
func (t *Transaction) MaskedAccount() string {
	if t.AccountLastFour == nil {
		return "****"
	}
	return "****" + *t.AccountLastFour
}
