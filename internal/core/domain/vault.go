package domain

import "strings"

// VaultCard summarizes the stored payment method attached to a vault customer.
type VaultCard struct {
	LastFour   string `json:"last_four"`
	Type       string `json:"type"`
	Expiration string `json:"expiration"` // YYYY-MM as reported by the gateway
}

// VaultCustomer is a gateway-stored customer record with a saved payment
// method. Server-owned and read-only; referenced by an opaque identifier
// instead of raw card data.
type VaultCustomer struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Company   string    `json:"company,omitempty"`
	Address   string    `json:"address,omitempty"`
	City      string    `json:"city,omitempty"`
	State     string    `json:"state,omitempty"`
	Zip       string    `json:"zip,omitempty"`
	Country   string    `json:"country,omitempty"`
	Card      VaultCard `json:"card"`
	CreatedAt string    `json:"created_at,omitempty"`
	UpdatedAt string    `json:"updated_at,omitempty"`
}

// FullName joins the customer name parts for display.
func (c *VaultCustomer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Matches reports whether the customer matches a case-insensitive search
// query against name, company, email, phone, or card last-four.
func (c *VaultCustomer) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, field := range []string{c.FirstName, c.LastName, c.Email, c.Company} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return strings.Contains(c.Phone, query) || strings.Contains(c.Card.LastFour, query)
}
