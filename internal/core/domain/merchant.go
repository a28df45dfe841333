package domain

import "strings"

// MerchantProfile is the read-only gateway account metadata fetched at login
// and on explicit refresh. It is never mutated locally.
type MerchantProfile struct {
	MerchantName   string          `json:"merchant_name"`
	GatewayID      string          `json:"gateway_id"`
	ContactDetails *ContactDetails `json:"contact_details,omitempty"`
	Processors     []Processor     `json:"processors,omitempty"`
}

// ContactDetails holds the optional merchant contact block.
type ContactDetails struct {
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	Email       string `json:"email,omitempty"`
	Company     string `json:"company,omitempty"`
	Address     string `json:"address,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	Zip         string `json:"zip,omitempty"`
	Country     string `json:"country,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

// Processor names a payment processor attached to the gateway account.
type Processor struct {
	Name string `json:"name"`
}

// DisplayName prefers the contact company name over the account name.
func (p *MerchantProfile) DisplayName() string {
	if p.ContactDetails != nil && p.ContactDetails.Company != "" {
		return p.ContactDetails.Company
	}
	if p.MerchantName != "" {
		return p.MerchantName
	}
	return "Merchant"
}

// ContactName returns the contact's full name, or "" if no contact block.
func (p *MerchantProfile) ContactName() string {
	if p.ContactDetails == nil {
		return ""
	}
	return strings.TrimSpace(p.ContactDetails.FirstName + " " + p.ContactDetails.LastName)
}

// FormattedAddress joins the available address parts for display.
func (p *MerchantProfile) FormattedAddress() string {
	if p.ContactDetails == nil {
		return ""
	}
	c := p.ContactDetails

	var parts []string
	if c.Address != "" {
		parts = append(parts, c.Address)
	}
	var cityStateZip []string
	for _, s := range []string{c.City, c.State, c.Zip} {
		if s != "" {
			cityStateZip = append(cityStateZip, s)
		}
	}
	if len(cityStateZip) > 0 {
		parts = append(parts, strings.Join(cityStateZip, ", "))
	}
	return strings.Join(parts, "\n")
}
