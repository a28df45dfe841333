package ports

import (
	"context"
	"time"

	"merchant-pos/internal/core/domain"

	"github.com/google/uuid"
)

// --- Service Ports (Business Logic) ---

// SessionService owns credential and settings lifecycle for the single
// merchant session: login, sign-out, app lock, settings.
type SessionService interface {
	// Login validates credentials against the gateway, stores them, and
	// returns a session token plus the fetched merchant profile.
	Login(ctx context.Context, creds domain.Credentials) (*LoginResult, error)

	// Restore rebuilds the session from the secret store after a restart.
	// Returns false when no stored credentials exist.
	Restore(ctx context.Context) (bool, error)

	// CurrentCredentials returns the active credentials, or nil when signed out.
	CurrentCredentials() *domain.Credentials

	// Gateway returns the client bound to the current session credentials.
	Gateway() (Gateway, error)

	Profile() *domain.MerchantProfile
	RefreshProfile(ctx context.Context) (*domain.MerchantProfile, error)

	Settings() domain.MerchantSettings
	UpdateSettings(ctx context.Context, settings domain.MerchantSettings) error

	// SignOut clears credentials, profile, and settings, returning the
	// application to its initial unauthenticated state.
	SignOut(ctx context.Context) error

	// Lock blocks authenticated use without clearing credentials.
	Lock()
	Unlock(ctx context.Context, passcode string) error
	IsLocked() bool
	SetPasscode(ctx context.Context, passcode string) error
}

// LoginResult is returned on successful login.
type LoginResult struct {
	Token       string
	TokenExpiry time.Time
	Profile     *domain.MerchantProfile
}

// SaleService is the step-gated sale workflow: amount, card, customer,
// submit. One draft per sale; drafts are discarded at terminal outcomes.
type SaleService interface {
	NewSale(ctx context.Context) (*domain.SaleDraft, error)
	SetAmount(ctx context.Context, saleID uuid.UUID, amountMinor int64) (*domain.SaleQuote, error)
	SetCard(ctx context.Context, saleID uuid.UUID, card CardInput) error
	SetCustomer(ctx context.Context, saleID uuid.UUID, customer domain.CustomerDetails) error
	Back(ctx context.Context, saleID uuid.UUID) (domain.SaleState, error)
	Submit(ctx context.Context, saleID uuid.UUID) (*domain.Outcome, error)
}

// CardInput is the raw card entry before normalization.
type CardInput struct {
	Number          string
	ExpirationMonth int
	ExpirationYear  int
	CVV             string
}

// HistoryService retrieves settled/unsettled transaction history from the
// gateway; nothing is cached or persisted locally.
type HistoryService interface {
	// History returns the most recent settled batch's transactions, falling
	// back to the unsettled list when no batch exists.
	History(ctx context.Context) ([]domain.Transaction, error)

	// DailyStatistics sums settle amounts over currently unsettled
	// transactions, in minor units.
	DailyStatistics(ctx context.Context) (int64, error)
}

// VaultService lists gateway-stored customer payment profiles.
type VaultService interface {
	ListCustomers(ctx context.Context, query string) ([]domain.VaultCustomer, error)
}
