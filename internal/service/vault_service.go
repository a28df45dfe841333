package service

import (
	"context"
	"strings"

	"merchant-pos/internal/core/domain"
	"merchant-pos/internal/core/ports"

	"github.com/rs/zerolog"
)

// VaultServiceImpl implements ports.VaultService over the gateway's stored
// customer profiles.
type VaultServiceImpl struct {
	session ports.SessionService
	log     zerolog.Logger
}

// NewVaultService creates a new VaultServiceImpl.
func NewVaultService(session ports.SessionService, log zerolog.Logger) *VaultServiceImpl {
	return &VaultServiceImpl{session: session, log: log}
}

// ListCustomers fetches every stored customer profile and filters by the
// query. Individual profile fetch failures are skipped, not fatal, so one
// bad record cannot blank the whole vault.
func (s *VaultServiceImpl) ListCustomers(ctx context.Context, query string) ([]domain.VaultCustomer, error) {
	gw, err := s.session.Gateway()
	if err != nil {
		return nil, err
	}

	ids, err := gw.GetVaultCustomerIDs(ctx)
	if err != nil {
		if isGatewayApplicationError(err) {
			// An empty vault is reported as an application error.
			return []domain.VaultCustomer{}, nil
		}
		return nil, err
	}

	query = strings.TrimSpace(query)
	customers := make([]domain.VaultCustomer, 0, len(ids))
	for _, id := range ids {
		customer, err := gw.GetVaultCustomer(ctx, id)
		if err != nil {
			s.log.Warn().Err(err).Str("customer_id", id).Msg("skipping unreadable vault profile")
			continue
		}
		if query == "" || customer.Matches(query) {
			customers = append(customers, *customer)
		}
	}
	return customers, nil
}
