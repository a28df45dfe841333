package service

import (
	"context"
	"testing"

	"merchant-pos/internal/core/domain"
	"merchant-pos/internal/core/ports/mocks"
	"merchant-pos/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type vaultFixture struct {
	session *mocks.MockSessionService
	gateway *mocks.MockGateway
	svc     *VaultServiceImpl
}

func newVaultFixture(t *testing.T) *vaultFixture {
	ctrl := gomock.NewController(t)
	f := &vaultFixture{
		session: mocks.NewMockSessionService(ctrl),
		gateway: mocks.NewMockGateway(ctrl),
	}
	f.session.EXPECT().Gateway().Return(f.gateway, nil).AnyTimes()
	f.svc = NewVaultService(f.session, zerolog.Nop())
	return f
}

func vaultCustomer(id, first, last, email string) *domain.VaultCustomer {
	return &domain.VaultCustomer{
		ID:        id,
		FirstName: first,
		LastName:  last,
		Email:     email,
		Card:      domain.VaultCard{LastFour: "4242", Type: "Visa", Expiration: "2027-12"},
	}
}

func TestVaultService_ListCustomers_All(t *testing.T) {
	f := newVaultFixture(t)

	f.gateway.EXPECT().GetVaultCustomerIDs(gomock.Any()).Return([]string{"cp-1", "cp-2"}, nil)
	f.gateway.EXPECT().GetVaultCustomer(gomock.Any(), "cp-1").
		Return(vaultCustomer("cp-1", "John", "Smith", "john@example.com"), nil)
	f.gateway.EXPECT().GetVaultCustomer(gomock.Any(), "cp-2").
		Return(vaultCustomer("cp-2", "Jane", "Doe", "jane@example.com"), nil)

	customers, err := f.svc.ListCustomers(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, "John Smith", customers[0].FullName())
}

func TestVaultService_ListCustomers_Filtered(t *testing.T) {
	f := newVaultFixture(t)

	f.gateway.EXPECT().GetVaultCustomerIDs(gomock.Any()).Return([]string{"cp-1", "cp-2"}, nil)
	f.gateway.EXPECT().GetVaultCustomer(gomock.Any(), "cp-1").
		Return(vaultCustomer("cp-1", "John", "Smith", "john@example.com"), nil)
	f.gateway.EXPECT().GetVaultCustomer(gomock.Any(), "cp-2").
		Return(vaultCustomer("cp-2", "Jane", "Doe", "jane@example.com"), nil)

	customers, err := f.svc.ListCustomers(context.Background(), "doe")
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "cp-2", customers[0].ID)
}

func TestVaultService_ListCustomers_SkipsUnreadableProfiles(t *testing.T) {
	f := newVaultFixture(t)

	f.gateway.EXPECT().GetVaultCustomerIDs(gomock.Any()).Return([]string{"cp-1", "cp-2"}, nil)
	f.gateway.EXPECT().GetVaultCustomer(gomock.Any(), "cp-1").
		Return(nil, apperror.ErrGatewayApplication("The record cannot be found."))
	f.gateway.EXPECT().GetVaultCustomer(gomock.Any(), "cp-2").
		Return(vaultCustomer("cp-2", "Jane", "Doe", "jane@example.com"), nil)

	customers, err := f.svc.ListCustomers(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "cp-2", customers[0].ID)
}

func TestVaultService_ListCustomers_EmptyVault(t *testing.T) {
	f := newVaultFixture(t)

	f.gateway.EXPECT().GetVaultCustomerIDs(gomock.Any()).
		Return(nil, apperror.ErrGatewayApplication("no profiles"))

	customers, err := f.svc.ListCustomers(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, customers)
}

func TestVaultService_ListCustomers_TransportErrorPropagates(t *testing.T) {
	f := newVaultFixture(t)

	f.gateway.EXPECT().GetVaultCustomerIDs(gomock.Any()).
		Return(nil, apperror.ErrTransportFailure("timeout", nil))

	_, err := f.svc.ListCustomers(context.Background(), "")
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "GW_001", appErr.Code)
}
