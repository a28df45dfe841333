package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"merchant-pos/internal/adapter/http/dto"
	"merchant-pos/internal/core/domain"
	"merchant-pos/internal/core/ports"
	"merchant-pos/internal/core/ports/mocks"
	"merchant-pos/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func postJSON(t *testing.T, path string, payload interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		require.NoError(t, err)
	}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func dataField(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, ok := resp["data"].(map[string]interface{})
	require.True(t, ok, "response has no data object: %s", w.Body.String())
	return data
}

// --- Auth Handler Tests ---

func TestLogin_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSession := mocks.NewMockSessionService(ctrl)
	h := NewAuthHandler(mockSession)

	profile := &domain.MerchantProfile{MerchantName: "Shop"}
	mockSession.EXPECT().Login(gomock.Any(), domain.Credentials{
		IdentityID:  "login-id",
		SecretKey:   "transaction-key",
		Environment: domain.EnvironmentSandbox,
	}).Return(&ports.LoginResult{
		Token:       "jwt-token",
		TokenExpiry: time.Unix(1800000000, 0),
		Profile:     profile,
	}, nil)

	c, w := postJSON(t, "/api/v1/auth/login", dto.LoginRequest{
		IdentityID:  "login-id",
		SecretKey:   "transaction-key",
		Environment: "sandbox",
	})

	h.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := dataField(t, w)
	assert.Equal(t, "jwt-token", data["token"])
	assert.Equal(t, float64(1800000000), data["expiry"])
}

func TestLogin_BindingError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSession := mocks.NewMockSessionService(ctrl)
	h := NewAuthHandler(mockSession)

	c, w := postJSON(t, "/api/v1/auth/login", dto.LoginRequest{
		IdentityID:  "login-id",
		SecretKey:   "transaction-key",
		Environment: "staging",
	})

	h.Login(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VAL_001")
}

func TestLogin_AuthenticationFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSession := mocks.NewMockSessionService(ctrl)
	h := NewAuthHandler(mockSession)

	mockSession.EXPECT().Login(gomock.Any(), gomock.Any()).
		Return(nil, apperror.ErrAuthenticationFailed(""))

	c, w := postJSON(t, "/api/v1/auth/login", dto.LoginRequest{
		IdentityID:  "bad",
		SecretKey:   "bad",
		Environment: "sandbox",
	})

	h.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_001")
}

func TestLogout(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSession := mocks.NewMockSessionService(ctrl)
	h := NewAuthHandler(mockSession)

	mockSession.EXPECT().SignOut(gomock.Any()).Return(nil)

	c, w := postJSON(t, "/api/v1/auth/logout", nil)
	h.Logout(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUnlock_WrongPasscode(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSession := mocks.NewMockSessionService(ctrl)
	h := NewAuthHandler(mockSession)

	mockSession.EXPECT().Unlock(gomock.Any(), "0000").Return(apperror.ErrInvalidPasscode())

	c, w := postJSON(t, "/api/v1/auth/unlock", dto.UnlockRequest{Passcode: "0000"})
	h.Unlock(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_005")
}

// --- Merchant Handler Tests ---

func TestGetProfile_Cached(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSession := mocks.NewMockSessionService(ctrl)
	h := NewMerchantHandler(mockSession)

	mockSession.EXPECT().Profile().Return(&domain.MerchantProfile{
		MerchantName: "Shop",
		ContactDetails: &domain.ContactDetails{
			Company: "Springfield Goods", FirstName: "Jane", LastName: "Doe",
		},
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/merchant/profile", nil)

	h.GetProfile(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := dataField(t, w)
	assert.Equal(t, "Springfield Goods", data["display_name"])
	assert.Equal(t, "Jane Doe", data["contact_name"])
}

func TestGetProfile_FetchesWhenUncached(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSession := mocks.NewMockSessionService(ctrl)
	h := NewMerchantHandler(mockSession)

	mockSession.EXPECT().Profile().Return(nil)
	mockSession.EXPECT().RefreshProfile(gomock.Any()).
		Return(&domain.MerchantProfile{MerchantName: "Fetched"}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/merchant/profile", nil)

	h.GetProfile(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Fetched", dataField(t, w)["display_name"])
}

func TestUpdateSettings_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSession := mocks.NewMockSessionService(ctrl)
	h := NewMerchantHandler(mockSession)

	expected := domain.MerchantSettings{Currency: "USD", TaxRatePercent: 8.25, HasCompletedOnboarding: true}
	mockSession.EXPECT().UpdateSettings(gomock.Any(), expected).Return(nil)

	c, w := postJSON(t, "/api/v1/settings", dto.SettingsRequest{
		Currency: "USD", TaxRatePercent: 8.25, HasCompletedOnboarding: true,
	})
	h.UpdateSettings(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateSettings_BadCurrency(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSession := mocks.NewMockSessionService(ctrl)
	h := NewMerchantHandler(mockSession)

	c, w := postJSON(t, "/api/v1/settings", dto.SettingsRequest{Currency: "DOLLARS"})
	h.UpdateSettings(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- Sale Handler Tests ---

func saleContext(t *testing.T, method, path string, id uuid.UUID, payload interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		require.NoError(t, err)
	}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	return c, w
}

func TestCreateSale(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSale := mocks.NewMockSaleService(ctrl)
	h := NewSaleHandler(mockSale)

	draft := domain.NewSaleDraft()
	mockSale.EXPECT().NewSale(gomock.Any()).Return(draft, nil)

	c, w := postJSON(t, "/api/v1/sales", nil)
	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := dataField(t, w)
	assert.Equal(t, draft.ID.String(), data["id"])
	assert.Equal(t, "AMOUNT_ENTRY", data["state"])
}

func TestSetAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSale := mocks.NewMockSaleService(ctrl)
	h := NewSaleHandler(mockSale)

	id := uuid.New()
	mockSale.EXPECT().SetAmount(gomock.Any(), id, int64(10000)).
		Return(&domain.SaleQuote{AmountMinor: 10000, TaxMinor: 825, TotalMinor: 10825, Currency: "USD"}, nil)

	c, w := saleContext(t, http.MethodPut, "/api/v1/sales/x/amount", id, dto.AmountRequest{AmountMinor: 10000})
	h.SetAmount(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := dataField(t, w)
	assert.Equal(t, "108.25", data["total"])
	assert.Equal(t, "8.25", data["tax"])
}

func TestSetAmount_InvalidSaleID(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSale := mocks.NewMockSaleService(ctrl)
	h := NewSaleHandler(mockSale)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPut, "/api/v1/sales/nope/amount", nil)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	h.SetAmount(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSetCard_NeverEchoesCardData(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSale := mocks.NewMockSaleService(ctrl)
	h := NewSaleHandler(mockSale)

	id := uuid.New()
	mockSale.EXPECT().SetCard(gomock.Any(), id, ports.CardInput{
		Number: "4111 1111 1111 1111", ExpirationMonth: 3, ExpirationYear: 2028, CVV: "123",
	}).Return(nil)

	c, w := saleContext(t, http.MethodPut, "/api/v1/sales/x/card", id, dto.CardRequest{
		Number: "4111 1111 1111 1111", ExpirationMonth: 3, ExpirationYear: 2028, CVV: "123",
	})
	h.SetCard(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "4111")
	assert.NotContains(t, w.Body.String(), "123")
}

func TestSetCustomer_BillingFieldsPassThroughVerbatim(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSale := mocks.NewMockSaleService(ctrl)
	h := NewSaleHandler(mockSale)

	id := uuid.New()
	mockSale.EXPECT().SetCustomer(gomock.Any(), id, domain.CustomerDetails{
		FirstName: "Sean", LastName: "O'Connor", Email: "sean@example.com",
		Address: "1 Main & Elm St", City: "Springfield", State: "CA",
		Zip: "90210", Country: "US",
	}).Return(nil)

	c, w := saleContext(t, http.MethodPut, "/api/v1/sales/x/customer", id, dto.CustomerRequest{
		FirstName: "  Sean ", LastName: "O'Connor", Email: "sean@example.com",
		Address: "1 Main & Elm St", City: "Springfield", State: "CA",
		Zip: "90210", Country: "US",
	})
	h.SetCustomer(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSubmit_ApprovedOutcome(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSale := mocks.NewMockSaleService(ctrl)
	h := NewSaleHandler(mockSale)

	id := uuid.New()
	transID := "40001"
	outcome := domain.ApprovedOutcome(&transID, nil)
	mockSale.EXPECT().Submit(gomock.Any(), id).Return(&outcome, nil)

	c, w := saleContext(t, http.MethodPost, "/api/v1/sales/x/submit", id, nil)
	h.Submit(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := dataField(t, w)
	assert.Equal(t, "APPROVED", data["status"])
	assert.Equal(t, "40001", data["transaction_id"])
}

func TestSubmit_ConflictWhileInFlight(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSale := mocks.NewMockSaleService(ctrl)
	h := NewSaleHandler(mockSale)

	id := uuid.New()
	mockSale.EXPECT().Submit(gomock.Any(), id).Return(nil, apperror.ErrSubmissionInFlight())

	c, w := saleContext(t, http.MethodPost, "/api/v1/sales/x/submit", id, nil)
	h.Submit(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "SALE_002")
}

// --- History Handler Tests ---

func TestListTransactions(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockHistory := mocks.NewMockHistoryService(ctrl)
	mockSession := mocks.NewMockSessionService(ctrl)
	h := NewHistoryHandler(mockHistory, mockSession)

	lastFour := "1111"
	mockHistory.EXPECT().History(gomock.Any()).Return([]domain.Transaction{
		{TransactionID: "1001", Status: domain.TransactionStatusSettled, AccountLastFour: &lastFour, SettleAmountMinor: 10825},
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/transactions", nil)

	h.ListTransactions(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "****1111")
	assert.Contains(t, w.Body.String(), "108.25")
	assert.Contains(t, w.Body.String(), "Unknown Customer")
}

func TestDailyTotal(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockHistory := mocks.NewMockHistoryService(ctrl)
	mockSession := mocks.NewMockSessionService(ctrl)
	h := NewHistoryHandler(mockHistory, mockSession)

	mockHistory.EXPECT().DailyStatistics(gomock.Any()).Return(int64(13574), nil)
	mockSession.EXPECT().Settings().Return(domain.MerchantSettings{Currency: "USD"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/daily-total", nil)

	h.DailyTotal(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := dataField(t, w)
	assert.Equal(t, float64(13574), data["total_minor"])
	assert.Equal(t, "135.74", data["total"])
}

// --- Vault Handler Tests ---

func TestListVaultCustomers(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockVault := mocks.NewMockVaultService(ctrl)
	h := NewVaultHandler(mockVault)

	mockVault.EXPECT().ListCustomers(gomock.Any(), "doe").Return([]domain.VaultCustomer{
		{ID: "cp-2", FirstName: "Jane", LastName: "Doe", Card: domain.VaultCard{LastFour: "4242"}},
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/vault/customers?q=doe", nil)

	h.ListCustomers(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "cp-2")
	assert.Contains(t, w.Body.String(), "4242")
}
