package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"merchant-pos/internal/adapter/storage/memory"
	"merchant-pos/internal/core/domain"
	"merchant-pos/internal/core/ports"
	"merchant-pos/internal/core/ports/mocks"
	"merchant-pos/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type sessionFixture struct {
	gateway  *mocks.MockGateway
	store    *mocks.MockSecretStore
	enc      *mocks.MockEncryptionService
	passcode *mocks.MockPasscodeHasher
	token    *mocks.MockTokenService
	svc      *SessionServiceImpl
}

func newSessionFixture(t *testing.T) *sessionFixture {
	ctrl := gomock.NewController(t)
	f := &sessionFixture{
		gateway:  mocks.NewMockGateway(ctrl),
		store:    mocks.NewMockSecretStore(ctrl),
		enc:      mocks.NewMockEncryptionService(ctrl),
		passcode: mocks.NewMockPasscodeHasher(ctrl),
		token:    mocks.NewMockTokenService(ctrl),
	}
	factory := func(creds domain.Credentials) ports.Gateway { return f.gateway }
	f.svc = NewSessionService(factory, f.store, f.enc, f.passcode, f.token, zerolog.Nop())
	return f
}

func validCreds() domain.Credentials {
	return domain.Credentials{
		IdentityID:  "login-id",
		SecretKey:   "transaction-key",
		Environment: domain.EnvironmentSandbox,
	}
}

func TestSessionService_Login_Success(t *testing.T) {
	f := newSessionFixture(t)
	profile := &domain.MerchantProfile{MerchantName: "Shop", GatewayID: "g1"}

	f.gateway.EXPECT().GetMerchantProfile(gomock.Any()).Return(profile, nil)
	f.enc.EXPECT().Encrypt(gomock.Any()).Return("ciphertext", nil)
	f.store.EXPECT().Set(gomock.Any(), keyCredentials, "ciphertext").Return(nil)
	f.token.EXPECT().Generate("login-id").Return("jwt-token", time.Now().Add(time.Hour), nil)
	f.store.EXPECT().Get(gomock.Any(), keySettings).Return("", nil)

	result, err := f.svc.Login(context.Background(), validCreds())
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", result.Token)
	assert.Equal(t, profile, result.Profile)

	creds := f.svc.CurrentCredentials()
	require.NotNil(t, creds)
	assert.Equal(t, "login-id", creds.IdentityID)
	assert.False(t, f.svc.IsLocked())

	gw, err := f.svc.Gateway()
	require.NoError(t, err)
	assert.Same(t, f.gateway, gw)
}

func TestSessionService_Login_TrimsWhitespace(t *testing.T) {
	f := newSessionFixture(t)

	f.gateway.EXPECT().GetMerchantProfile(gomock.Any()).Return(&domain.MerchantProfile{}, nil)
	f.enc.EXPECT().Encrypt(gomock.Any()).Return("c", nil)
	f.store.EXPECT().Set(gomock.Any(), keyCredentials, "c").Return(nil)
	f.token.EXPECT().Generate("login-id").Return("tok", time.Now(), nil)
	f.store.EXPECT().Get(gomock.Any(), keySettings).Return("", nil)

	creds := validCreds()
	creds.IdentityID = "  login-id  "
	creds.SecretKey = " transaction-key "

	_, err := f.svc.Login(context.Background(), creds)
	require.NoError(t, err)
	assert.Equal(t, "login-id", f.svc.CurrentCredentials().IdentityID)
}

func TestSessionService_Login_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Credentials)
	}{
		{"blank identity", func(c *domain.Credentials) { c.IdentityID = "  " }},
		{"blank secret", func(c *domain.Credentials) { c.SecretKey = "" }},
		{"bad environment", func(c *domain.Credentials) { c.Environment = "staging" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSessionFixture(t)
			creds := validCreds()
			tt.mutate(&creds)

			_, err := f.svc.Login(context.Background(), creds)
			var appErr *apperror.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, "VAL_001", appErr.Code)
		})
	}
}

func TestSessionService_Login_GatewayRejection(t *testing.T) {
	f := newSessionFixture(t)

	f.gateway.EXPECT().GetMerchantProfile(gomock.Any()).
		Return(nil, apperror.ErrAuthenticationFailed(""))

	_, err := f.svc.Login(context.Background(), validCreds())
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "AUTH_001", appErr.Code)

	// Rejected credentials are never stored and no session exists.
	assert.Nil(t, f.svc.CurrentCredentials())
	_, err = f.svc.Gateway()
	assert.Error(t, err)
}

func TestSessionService_Login_LoadsPersistedSettings(t *testing.T) {
	f := newSessionFixture(t)

	f.gateway.EXPECT().GetMerchantProfile(gomock.Any()).Return(&domain.MerchantProfile{}, nil)
	f.enc.EXPECT().Encrypt(gomock.Any()).Return("c", nil)
	f.store.EXPECT().Set(gomock.Any(), keyCredentials, "c").Return(nil)
	f.token.EXPECT().Generate(gomock.Any()).Return("tok", time.Now(), nil)
	f.store.EXPECT().Get(gomock.Any(), keySettings).
		Return(`{"currency":"EUR","tax_rate_percent":19,"has_completed_onboarding":true}`, nil)

	_, err := f.svc.Login(context.Background(), validCreds())
	require.NoError(t, err)

	settings := f.svc.Settings()
	assert.Equal(t, "EUR", settings.Currency)
	assert.Equal(t, 19.0, settings.TaxRatePercent)
	assert.True(t, settings.HasCompletedOnboarding)
}

func TestSessionService_Restore_NoStoredCredentials(t *testing.T) {
	f := newSessionFixture(t)
	f.store.EXPECT().Get(gomock.Any(), keyCredentials).Return("", nil)

	restored, err := f.svc.Restore(context.Background())
	require.NoError(t, err)
	assert.False(t, restored)
	assert.Nil(t, f.svc.CurrentCredentials())
}

func TestSessionService_Restore_Success(t *testing.T) {
	f := newSessionFixture(t)

	f.store.EXPECT().Get(gomock.Any(), keyCredentials).Return("blob", nil)
	f.enc.EXPECT().Decrypt("blob").
		Return(`{"identity_id":"login-id","secret_key":"transaction-key","environment":"production"}`, nil)
	f.store.EXPECT().Get(gomock.Any(), keySettings).Return("", nil)
	f.store.EXPECT().Get(gomock.Any(), keyPasscodeHash).Return("", nil)

	restored, err := f.svc.Restore(context.Background())
	require.NoError(t, err)
	assert.True(t, restored)

	creds := f.svc.CurrentCredentials()
	require.NotNil(t, creds)
	assert.Equal(t, domain.EnvironmentProduction, creds.Environment)
	assert.False(t, f.svc.IsLocked())
}

func TestSessionService_Restore_StartsLockedWithPasscode(t *testing.T) {
	f := newSessionFixture(t)

	f.store.EXPECT().Get(gomock.Any(), keyCredentials).Return("blob", nil)
	f.enc.EXPECT().Decrypt("blob").
		Return(`{"identity_id":"login-id","secret_key":"k","environment":"sandbox"}`, nil)
	f.store.EXPECT().Get(gomock.Any(), keySettings).Return("", nil)
	f.store.EXPECT().Get(gomock.Any(), keyPasscodeHash).Return("$argon2id$...", nil)

	restored, err := f.svc.Restore(context.Background())
	require.NoError(t, err)
	assert.True(t, restored)
	assert.True(t, f.svc.IsLocked())
}

func TestSessionService_Restore_DecryptFailure(t *testing.T) {
	f := newSessionFixture(t)

	f.store.EXPECT().Get(gomock.Any(), keyCredentials).Return("blob", nil)
	f.enc.EXPECT().Decrypt("blob").Return("", errors.New("bad key"))

	_, err := f.svc.Restore(context.Background())
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "SYS_003", appErr.Code)
}

func TestSessionService_UpdateSettings(t *testing.T) {
	f := newSessionFixture(t)

	f.store.EXPECT().Set(gomock.Any(), keySettings, gomock.Any()).Return(nil)

	settings := domain.MerchantSettings{Currency: "USD", TaxRatePercent: 8.25, HasCompletedOnboarding: true}
	require.NoError(t, f.svc.UpdateSettings(context.Background(), settings))
	assert.Equal(t, settings, f.svc.Settings())
}

func TestSessionService_UpdateSettings_Invalid(t *testing.T) {
	f := newSessionFixture(t)

	err := f.svc.UpdateSettings(context.Background(), domain.MerchantSettings{Currency: "", TaxRatePercent: 5})
	assert.Error(t, err)

	err = f.svc.UpdateSettings(context.Background(), domain.MerchantSettings{Currency: "USD", TaxRatePercent: 101})
	assert.Error(t, err)

	err = f.svc.UpdateSettings(context.Background(), domain.MerchantSettings{Currency: "USD", TaxRatePercent: -1})
	assert.Error(t, err)
}

func TestSessionService_SignOut(t *testing.T) {
	f := newSessionFixture(t)

	f.gateway.EXPECT().GetMerchantProfile(gomock.Any()).Return(&domain.MerchantProfile{}, nil)
	f.enc.EXPECT().Encrypt(gomock.Any()).Return("c", nil)
	f.store.EXPECT().Set(gomock.Any(), keyCredentials, "c").Return(nil)
	f.token.EXPECT().Generate(gomock.Any()).Return("tok", time.Now(), nil)
	f.store.EXPECT().Get(gomock.Any(), keySettings).Return("", nil)

	_, err := f.svc.Login(context.Background(), validCreds())
	require.NoError(t, err)

	f.store.EXPECT().Remove(gomock.Any(), keyCredentials).Return(nil)
	f.store.EXPECT().Remove(gomock.Any(), keySettings).Return(nil)
	f.store.EXPECT().Remove(gomock.Any(), keyPasscodeHash).Return(nil)

	require.NoError(t, f.svc.SignOut(context.Background()))

	assert.Nil(t, f.svc.CurrentCredentials())
	assert.Nil(t, f.svc.Profile())
	assert.Equal(t, domain.DefaultSettings(), f.svc.Settings())
	_, err = f.svc.Gateway()
	assert.Error(t, err)
}

func TestSessionService_LockAndUnlock(t *testing.T) {
	f := newSessionFixture(t)

	f.gateway.EXPECT().GetMerchantProfile(gomock.Any()).Return(&domain.MerchantProfile{}, nil)
	f.enc.EXPECT().Encrypt(gomock.Any()).Return("c", nil)
	f.store.EXPECT().Set(gomock.Any(), keyCredentials, "c").Return(nil)
	f.token.EXPECT().Generate(gomock.Any()).Return("tok", time.Now(), nil)
	f.store.EXPECT().Get(gomock.Any(), keySettings).Return("", nil)

	_, err := f.svc.Login(context.Background(), validCreds())
	require.NoError(t, err)

	f.svc.Lock()
	assert.True(t, f.svc.IsLocked())

	// Credentials survive a lock; only access is gated.
	assert.NotNil(t, f.svc.CurrentCredentials())

	f.store.EXPECT().Get(gomock.Any(), keyPasscodeHash).Return("stored-hash", nil)
	f.passcode.EXPECT().Verify("1234", "stored-hash").Return(false, nil)
	err = f.svc.Unlock(context.Background(), "1234")
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "AUTH_005", appErr.Code)
	assert.True(t, f.svc.IsLocked())

	f.store.EXPECT().Get(gomock.Any(), keyPasscodeHash).Return("stored-hash", nil)
	f.passcode.EXPECT().Verify("9999", "stored-hash").Return(true, nil)
	require.NoError(t, f.svc.Unlock(context.Background(), "9999"))
	assert.False(t, f.svc.IsLocked())
}

func TestSessionService_Lock_NoSessionIsNoop(t *testing.T) {
	f := newSessionFixture(t)

	f.svc.Lock()
	assert.False(t, f.svc.IsLocked())
}

func TestSessionService_SetPasscode(t *testing.T) {
	f := newSessionFixture(t)

	f.passcode.EXPECT().Hash("123456").Return("hashed", nil)
	f.store.EXPECT().Set(gomock.Any(), keyPasscodeHash, "hashed").Return(nil)

	require.NoError(t, f.svc.SetPasscode(context.Background(), "123456"))

	err := f.svc.SetPasscode(context.Background(), "12")
	assert.Error(t, err, "short passcodes are rejected")
}

func TestSessionService_RefreshProfile(t *testing.T) {
	f := newSessionFixture(t)

	f.gateway.EXPECT().GetMerchantProfile(gomock.Any()).Return(&domain.MerchantProfile{MerchantName: "Old"}, nil)
	f.enc.EXPECT().Encrypt(gomock.Any()).Return("c", nil)
	f.store.EXPECT().Set(gomock.Any(), keyCredentials, "c").Return(nil)
	f.token.EXPECT().Generate(gomock.Any()).Return("tok", time.Now(), nil)
	f.store.EXPECT().Get(gomock.Any(), keySettings).Return("", nil)

	_, err := f.svc.Login(context.Background(), validCreds())
	require.NoError(t, err)

	f.gateway.EXPECT().GetMerchantProfile(gomock.Any()).Return(&domain.MerchantProfile{MerchantName: "New"}, nil)
	profile, err := f.svc.RefreshProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "New", profile.MerchantName)
	assert.Equal(t, "New", f.svc.Profile().MerchantName)
}

func TestSessionService_RefreshProfile_NotAuthenticated(t *testing.T) {
	f := newSessionFixture(t)

	_, err := f.svc.RefreshProfile(context.Background())
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "AUTH_002", appErr.Code)
}

// Full persistence round trip with the real store and crypto services; only
// the gateway is stubbed.
func TestSessionService_PersistAndRestoreRoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockGateway(ctrl)
	store := memory.NewSecretStore()
	enc, err := NewAESEncryptionService(testAESKey)
	require.NoError(t, err)
	hasher := NewArgon2PasscodeHasher()
	tokenSvc := NewJWTTokenService("round-trip-signing-secret", time.Hour, "pos")
	factory := func(creds domain.Credentials) ports.Gateway { return gw }

	svc := NewSessionService(factory, store, enc, hasher, tokenSvc, zerolog.Nop())
	gw.EXPECT().GetMerchantProfile(gomock.Any()).Return(&domain.MerchantProfile{MerchantName: "Shop"}, nil)

	_, err = svc.Login(context.Background(), validCreds())
	require.NoError(t, err)
	require.NoError(t, svc.SetPasscode(context.Background(), "2468"))

	// What rests in the store is ciphertext; the secret key never appears.
	atRest, err := store.Get(context.Background(), keyCredentials)
	require.NoError(t, err)
	require.NotEmpty(t, atRest)
	assert.NotContains(t, atRest, "transaction-key")

	restoredSvc := NewSessionService(factory, store, enc, hasher, tokenSvc, zerolog.Nop())
	restored, err := restoredSvc.Restore(context.Background())
	require.NoError(t, err)
	require.True(t, restored)

	// A stored passcode means the restored session starts locked.
	assert.True(t, restoredSvc.IsLocked())
	require.NoError(t, restoredSvc.Unlock(context.Background(), "2468"))

	creds := restoredSvc.CurrentCredentials()
	require.NotNil(t, creds)
	assert.Equal(t, "login-id", creds.IdentityID)
	assert.Equal(t, domain.EnvironmentSandbox, creds.Environment)
}
