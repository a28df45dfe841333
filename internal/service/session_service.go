package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"merchant-pos/internal/core/domain"
	"merchant-pos/internal/core/ports"
	"merchant-pos/pkg/apperror"

	"github.com/rs/zerolog"
)

// Secret store keys. Everything under these keys belongs to the single
// merchant session and is wiped together on sign-out.
const (
	keyCredentials  = "session:credentials"
	keySettings     = "session:settings"
	keyPasscodeHash = "session:passcode_hash"
)

// storedCredentials is the persisted shape of domain.Credentials. The domain
// type never serializes its secret key, so persistence goes through this
// mirror and only ever as AES-GCM ciphertext.
type storedCredentials struct {
	IdentityID  string             `json:"identity_id"`
	SecretKey   string             `json:"secret_key"`
	Environment domain.Environment `json:"environment"`
}

// SessionServiceImpl implements ports.SessionService. It holds the single
// in-memory merchant session: credentials, the gateway client bound to them,
// the cached profile, settings, and the lock flag. All state transitions are
// serialized through one mutex.
type SessionServiceImpl struct {
	mu       sync.RWMutex
	creds    *domain.Credentials
	gateway  ports.Gateway
	profile  *domain.MerchantProfile
	settings domain.MerchantSettings
	locked   bool

	factory     ports.GatewayFactory
	secretStore ports.SecretStore
	encSvc      ports.EncryptionService
	passcodeSvc ports.PasscodeHasher
	tokenSvc    ports.TokenService
	log         zerolog.Logger
}

// NewSessionService creates a new SessionServiceImpl.
func NewSessionService(
	factory ports.GatewayFactory,
	secretStore ports.SecretStore,
	encSvc ports.EncryptionService,
	passcodeSvc ports.PasscodeHasher,
	tokenSvc ports.TokenService,
	log zerolog.Logger,
) *SessionServiceImpl {
	return &SessionServiceImpl{
		settings:    domain.DefaultSettings(),
		factory:     factory,
		secretStore: secretStore,
		encSvc:      encSvc,
		passcodeSvc: passcodeSvc,
		tokenSvc:    tokenSvc,
		log:         log,
	}
}

// Login validates the credentials by fetching the merchant profile, then
// persists them encrypted and activates the session. Credentials are stored
// only after the gateway has accepted them.
func (s *SessionServiceImpl) Login(ctx context.Context, creds domain.Credentials) (*ports.LoginResult, error) {
	creds.IdentityID = strings.TrimSpace(creds.IdentityID)
	creds.SecretKey = strings.TrimSpace(creds.SecretKey)
	if creds.IdentityID == "" {
		return nil, apperror.ErrInvalidField("identity_id", "must not be blank")
	}
	if creds.SecretKey == "" {
		return nil, apperror.ErrInvalidField("secret_key", "must not be blank")
	}
	if !creds.Environment.Valid() {
		return nil, apperror.ErrInvalidField("environment", "must be sandbox or production")
	}

	gw := s.factory(creds)
	profile, err := gw.GetMerchantProfile(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.persistCredentials(ctx, creds); err != nil {
		return nil, err
	}

	token, expiry, err := s.tokenSvc.Generate(creds.IdentityID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("generate token: %w", err))
	}

	s.mu.Lock()
	s.creds = &creds
	s.gateway = gw
	s.profile = profile
	s.settings = s.loadSettingsLocked(ctx)
	s.locked = false
	s.mu.Unlock()

	s.log.Info().
		Str("identity_id", creds.IdentityID).
		Str("environment", string(creds.Environment)).
		Msg("merchant session established")

	return &ports.LoginResult{Token: token, TokenExpiry: expiry, Profile: profile}, nil
}

// Restore rebuilds the session from persisted credentials after a restart.
// Returns false when nothing is stored. The profile is refetched lazily on
// first use rather than here, so a dead network does not block startup.
func (s *SessionServiceImpl) Restore(ctx context.Context) (bool, error) {
	blob, err := s.secretStore.Get(ctx, keyCredentials)
	if err != nil {
		return false, apperror.ErrSecretStore(err)
	}
	if blob == "" {
		return false, nil
	}

	plaintext, err := s.encSvc.Decrypt(blob)
	if err != nil {
		return false, apperror.ErrEncryptionFailure(err)
	}

	var stored storedCredentials
	if err := json.Unmarshal([]byte(plaintext), &stored); err != nil {
		return false, apperror.InternalError(fmt.Errorf("decoding stored credentials: %w", err))
	}

	creds := domain.Credentials{
		IdentityID:  stored.IdentityID,
		SecretKey:   stored.SecretKey,
		Environment: stored.Environment,
	}

	s.mu.Lock()
	s.creds = &creds
	s.gateway = s.factory(creds)
	s.settings = s.loadSettingsLocked(ctx)
	// A restored session starts locked when a passcode is set.
	s.locked = s.hasPasscodeLocked(ctx)
	s.mu.Unlock()

	s.log.Info().Str("identity_id", creds.IdentityID).Msg("merchant session restored")
	return true, nil
}

// CurrentCredentials returns a copy of the active credentials, or nil.
func (s *SessionServiceImpl) CurrentCredentials() *domain.Credentials {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.creds == nil {
		return nil
	}
	c := *s.creds
	return &c
}

// Gateway returns the client bound to the session credentials.
func (s *SessionServiceImpl) Gateway() (ports.Gateway, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.gateway == nil {
		return nil, apperror.ErrNotAuthenticated()
	}
	return s.gateway, nil
}

// Profile returns the cached merchant profile, which may be nil after a
// restore until RefreshProfile runs.
func (s *SessionServiceImpl) Profile() *domain.MerchantProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// RefreshProfile refetches the profile from the gateway and caches it.
func (s *SessionServiceImpl) RefreshProfile(ctx context.Context) (*domain.MerchantProfile, error) {
	gw, err := s.Gateway()
	if err != nil {
		return nil, err
	}

	profile, err := gw.GetMerchantProfile(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.profile = profile
	s.mu.Unlock()
	return profile, nil
}

// Settings returns the current merchant settings.
func (s *SessionServiceImpl) Settings() domain.MerchantSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// UpdateSettings validates, persists, and applies new settings.
func (s *SessionServiceImpl) UpdateSettings(ctx context.Context, settings domain.MerchantSettings) error {
	if settings.Currency == "" {
		return apperror.ErrInvalidField("currency", "must not be blank")
	}
	if settings.TaxRatePercent < 0 || settings.TaxRatePercent > 100 {
		return apperror.ErrInvalidField("tax_rate_percent", "must be between 0 and 100")
	}

	raw, err := json.Marshal(settings)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("encoding settings: %w", err))
	}
	if err := s.secretStore.Set(ctx, keySettings, string(raw)); err != nil {
		return apperror.ErrSecretStore(err)
	}

	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()
	return nil
}

// SignOut wipes stored secrets and resets the session to its initial state.
func (s *SessionServiceImpl) SignOut(ctx context.Context) error {
	for _, key := range []string{keyCredentials, keySettings, keyPasscodeHash} {
		if err := s.secretStore.Remove(ctx, key); err != nil {
			return apperror.ErrSecretStore(err)
		}
	}

	s.mu.Lock()
	s.creds = nil
	s.gateway = nil
	s.profile = nil
	s.settings = domain.DefaultSettings()
	s.locked = false
	s.mu.Unlock()

	s.log.Info().Msg("merchant session cleared")
	return nil
}

// Lock blocks authenticated use until Unlock succeeds. Credentials stay in
// place; only access is gated.
func (s *SessionServiceImpl) Lock() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.creds != nil {
		s.locked = true
	}
}

// Unlock verifies the passcode and lifts the lock.
func (s *SessionServiceImpl) Unlock(ctx context.Context, passcode string) error {
	hash, err := s.secretStore.Get(ctx, keyPasscodeHash)
	if err != nil {
		return apperror.ErrSecretStore(err)
	}
	if hash == "" {
		// No passcode configured; the lock is advisory only.
		s.mu.Lock()
		s.locked = false
		s.mu.Unlock()
		return nil
	}

	ok, err := s.passcodeSvc.Verify(passcode, hash)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("verify passcode: %w", err))
	}
	if !ok {
		return apperror.ErrInvalidPasscode()
	}

	s.mu.Lock()
	s.locked = false
	s.mu.Unlock()
	return nil
}

// IsLocked reports whether the session is currently locked.
func (s *SessionServiceImpl) IsLocked() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.locked
}

// SetPasscode hashes and stores a new app-lock passcode.
func (s *SessionServiceImpl) SetPasscode(ctx context.Context, passcode string) error {
	if len(passcode) < 4 {
		return apperror.ErrInvalidField("passcode", "must be at least 4 characters")
	}

	hash, err := s.passcodeSvc.Hash(passcode)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("hash passcode: %w", err))
	}
	if err := s.secretStore.Set(ctx, keyPasscodeHash, hash); err != nil {
		return apperror.ErrSecretStore(err)
	}
	return nil
}

func (s *SessionServiceImpl) persistCredentials(ctx context.Context, creds domain.Credentials) error {
	raw, err := json.Marshal(storedCredentials{
		IdentityID:  creds.IdentityID,
		SecretKey:   creds.SecretKey,
		Environment: creds.Environment,
	})
	if err != nil {
		return apperror.InternalError(fmt.Errorf("encoding credentials: %w", err))
	}

	blob, err := s.encSvc.Encrypt(string(raw))
	if err != nil {
		return apperror.ErrEncryptionFailure(err)
	}
	if err := s.secretStore.Set(ctx, keyCredentials, blob); err != nil {
		return apperror.ErrSecretStore(err)
	}
	return nil
}

// loadSettingsLocked reads persisted settings, falling back to defaults. A
// corrupt or missing record never fails a login.
func (s *SessionServiceImpl) loadSettingsLocked(ctx context.Context) domain.MerchantSettings {
	raw, err := s.secretStore.Get(ctx, keySettings)
	if err != nil || raw == "" {
		return domain.DefaultSettings()
	}

	var settings domain.MerchantSettings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		s.log.Warn().Err(err).Msg("discarding unreadable stored settings")
		return domain.DefaultSettings()
	}
	return settings
}

func (s *SessionServiceImpl) hasPasscodeLocked(ctx context.Context) bool {
	hash, err := s.secretStore.Get(ctx, keyPasscodeHash)
	return err == nil && hash != ""
}
