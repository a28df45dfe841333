package ports

import (
	"context"
	"time"
)

// SecretStore is the narrow secure-storage collaborator. Implementations
// (redis, in-memory) hold small opaque values: encrypted credentials,
// settings, the lock passcode hash.
type SecretStore interface {
	// Get returns the stored value, or "" with a nil error when absent.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Remove(ctx context.Context, key string) error
}

// EncryptionService handles AES-256-GCM encryption/decryption of values
// before they reach the secret store.
type EncryptionService interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// PasscodeHasher hashes and verifies the optional app-lock passcode
// (Argon2id). The platform biometric itself is an external collaborator;
// this is the fallback credential it protects.
type PasscodeHasher interface {
	Hash(passcode string) (string, error)
	Verify(passcode string, hash string) (bool, error)
}

// TokenService handles session JWT operations.
type TokenService interface {
	Generate(identityID string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed session token claims.
type TokenClaims struct {
	IdentityID string
}

// HealthChecker verifies one external dependency for the health endpoint.
type HealthChecker interface {
	Name() string
	Ping(ctx context.Context) error
}
