package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
)

// SecretStore implements ports.SecretStore on Redis. Values never expire;
// sign-out removes them explicitly. Credentials pass through here only as
// ciphertext, so the store itself holds nothing usable on its own.
type SecretStore struct {
	client *goredis.Client
	prefix string
}

// NewSecretStore creates a new Redis-backed secret store.
func NewSecretStore(client *goredis.Client) *SecretStore {
	return &SecretStore{
		client: client,
		prefix: "secret:",
	}
}

// Get returns the stored value, or "" with a nil error when the key is absent.
func (s *SecretStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, nil
}

// Set stores a value under the key.
func (s *SecretStore) Set(ctx context.Context, key string, value string) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Remove deletes the key. Deleting an absent key is not an error.
func (s *SecretStore) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}
