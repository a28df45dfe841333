package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgon2PasscodeHasher_HashAndVerify(t *testing.T) {
	hasher := NewArgon2PasscodeHasher()

	hash, err := hasher.Hash("1234")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))
	assert.NotContains(t, hash, "1234")

	ok, err := hasher.Verify("1234", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = hasher.Verify("4321", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArgon2PasscodeHasher_UniqueSalts(t *testing.T) {
	hasher := NewArgon2PasscodeHasher()

	h1, err := hasher.Hash("0000")
	require.NoError(t, err)
	h2, err := hasher.Hash("0000")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2, "each hash must use a fresh salt")

	ok, _ := hasher.Verify("0000", h1)
	assert.True(t, ok)
	ok, _ = hasher.Verify("0000", h2)
	assert.True(t, ok)
}

func TestArgon2PasscodeHasher_MalformedHash(t *testing.T) {
	hasher := NewArgon2PasscodeHasher()

	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"wrong part count", "$argon2id$v=19$m=65536"},
		{"wrong algorithm", "$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA"},
		{"bad salt encoding", "$argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA"},
		{"bad hash encoding", "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$!!!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := hasher.Verify("1234", tt.hash)
			assert.Error(t, err)
		})
	}
}
