package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)
	assert.True(t, IsPasswordHash(hash))
	assert.NotContains(t, hash, "s3cret!")

	again, err := HashPassword("s3cret!")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again, "salt must differ between hashes")

	ok, err := VerifyPassword("s3cret!", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPassword_InvalidFormat(t *testing.T) {
	_, err := VerifyPassword("x", "not-a-hash")
	assert.Error(t, err)

	_, err = VerifyPassword("x", "$argon2id$v=19$m=65536,t=3,p=2$!!!$abc")
	assert.Error(t, err)
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("pw")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		stored   string
		want     bool
	}{
		{"plain match", "pw", "pw", true},
		{"plain mismatch", "pw", "PW", false},
		{"plain empty stored", "pw", "", false},
		{"hash match", "pw", hash, true},
		{"hash mismatch", "nope", hash, false},
		{"corrupt hash", "pw", "$argon2id$broken", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckPassword(tt.password, tt.stored))
		})
	}
}
