package service

import (
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/lsoftware/inventory/internal/auth/domain"
)

func TestNewSigningKey(t *testing.T) {
	t.Run("Error_EmptySecret", func(t *testing.T) {
		key, err := NewSigningKey(nil)
		assert.ErrorIs(t, err, authDomain.ErrSigningKeyMissing)
		assert.Nil(t, key)
	})

	t.Run("Error_ShortSecret", func(t *testing.T) {
		key, err := NewSigningKey([]byte(strings.Repeat("s", MinSigningKeyLength-1)))
		assert.ErrorIs(t, err, authDomain.ErrSigningKeyTooShort)
		assert.Nil(t, key)
	})

	t.Run("Success_MethodFollowsKeySize", func(t *testing.T) {
		tests := []struct {
			size     int
			expected *jwt.SigningMethodHMAC
		}{
			{size: 32, expected: jwt.SigningMethodHS256},
			{size: 47, expected: jwt.SigningMethodHS256},
			{size: 48, expected: jwt.SigningMethodHS384},
			{size: 63, expected: jwt.SigningMethodHS384},
			{size: 64, expected: jwt.SigningMethodHS512},
			{size: 66, expected: jwt.SigningMethodHS512},
		}

		for _, tt := range tests {
			key, err := NewSigningKey([]byte(strings.Repeat("s", tt.size)))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, key.Method(), "size %d", tt.size)
		}
	})

	t.Run("Success_KeyIsImmutable", func(t *testing.T) {
		secret := []byte(strings.Repeat("s", 32))
		key, err := NewSigningKey(secret)
		require.NoError(t, err)

		secret[0] = 'x'
		assert.Equal(t, byte('s'), key.Bytes()[0])

		leaked := key.Bytes()
		leaked[1] = 'x'
		assert.Equal(t, byte('s'), key.Bytes()[1])
	})
}
