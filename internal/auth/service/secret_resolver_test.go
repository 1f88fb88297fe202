package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/secrets"
)

// generateLocalSecretsURI generates a base64key:// URI for testing.
func generateLocalSecretsURI(t *testing.T) string {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return "base64key://" + base64.URLEncoding.EncodeToString(key)
}

func encryptWithKeeper(t *testing.T, keyURI string, plaintext []byte) string {
	t.Helper()
	ctx := context.Background()

	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, keeper.Close())
	}()

	ciphertext, err := keeper.Encrypt(ctx, plaintext)
	require.NoError(t, err)
	return base64.StdEncoding.EncodeToString(ciphertext)
}

func TestSecretResolver_Resolve(t *testing.T) {
	ctx := context.Background()
	resolver := NewSecretResolver(slog.New(slog.NewTextHandler(io.Discard, nil)))

	t.Run("Success_PlainSecret", func(t *testing.T) {
		secret, err := resolver.Resolve(ctx, testSecret, "")
		require.NoError(t, err)
		assert.Equal(t, []byte(testSecret), secret)
	})

	t.Run("Success_KMSWrappedSecret", func(t *testing.T) {
		keyURI := generateLocalSecretsURI(t)
		ciphertext := encryptWithKeeper(t, keyURI, []byte(testSecret))

		secret, err := resolver.Resolve(ctx, ciphertext, keyURI)
		require.NoError(t, err)
		assert.Equal(t, []byte(testSecret), secret)
	})

	t.Run("Error_CiphertextNotBase64", func(t *testing.T) {
		_, err := resolver.Resolve(ctx, "%%%", generateLocalSecretsURI(t))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode signing secret ciphertext")
	})

	t.Run("Error_InvalidKeyURI", func(t *testing.T) {
		_, err := resolver.Resolve(ctx, base64.StdEncoding.EncodeToString([]byte("x")), "invalid://uri")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open KMS keeper")
	})

	t.Run("Error_WrongKey", func(t *testing.T) {
		ciphertext := encryptWithKeeper(t, generateLocalSecretsURI(t), []byte(testSecret))

		_, err := resolver.Resolve(ctx, ciphertext, generateLocalSecretsURI(t))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decrypt signing secret")
	})
}
