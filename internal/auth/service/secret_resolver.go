package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	"gocloud.dev/secrets"

	// Register all KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// kmsSecretResolver implements SecretResolver using gocloud.dev/secrets.
type kmsSecretResolver struct {
	logger *slog.Logger
}

// NewSecretResolver creates a SecretResolver.
// Supports: gcpkms://, awskms://, azurekeyvault://, hashivault://, base64key://
func NewSecretResolver(logger *slog.Logger) SecretResolver {
	return &kmsSecretResolver{logger: logger}
}

// Resolve returns the plain signing secret.
func (r *kmsSecretResolver) Resolve(ctx context.Context, secret, keyURI string) ([]byte, error) {
	if keyURI == "" {
		return []byte(secret), nil
	}

	ciphertext, err := base64.StdEncoding.DecodeString(secret)
	if err != nil {
		return nil, fmt.Errorf("failed to decode signing secret ciphertext: %w", err)
	}

	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	defer func() {
		if closeErr := keeper.Close(); closeErr != nil {
			r.logger.Warn("failed to close KMS keeper", slog.Any("error", closeErr))
		}
	}()

	plaintext, err := keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt signing secret: %w", err)
	}

	r.logger.Info("signing secret decrypted through KMS")
	return plaintext, nil
}
