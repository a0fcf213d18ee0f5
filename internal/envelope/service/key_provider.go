package service

import (
	"context"
	"encoding/base64"
	"fmt"

	envelopeDomain "github.com/allisson/recordseal/internal/envelope/domain"
)

// StaticKeyProvider serves a Level-1 key taken directly from configuration.
type StaticKeyProvider struct {
	key envelopeDomain.SymmetricKey
}

// NewStaticKeyProvider copies secret into a provider. Missing or short secrets are reported
// by GetKey so that processes which never touch Level 1 can still start.
func NewStaticKeyProvider(secret []byte) *StaticKeyProvider {
	return &StaticKeyProvider{key: envelopeDomain.NewSymmetricKey(secret)}
}

// GetKey returns ErrKeyNotConfigured when no secret was set and ErrInvalidKeySize when the
// secret is shorter than MinSecretLength.
func (p *StaticKeyProvider) GetKey() (envelopeDomain.SymmetricKey, error) {
	if p.key.IsZero() {
		return envelopeDomain.SymmetricKey{}, envelopeDomain.ErrKeyNotConfigured
	}
	if p.key.Len() < envelopeDomain.MinSecretLength {
		return envelopeDomain.SymmetricKey{}, envelopeDomain.ErrInvalidKeySize
	}
	return p.key, nil
}

// NewKMSKeyProvider unwraps a KMS-encrypted Level-1 secret once and serves the plaintext
// from memory. wrappedSecret is the base64 (std encoding) KMS ciphertext.
func NewKMSKeyProvider(
	ctx context.Context,
	kmsService KMSService,
	keyURI string,
	wrappedSecret string,
) (*StaticKeyProvider, error) {
	if keyURI == "" || wrappedSecret == "" {
		return nil, envelopeDomain.ErrKeyNotConfigured
	}

	ciphertext, err := base64.StdEncoding.DecodeString(wrappedSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to decode wrapped level-1 secret: %w", err)
	}

	keeper, err := kmsService.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = keeper.Close()
	}()

	secret, err := keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("failed to unwrap level-1 secret: %w", err)
	}
	defer envelopeDomain.Zero(secret)

	provider := NewStaticKeyProvider(secret)
	if _, err := provider.GetKey(); err != nil {
		return nil, err
	}
	return provider, nil
}

// WrapSecret encrypts a Level-1 secret with the KMS key at keyURI and returns the base64
// ciphertext accepted by NewKMSKeyProvider.
func WrapSecret(ctx context.Context, kmsService KMSService, keyURI string, secret []byte) (string, error) {
	keeper, err := kmsService.OpenKeeper(ctx, keyURI)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = keeper.Close()
	}()

	ciphertext, err := keeper.Encrypt(ctx, secret)
	if err != nil {
		return "", fmt.Errorf("failed to wrap level-1 secret: %w", err)
	}
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}
