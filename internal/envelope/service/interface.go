// Package service implements Level-1 envelope encryption: AEAD ciphers, per-envelope key
// derivation, the envelope codec and the providers that supply the Level-1 secret.
package service

import (
	"context"

	envelopeDomain "github.com/allisson/recordseal/internal/envelope/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext and nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// AEADManager defines the interface for creating AEAD cipher instances.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher instance for the specified algorithm.
	CreateCipher(key []byte, alg envelopeDomain.Algorithm) (AEAD, error)
}

// KeyDeriver turns the Level-1 secret and a per-envelope salt into a cipher key.
type KeyDeriver interface {
	DeriveKey(secret, salt []byte, params envelopeDomain.KDFParams) ([]byte, error)
}

// KeyProvider supplies the Level-1 symmetric key. Implementations are immutable after
// construction and return the same key on every call.
type KeyProvider interface {
	GetKey() (envelopeDomain.SymmetricKey, error)
}

// Codec converts plaintext bytes into a Level-1 envelope string and back.
type Codec interface {
	// Encrypt seals plaintext under key. Errors match envelopeDomain.ErrEncryptionFailed.
	Encrypt(plaintext []byte, key envelopeDomain.SymmetricKey) (string, error)

	// Decrypt opens an envelope. Every failure is exactly envelopeDomain.ErrDecryptionFailed.
	Decrypt(envelope string, key envelopeDomain.SymmetricKey) ([]byte, error)
}

// KMSKeeper is the subset of *secrets.Keeper used to wrap and unwrap key material.
type KMSKeeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// KMSService opens keepers for KMS key URIs.
type KMSService interface {
	// OpenKeeper opens a keeper for keyURI. Supports gcpkms://, awskms://,
	// azurekeyvault://, hashivault:// and base64key://.
	OpenKeeper(ctx context.Context, keyURI string) (KMSKeeper, error)
}
