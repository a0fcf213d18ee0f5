package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"

	envelopeDomain "github.com/allisson/recordseal/internal/envelope/domain"
)

// Reasons logged at debug level when an envelope fails to open. They never reach the caller.
const (
	reasonKey         = "key"
	reasonMalformed   = "malformed"
	reasonUnsupported = "unsupported"
	reasonKDF         = "kdf"
	reasonOpen        = "open"
)

// EnvelopeCodec implements Codec.
//
// Every Encrypt draws a fresh salt and nonce, derives a per-envelope key from the Level-1
// secret and seals the plaintext with the envelope header as associated data. Decrypt reads
// the algorithm and KDF parameters back from the header, so envelopes written under older
// settings stay readable after the defaults change.
type EnvelopeCodec struct {
	aeadManager AEADManager
	kdf         KeyDeriver
	algorithm   envelopeDomain.Algorithm
	kdfParams   envelopeDomain.KDFParams
	logger      *slog.Logger
}

// NewEnvelopeCodec validates the write settings and returns a codec. A nil logger discards
// diagnostics.
func NewEnvelopeCodec(
	aeadManager AEADManager,
	kdf KeyDeriver,
	algorithm envelopeDomain.Algorithm,
	kdfParams envelopeDomain.KDFParams,
	logger *slog.Logger,
) (*EnvelopeCodec, error) {
	if _, err := algorithm.NonceSize(); err != nil {
		return nil, err
	}
	if err := kdfParams.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &EnvelopeCodec{
		aeadManager: aeadManager,
		kdf:         kdf,
		algorithm:   algorithm,
		kdfParams:   kdfParams,
		logger:      logger,
	}, nil
}

// Encrypt seals plaintext into a new envelope string.
func (c *EnvelopeCodec) Encrypt(plaintext []byte, key envelopeDomain.SymmetricKey) (string, error) {
	if len(plaintext) == 0 {
		return "", encryptionError(envelopeDomain.ErrEmptyPlaintext)
	}
	if err := checkKey(key); err != nil {
		return "", encryptionError(err)
	}

	salt := make([]byte, envelopeDomain.SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", encryptionError(fmt.Errorf("failed to generate salt: %w", err))
	}

	derived, err := c.kdf.DeriveKey(key.Bytes(), salt, c.kdfParams)
	if err != nil {
		return "", encryptionError(err)
	}
	defer envelopeDomain.Zero(derived)

	aead, err := c.aeadManager.CreateCipher(derived, c.algorithm)
	if err != nil {
		return "", encryptionError(err)
	}

	env := envelopeDomain.Envelope{
		Algorithm: c.algorithm,
		KDFParams: c.kdfParams,
		Salt:      salt,
	}
	ciphertext, nonce, err := aead.Encrypt(plaintext, []byte(env.Header()))
	if err != nil {
		return "", encryptionError(err)
	}
	env.Nonce = nonce
	env.Ciphertext = ciphertext

	return env.String(), nil
}

// Decrypt opens an envelope produced by Encrypt.
func (c *EnvelopeCodec) Decrypt(envelope string, key envelopeDomain.SymmetricKey) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, c.decryptionFailed(reasonKey, err)
	}

	env, err := envelopeDomain.ParseEnvelope(envelope)
	if err != nil {
		return nil, c.decryptionFailed(parseReason(err), err)
	}

	derived, err := c.kdf.DeriveKey(key.Bytes(), env.Salt, env.KDFParams)
	if err != nil {
		return nil, c.decryptionFailed(reasonKDF, err)
	}
	defer envelopeDomain.Zero(derived)

	aead, err := c.aeadManager.CreateCipher(derived, env.Algorithm)
	if err != nil {
		return nil, c.decryptionFailed(reasonUnsupported, err)
	}

	plaintext, err := aead.Decrypt(env.Ciphertext, env.Nonce, []byte(env.Header()))
	if err != nil {
		return nil, c.decryptionFailed(reasonOpen, err)
	}
	return plaintext, nil
}

func (c *EnvelopeCodec) decryptionFailed(reason string, cause error) error {
	c.logger.Debug("envelope decryption failed",
		slog.String("reason", reason),
		slog.String("cause", cause.Error()),
	)
	return envelopeDomain.ErrDecryptionFailed
}

func checkKey(key envelopeDomain.SymmetricKey) error {
	if key.IsZero() {
		return envelopeDomain.ErrKeyNotConfigured
	}
	if key.Len() < envelopeDomain.MinSecretLength {
		return envelopeDomain.ErrInvalidKeySize
	}
	return nil
}

func parseReason(err error) string {
	switch {
	case errors.Is(err, envelopeDomain.ErrUnsupportedVersion),
		errors.Is(err, envelopeDomain.ErrUnsupportedAlgorithm),
		errors.Is(err, envelopeDomain.ErrUnsupportedKDF):
		return reasonUnsupported
	case errors.Is(err, envelopeDomain.ErrInvalidKDFParams):
		return reasonKDF
	default:
		return reasonMalformed
	}
}

func encryptionError(cause error) error {
	return fmt.Errorf("%w: %w", envelopeDomain.ErrEncryptionFailed, cause)
}
