package service

import (
	"crypto/sha256"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"

	envelopeDomain "github.com/allisson/recordseal/internal/envelope/domain"
)

// KDFService derives per-envelope cipher keys with Argon2id or PBKDF2-HMAC-SHA256.
type KDFService struct{}

// NewKDFService creates a new KDFService.
func NewKDFService() *KDFService {
	return &KDFService{}
}

// DeriveKey validates params before doing any work, so untrusted headers cannot request
// unbounded memory or iterations.
func (k *KDFService) DeriveKey(
	secret, salt []byte,
	params envelopeDomain.KDFParams,
) ([]byte, error) {
	if len(secret) == 0 {
		return nil, envelopeDomain.ErrKeyNotConfigured
	}
	if len(salt) != envelopeDomain.SaltSize {
		return nil, envelopeDomain.ErrInvalidKDFParams
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	switch params.KDF {
	case envelopeDomain.Argon2id:
		return argon2.IDKey(
			secret,
			salt,
			params.Time,
			params.MemoryKiB,
			params.Threads,
			envelopeDomain.KeySize,
		), nil
	case envelopeDomain.PBKDF2SHA256:
		return pbkdf2.Key(
			secret,
			salt,
			int(params.Iterations),
			envelopeDomain.KeySize,
			sha256.New,
		), nil
	default:
		return nil, envelopeDomain.ErrUnsupportedKDF
	}
}
