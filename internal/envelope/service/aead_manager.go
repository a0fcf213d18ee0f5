package service

import (
	envelopeDomain "github.com/allisson/recordseal/internal/envelope/domain"
)

// AEADManagerService implements AEADManager.
type AEADManagerService struct{}

// NewAEADManager creates a new AEADManagerService.
func NewAEADManager() *AEADManagerService {
	return &AEADManagerService{}
}

// CreateCipher returns ErrInvalidKeySize if key is not 32 bytes or ErrUnsupportedAlgorithm
// if alg is unknown.
func (am *AEADManagerService) CreateCipher(key []byte, alg envelopeDomain.Algorithm) (AEAD, error) {
	if len(key) != envelopeDomain.KeySize {
		return nil, envelopeDomain.ErrInvalidKeySize
	}

	switch alg {
	case envelopeDomain.AESGCM:
		return NewAESGCM(key)
	case envelopeDomain.ChaCha20:
		return NewChaCha20Poly1305(key)
	default:
		return nil, envelopeDomain.ErrUnsupportedAlgorithm
	}
}
