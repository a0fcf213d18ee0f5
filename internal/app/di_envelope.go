package app

import (
	"context"
	"fmt"

	envelopeDomain "github.com/allisson/recordseal/internal/envelope/domain"
	envelopeService "github.com/allisson/recordseal/internal/envelope/service"
	"github.com/allisson/recordseal/internal/layering"
)

// KMSService returns the KMS service used to open keepers for both levels.
func (c *Container) KMSService() envelopeService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = envelopeService.NewKMSService()
	})
	return c.kmsService
}

// AEADManager returns the AEAD cipher factory.
func (c *Container) AEADManager() envelopeService.AEADManager {
	c.aeadManagerInit.Do(func() {
		c.aeadManager = envelopeService.NewAEADManager()
	})
	return c.aeadManager
}

// KDFService returns the per-envelope key deriver.
func (c *Container) KDFService() envelopeService.KeyDeriver {
	c.kdfServiceInit.Do(func() {
		c.kdfService = envelopeService.NewKDFService()
	})
	return c.kdfService
}

// EnvelopeCodec returns the Level-1 codec configured with the write algorithm and KDF.
func (c *Container) EnvelopeCodec() (envelopeService.Codec, error) {
	c.envelopeCodecInit.Do(func() {
		var err error
		c.envelopeCodec, err = c.initEnvelopeCodec()
		c.setInitError("envelopeCodec", err)
	})
	if err := c.initError("envelopeCodec"); err != nil {
		return nil, err
	}
	return c.envelopeCodec, nil
}

// Level1KeyProvider returns the source of the Level-1 secret.
func (c *Container) Level1KeyProvider() (envelopeService.KeyProvider, error) {
	c.level1KeyProviderInit.Do(func() {
		var err error
		c.level1KeyProvider, err = c.initLevel1KeyProvider()
		c.setInitError("level1KeyProvider", err)
	})
	if err := c.initError("level1KeyProvider"); err != nil {
		return nil, err
	}
	return c.level1KeyProvider, nil
}

// Level1Layer returns the client's Level-1 layer.
func (c *Container) Level1Layer() (layering.Layer, error) {
	c.level1LayerInit.Do(func() {
		var err error
		c.level1Layer, err = c.initLevel1Layer()
		c.setInitError("level1Layer", err)
	})
	if err := c.initError("level1Layer"); err != nil {
		return nil, err
	}
	return c.level1Layer, nil
}

// KDFParams builds the write-side KDF parameters from configuration.
func KDFParams(kdf envelopeDomain.KDF, time, memoryKiB, threads, iterations int) (envelopeDomain.KDFParams, error) {
	switch kdf {
	case envelopeDomain.Argon2id:
		if time < 0 || memoryKiB < 0 || threads < 0 || threads > 255 {
			return envelopeDomain.KDFParams{}, envelopeDomain.ErrInvalidKDFParams
		}
		params := envelopeDomain.KDFParams{
			KDF:       kdf,
			Time:      uint32(time),
			MemoryKiB: uint32(memoryKiB),
			Threads:   uint8(threads),
		}
		return params, params.Validate()
	case envelopeDomain.PBKDF2SHA256:
		if iterations < 0 {
			return envelopeDomain.KDFParams{}, envelopeDomain.ErrInvalidKDFParams
		}
		params := envelopeDomain.KDFParams{KDF: kdf, Iterations: uint32(iterations)}
		return params, params.Validate()
	default:
		return envelopeDomain.KDFParams{}, envelopeDomain.ErrUnsupportedKDF
	}
}

// initEnvelopeCodec validates the configured algorithm and KDF work factors.
func (c *Container) initEnvelopeCodec() (envelopeService.Codec, error) {
	params, err := KDFParams(
		envelopeDomain.KDF(c.config.EnvelopeKDF),
		c.config.Argon2Time,
		c.config.Argon2MemoryKiB,
		c.config.Argon2Threads,
		c.config.PBKDF2Iterations,
	)
	if err != nil {
		return nil, fmt.Errorf("invalid envelope kdf configuration: %w", err)
	}

	codec, err := envelopeService.NewEnvelopeCodec(
		c.AEADManager(),
		c.KDFService(),
		envelopeDomain.Algorithm(c.config.EnvelopeAlgorithm),
		params,
		c.Logger(),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid envelope configuration: %w", err)
	}
	return codec, nil
}

// initLevel1KeyProvider serves LEVEL1_SECRET as is, or unwraps it through the KMS key at
// LEVEL1_KMS_KEY_URI.
func (c *Container) initLevel1KeyProvider() (envelopeService.KeyProvider, error) {
	if c.config.Level1KMSKeyURI == "" {
		return envelopeService.NewStaticKeyProvider([]byte(c.config.Level1Secret)), nil
	}

	provider, err := envelopeService.NewKMSKeyProvider(
		context.Background(),
		c.KMSService(),
		c.config.Level1KMSKeyURI,
		c.config.Level1Secret,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load level-1 secret from kms: %w", err)
	}
	return provider, nil
}

// initLevel1Layer joins the codec and the key provider.
func (c *Container) initLevel1Layer() (layering.Layer, error) {
	codec, err := c.EnvelopeCodec()
	if err != nil {
		return nil, fmt.Errorf("failed to get envelope codec for level-1 layer: %w", err)
	}

	keyProvider, err := c.Level1KeyProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get key provider for level-1 layer: %w", err)
	}

	return layering.NewLevel1Layer(codec, keyProvider), nil
}
