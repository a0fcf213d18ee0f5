package layering

import (
	"context"

	envelopeService "github.com/allisson/recordseal/internal/envelope/service"
)

// Level1Layer is the client-side envelope codec bound to a key provider.
type Level1Layer struct {
	codec       envelopeService.Codec
	keyProvider envelopeService.KeyProvider
}

// NewLevel1Layer creates a Level1Layer.
func NewLevel1Layer(codec envelopeService.Codec, keyProvider envelopeService.KeyProvider) *Level1Layer {
	return &Level1Layer{codec: codec, keyProvider: keyProvider}
}

func (l *Level1Layer) Name() string {
	return "level1"
}

// Wrap returns the envelope string as bytes.
func (l *Level1Layer) Wrap(_ context.Context, data []byte) ([]byte, error) {
	key, err := l.keyProvider.GetKey()
	if err != nil {
		return nil, err
	}
	envelope, err := l.codec.Encrypt(data, key)
	if err != nil {
		return nil, err
	}
	return []byte(envelope), nil
}

func (l *Level1Layer) Unwrap(_ context.Context, data []byte) ([]byte, error) {
	key, err := l.keyProvider.GetKey()
	if err != nil {
		return nil, err
	}
	return l.codec.Decrypt(string(data), key)
}
