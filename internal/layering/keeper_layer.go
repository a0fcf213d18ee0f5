package layering

import (
	"context"
	"encoding/base64"
	"fmt"

	envelopeService "github.com/allisson/recordseal/internal/envelope/service"
)

// KeeperLayer is a Level-2 layer backed by a KMS keeper. Output is base64url text so a
// doubly wrapped value stays printable.
type KeeperLayer struct {
	name   string
	keeper envelopeService.KMSKeeper
}

// NewKeeperLayer creates a KeeperLayer. The caller owns keeper and closes it.
func NewKeeperLayer(name string, keeper envelopeService.KMSKeeper) *KeeperLayer {
	return &KeeperLayer{name: name, keeper: keeper}
}

func (l *KeeperLayer) Name() string {
	return l.name
}

func (l *KeeperLayer) Wrap(ctx context.Context, data []byte) ([]byte, error) {
	ciphertext, err := l.keeper.Encrypt(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("failed to wrap: %w", err)
	}
	out := make([]byte, base64.RawURLEncoding.EncodedLen(len(ciphertext)))
	base64.RawURLEncoding.Encode(out, ciphertext)
	return out, nil
}

func (l *KeeperLayer) Unwrap(ctx context.Context, data []byte) ([]byte, error) {
	ciphertext := make([]byte, base64.RawURLEncoding.DecodedLen(len(data)))
	n, err := base64.RawURLEncoding.Decode(ciphertext, data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode: %w", err)
	}
	plaintext, err := l.keeper.Decrypt(ctx, ciphertext[:n])
	if err != nil {
		return nil, fmt.Errorf("failed to unwrap: %w", err)
	}
	return plaintext, nil
}
