// Package layering defines the ordering contract between independent encryption layers.
//
// A Pipeline applies its layers in declared order when sealing and removes them in reverse
// order when opening: the last layer applied is the first removed. Level 1 is the client's
// envelope codec; Level 2 is any downstream layer, such as a KMS keeper, that treats the
// Level-1 envelope as opaque bytes.
package layering

import (
	"context"
	"errors"
	"fmt"
)

// Layer is a single reversible encryption pass.
type Layer interface {
	// Name identifies the layer in logs and errors.
	Name() string

	// Wrap encrypts data. The output must be accepted by Unwrap of the same layer.
	Wrap(ctx context.Context, data []byte) ([]byte, error)

	// Unwrap reverses Wrap. It fails if data was not produced by this layer.
	Unwrap(ctx context.Context, data []byte) ([]byte, error)
}

// ErrNoLayers is returned by NewPipeline when no layers are supplied.
var ErrNoLayers = errors.New("pipeline requires at least one layer")

// Pipeline applies layers with LIFO removal.
type Pipeline struct {
	layers []Layer
}

// NewPipeline returns a pipeline whose Seal applies layers[0] first.
func NewPipeline(layers ...Layer) (*Pipeline, error) {
	if len(layers) == 0 {
		return nil, ErrNoLayers
	}
	return &Pipeline{layers: append([]Layer(nil), layers...)}, nil
}

// Layers returns the layer names in application order.
func (p *Pipeline) Layers() []string {
	names := make([]string, len(p.layers))
	for i, l := range p.layers {
		names[i] = l.Name()
	}
	return names
}

// Seal applies every layer in order.
func (p *Pipeline) Seal(ctx context.Context, data []byte) ([]byte, error) {
	out := data
	for _, l := range p.layers {
		wrapped, err := l.Wrap(ctx, out)
		if err != nil {
			return nil, fmt.Errorf("layer %s: %w", l.Name(), err)
		}
		out = wrapped
	}
	return out, nil
}

// Open removes every layer in reverse order. It stops at the first failing layer and never
// retries another order.
func (p *Pipeline) Open(ctx context.Context, data []byte) ([]byte, error) {
	out := data
	for i := len(p.layers) - 1; i >= 0; i-- {
		l := p.layers[i]
		unwrapped, err := l.Unwrap(ctx, out)
		if err != nil {
			return nil, fmt.Errorf("layer %s: %w", l.Name(), err)
		}
		out = unwrapped
	}
	return out, nil
}
