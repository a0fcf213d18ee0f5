package domain

import (
	"crypto/subtle"
	"log/slog"
)

const redacted = "[REDACTED]"

// SymmetricKey holds Level-1 key material.
//
// The zero value is an absent key. Printing, logging or marshaling a SymmetricKey
// never reveals the material.
type SymmetricKey struct {
	material []byte
}

// NewSymmetricKey copies material into a new key. The caller keeps ownership of material
// and may zero it afterwards.
func NewSymmetricKey(material []byte) SymmetricKey {
	if len(material) == 0 {
		return SymmetricKey{}
	}
	k := make([]byte, len(material))
	copy(k, material)
	return SymmetricKey{material: k}
}

// Bytes returns the key material. The slice is shared with the key and must not be
// retained or modified.
func (k SymmetricKey) Bytes() []byte {
	return k.material
}

// Len returns the length of the key material.
func (k SymmetricKey) Len() int {
	return len(k.material)
}

// IsZero reports whether the key holds no material.
func (k SymmetricKey) IsZero() bool {
	return len(k.material) == 0
}

// Equal compares two keys in constant time.
func (k SymmetricKey) Equal(other SymmetricKey) bool {
	return subtle.ConstantTimeCompare(k.material, other.material) == 1
}

// Zero wipes the key material in place.
func (k *SymmetricKey) Zero() {
	Zero(k.material)
	k.material = nil
}

func (k SymmetricKey) String() string {
	return redacted
}

func (k SymmetricKey) GoString() string {
	return "domain.SymmetricKey{" + redacted + "}"
}

// LogValue implements slog.LogValuer.
func (k SymmetricKey) LogValue() slog.Value {
	return slog.StringValue(redacted)
}

// MarshalJSON always fails.
func (k SymmetricKey) MarshalJSON() ([]byte, error) {
	return nil, ErrKeySerialization
}

// MarshalText always fails.
func (k SymmetricKey) MarshalText() ([]byte, error) {
	return nil, ErrKeySerialization
}

// Zero securely overwrites a byte slice with zeros to clear sensitive data from memory.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
