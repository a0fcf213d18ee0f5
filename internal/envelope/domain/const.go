package domain

// Algorithm represents the AEAD cipher used to seal an envelope body.
//
// Both supported algorithms authenticate the ciphertext and the envelope header,
// so a wrong key and a tampered envelope surface the same way on open.
type Algorithm string

const (
	// AESGCM represents AES-256-GCM (12-byte nonce, 16-byte tag).
	AESGCM Algorithm = "aes-gcm"

	// ChaCha20 represents ChaCha20-Poly1305 (12-byte nonce, 16-byte tag).
	ChaCha20 Algorithm = "chacha20-poly1305"
)

// NonceSize returns the nonce length the algorithm expects.
func (a Algorithm) NonceSize() (int, error) {
	switch a {
	case AESGCM, ChaCha20:
		return 12, nil
	default:
		return 0, ErrUnsupportedAlgorithm
	}
}

// KDF names the password-based key derivation function that turns the configured
// Level-1 secret plus a per-envelope salt into the per-envelope cipher key.
type KDF string

const (
	// Argon2id is the memory-hard default.
	Argon2id KDF = "argon2id"

	// PBKDF2SHA256 is PBKDF2 with HMAC-SHA256, kept for environments that cannot afford
	// Argon2 memory costs.
	PBKDF2SHA256 KDF = "pbkdf2-sha256"
)

const (
	// EnvelopeVersion is the scheme identifier written at the start of every envelope.
	EnvelopeVersion = "rv1"

	// SaltSize is the length of the per-envelope KDF salt.
	SaltSize = 16

	// KeySize is the derived cipher key length (256 bits for both algorithms).
	KeySize = 32

	// TagSize is the AEAD authentication tag length appended to the ciphertext.
	TagSize = 16

	// MinSecretLength is the minimum length of a configured Level-1 secret.
	MinSecretLength = 32
)
