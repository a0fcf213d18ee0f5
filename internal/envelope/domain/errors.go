package domain

import (
	"github.com/allisson/recordseal/internal/errors"
)

// Envelope error definitions.
//
// Codec callers only ever observe ErrEncryptionFailed or ErrDecryptionFailed; the
// finer-grained errors below are used inside the package and by configuration code.
var (
	// ErrEncryptionFailed indicates an envelope could not be produced. Nothing is emitted
	// when this error is returned.
	ErrEncryptionFailed = errors.New("encryption failed")

	// ErrDecryptionFailed indicates an envelope could not be opened.
	//
	// The cause may be a malformed envelope, a wrong key or an integrity failure. The
	// cause is deliberately not disclosed.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrDecryptionFailed = errors.Wrap(errors.ErrInvalidInput, "decryption failed")

	// ErrKeyNotConfigured indicates no Level-1 secret was provided to the key provider.
	ErrKeyNotConfigured = errors.New("level-1 secret not configured")

	// ErrInvalidKeySize indicates key material is shorter than MinSecretLength, or a
	// derived cipher key is not KeySize bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrEmptyPlaintext indicates an attempt to seal zero bytes.
	ErrEmptyPlaintext = errors.Wrap(errors.ErrInvalidInput, "plaintext is empty")

	// ErrUnsupportedAlgorithm indicates an unknown AEAD algorithm.
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrUnsupportedKDF indicates an unknown key derivation function.
	ErrUnsupportedKDF = errors.Wrap(errors.ErrInvalidInput, "unsupported kdf")

	// ErrInvalidKDFParams indicates KDF parameters are unparseable or out of bounds.
	ErrInvalidKDFParams = errors.Wrap(errors.ErrInvalidInput, "invalid kdf parameters")

	// ErrMalformedEnvelope indicates an envelope string does not follow the wire format.
	ErrMalformedEnvelope = errors.Wrap(errors.ErrInvalidInput, "malformed envelope")

	// ErrUnsupportedVersion indicates an envelope written by an unknown scheme version.
	ErrUnsupportedVersion = errors.Wrap(errors.ErrInvalidInput, "unsupported envelope version")

	// ErrKeySerialization is returned when something tries to marshal a SymmetricKey.
	ErrKeySerialization = errors.New("symmetric keys cannot be serialized")
)
