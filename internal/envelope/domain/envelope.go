package domain

import (
	"encoding/base64"
	"strings"
)

const (
	separator   = "$"
	headerParts = 5
)

var bodyEncoding = base64.RawURLEncoding.Strict()

// Envelope is the parsed form of a Level-1 envelope string:
//
//	$rv1$<algorithm>$<kdf>$<kdf-params>$<base64url(salt || nonce || ciphertext)>
//
// Everything up to and including the last "$" is the header, which is bound to the
// ciphertext as AEAD associated data. Ciphertext includes the authentication tag.
type Envelope struct {
	Algorithm  Algorithm
	KDFParams  KDFParams
	Salt       []byte
	Nonce      []byte
	Ciphertext []byte
}

// Header returns the textual header used as associated data.
func (e Envelope) Header() string {
	var sb strings.Builder
	sb.WriteString(separator)
	sb.WriteString(EnvelopeVersion)
	sb.WriteString(separator)
	sb.WriteString(string(e.Algorithm))
	sb.WriteString(separator)
	sb.WriteString(string(e.KDFParams.KDF))
	sb.WriteString(separator)
	sb.WriteString(e.KDFParams.String())
	sb.WriteString(separator)
	return sb.String()
}

// String serializes the envelope into its transport form.
func (e Envelope) String() string {
	body := make([]byte, 0, len(e.Salt)+len(e.Nonce)+len(e.Ciphertext))
	body = append(body, e.Salt...)
	body = append(body, e.Nonce...)
	body = append(body, e.Ciphertext...)
	return e.Header() + bodyEncoding.EncodeToString(body)
}

// ParseEnvelope parses and structurally validates an envelope string. It does not
// authenticate anything; a successfully parsed envelope may still fail to open.
func ParseEnvelope(s string) (Envelope, error) {
	if strings.ContainsAny(s, "\r\n") {
		return Envelope{}, ErrMalformedEnvelope
	}

	parts := strings.Split(s, separator)
	if len(parts) != headerParts+1 || parts[0] != "" {
		return Envelope{}, ErrMalformedEnvelope
	}
	if parts[1] != EnvelopeVersion {
		return Envelope{}, ErrUnsupportedVersion
	}

	alg := Algorithm(parts[2])
	nonceSize, err := alg.NonceSize()
	if err != nil {
		return Envelope{}, err
	}

	params, err := ParseKDFParams(KDF(parts[3]), parts[4])
	if err != nil {
		return Envelope{}, err
	}

	body, err := bodyEncoding.DecodeString(parts[5])
	if err != nil {
		return Envelope{}, ErrMalformedEnvelope
	}
	if len(body) < SaltSize+nonceSize+TagSize {
		return Envelope{}, ErrMalformedEnvelope
	}

	return Envelope{
		Algorithm:  alg,
		KDFParams:  params,
		Salt:       body[:SaltSize],
		Nonce:      body[SaltSize : SaltSize+nonceSize],
		Ciphertext: body[SaltSize+nonceSize:],
	}, nil
}
