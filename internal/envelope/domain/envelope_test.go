package domain

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEnvelope() Envelope {
	return Envelope{
		Algorithm:  AESGCM,
		KDFParams:  KDFParams{KDF: Argon2id, Time: 1, MemoryKiB: 1024, Threads: 1},
		Salt:       bytes.Repeat([]byte{0x01}, SaltSize),
		Nonce:      bytes.Repeat([]byte{0x02}, 12),
		Ciphertext: bytes.Repeat([]byte{0x03}, TagSize+5),
	}
}

func TestEnvelope_Header(t *testing.T) {
	env := sampleEnvelope()
	assert.Equal(t, "$rv1$aes-gcm$argon2id$t=1,m=1024,p=1$", env.Header())
}

func TestEnvelope_StringParseRoundTrip(t *testing.T) {
	env := sampleEnvelope()
	s := env.String()

	assert.True(t, strings.HasPrefix(s, env.Header()))

	parsed, err := ParseEnvelope(s)
	require.NoError(t, err)
	assert.Equal(t, env, parsed)
}

func TestEnvelope_TransportSafe(t *testing.T) {
	s := sampleEnvelope().String()

	for _, r := range s {
		assert.True(t, r > 0x20 && r < 0x7f, "non-printable rune %q", r)
	}

	encoded, err := json.Marshal(map[string]string{"payload": s})
	require.NoError(t, err)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.Equal(t, s, decoded["payload"])
}

func TestParseEnvelope_Errors(t *testing.T) {
	valid := sampleEnvelope().String()
	body := valid[strings.LastIndex(valid, "$")+1:]

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"empty", "", ErrMalformedEnvelope},
		{"no leading separator", "rv1$aes-gcm$argon2id$t=1,m=1024,p=1$" + body, ErrMalformedEnvelope},
		{"too few parts", "$rv1$aes-gcm$argon2id$" + body, ErrMalformedEnvelope},
		{"too many parts", valid + "$extra", ErrMalformedEnvelope},
		{"trailing newline", valid + "\n", ErrMalformedEnvelope},
		{"unknown version", "$rv2$aes-gcm$argon2id$t=1,m=1024,p=1$" + body, ErrUnsupportedVersion},
		{"unknown algorithm", "$rv1$des$argon2id$t=1,m=1024,p=1$" + body, ErrUnsupportedAlgorithm},
		{"unknown kdf", "$rv1$aes-gcm$scrypt$t=1,m=1024,p=1$" + body, ErrUnsupportedKDF},
		{"unbounded kdf params", "$rv1$aes-gcm$argon2id$t=1,m=4000000000,p=1$" + body, ErrInvalidKDFParams},
		{"padded body", valid + "==", ErrMalformedEnvelope},
		{"standard alphabet", strings.Replace(valid, body, body[:len(body)-1]+"+", 1), ErrMalformedEnvelope},
		{"short body", "$rv1$aes-gcm$argon2id$t=1,m=1024,p=1$AAAA", ErrMalformedEnvelope},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseEnvelope(tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseEnvelope_SubSlicesBody(t *testing.T) {
	env := sampleEnvelope()
	env.Algorithm = ChaCha20
	env.KDFParams = KDFParams{KDF: PBKDF2SHA256, Iterations: 1000}

	parsed, err := ParseEnvelope(env.String())
	require.NoError(t, err)

	assert.Len(t, parsed.Salt, SaltSize)
	assert.Len(t, parsed.Nonce, 12)
	assert.Len(t, parsed.Ciphertext, TagSize+5)
	assert.Equal(t, ChaCha20, parsed.Algorithm)
	assert.Equal(t, uint32(1000), parsed.KDFParams.Iterations)
}
