package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSymmetricKey(t *testing.T) {
	t.Run("copies material", func(t *testing.T) {
		material := []byte("0123456789abcdef0123456789abcdef")
		key := NewSymmetricKey(material)

		Zero(material)

		assert.Equal(t, []byte("0123456789abcdef0123456789abcdef"), key.Bytes())
		assert.Equal(t, 32, key.Len())
		assert.False(t, key.IsZero())
	})

	t.Run("empty material yields zero key", func(t *testing.T) {
		assert.True(t, NewSymmetricKey(nil).IsZero())
		assert.True(t, NewSymmetricKey([]byte{}).IsZero())
	})
}

func TestSymmetricKey_Equal(t *testing.T) {
	a := NewSymmetricKey([]byte("key-a-0123456789abcdef0123456789"))
	b := NewSymmetricKey([]byte("key-a-0123456789abcdef0123456789"))
	c := NewSymmetricKey([]byte("key-c-0123456789abcdef0123456789"))

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(SymmetricKey{}))
}

func TestSymmetricKey_NeverRevealsMaterial(t *testing.T) {
	secret := "super-secret-level1-passphrase-xyz"
	key := NewSymmetricKey([]byte(secret))

	t.Run("fmt verbs", func(t *testing.T) {
		for _, verb := range []string{"%v", "%+v", "%s", "%#v"} {
			out := fmt.Sprintf(verb, key)
			assert.NotContains(t, out, secret, verb)
			assert.Contains(t, out, "REDACTED", verb)
		}
	})

	t.Run("slog", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&buf, nil))
		logger.Info("loaded key", slog.Any("key", key))
		assert.NotContains(t, buf.String(), secret)
		assert.Contains(t, buf.String(), "REDACTED")
	})

	t.Run("json", func(t *testing.T) {
		_, err := json.Marshal(struct{ Key SymmetricKey }{Key: key})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrKeySerialization)
	})
}

func TestSymmetricKey_Zero(t *testing.T) {
	key := NewSymmetricKey([]byte("0123456789abcdef0123456789abcdef"))
	material := key.Bytes()

	key.Zero()

	assert.True(t, key.IsZero())
	assert.Equal(t, make([]byte, 32), material)
}

func TestZero(t *testing.T) {
	t.Run("zero non-empty slice", func(t *testing.T) {
		b := []byte{1, 2, 3, 4, 5}
		Zero(b)
		assert.Equal(t, []byte{0, 0, 0, 0, 0}, b)
	})

	t.Run("zero nil slice", func(t *testing.T) {
		var b []byte
		assert.NotPanics(t, func() { Zero(b) })
	})
}
