package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = strings.Repeat("ab", KeySize)

func TestEncryptDecrypt(t *testing.T) {
	key, err := DeriveKey(testKey, nil)
	require.NoError(t, err)
	enc, err := NewEncryptor(key)
	require.NoError(t, err)

	ct, err := enc.Encrypt([]byte("hello"), "refs/steps/kv/steps.state")
	require.NoError(t, err)
	assert.NotContains(t, string(ct), "hello")

	pt, err := enc.Decrypt(ct, "refs/steps/kv/steps.state")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(pt))

	_, err = enc.Decrypt(ct, "refs/steps/kv/other")
	require.ErrorIs(t, err, ErrDecryptionFailed, "label is authenticated")

	_, err = enc.Decrypt([]byte("short"), "x")
	require.ErrorIs(t, err, ErrCiphertextTooShort)
}

func TestEncrypt_RandomNonce(t *testing.T) {
	key, _ := DeriveKey(testKey, nil)
	enc, _ := NewEncryptor(key)

	a, err := enc.Encrypt([]byte("same"), "l")
	require.NoError(t, err)
	b, err := enc.Encrypt([]byte("same"), "l")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestDeriveKey_Passphrase(t *testing.T) {
	assert.False(t, IsRawKey("correct horse battery"))
	assert.True(t, IsRawKey(testKey))

	salt, err := NewSalt()
	require.NoError(t, err)

	k1, err := DeriveKey("correct horse battery", salt)
	require.NoError(t, err)
	k2, err := DeriveKey("correct horse battery", salt)
	require.NoError(t, err)
	assert.Equal(t, k1, k2)
	assert.Len(t, k1, KeySize)

	other, _ := NewSalt()
	k3, _ := DeriveKey("correct horse battery", other)
	assert.NotEqual(t, k1, k3)

	_, err = DeriveKey("short", salt)
	require.ErrorIs(t, err, ErrInvalidKey)
	_, err = DeriveKey("long enough passphrase", nil)
	require.ErrorIs(t, err, ErrInvalidKey)
}

func TestNewEncryptor_InvalidKey(t *testing.T) {
	_, err := NewEncryptor([]byte("too short"))
	require.ErrorIs(t, err, ErrInvalidKey)
}
