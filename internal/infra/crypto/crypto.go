// Package crypto provides at-rest encryption for the git store.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

const (
	// NonceSize is the size of the nonce for AES-GCM (12 bytes).
	NonceSize = 12
	// KeySize is the size of the AES-256 key (32 bytes).
	KeySize = 32
	// SaltSize is the size of the passphrase salt.
	SaltSize = 16
)

// Argon2id parameters for passphrase derivation.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
)

var (
	// ErrInvalidKey is returned when the encryption secret is unusable.
	ErrInvalidKey = errors.New("invalid encryption key: use 64 hex characters or a passphrase of at least 8 characters")
	// ErrDecryptionFailed is returned when decryption fails.
	ErrDecryptionFailed = errors.New("decryption failed: invalid ciphertext or key")
	// ErrCiphertextTooShort is returned when the ciphertext is too short.
	ErrCiphertextTooShort = errors.New("ciphertext too short")
)

const minPassphrase = 8

// IsRawKey reports whether secret is a 64 hex character AES-256 key.
// Any other secret is treated as a passphrase and needs a salt.
func IsRawKey(secret string) bool {
	key, err := hex.DecodeString(secret)
	return err == nil && len(key) == KeySize
}

// NewSalt returns a random salt for DeriveKey.
func NewSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	return salt, nil
}

// DeriveKey turns secret into an AES-256 key. Raw hex keys are decoded,
// passphrases are stretched with Argon2id using salt.
func DeriveKey(secret string, salt []byte) ([]byte, error) {
	if IsRawKey(secret) {
		key, _ := hex.DecodeString(secret)
		return key, nil
	}
	if len(secret) < minPassphrase || len(salt) == 0 {
		return nil, ErrInvalidKey
	}
	return argon2.IDKey([]byte(secret), salt, argonTime, argonMemory, argonThreads, KeySize), nil
}

// Encryptor handles AES-256-GCM encryption.
type Encryptor struct {
	gcm cipher.AEAD
}

// NewEncryptor creates an Encryptor for a 32 byte key.
func NewEncryptor(key []byte) (*Encryptor, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKey
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create GCM: %w", err)
	}

	return &Encryptor{gcm: gcm}, nil
}

// Encrypt seals plaintext bound to label (e.g. the ref name), so a blob
// cannot be replayed under another name.
// Returns: nonce (12 bytes) + ciphertext + auth tag
func (e *Encryptor) Encrypt(plaintext []byte, label string) ([]byte, error) {
	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}
	return e.gcm.Seal(nonce, nonce, plaintext, []byte(label)), nil
}

// Decrypt opens ciphertext produced by Encrypt with the same label.
func (e *Encryptor) Decrypt(ciphertext []byte, label string) ([]byte, error) {
	if len(ciphertext) < NonceSize {
		return nil, ErrCiphertextTooShort
	}

	nonce := ciphertext[:NonceSize]
	encrypted := ciphertext[NonceSize:]

	plaintext, err := e.gcm.Open(nil, nonce, encrypted, []byte(label))
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	return plaintext, nil
}
