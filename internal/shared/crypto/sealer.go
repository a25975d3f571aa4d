package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
)

// sealedPrefix marks values produced by AESSealer so plaintext rows written
// before sealing was enabled can still be read.
const sealedPrefix = "enc:v1:"

// ErrDecryptionFailed is returned when a sealed value cannot be opened.
var ErrDecryptionFailed = errors.New("decryption failed")

// Sealer protects secrets at rest.
type Sealer interface {
	Seal(plaintext string) (string, error)
	Open(stored string) (string, error)
}

// NopSealer stores values as-is.
type NopSealer struct{}

func (NopSealer) Seal(plaintext string) (string, error) { return plaintext, nil }
func (NopSealer) Open(stored string) (string, error) { return stored, nil }

// AESSealer encrypts with AES-256-GCM under a key derived from the master key.
type AESSealer struct {
	aead cipher.AEAD
}

// NewSealer returns an AESSealer, or a NopSealer when masterKey is empty.
func NewSealer(masterKey string) (Sealer, error) {
	if masterKey == "" {
		return NopSealer{}, nil
	}
	key := sha256.Sum256([]byte(masterKey))

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create GCM: %w", err)
	}
	return &AESSealer{aead: aead}, nil
}

// Seal returns prefix + base64(nonce | ciphertext | tag).
func (s *AESSealer) Seal(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	sealed := s.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return sealedPrefix + base64.StdEncoding.EncodeToString(sealed), nil
}

// Open reverses Seal. Values without the prefix are returned unchanged.
func (s *AESSealer) Open(stored string) (string, error) {
	if !strings.HasPrefix(stored, sealedPrefix) {
		return stored, nil
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(stored, sealedPrefix))
	if err != nil {
		return "", fmt.Errorf("%w: decode base64: %v", ErrDecryptionFailed, err)
	}

	nonceSize := s.aead.NonceSize()
	if len(raw) < nonceSize {
		return "", ErrDecryptionFailed
	}
	nonce, ciphertext := raw[:nonceSize], raw[nonceSize:]

	plaintext, err := s.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
	}
	return string(plaintext), nil
}
