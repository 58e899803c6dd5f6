// Package security implements per-field encryption for personally identifying
// data crossing the persistence boundary. Values are enciphered with
// AES-256-CBC under a single process-wide key and stored as
// base64(iv ‖ ciphertext).
package security

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
)

const KeySize = 32

var (
	ErrInvalidKeySize      = errors.New("fieldcipher: key must be 32 bytes")
	ErrMalformedCiphertext = errors.New("fieldcipher: malformed ciphertext")
)

// FieldCipher enciphers and deciphers individual string fields. Safe for
// concurrent use.
type FieldCipher struct {
	block cipher.Block
}

// NewFieldCipher builds a cipher from a 32-byte key.
func NewFieldCipher(key []byte) (*FieldCipher, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKeySize
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("fieldcipher: %w", err)
	}
	return &FieldCipher{block: block}, nil
}

// Encrypt enciphers plaintext with a fresh random IV and returns
// base64(iv ‖ ciphertext). The empty string passes through unchanged, which
// leaks which fields are empty; this is accepted behaviour for this store.
func (c *FieldCipher) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("fieldcipher: iv: %w", err)
	}

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	out := make([]byte, aes.BlockSize+len(padded))
	copy(out, iv)
	cipher.NewCBCEncrypter(c.block, iv).CryptBlocks(out[aes.BlockSize:], padded)

	return base64.StdEncoding.EncodeToString(out), nil
}

// Decrypt reverses Encrypt. The empty string passes through unchanged.
// Values that were never enciphered, or were enciphered under another key,
// yield ErrMalformedCiphertext.
func (c *FieldCipher) Decrypt(ciphertext string) (string, error) {
	if ciphertext == "" {
		return "", nil
	}

	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedCiphertext, err)
	}
	if len(raw) < 2*aes.BlockSize || len(raw)%aes.BlockSize != 0 {
		return "", ErrMalformedCiphertext
	}

	iv, body := raw[:aes.BlockSize], raw[aes.BlockSize:]
	plain := make([]byte, len(body))
	cipher.NewCBCDecrypter(c.block, iv).CryptBlocks(plain, body)

	unpadded, err := pkcs7Unpad(plain, aes.BlockSize)
	if err != nil {
		return "", err
	}
	return string(unpadded), nil
}

// FieldValue is the outcome of reading a possibly-enciphered field.
// Decrypted is false when the stored value failed decryption and the raw
// value was kept (plaintext legacy data or data written under another key).
type FieldValue struct {
	Value     string
	Decrypted bool
}

// DecryptOrRaw attempts decryption and falls back to the stored value on any
// failure, so reads stay available for partially-inconsistent historical
// data. Every field read in the repositories goes through this path.
func (c *FieldCipher) DecryptOrRaw(stored string) FieldValue {
	plain, err := c.Decrypt(stored)
	if err != nil {
		return FieldValue{Value: stored, Decrypted: false}
	}
	return FieldValue{Value: plain, Decrypted: true}
}

func pkcs7Pad(b []byte, size int) []byte {
	n := size - len(b)%size
	return append(b, bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(b []byte, size int) ([]byte, error) {
	if len(b) == 0 || len(b)%size != 0 {
		return nil, ErrMalformedCiphertext
	}
	n := int(b[len(b)-1])
	if n == 0 || n > size {
		return nil, ErrMalformedCiphertext
	}
	for _, p := range b[len(b)-n:] {
		if int(p) != n {
			return nil, ErrMalformedCiphertext
		}
	}
	return b[:len(b)-n], nil
}
