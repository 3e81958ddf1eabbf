// Package obfuscator hides stored values from casual inspection of the
// storage backend. It is not a security boundary: the key is derived from
// a configured secret that lives next to the data.
package obfuscator

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/patric-chuzhbe/hoaxify/internal/db/storage"
)

var ErrMalformedValue = errors.New("malformed obfuscated value")

const keyInfo = "hoaxify-storage-obfuscation"

type Obfuscator struct {
	aead cipher.AEAD
}

// New derives an AES-256 key from secret with HKDF-SHA256.
func New(secret string) (*Obfuscator, error) {
	if secret == "" {
		return nil, errors.New("in internal/obfuscator/obfuscator.go/New(): empty secret")
	}

	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(keyInfo)), key); err != nil {
		return nil, fmt.Errorf("in internal/obfuscator/obfuscator.go/New(): error while `hkdf` reading: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &Obfuscator{aead: aead}, nil
}

// Seal returns base64(nonce || ciphertext) of plain.
func (o *Obfuscator) Seal(plain string) (string, error) {
	nonce := make([]byte, o.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	sealed := o.aead.Seal(nonce, nonce, []byte(plain), nil)

	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Open reverses Seal.
func (o *Obfuscator) Open(sealed string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil {
		return "", ErrMalformedValue
	}
	nonceSize := o.aead.NonceSize()
	if len(raw) < nonceSize {
		return "", ErrMalformedValue
	}
	plain, err := o.aead.Open(nil, raw[:nonceSize], raw[nonceSize:], nil)
	if err != nil {
		return "", ErrMalformedValue
	}

	return string(plain), nil
}

// Storage wraps a backend so every value is sealed on Set and opened on Get.
type Storage struct {
	storage.Storage
	obfuscator *Obfuscator
}

func Wrap(next storage.Storage, o *Obfuscator) *Storage {
	return &Storage{
		Storage:    next,
		obfuscator: o,
	}
}

// Get returns ErrMalformedValue for values that were not sealed with the same secret.
func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	sealed, found, err := s.Storage.Get(ctx, key)
	if err != nil || !found {
		return "", found, err
	}

	plain, err := s.obfuscator.Open(sealed)
	if err != nil {
		return "", true, err
	}

	return plain, true, nil
}

func (s *Storage) Set(ctx context.Context, key, value string) error {
	sealed, err := s.obfuscator.Seal(value)
	if err != nil {
		return err
	}

	return s.Storage.Set(ctx, key, sealed)
}
