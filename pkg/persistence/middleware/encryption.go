package middleware

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/enfa/pkg/ports"
)

// KeySize is the AES-256 key length.
const KeySize = 32

// ErrDecrypt is returned when no configured key opens a cached value.
var ErrDecrypt = errors.New("decryption failed with all available keys")

// EncryptionConfig holds the keys for encryption and decryption.
type EncryptionConfig struct {
	// ActiveKey is the key used for encrypting new data.
	ActiveKey []byte

	// FallbackKeys are tried in order when ActiveKey fails, so keys can be
	// rotated without dropping the cache.
	FallbackKeys [][]byte
}

type encryptionMiddleware struct {
	next   ports.ResultCache
	active cipher.AEAD
	keys   []cipher.AEAD
}

// NewEncryptionMiddleware creates a middleware that seals cached results
// with AES-GCM before they reach the underlying cache.
func NewEncryptionMiddleware(config EncryptionConfig) (Middleware, error) {
	active, err := newAEAD(config.ActiveKey)
	if err != nil {
		return nil, fmt.Errorf("active key: %w", err)
	}
	keys := []cipher.AEAD{active}
	for i, k := range config.FallbackKeys {
		aead, err := newAEAD(k)
		if err != nil {
			return nil, fmt.Errorf("fallback key %d: %w", i, err)
		}
		keys = append(keys, aead)
	}

	return func(next ports.ResultCache) ports.ResultCache {
		return &encryptionMiddleware{next: next, active: active, keys: keys}
	}, nil
}

func (m *encryptionMiddleware) Put(ctx context.Context, key string, value []byte) error {
	nonce := make([]byte, m.active.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return fmt.Errorf("failed to encrypt result: %w", err)
	}
	// The cache key is bound as associated data so entries cannot be swapped.
	sealed := m.active.Seal(nonce, nonce, value, []byte(key))
	return m.next.Put(ctx, key, sealed)
}

func (m *encryptionMiddleware) Get(ctx context.Context, key string) ([]byte, error) {
	sealed, err := m.next.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	for _, aead := range m.keys {
		if plain, err := open(aead, sealed, key); err == nil {
			return plain, nil
		}
	}
	return nil, ErrDecrypt
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("key must be %d bytes (AES-256), got %d", KeySize, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func open(aead cipher.AEAD, sealed []byte, key string) ([]byte, error) {
	if len(sealed) < aead.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}
	nonce, body := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	return aead.Open(nil, nonce, body, []byte(key))
}
