package encrypter

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/user/website-crawl-service/internal/repository"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

const keyInfoPrefix = "website-crawl-service/tenant/"

// TenantEncrypter seals secrets with a key derived from a master secret and the tenant id.
// A token sealed for one tenant cannot be opened for another.
type TenantEncrypter struct {
	secret []byte
}

// New creates a TenantEncrypter. The master secret must not be empty.
func New(secret string) (*TenantEncrypter, error) {
	if secret == "" {
		return nil, errors.New("encryption secret is empty")
	}
	return &TenantEncrypter{secret: []byte(secret)}, nil
}

// Encrypt seals plaintext for tenantID and returns a base64 token.
func (e *TenantEncrypter) Encrypt(tenantID, plaintext string) (string, error) {
	aead, err := e.aead(tenantID)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plaintext)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	sealed := aead.Seal(nonce, nonce, []byte(plaintext), []byte(tenantID))
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens a token produced by Encrypt for the same tenant.
func (e *TenantEncrypter) Decrypt(tenantID, token string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", fmt.Errorf("%w: malformed token: %w", repository.ErrDecryptionFailure, err)
	}
	aead, err := e.aead(tenantID)
	if err != nil {
		return "", fmt.Errorf("%w: %w", repository.ErrDecryptionFailure, err)
	}
	if len(raw) < aead.NonceSize()+aead.Overhead() {
		return "", fmt.Errorf("%w: token too short", repository.ErrDecryptionFailure)
	}
	nonce, ciphertext := raw[:aead.NonceSize()], raw[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, []byte(tenantID))
	if err != nil {
		return "", fmt.Errorf("%w: %w", repository.ErrDecryptionFailure, err)
	}
	return string(plaintext), nil
}

func (e *TenantEncrypter) aead(tenantID string) (cipher.AEAD, error) {
	key := make([]byte, chacha20poly1305.KeySize)
	kdf := hkdf.New(sha256.New, e.secret, nil, []byte(keyInfoPrefix+tenantID))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("failed to derive tenant key: %w", err)
	}
	return chacha20poly1305.NewX(key)
}
