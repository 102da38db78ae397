package repository

import (
	"context"
	"time"

	"github.com/user/website-crawl-service/internal/entity"
)

// CredentialRepository defines the contract for the per-tenant provider credential store.
type CredentialRepository interface {
	// GetAuthCredentials returns the enabled binding for (tenant, category, provider).
	// It returns ErrCredentialNotFound when none exists.
	GetAuthCredentials(ctx context.Context, tenantID, category, provider string) (*entity.ProviderCredentials, error)
	// Save creates or replaces the binding for (tenant, category, provider).
	Save(ctx context.Context, creds *entity.ProviderCredentials) error
	// Delete removes the binding for (tenant, category, provider).
	Delete(ctx context.Context, tenantID, category, provider string) error
}

// CredentialCache holds encrypted bindings for a bounded time.
type CredentialCache interface {
	// Get returns the cached binding and whether it was found.
	Get(ctx context.Context, key string) (*entity.ProviderCredentials, bool, error)
	Set(ctx context.Context, key string, creds *entity.ProviderCredentials, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// SecretCipher encrypts and decrypts secrets bound to a tenant.
type SecretCipher interface {
	Encrypt(tenantID, plaintext string) (string, error)
	// Decrypt returns ErrDecryptionFailure when the token cannot be recovered.
	Decrypt(tenantID, token string) (string, error)
}
