package memory

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/user/website-crawl-service/internal/entity"
)

// CredentialCacheImpl is an in-process CredentialCache for single-instance deployments.
type CredentialCacheImpl struct {
	store *cache.Cache
}

// NewCredentialCache creates a cache whose expired items are purged every cleanupInterval.
func NewCredentialCache(defaultTTL, cleanupInterval time.Duration) *CredentialCacheImpl {
	return &CredentialCacheImpl{store: cache.New(defaultTTL, cleanupInterval)}
}

func (c *CredentialCacheImpl) Get(_ context.Context, key string) (*entity.ProviderCredentials, bool, error) {
	v, ok := c.store.Get(key)
	if !ok {
		return nil, false, nil
	}
	creds := v.(entity.ProviderCredentials)
	return &creds, true, nil
}

// Set stores a copy so later changes by the caller do not leak into the cache.
func (c *CredentialCacheImpl) Set(_ context.Context, key string, creds *entity.ProviderCredentials, ttl time.Duration) error {
	c.store.Set(key, *creds, ttl)
	return nil
}

func (c *CredentialCacheImpl) Delete(_ context.Context, key string) error {
	c.store.Delete(key)
	return nil
}
