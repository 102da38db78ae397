package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/user/website-crawl-service/internal/entity"
)

const credentialKeyPrefix = "credentials:"

// CredentialCacheImpl provides a concrete implementation for the CredentialCache interface using Redis.
// Only the encrypted binding is stored.
type CredentialCacheImpl struct {
	client redis.Cmdable
}

// NewCredentialCache creates a new instance of CredentialCacheImpl.
func NewCredentialCache(client redis.Cmdable) *CredentialCacheImpl {
	return &CredentialCacheImpl{client: client}
}

func (r *CredentialCacheImpl) generateKey(key string) string {
	return fmt.Sprintf("%s%s", credentialKeyPrefix, key)
}

// Get returns the cached binding. A missing key is reported as (nil, false, nil).
func (r *CredentialCacheImpl) Get(ctx context.Context, key string) (*entity.ProviderCredentials, bool, error) {
	raw, err := r.client.Get(ctx, r.generateKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var creds entity.ProviderCredentials
	if err := jsoniter.Unmarshal(raw, &creds); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached credentials: %w", err)
	}
	return &creds, true, nil
}

// Set stores the binding with an expiry.
func (r *CredentialCacheImpl) Set(ctx context.Context, key string, creds *entity.ProviderCredentials, ttl time.Duration) error {
	raw, err := jsoniter.Marshal(creds)
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}
	return r.client.Set(ctx, r.generateKey(key), raw, ttl).Err()
}

// Delete evicts the binding.
func (r *CredentialCacheImpl) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.generateKey(key)).Err()
}
