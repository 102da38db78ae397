package cached

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/user/website-crawl-service/internal/entity"
	"github.com/user/website-crawl-service/internal/repository"
	"github.com/user/website-crawl-service/pkg/metrics"
)

// CredentialRepo is a read-through cache in front of a CredentialRepository.
// Entries expire after ttl and are evicted whenever the binding is saved or deleted.
// Cache failures never fail a lookup; the store stays authoritative.
type CredentialRepo struct {
	next  repository.CredentialRepository
	cache repository.CredentialCache
	ttl   time.Duration
}

// NewCredentialRepo wraps next with cache.
func NewCredentialRepo(next repository.CredentialRepository, cache repository.CredentialCache, ttl time.Duration) *CredentialRepo {
	return &CredentialRepo{next: next, cache: cache, ttl: ttl}
}

func cacheKey(tenantID, category, provider string) string {
	return fmt.Sprintf("%s:%s:%s", tenantID, category, provider)
}

func (r *CredentialRepo) GetAuthCredentials(ctx context.Context, tenantID, category, provider string) (*entity.ProviderCredentials, error) {
	key := cacheKey(tenantID, category, provider)
	creds, ok, err := r.cache.Get(ctx, key)
	switch {
	case err != nil:
		metrics.CredentialCacheLookups.WithLabelValues("error").Inc()
		slog.Warn("Credential cache lookup failed", "tenant_id", tenantID, "provider", provider, "error", err)
	case ok:
		metrics.CredentialCacheLookups.WithLabelValues("hit").Inc()
		return creds, nil
	default:
		metrics.CredentialCacheLookups.WithLabelValues("miss").Inc()
	}

	creds, err = r.next.GetAuthCredentials(ctx, tenantID, category, provider)
	if err != nil {
		return nil, err
	}
	if err := r.cache.Set(ctx, key, creds, r.ttl); err != nil {
		slog.Warn("Failed to cache credentials", "tenant_id", tenantID, "provider", provider, "error", err)
	}
	return creds, nil
}

func (r *CredentialRepo) Save(ctx context.Context, creds *entity.ProviderCredentials) error {
	if err := r.next.Save(ctx, creds); err != nil {
		return err
	}
	r.evict(ctx, cacheKey(creds.TenantID, creds.Category, creds.Provider))
	return nil
}

func (r *CredentialRepo) Delete(ctx context.Context, tenantID, category, provider string) error {
	if err := r.next.Delete(ctx, tenantID, category, provider); err != nil {
		return err
	}
	r.evict(ctx, cacheKey(tenantID, category, provider))
	return nil
}

func (r *CredentialRepo) evict(ctx context.Context, key string) {
	if err := r.cache.Delete(ctx, key); err != nil {
		slog.Error("Failed to evict cached credentials", "key", key, "error", err)
	}
}
