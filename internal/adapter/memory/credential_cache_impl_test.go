package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/website-crawl-service/internal/entity"
)

func TestCredentialCacheImpl(t *testing.T) {
	ctx := context.Background()
	c := NewCredentialCache(time.Minute, time.Minute)

	_, ok, err := c.Get(ctx, "t:website:firecrawl")
	require.NoError(t, err)
	assert.False(t, ok)

	creds := &entity.ProviderCredentials{TenantID: "t", Provider: "firecrawl", Config: entity.CredentialConfig{APIKey: "cipher"}}
	require.NoError(t, c.Set(ctx, "t:website:firecrawl", creds, time.Minute))
	creds.Config.APIKey = "changed"

	got, ok, err := c.Get(ctx, "t:website:firecrawl")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "cipher", got.Config.APIKey)

	require.NoError(t, c.Delete(ctx, "t:website:firecrawl"))
	_, ok, _ = c.Get(ctx, "t:website:firecrawl")
	assert.False(t, ok)
}

func TestCredentialCacheImpl_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewCredentialCache(time.Minute, time.Minute)

	require.NoError(t, c.Set(ctx, "k", &entity.ProviderCredentials{}, 20*time.Millisecond))
	time.Sleep(40 * time.Millisecond)

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}
