package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsAndEnv(t *testing.T) {
	t.Setenv("CRAWLSVC_ENCRYPTION_SECRET", "s3cret")
	t.Setenv("CRAWLSVC_CACHE_DRIVER", "none")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "none", cfg.Cache.Driver)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "s3cret", cfg.Encryption.Secret)
	assert.Equal(t, "https://api.firecrawl.dev", cfg.Firecrawl.DefaultBaseURL)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "9090"
cache:
  driver: redis
  ttl: 30s
encryption:
  secret: from-file
firecrawl:
  timeout: 15s
`), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "redis", cfg.Cache.Driver)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.Equal(t, 15*time.Second, cfg.Firecrawl.Timeout)
	assert.Equal(t, "from-file", cfg.Encryption.Secret)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("CRAWLSVC_ENCRYPTION_SECRET", "")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("unknown cache driver", func(t *testing.T) {
		t.Setenv("CRAWLSVC_ENCRYPTION_SECRET", "s")
		t.Setenv("CRAWLSVC_CACHE_DRIVER", "memcached")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
