package encrypter

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/website-crawl-service/internal/repository"
)

func TestTenantEncrypter_RoundTrip(t *testing.T) {
	enc, err := New("master-secret")
	require.NoError(t, err)

	token, err := enc.Encrypt("tenant-1", "fc-123")
	require.NoError(t, err)
	assert.NotContains(t, token, "fc-123")

	plain, err := enc.Decrypt("tenant-1", token)
	require.NoError(t, err)
	assert.Equal(t, "fc-123", plain)

	again, err := enc.Encrypt("tenant-1", "fc-123")
	require.NoError(t, err)
	assert.NotEqual(t, token, again, "each token uses a fresh nonce")
}

func TestTenantEncrypter_DecryptFailures(t *testing.T) {
	enc, err := New("master-secret")
	require.NoError(t, err)
	token, err := enc.Encrypt("tenant-1", "fc-123")
	require.NoError(t, err)

	t.Run("other tenant", func(t *testing.T) {
		_, err := enc.Decrypt("tenant-2", token)
		assert.ErrorIs(t, err, repository.ErrDecryptionFailure)
	})

	t.Run("other secret", func(t *testing.T) {
		other, err := New("another-secret")
		require.NoError(t, err)
		_, err = other.Decrypt("tenant-1", token)
		assert.ErrorIs(t, err, repository.ErrDecryptionFailure)
	})

	t.Run("tampered", func(t *testing.T) {
		raw, err := base64.StdEncoding.DecodeString(token)
		require.NoError(t, err)
		raw[len(raw)-1] ^= 0xff
		_, err = enc.Decrypt("tenant-1", base64.StdEncoding.EncodeToString(raw))
		assert.ErrorIs(t, err, repository.ErrDecryptionFailure)
	})

	t.Run("not base64", func(t *testing.T) {
		_, err := enc.Decrypt("tenant-1", "%%%")
		assert.ErrorIs(t, err, repository.ErrDecryptionFailure)
	})

	t.Run("too short", func(t *testing.T) {
		_, err := enc.Decrypt("tenant-1", base64.StdEncoding.EncodeToString([]byte("short")))
		assert.ErrorIs(t, err, repository.ErrDecryptionFailure)
	})
}

func TestNew_EmptySecret(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)
}
