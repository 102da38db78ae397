package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHTTPURL(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"https://example.com", true},
		{"http://example.com/blog?page=2", true},
		{" https://example.com/ ", true},
		{"example.com", false},
		{"ftp://example.com", false},
		{"https://", false},
		{"/relative/path", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, IsHTTPURL(tt.raw))
		})
	}

	u, err := ParseHTTPURL("https://example.com/docs")
	require.NoError(t, err)
	assert.Equal(t, "example.com", u.Host)

	_, err = ParseHTTPURL("mailto:a@b.c")
	assert.ErrorIs(t, err, ErrInvalidURL)
}
