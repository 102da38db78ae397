package repository

import "errors"

var (
	// ErrCredentialNotFound is returned when no binding exists for a tenant, category and provider.
	ErrCredentialNotFound = errors.New("credential binding not found")
	// ErrDecryptionFailure is returned when a stored secret cannot be recovered.
	ErrDecryptionFailure = errors.New("failed to decrypt stored secret")
	// ErrProviderError wraps any failure surfaced by a crawl provider call.
	ErrProviderError = errors.New("crawl provider request failed")
)
