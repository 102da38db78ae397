package entity

import "time"

// CategoryWebsite is the credential category used for website crawl providers.
const CategoryWebsite = "website"

// CredentialConfig is the stored provider configuration. APIKey is ciphertext.
type CredentialConfig struct {
	APIKey  string `json:"api_key"`
	BaseURL string `json:"base_url,omitempty"`
}

// ProviderCredentials mirrors the `data_source_api_key_auth_bindings` PostgreSQL table.
type ProviderCredentials struct {
	ID        int64            `json:"id"`
	TenantID  string           `json:"tenant_id"`
	Category  string           `json:"category"`
	Provider  string           `json:"provider"`
	Config    CredentialConfig `json:"config"`
	Disabled  bool             `json:"disabled"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// ProviderAuth is what a provider client needs once the API key has been decrypted.
type ProviderAuth struct {
	APIKey  string
	BaseURL string
}
