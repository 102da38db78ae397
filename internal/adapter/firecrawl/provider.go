package firecrawl

import (
	"net/http"
	"time"

	"github.com/user/website-crawl-service/internal/entity"
	"github.com/user/website-crawl-service/internal/repository"
)

// Provider creates Firecrawl clients that share one HTTP client.
type Provider struct {
	httpClient     *http.Client
	defaultBaseURL string
}

// NewProvider creates the Firecrawl provider. defaultBaseURL is used for bindings
// without a base URL of their own; an empty value falls back to DefaultBaseURL.
func NewProvider(timeout time.Duration, defaultBaseURL string) *Provider {
	return &Provider{
		httpClient:     &http.Client{Timeout: timeout},
		defaultBaseURL: defaultBaseURL,
	}
}

func (p *Provider) Name() string { return ProviderName }

func (p *Provider) NewClient(auth entity.ProviderAuth) repository.ProviderClient {
	if auth.BaseURL == "" {
		auth.BaseURL = p.defaultBaseURL
	}
	return NewClient(auth, p.httpClient)
}
