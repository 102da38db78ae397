package repository

import (
	"context"

	"github.com/user/website-crawl-service/internal/entity"
)

// CrawlStatusResponse is a provider's raw answer to a status poll.
// Nil fields were absent from the provider response.
type CrawlStatusResponse struct {
	Status  *string
	Total   *int
	Current *int
	Data    []entity.PageResult
}

// ProviderClient performs the network calls against a crawl provider.
// Failures are wrapped with ErrProviderError.
type ProviderClient interface {
	// SubmitCrawl starts an asynchronous crawl job and returns the provider's job id.
	SubmitCrawl(ctx context.Context, url string, opts *entity.CrawlOptions) (string, error)
	// CheckCrawlStatus polls the job identified by jobID.
	CheckCrawlStatus(ctx context.Context, jobID string) (*CrawlStatusResponse, error)
	// Scrape fetches a single URL synchronously.
	Scrape(ctx context.Context, url string, onlyMainContent bool) (*entity.ScrapeResult, error)
}

// WebsiteProvider builds clients for one crawl provider.
type WebsiteProvider interface {
	Name() string
	NewClient(auth entity.ProviderAuth) ProviderClient
}
