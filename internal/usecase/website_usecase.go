package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/user/website-crawl-service/internal/entity"
	"github.com/user/website-crawl-service/internal/repository"
)

var (
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrUnsupportedProvider = errors.New("unsupported website provider")
	ErrCrawlNotComplete    = errors.New("crawl job is not completed")
)

// WebsiteService forwards website crawl requests to a tenant's configured crawl provider.
// Every call resolves and decrypts the tenant's credentials again.
type WebsiteService interface {
	ValidateCrawlRequest(req *entity.CrawlRequest) error
	SubmitCrawl(ctx context.Context, tenantID string, req *entity.CrawlRequest) (*entity.CrawlJobHandle, error)
	GetCrawlStatus(ctx context.Context, tenantID, jobID, provider string) (*entity.CrawlStatusReport, error)
	GetCrawlPageData(ctx context.Context, tenantID, jobID, provider, url string) (*entity.PageResult, error)
	ScrapeURL(ctx context.Context, tenantID, provider, url string, onlyMainContent bool) (*entity.ScrapeResult, error)
}

type websiteUseCase struct {
	credentialRepo repository.CredentialRepository
	cipher         repository.SecretCipher
	providers      map[string]repository.WebsiteProvider
}

// NewWebsiteService creates a new WebsiteService with the given providers registered by name.
func NewWebsiteService(
	credentialRepo repository.CredentialRepository,
	cipher repository.SecretCipher,
	providers ...repository.WebsiteProvider,
) WebsiteService {
	registry := make(map[string]repository.WebsiteProvider, len(providers))
	for _, p := range providers {
		registry[p.Name()] = p
	}
	return &websiteUseCase{
		credentialRepo: credentialRepo,
		cipher:         cipher,
		providers:      registry,
	}
}

// ValidateCrawlRequest checks that url, options and options.limit are all present.
func (uc *websiteUseCase) ValidateCrawlRequest(req *entity.CrawlRequest) error {
	if req == nil || req.URL == "" {
		return fmt.Errorf("%w: url is required", ErrInvalidArgument)
	}
	if req.Options.IsEmpty() {
		return fmt.Errorf("%w: options is required", ErrInvalidArgument)
	}
	if req.Options.Limit == nil || *req.Options.Limit == 0 {
		return fmt.Errorf("%w: limit is required", ErrInvalidArgument)
	}
	return nil
}

// SubmitCrawl starts a crawl job and returns immediately with the provider's job id.
func (uc *websiteUseCase) SubmitCrawl(ctx context.Context, tenantID string, req *entity.CrawlRequest) (*entity.CrawlJobHandle, error) {
	client, err := uc.client(ctx, tenantID, req.Provider)
	if err != nil {
		return nil, err
	}

	jobID, err := client.SubmitCrawl(ctx, req.URL, req.Options)
	if err != nil {
		return nil, fmt.Errorf("failed to submit crawl for %s: %w", req.URL, err)
	}
	slog.Info("Crawl job submitted", "tenant_id", tenantID, "provider", req.Provider, "url", req.URL, "job_id", jobID)

	return &entity.CrawlJobHandle{
		Status: entity.CrawlStatusActive,
		JobID:  jobID,
	}, nil
}

// GetCrawlStatus polls a crawl job. Fields the provider leaves out are defaulted
// and the report is flagged as partial.
func (uc *websiteUseCase) GetCrawlStatus(ctx context.Context, tenantID, jobID, provider string) (*entity.CrawlStatusReport, error) {
	client, err := uc.client(ctx, tenantID, provider)
	if err != nil {
		return nil, err
	}

	result, err := client.CheckCrawlStatus(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to check crawl status of job %s: %w", jobID, err)
	}
	return normalizeStatus(jobID, result), nil
}

// GetCrawlPageData returns the result for url from a completed crawl job, or nil if
// the job has no page with that source url.
func (uc *websiteUseCase) GetCrawlPageData(ctx context.Context, tenantID, jobID, provider, url string) (*entity.PageResult, error) {
	report, err := uc.GetCrawlStatus(ctx, tenantID, jobID, provider)
	if err != nil {
		return nil, err
	}
	if report.Status != entity.CrawlStatusCompleted {
		return nil, fmt.Errorf("%w: job %s is %s", ErrCrawlNotComplete, jobID, report.Status)
	}
	for i := range report.Data {
		if report.Data[i].Data.SourceURL == url {
			return &report.Data[i], nil
		}
	}
	return nil, nil
}

// ScrapeURL scrapes a single page and returns the provider's result unchanged.
func (uc *websiteUseCase) ScrapeURL(ctx context.Context, tenantID, provider, url string, onlyMainContent bool) (*entity.ScrapeResult, error) {
	client, err := uc.client(ctx, tenantID, provider)
	if err != nil {
		return nil, err
	}

	result, err := client.Scrape(ctx, url, onlyMainContent)
	if err != nil {
		return nil, fmt.Errorf("failed to scrape %s: %w", url, err)
	}
	return result, nil
}

// client resolves the provider, then the tenant's binding, then the plaintext key.
// The provider is checked first so unknown names never reach the credential store.
func (uc *websiteUseCase) client(ctx context.Context, tenantID, provider string) (repository.ProviderClient, error) {
	p, ok := uc.providers[provider]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedProvider, provider)
	}

	creds, err := uc.credentialRepo.GetAuthCredentials(ctx, tenantID, entity.CategoryWebsite, provider)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s credentials: %w", provider, err)
	}

	apiKey, err := uc.cipher.Decrypt(tenantID, creds.Config.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt %s api key: %w", provider, err)
	}

	return p.NewClient(entity.ProviderAuth{
		APIKey:  apiKey,
		BaseURL: creds.Config.BaseURL,
	}), nil
}

func normalizeStatus(jobID string, result *repository.CrawlStatusResponse) *entity.CrawlStatusReport {
	report := &entity.CrawlStatusReport{
		Status: entity.CrawlStatusActive,
		JobID:  jobID,
		Data:   []entity.PageResult{},
	}
	if result.Status != nil {
		report.Status = *result.Status
	} else {
		report.Partial = true
	}
	if result.Total != nil {
		report.Total = *result.Total
	} else {
		report.Partial = true
	}
	if result.Current != nil {
		report.Current = *result.Current
	} else {
		report.Partial = true
	}
	if result.Data != nil {
		report.Data = result.Data
	} else {
		report.Partial = true
	}
	return report
}
