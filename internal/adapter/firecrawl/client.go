package firecrawl

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/user/website-crawl-service/internal/entity"
	"github.com/user/website-crawl-service/internal/repository"
	"github.com/user/website-crawl-service/pkg/metrics"
)

// ProviderName is the provider identifier callers use to select Firecrawl.
const ProviderName = "firecrawl"

// DefaultBaseURL is used when a binding does not carry its own base URL.
const DefaultBaseURL = "https://api.firecrawl.dev"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client talks to the Firecrawl v0 HTTP API with a single tenant's API key.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client bound to auth. An empty auth.BaseURL selects DefaultBaseURL.
func NewClient(auth entity.ProviderAuth, httpClient *http.Client) *Client {
	baseURL := strings.TrimRight(auth.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		apiKey:     auth.APIKey,
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

type crawlRequest struct {
	URL string `json:"url"`
	CrawlParams
}

type crawlResponse struct {
	JobID string `json:"jobId"`
}

type pageMetadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	SourceURL   string `json:"sourceURL"`
}

type document struct {
	Markdown *string       `json:"markdown"`
	Metadata *pageMetadata `json:"metadata"`
}

type statusResponse struct {
	Status  *string    `json:"status"`
	Total   *int       `json:"total"`
	Current *int       `json:"current"`
	Data    []document `json:"data"`
}

type scrapeRequest struct {
	URL string `json:"url"`
	ScrapeParams
}

type scrapeResponse struct {
	Success bool     `json:"success"`
	Data    document `json:"data"`
	Error   string   `json:"error"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// SubmitCrawl starts a crawl job and returns its job id.
func (c *Client) SubmitCrawl(ctx context.Context, url string, opts *entity.CrawlOptions) (string, error) {
	body := crawlRequest{URL: url, CrawlParams: BuildCrawlParams(opts)}
	var resp crawlResponse
	if err := c.do(ctx, "submit_crawl", http.MethodPost, "/v0/crawl", body, &resp); err != nil {
		return "", err
	}
	if resp.JobID == "" {
		return "", fmt.Errorf("%w: start crawl job: response has no job id", repository.ErrProviderError)
	}
	return resp.JobID, nil
}

// CheckCrawlStatus polls a crawl job. For completed jobs only pages carrying both
// metadata and markdown are returned; other states carry no data.
func (c *Client) CheckCrawlStatus(ctx context.Context, jobID string) (*repository.CrawlStatusResponse, error) {
	var resp statusResponse
	if err := c.do(ctx, "check_status", http.MethodGet, "/v0/crawl/status/"+jobID, nil, &resp); err != nil {
		return nil, err
	}

	out := &repository.CrawlStatusResponse{
		Status:  resp.Status,
		Total:   resp.Total,
		Current: resp.Current,
	}
	if resp.Status == nil || *resp.Status != entity.CrawlStatusCompleted {
		out.Data = []entity.PageResult{}
		return out, nil
	}

	pages := make([]entity.PageResult, 0, len(resp.Data))
	for _, doc := range resp.Data {
		if doc.Markdown == nil || doc.Metadata == nil {
			continue
		}
		pages = append(pages, entity.PageResult{Data: doc.toPageContent()})
	}
	if len(pages) == 0 && (resp.Total == nil || *resp.Total == 0) {
		return nil, fmt.Errorf("%w: check crawl status: no page found", repository.ErrProviderError)
	}
	if resp.Data != nil {
		out.Data = pages
	}
	return out, nil
}

// Scrape fetches a single URL synchronously.
func (c *Client) Scrape(ctx context.Context, url string, onlyMainContent bool) (*entity.ScrapeResult, error) {
	body := scrapeRequest{URL: url, ScrapeParams: BuildScrapeParams(onlyMainContent)}
	var resp scrapeResponse
	if err := c.do(ctx, "scrape", http.MethodPost, "/v0/scrape", body, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("%w: scrape url: %s", repository.ErrProviderError, resp.Error)
	}
	page := resp.Data.toPageContent()
	return &entity.ScrapeResult{
		Title:       page.Title,
		Description: page.Description,
		SourceURL:   page.SourceURL,
		Markdown:    page.Markdown,
	}, nil
}

func (d document) toPageContent() entity.PageContent {
	var pc entity.PageContent
	if d.Metadata != nil {
		pc.Title = d.Metadata.Title
		pc.Description = d.Metadata.Description
		pc.SourceURL = d.Metadata.SourceURL
	}
	if d.Markdown != nil {
		pc.Markdown = *d.Markdown
	}
	return pc
}

func (c *Client) do(ctx context.Context, operation, method, path string, in, out any) error {
	start := time.Now()
	err := c.roundTrip(ctx, method, path, in, out)
	metrics.ObserveProviderRequest(ProviderName, operation, time.Since(start), err)
	if err != nil {
		slog.Warn("Firecrawl request failed", "operation", operation, "path", path, "error", err)
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, method, path string, in, out any) error {
	var reqBody io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode %s request: %w", path, err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("%w: %w", repository.ErrProviderError, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", repository.ErrProviderError, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %w", repository.ErrProviderError, err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := "Unknown error occurred"
		var er errorResponse
		if json.Unmarshal(raw, &er) == nil && er.Error != "" {
			msg = er.Error
		}
		return fmt.Errorf("%w: %s %s: status code %d: %s", repository.ErrProviderError, method, path, resp.StatusCode, msg)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: decode response: %w", repository.ErrProviderError, err)
	}
	return nil
}
