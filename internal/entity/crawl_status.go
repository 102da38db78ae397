package entity

// Crawl job states reported by a provider. The adapter observes them, it never drives them.
const (
	CrawlStatusActive    = "active"
	CrawlStatusCompleted = "completed"
	CrawlStatusFailed    = "failed"
)

// CrawlJobHandle is returned right after a crawl job has been submitted.
type CrawlJobHandle struct {
	Status string `json:"status"`
	JobID  string `json:"job_id"`
}

// CrawlStatusReport is the normalized view of a provider's crawl job status.
type CrawlStatusReport struct {
	Status  string       `json:"status"`
	JobID   string       `json:"job_id"`
	Total   int          `json:"total"`
	Current int          `json:"current"`
	Data    []PageResult `json:"data"`
	// Partial is set when the provider omitted one of status, total, current or data
	// and the report carries defaults for it.
	Partial bool `json:"partial,omitempty"`
}

// PageContent holds the provider fields for one crawled page.
type PageContent struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	SourceURL   string `json:"source_url"`
	Markdown    string `json:"markdown"`
}

// PageResult is one item of a crawl result set. Data.SourceURL is its lookup key.
type PageResult struct {
	Data PageContent `json:"data"`
}

// ScrapeResult is a single-page scrape as returned by the provider.
type ScrapeResult struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	SourceURL   string `json:"source_url"`
	Markdown    string `json:"markdown"`
}
