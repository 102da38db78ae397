package firecrawl

import (
	"strings"

	"github.com/user/website-crawl-service/internal/entity"
)

// Patterns is a comma-joined list of URL patterns. Firecrawl expects an empty
// JSON array when there are none and a single string otherwise.
type Patterns string

func (p Patterns) MarshalJSON() ([]byte, error) {
	if p == "" {
		return []byte("[]"), nil
	}
	return json.Marshal(string(p))
}

// PageOptions controls how each page is extracted.
type PageOptions struct {
	OnlyMainContent bool `json:"onlyMainContent"`
	IncludeHTML     bool `json:"includeHtml"`
}

// CrawlerOptions is the crawlerOptions object of a /v0/crawl request.
type CrawlerOptions struct {
	Includes           Patterns    `json:"includes"`
	Excludes           Patterns    `json:"excludes"`
	GenerateImgAltText bool        `json:"generateImgAltText"`
	MaxDepth           int         `json:"maxDepth"`
	Limit              int         `json:"limit"`
	ReturnOnlyUrls     bool        `json:"returnOnlyUrls"`
	PageOptions        PageOptions `json:"pageOptions"`
}

// CrawlParams are the provider parameters sent with a crawl job.
type CrawlParams struct {
	CrawlerOptions CrawlerOptions `json:"crawlerOptions"`
}

// ScrapeParams are the provider parameters sent with a single-page scrape.
type ScrapeParams struct {
	PageOptions PageOptions `json:"pageOptions"`
}

// BuildCrawlParams translates generic crawl options into Firecrawl parameters.
// Without sub-page crawling the job is pinned to the single requested page and
// caller-supplied filters, depth and limit are ignored.
func BuildCrawlParams(opts *entity.CrawlOptions) CrawlParams {
	if opts == nil {
		opts = &entity.CrawlOptions{}
	}
	co := CrawlerOptions{
		GenerateImgAltText: true,
		MaxDepth:           1,
		Limit:              1,
		ReturnOnlyUrls:     false,
		PageOptions: PageOptions{
			OnlyMainContent: opts.OnlyMainContent,
			IncludeHTML:     false,
		},
	}
	if opts.CrawlSubPages {
		co.Includes = Patterns(strings.Join(opts.Includes, ","))
		co.Excludes = Patterns(strings.Join(opts.Excludes, ","))
		co.MaxDepth = opts.MaxDepthOrDefault()
		co.Limit = opts.LimitOrDefault()
	}
	return CrawlParams{CrawlerOptions: co}
}

// BuildScrapeParams returns the page options for a single-page scrape. HTML is never requested.
func BuildScrapeParams(onlyMainContent bool) ScrapeParams {
	return ScrapeParams{PageOptions: PageOptions{OnlyMainContent: onlyMainContent, IncludeHTML: false}}
}
