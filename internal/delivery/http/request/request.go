package request

import "github.com/user/website-crawl-service/internal/entity"

type SubmitCrawlRequest struct {
	Provider string               `json:"provider"`
	URL      string               `json:"url"`
	Options  *entity.CrawlOptions `json:"options"`
}

func (r SubmitCrawlRequest) ToEntity() *entity.CrawlRequest {
	return &entity.CrawlRequest{
		Provider: r.Provider,
		URL:      r.URL,
		Options:  r.Options,
	}
}

type ScrapeRequest struct {
	Provider        string `json:"provider"`
	URL             string `json:"url"`
	OnlyMainContent bool   `json:"only_main_content"`
}
