package response

import "github.com/user/website-crawl-service/internal/entity"

// SubmitCrawlResponse is returned once a crawl job has been accepted by the provider.
type SubmitCrawlResponse struct {
	Status string `json:"status"`
	JobID  string `json:"job_id"`
}

// CrawlStatusResponse is a DTO for crawl status, mirroring entity.CrawlStatusReport
type CrawlStatusResponse struct {
	Status  string              `json:"status"` // "active", "completed", "failed"
	JobID   string              `json:"job_id"`
	Total   int                 `json:"total"`
	Current int                 `json:"current"`
	Data    []entity.PageResult `json:"data"`
	Partial bool                `json:"partial,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
