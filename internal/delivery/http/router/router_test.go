package router

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/website-crawl-service/internal/delivery/http/handler"
	"github.com/user/website-crawl-service/internal/entity"
	"github.com/user/website-crawl-service/internal/repository"
	"github.com/user/website-crawl-service/internal/usecase"
)

type stubService struct {
	tenantID string
	jobID    string
	report   *entity.CrawlStatusReport
	page     *entity.PageResult
	scrape   *entity.ScrapeResult
	err      error
}

func (s *stubService) ValidateCrawlRequest(req *entity.CrawlRequest) error {
	if req.URL == "" || req.Options.IsEmpty() || req.Options.Limit == nil || *req.Options.Limit == 0 {
		return fmt.Errorf("%w: limit is required", usecase.ErrInvalidArgument)
	}
	return nil
}

func (s *stubService) SubmitCrawl(_ context.Context, tenantID string, _ *entity.CrawlRequest) (*entity.CrawlJobHandle, error) {
	s.tenantID = tenantID
	if s.err != nil {
		return nil, s.err
	}
	return &entity.CrawlJobHandle{Status: entity.CrawlStatusActive, JobID: "job-1"}, nil
}

func (s *stubService) GetCrawlStatus(_ context.Context, tenantID, jobID, _ string) (*entity.CrawlStatusReport, error) {
	s.tenantID, s.jobID = tenantID, jobID
	return s.report, s.err
}

func (s *stubService) GetCrawlPageData(_ context.Context, tenantID, jobID, _, _ string) (*entity.PageResult, error) {
	s.tenantID, s.jobID = tenantID, jobID
	return s.page, s.err
}

func (s *stubService) ScrapeURL(_ context.Context, tenantID, _, _ string, _ bool) (*entity.ScrapeResult, error) {
	s.tenantID = tenantID
	return s.scrape, s.err
}

func serve(t *testing.T, svc usecase.WebsiteService, method, target, body string, tenant bool) *httptest.ResponseRecorder {
	t.Helper()
	h := New(handler.NewHandler(svc, nil))
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if tenant {
		req.Header.Set(handler.TenantHeader, "tenant-1")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestSubmitCrawl(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		svc := &stubService{}
		rec := serve(t, svc, http.MethodPost, "/api/website/crawl",
			`{"provider":"firecrawl","url":"https://x.test","options":{"limit":5}}`, true)

		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.JSONEq(t, `{"status":"active","job_id":"job-1"}`, rec.Body.String())
		assert.Equal(t, "tenant-1", svc.tenantID)
	})

	t.Run("missing tenant", func(t *testing.T) {
		rec := serve(t, &stubService{}, http.MethodPost, "/api/website/crawl",
			`{"provider":"firecrawl","url":"https://x.test","options":{"limit":5}}`, false)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing limit", func(t *testing.T) {
		rec := serve(t, &stubService{}, http.MethodPost, "/api/website/crawl",
			`{"provider":"firecrawl","url":"https://x.test","options":{"crawl_sub_pages":true}}`, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := serve(t, &stubService{}, http.MethodPost, "/api/website/crawl", `{`, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServiceErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("wrap: %w", usecase.ErrUnsupportedProvider), http.StatusBadRequest},
		{fmt.Errorf("wrap: %w", repository.ErrCredentialNotFound), http.StatusNotFound},
		{fmt.Errorf("wrap: %w", usecase.ErrCrawlNotComplete), http.StatusConflict},
		{fmt.Errorf("wrap: %w", repository.ErrProviderError), http.StatusBadGateway},
		{fmt.Errorf("wrap: %w", repository.ErrDecryptionFailure), http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := serve(t, &stubService{err: tt.err}, http.MethodGet, "/api/website/crawl/status/job-1?provider=firecrawl", "", true)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestGetCrawlStatus(t *testing.T) {
	svc := &stubService{report: &entity.CrawlStatusReport{
		Status: "completed", JobID: "job-9", Total: 1, Current: 1,
		Data: []entity.PageResult{{Data: entity.PageContent{SourceURL: "https://x.test"}}},
	}}
	rec := serve(t, svc, http.MethodGet, "/api/website/crawl/status/job-9?provider=firecrawl", "", true)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "job-9", svc.jobID)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "completed", body["status"])
	assert.NotContains(t, body, "partial")

	rec = serve(t, svc, http.MethodGet, "/api/website/crawl/status/job-9", "", true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetCrawlPageData(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := &stubService{page: &entity.PageResult{Data: entity.PageContent{SourceURL: "https://x.test"}}}
		rec := serve(t, svc, http.MethodGet, "/api/website/crawl/status/job-1/page?provider=firecrawl&url=https://x.test", "", true)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"source_url":"https://x.test"`)
	})

	t.Run("absent", func(t *testing.T) {
		rec := serve(t, &stubService{}, http.MethodGet, "/api/website/crawl/status/job-1/page?provider=firecrawl&url=https://y.test", "", true)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestScrape(t *testing.T) {
	svc := &stubService{scrape: &entity.ScrapeResult{Title: "X", SourceURL: "https://x.test"}}
	rec := serve(t, svc, http.MethodPost, "/api/website/scrape", `{"provider":"firecrawl","url":"https://x.test","only_main_content":true}`, true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"title":"X"`)

	rec = serve(t, svc, http.MethodPost, "/api/website/scrape", `{"provider":"firecrawl","url":"not a url"}`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthCheck(t *testing.T) {
	h := New(handler.NewHandler(&stubService{}, map[string]handler.HealthCheck{
		"postgres": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return errors.New("down") },
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"degraded","postgres":"healthy","redis":"unhealthy"}`, rec.Body.String())
}
