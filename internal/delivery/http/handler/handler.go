package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/user/website-crawl-service/internal/delivery/http/request"
	"github.com/user/website-crawl-service/internal/delivery/http/response"
	"github.com/user/website-crawl-service/internal/repository"
	"github.com/user/website-crawl-service/internal/usecase"
	"github.com/user/website-crawl-service/pkg/utils"
)

// TenantHeader carries the caller's tenant id.
const TenantHeader = "X-Tenant-ID"

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

type Handler struct {
	websiteService usecase.WebsiteService
	healthChecks   map[string]HealthCheck
}

func NewHandler(websiteService usecase.WebsiteService, healthChecks map[string]HealthCheck) *Handler {
	return &Handler{
		websiteService: websiteService,
		healthChecks:   healthChecks,
	}
}

func (h *Handler) HandleSubmitCrawl(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := h.tenantID(w, r)
	if !ok {
		return
	}

	var req request.SubmitCrawlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	crawlReq := req.ToEntity()
	if err := h.websiteService.ValidateCrawlRequest(crawlReq); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if !utils.IsHTTPURL(req.URL) {
		h.writeJSONError(w, "Invalid URL format", http.StatusBadRequest)
		return
	}

	job, err := h.websiteService.SubmitCrawl(r.Context(), tenantID, crawlReq)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusAccepted, response.SubmitCrawlResponse{
		Status: job.Status,
		JobID:  job.JobID,
	})
}

func (h *Handler) HandleGetCrawlStatus(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := h.tenantID(w, r)
	if !ok {
		return
	}

	jobID := chi.URLParam(r, "jobID")
	provider := r.URL.Query().Get("provider")
	if provider == "" {
		h.writeJSONError(w, "provider query parameter is required", http.StatusBadRequest)
		return
	}

	report, err := h.websiteService.GetCrawlStatus(r.Context(), tenantID, jobID, provider)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, response.CrawlStatusResponse{
		Status:  report.Status,
		JobID:   report.JobID,
		Total:   report.Total,
		Current: report.Current,
		Data:    report.Data,
		Partial: report.Partial,
	})
}

func (h *Handler) HandleGetCrawlPageData(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := h.tenantID(w, r)
	if !ok {
		return
	}

	jobID := chi.URLParam(r, "jobID")
	provider := r.URL.Query().Get("provider")
	pageURL := r.URL.Query().Get("url")
	if provider == "" || pageURL == "" {
		h.writeJSONError(w, "provider and url query parameters are required", http.StatusBadRequest)
		return
	}

	page, err := h.websiteService.GetCrawlPageData(r.Context(), tenantID, jobID, provider, pageURL)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if page == nil {
		h.writeJSONError(w, "No crawl result found for the given URL", http.StatusNotFound)
		return
	}

	h.writeJSON(w, http.StatusOK, page)
}

func (h *Handler) HandleScrape(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := h.tenantID(w, r)
	if !ok {
		return
	}

	var req request.ScrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if !utils.IsHTTPURL(req.URL) {
		h.writeJSONError(w, "Invalid URL format", http.StatusBadRequest)
		return
	}

	result, err := h.websiteService.ScrapeURL(r.Context(), tenantID, req.Provider, req.URL, req.OnlyMainContent)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

func (h *Handler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := map[string]string{"status": "ok"}
	code := http.StatusOK
	for name, check := range h.healthChecks {
		if err := check(ctx); err != nil {
			slog.Error("Health check failed", "dependency", name, "error", err)
			status[name] = "unhealthy"
			status["status"] = "degraded"
			code = http.StatusServiceUnavailable
			continue
		}
		status[name] = "healthy"
	}

	h.writeJSON(w, code, status)
}

func (h *Handler) tenantID(w http.ResponseWriter, r *http.Request) (string, bool) {
	tenantID := r.Header.Get(TenantHeader)
	if tenantID == "" {
		h.writeJSONError(w, TenantHeader+" header is required", http.StatusUnauthorized)
		return "", false
	}
	return tenantID, true
}

// writeServiceError maps service errors to HTTP status codes.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, usecase.ErrInvalidArgument), errors.Is(err, usecase.ErrUnsupportedProvider):
		h.writeJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, repository.ErrCredentialNotFound):
		h.writeJSONError(w, "Website provider credentials are not configured", http.StatusNotFound)
	case errors.Is(err, usecase.ErrCrawlNotComplete):
		h.writeJSONError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, repository.ErrProviderError):
		slog.Error("Crawl provider request failed", "path", r.URL.Path, "error", err)
		h.writeJSONError(w, err.Error(), http.StatusBadGateway)
	default:
		slog.Error("Website request failed", "path", r.URL.Path, "error", err)
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}

func (h *Handler) writeJSONError(w http.ResponseWriter, message string, status int) {
	h.writeJSON(w, status, response.ErrorResponse{Error: message})
}
