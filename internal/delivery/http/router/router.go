package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/user/website-crawl-service/internal/delivery/http/handler"
	"github.com/user/website-crawl-service/internal/delivery/http/middleware"
)

func New(h *handler.Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging)
	r.Use(middleware.Metrics)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))

	// Prometheus metrics endpoint
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/api/health", h.HandleHealthCheck)

	r.Route("/api/website", func(r chi.Router) {
		r.Post("/crawl", h.HandleSubmitCrawl)
		r.Get("/crawl/status/{jobID}", h.HandleGetCrawlStatus)
		r.Get("/crawl/status/{jobID}/page", h.HandleGetCrawlPageData)
		r.Post("/scrape", h.HandleScrape)
	})

	return r
}
