package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/user/website-crawl-service/internal/adapter/firecrawl"
	"github.com/user/website-crawl-service/internal/entity"
	"github.com/user/website-crawl-service/internal/usecase"
	"github.com/user/website-crawl-service/pkg/utils"
)

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl URL",
		Short: "Submit a crawl job and poll it until it finishes",
		Long: `Crawl submits a crawl job for URL using the tenant's provider binding, then
polls the job status every --interval until the job is completed or failed,
or until --timeout elapses. The final status report is printed as JSON.

Examples:
  crawlsvc crawl --tenant t-1 --limit 1 https://example.com
  crawlsvc crawl --tenant t-1 --sub-pages --limit 20 --max-depth 2 \
      --include 'blog/*' --exclude 'admin/*' https://example.com`,
		Args: cobra.ExactArgs(1),
		RunE: runCrawlCmd,
	}

	cmd.Flags().String("tenant", "", "Tenant id (required)")
	cmd.Flags().String("provider", firecrawl.ProviderName, "Crawl provider name")
	cmd.Flags().Bool("sub-pages", false, "Crawl sub pages")
	cmd.Flags().Bool("only-main-content", false, "Extract only the main content of each page")
	cmd.Flags().StringSlice("include", nil, "URL patterns to include")
	cmd.Flags().StringSlice("exclude", nil, "URL patterns to exclude")
	cmd.Flags().Int("max-depth", 1, "Maximum crawl depth")
	cmd.Flags().Int("limit", 1, "Maximum number of pages")
	cmd.Flags().Duration("interval", 2500*time.Millisecond, "Status poll interval")
	cmd.Flags().Duration("timeout", 10*time.Minute, "Give up polling after this long")

	return cmd
}

func crawlRequestFromFlags(cmd *cobra.Command, url string) (*entity.CrawlRequest, error) {
	flags := cmd.Flags()
	provider, err := flags.GetString("provider")
	if err != nil {
		return nil, err
	}
	opts := &entity.CrawlOptions{}
	if opts.CrawlSubPages, err = flags.GetBool("sub-pages"); err != nil {
		return nil, err
	}
	if opts.OnlyMainContent, err = flags.GetBool("only-main-content"); err != nil {
		return nil, err
	}
	if opts.Includes, err = flags.GetStringSlice("include"); err != nil {
		return nil, err
	}
	if opts.Excludes, err = flags.GetStringSlice("exclude"); err != nil {
		return nil, err
	}
	maxDepth, err := flags.GetInt("max-depth")
	if err != nil {
		return nil, err
	}
	limit, err := flags.GetInt("limit")
	if err != nil {
		return nil, err
	}
	opts.MaxDepth = &maxDepth
	opts.Limit = &limit

	return &entity.CrawlRequest{Provider: provider, URL: url, Options: opts}, nil
}

func runCrawlCmd(cmd *cobra.Command, args []string) error {
	tenantID, err := cmd.Flags().GetString("tenant")
	if err != nil {
		return err
	}
	if tenantID == "" {
		return errors.New("--tenant is required")
	}
	interval, err := cmd.Flags().GetDuration("interval")
	if err != nil {
		return err
	}
	timeout, err := cmd.Flags().GetDuration("timeout")
	if err != nil {
		return err
	}
	if !utils.IsHTTPURL(args[0]) {
		return fmt.Errorf("%w: %s", utils.ErrInvalidURL, args[0])
	}
	req, err := crawlRequestFromFlags(cmd, args[0])
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.websiteService.ValidateCrawlRequest(req); err != nil {
		return err
	}
	job, err := a.websiteService.SubmitCrawl(ctx, tenantID, req)
	if err != nil {
		return err
	}

	report, err := waitForCrawl(ctx, a.websiteService, tenantID, job.JobID, req.Provider, interval)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// waitForCrawl polls until the job reaches a terminal state or ctx is done.
func waitForCrawl(ctx context.Context, svc usecase.WebsiteService, tenantID, jobID, provider string, interval time.Duration) (*entity.CrawlStatusReport, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		report, err := svc.GetCrawlStatus(ctx, tenantID, jobID, provider)
		if err != nil {
			return nil, err
		}
		switch report.Status {
		case entity.CrawlStatusCompleted:
			return report, nil
		case entity.CrawlStatusFailed:
			return report, fmt.Errorf("crawl job %s failed", jobID)
		}
		slog.Info("Crawl in progress", "job_id", jobID, "current", report.Current, "total", report.Total)

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("stopped waiting for crawl job %s: %w", jobID, ctx.Err())
		case <-ticker.C:
		}
	}
}
