package entity

// CrawlOptions are the caller's provider-independent crawl settings.
// MaxDepth and Limit are pointers so that an absent value can be told apart from zero.
type CrawlOptions struct {
	CrawlSubPages   bool     `json:"crawl_sub_pages"`
	OnlyMainContent bool     `json:"only_main_content"`
	Includes        []string `json:"includes,omitempty"`
	Excludes        []string `json:"excludes,omitempty"`
	MaxDepth        *int     `json:"max_depth,omitempty"`
	Limit           *int     `json:"limit,omitempty"`
}

// IsEmpty reports whether no option has been set at all.
func (o *CrawlOptions) IsEmpty() bool {
	if o == nil {
		return true
	}
	return !o.CrawlSubPages && !o.OnlyMainContent &&
		len(o.Includes) == 0 && len(o.Excludes) == 0 &&
		o.MaxDepth == nil && o.Limit == nil
}

// MaxDepthOrDefault returns the requested crawl depth, 1 when absent.
func (o *CrawlOptions) MaxDepthOrDefault() int {
	if o == nil || o.MaxDepth == nil {
		return 1
	}
	return *o.MaxDepth
}

// LimitOrDefault returns the requested page limit, 1 when absent.
func (o *CrawlOptions) LimitOrDefault() int {
	if o == nil || o.Limit == nil {
		return 1
	}
	return *o.Limit
}

// CrawlRequest is a request to crawl a website through a named provider.
type CrawlRequest struct {
	Provider string        `json:"provider"`
	URL      string        `json:"url"`
	Options  *CrawlOptions `json:"options"`
}
