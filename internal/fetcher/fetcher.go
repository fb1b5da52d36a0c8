// Package fetcher retrieves display metadata (title, favicon) for a URL.
package fetcher

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/waygate-dev/waygate/internal/domain"
)

// Config controls fetch behavior.
type Config struct {
	UserAgent string
	Timeout   time.Duration
}

// Fetcher performs bounded HTTP fetches and extracts page metadata.
type Fetcher struct {
	cfg    Config
	client *http.Client
}

// New builds a Fetcher.
func New(cfg Config) *Fetcher {
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}
	return &Fetcher{
		cfg: cfg,
		// Client.Timeout bounds the whole exchange including body read.
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Fetch retrieves pageURL and extracts a title and favicon URL. It never
// fails: any error (network, timeout, non-2xx status, unparsable body)
// degrades to the fallback metadata {Title: pageURL, Favicon: ""}.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) domain.Metadata {
	fallback := domain.Metadata{Title: pageURL}

	base, err := url.Parse(pageURL)
	if err != nil {
		return fallback
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return fallback
	}
	if f.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", f.cfg.UserAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return fallback
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fallback
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return fallback
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = pageURL
	}

	return domain.Metadata{
		Title:   title,
		Favicon: faviconURL(doc, base),
	}
}

// faviconURL resolves the favicon for a fetched document: the rel="icon"
// link wins, then rel="shortcut icon", then /favicon.ico at the page origin.
// Relative hrefs are resolved against the fetched URL. The resulting URL is
// returned without checking that it actually exists.
func faviconURL(doc *goquery.Document, base *url.URL) string {
	for _, sel := range []string{`link[rel="icon"]`, `link[rel="shortcut icon"]`} {
		href, ok := doc.Find(sel).First().Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			continue
		}
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			continue
		}
		return base.ResolveReference(ref).String()
	}

	return base.ResolveReference(&url.URL{Path: "/favicon.ico"}).String()
}
