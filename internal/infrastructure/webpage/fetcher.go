// Package webpage fetches and parses plain web resources (robots.txt,
// sitemaps, HTML pages) for the sitemap and schema commands.
package webpage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/doeshing/serpkit-go/internal/ports"
)

// Some sites refuse requests without a browser user agent.
const browserUA = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) " +
	"Chrome/120.0.0.0 Safari/537.36"

// Fetcher retrieves raw page bodies over HTTP.
type Fetcher struct {
	httpClient *http.Client
}

// NewFetcher builds a fetcher; httpClient may be nil.
func NewFetcher(httpClient *http.Client) *Fetcher {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Fetcher{httpClient: httpClient}
}

// Fetch implements ports.PageFetcher. Non-2xx statuses are returned as
// errors alongside the status code so callers can report them.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("User-Agent", browserUA)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return body, resp.StatusCode, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}
	return body, resp.StatusCode, nil
}

var _ ports.PageFetcher = (*Fetcher)(nil)
