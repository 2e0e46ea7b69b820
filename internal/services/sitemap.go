package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/doeshing/serpkit-go/internal/domain"
	"github.com/doeshing/serpkit-go/internal/infrastructure/webpage"
	"github.com/doeshing/serpkit-go/internal/ports"
)

// maxSitemapDocs caps how many sitemap documents one collection walks,
// guarding against index files that reference themselves.
const maxSitemapDocs = 50

// SitemapService discovers the URLs a site publishes via robots.txt
// and its sitemap tree.
type SitemapService struct {
	Fetcher ports.PageFetcher
	Logger  ports.Logger
}

// Collect resolves the sitemap set for a domain and gathers every page
// URL it lists. Sitemap index files are followed; a sitemap that fails
// to download or parse is skipped, not fatal.
func (s *SitemapService) Collect(ctx context.Context, rawDomain string) (domain.SitemapReport, error) {
	if s.Fetcher == nil {
		return domain.SitemapReport{}, errors.New("services.SitemapService: Fetcher not set")
	}
	base := webpage.NormalizeDomain(rawDomain)
	report := domain.SitemapReport{Domain: base}

	sitemaps := s.sitemapsFor(ctx, base)
	if len(sitemaps) == 0 {
		return report, fmt.Errorf("no sitemap found for %s", base)
	}

	seen := make(map[string]bool)
	pageSeen := make(map[string]bool)
	queue := append([]string(nil), sitemaps...)
	processed := 0

	for len(queue) > 0 && processed < maxSitemapDocs {
		if ctx.Err() != nil {
			break
		}
		url := queue[0]
		queue = queue[1:]
		if seen[url] {
			continue
		}
		seen[url] = true
		processed++

		body, _, err := s.Fetcher.Fetch(ctx, url)
		if err != nil {
			s.warn("sitemap download failed", url, err)
			continue
		}
		pages, nested, err := webpage.ParseSitemap(body)
		if err != nil {
			s.warn("sitemap parse failed", url, err)
			continue
		}
		report.SitemapURLs = append(report.SitemapURLs, url)
		for _, page := range pages {
			if !pageSeen[page] {
				pageSeen[page] = true
				report.PageURLs = append(report.PageURLs, page)
			}
		}
		queue = append(queue, nested...)
	}

	if len(report.SitemapURLs) == 0 {
		return report, fmt.Errorf("no sitemap could be fetched for %s", base)
	}
	return report, nil
}

// sitemapsFor reads robots.txt for sitemap directives, falling back to
// the conventional /sitemap.xml location.
func (s *SitemapService) sitemapsFor(ctx context.Context, base string) []string {
	body, _, err := s.Fetcher.Fetch(ctx, base+"/robots.txt")
	if err != nil {
		s.warn("robots.txt unavailable", base, err)
		return []string{base + "/sitemap.xml"}
	}
	if sitemaps := webpage.SitemapsFromRobots(string(body)); len(sitemaps) > 0 {
		return sitemaps
	}
	return []string{base + "/sitemap.xml"}
}

func (s *SitemapService) warn(msg, url string, err error) {
	if s.Logger != nil {
		s.Logger.Warn(msg, map[string]interface{}{"url": url, "error": err.Error()})
	}
}
