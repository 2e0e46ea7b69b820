package webpage

import (
	"encoding/xml"
	"strings"
)

// NormalizeDomain ensures a scheme and strips trailing slashes so
// "example.com/" and "https://example.com" address the same site.
func NormalizeDomain(domain string) string {
	d := strings.TrimSpace(domain)
	if strings.HasPrefix(d, "http://") || strings.HasPrefix(d, "https://") {
		return strings.TrimRight(d, "/")
	}
	return "https://" + strings.TrimRight(d, "/")
}

// SitemapsFromRobots extracts "Sitemap:" directives from a robots.txt
// body. An empty result means the caller should fall back to
// <domain>/sitemap.xml.
func SitemapsFromRobots(body string) []string {
	var sitemaps []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(strings.ToLower(line), "sitemap:") {
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) == 2 {
			if url := strings.TrimSpace(parts[1]); url != "" {
				sitemaps = append(sitemaps, url)
			}
		}
	}
	return sitemaps
}

type sitemapIndex struct {
	Sitemaps []sitemapLoc `xml:"sitemap"`
}

type urlSet struct {
	URLs []sitemapLoc `xml:"url"`
}

type sitemapLoc struct {
	Loc string `xml:"loc"`
}

// ParseSitemap decodes one sitemap document. Nested sitemap URLs (from
// a sitemapindex) are returned separately from page URLs so the caller
// controls recursion depth.
func ParseSitemap(body []byte) (pageURLs, nestedSitemaps []string, err error) {
	trimmed := strings.TrimSpace(string(body))
	if strings.Contains(trimmed, "<sitemapindex") {
		var index sitemapIndex
		if err := xml.Unmarshal(body, &index); err != nil {
			return nil, nil, err
		}
		for _, entry := range index.Sitemaps {
			if loc := strings.TrimSpace(entry.Loc); loc != "" {
				nestedSitemaps = append(nestedSitemaps, loc)
			}
		}
		return nil, nestedSitemaps, nil
	}

	var set urlSet
	if err := xml.Unmarshal(body, &set); err != nil {
		return nil, nil, err
	}
	for _, entry := range set.URLs {
		if loc := strings.TrimSpace(entry.Loc); loc != "" {
			pageURLs = append(pageURLs, loc)
		}
	}
	return pageURLs, nil, nil
}
