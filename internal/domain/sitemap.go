package domain

// SitemapReport lists the URLs discovered for one domain.
type SitemapReport struct {
	Domain      string
	SitemapURLs []string
	PageURLs    []string
}
