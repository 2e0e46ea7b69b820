package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type stubFetcher struct {
	pages map[string]string
	calls []string
}

func (f *stubFetcher) Fetch(ctx context.Context, url string) ([]byte, int, error) {
	f.calls = append(f.calls, url)
	body, ok := f.pages[url]
	if !ok {
		return nil, 404, errors.New("not found")
	}
	return []byte(body), 200, nil
}

func TestSitemapCollectViaRobots(t *testing.T) {
	fetcher := &stubFetcher{pages: map[string]string{
		"https://example.com/robots.txt": "User-agent: *\nSitemap: https://example.com/index.xml\n",
		"https://example.com/index.xml": `<sitemapindex>
			<sitemap><loc>https://example.com/a.xml</loc></sitemap>
			<sitemap><loc>https://example.com/b.xml</loc></sitemap>
		</sitemapindex>`,
		"https://example.com/a.xml": `<urlset>
			<url><loc>https://example.com/1</loc></url>
			<url><loc>https://example.com/2</loc></url>
		</urlset>`,
		"https://example.com/b.xml": `<urlset>
			<url><loc>https://example.com/2</loc></url>
			<url><loc>https://example.com/3</loc></url>
		</urlset>`,
	}}
	svc := &SitemapService{Fetcher: fetcher}

	report, err := svc.Collect(context.Background(), "example.com")
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if report.Domain != "https://example.com" {
		t.Errorf("Domain = %q", report.Domain)
	}
	wantPages := []string{"https://example.com/1", "https://example.com/2", "https://example.com/3"}
	if diff := cmp.Diff(wantPages, report.PageURLs); diff != "" {
		t.Errorf("pages mismatch (-want +got):\n%s", diff)
	}
	wantSitemaps := []string{
		"https://example.com/index.xml",
		"https://example.com/a.xml",
		"https://example.com/b.xml",
	}
	if diff := cmp.Diff(wantSitemaps, report.SitemapURLs); diff != "" {
		t.Errorf("sitemaps mismatch (-want +got):\n%s", diff)
	}
}

func TestSitemapCollectFallsBackToConventionalPath(t *testing.T) {
	fetcher := &stubFetcher{pages: map[string]string{
		"https://example.com/sitemap.xml": `<urlset><url><loc>https://example.com/only</loc></url></urlset>`,
	}}
	svc := &SitemapService{Fetcher: fetcher}

	report, err := svc.Collect(context.Background(), "https://example.com/")
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if diff := cmp.Diff([]string{"https://example.com/only"}, report.PageURLs); diff != "" {
		t.Errorf("pages mismatch (-want +got):\n%s", diff)
	}
}

func TestSitemapCollectSkipsBrokenSitemaps(t *testing.T) {
	fetcher := &stubFetcher{pages: map[string]string{
		"https://example.com/robots.txt": "Sitemap: https://example.com/broken.xml\nSitemap: https://example.com/good.xml\n",
		"https://example.com/good.xml":   `<urlset><url><loc>https://example.com/ok</loc></url></urlset>`,
	}}
	svc := &SitemapService{Fetcher: fetcher}

	report, err := svc.Collect(context.Background(), "example.com")
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if diff := cmp.Diff([]string{"https://example.com/ok"}, report.PageURLs); diff != "" {
		t.Errorf("pages mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"https://example.com/good.xml"}, report.SitemapURLs); diff != "" {
		t.Errorf("sitemaps mismatch (-want +got):\n%s", diff)
	}
}

func TestSitemapCollectNoSitemapAtAll(t *testing.T) {
	fetcher := &stubFetcher{pages: map[string]string{}}
	svc := &SitemapService{Fetcher: fetcher}

	report, err := svc.Collect(context.Background(), "example.com")
	if err == nil {
		t.Error("expected failure when no sitemap can be fetched")
	}
	if len(report.PageURLs) != 0 {
		t.Errorf("PageURLs = %v, want none", report.PageURLs)
	}
}
