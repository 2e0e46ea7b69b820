package services

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/serpkit-go/internal/domain"
)

func testRules() domain.BotlogRules {
	return domain.BotlogRules{
		UAGroups: []domain.BotlogUAGroup{
			{Name: "googlebot", Contains: []string{"Googlebot"}},
			{Name: "bingbot", Contains: []string{"bingbot"}},
		},
		URLGroups: []domain.BotlogURLGroup{
			{Name: "blog", Prefixes: []string{"/blog/"}},
			{Name: "product", Prefixes: []string{"/p/", "/products/"}},
		},
	}
}

func TestBotlogClassification(t *testing.T) {
	analyzer := &BotlogAnalyzer{Rules: testRules()}

	cases := []struct {
		ua      string
		url     string
		wantUA  string
		wantURL string
	}{
		{"Mozilla/5.0 (compatible; Googlebot/2.1)", "/blog/post-1", "googlebot", "blog"},
		{"mozilla/5.0 (compatible; GOOGLEBOT/2.1)", "/p/123", "googlebot", "product"},
		{"curl/8.0", "/about", UnmatchedGroup, UnmatchedGroup},
		{"bingbot/2.0", "/products/shoe", "bingbot", "product"},
	}
	for _, tc := range cases {
		if got := analyzer.ClassifyUA(tc.ua); got != tc.wantUA {
			t.Errorf("ClassifyUA(%q) = %q, want %q", tc.ua, got, tc.wantUA)
		}
		if got := analyzer.ClassifyURL(tc.url); got != tc.wantURL {
			t.Errorf("ClassifyURL(%q) = %q, want %q", tc.url, got, tc.wantURL)
		}
	}
}

func TestBotlogAnalyzeAndSummaries(t *testing.T) {
	analyzer := &BotlogAnalyzer{Rules: testRules()}
	records := [][]string{
		{"Googlebot/2.1", "/blog/a"},
		{"Googlebot/2.1", "/blog/b"},
		{"bingbot/2.0", "/p/1"},
		{"curl/8.0", "/p/1"},
		{"short"}, // too few columns, skipped
	}
	sitemap := map[string]bool{"/blog/a": true}

	rows := analyzer.Analyze(records, 0, 1, sitemap)
	if len(rows) != 4 {
		t.Fatalf("Analyze() returned %d rows, want 4", len(rows))
	}
	if !rows[0].InSitemap {
		t.Error("/blog/a should be marked in sitemap")
	}
	if rows[1].InSitemap {
		t.Error("/blog/b should not be marked in sitemap")
	}

	wantUA := []domain.BotlogSummary{
		{Group: "googlebot", Hits: 2},
		{Group: "bingbot", Hits: 1},
		{Group: UnmatchedGroup, Hits: 1},
	}
	if diff := cmp.Diff(wantUA, SummarizeUA(rows)); diff != "" {
		t.Errorf("UA summary mismatch (-want +got):\n%s", diff)
	}

	wantURL := []domain.BotlogSummary{
		{Group: "blog", Hits: 2},
		{Group: "product", Hits: 2},
	}
	if diff := cmp.Diff(wantURL, SummarizeURL(rows)); diff != "" {
		t.Errorf("URL summary mismatch (-want +got):\n%s", diff)
	}
}
