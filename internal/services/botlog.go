package services

import (
	"sort"
	"strings"

	"github.com/doeshing/serpkit-go/internal/domain"
)

// UnmatchedGroup labels rows no rule claims.
const UnmatchedGroup = "other"

// BotlogAnalyzer classifies crawler-log rows against configurable
// user-agent and URL rules.
type BotlogAnalyzer struct {
	Rules domain.BotlogRules
}

// ClassifyUA returns the first UA group whose substring matches,
// case-insensitively, or UnmatchedGroup.
func (a *BotlogAnalyzer) ClassifyUA(userAgent string) string {
	ua := strings.ToLower(userAgent)
	for _, group := range a.Rules.UAGroups {
		for _, needle := range group.Contains {
			if needle != "" && strings.Contains(ua, strings.ToLower(needle)) {
				return group.Name
			}
		}
	}
	return UnmatchedGroup
}

// ClassifyURL returns the first URL group with a matching path prefix,
// or UnmatchedGroup.
func (a *BotlogAnalyzer) ClassifyURL(path string) string {
	for _, group := range a.Rules.URLGroups {
		for _, prefix := range group.Prefixes {
			if prefix != "" && strings.HasPrefix(path, prefix) {
				return group.Name
			}
		}
	}
	return UnmatchedGroup
}

// Analyze classifies every record. uaCol and urlCol address the
// columns holding the user agent and the requested path; rows too
// short for either column are skipped. sitemapPages, when non-nil,
// marks rows whose path appears in the site's sitemap.
func (a *BotlogAnalyzer) Analyze(records [][]string, uaCol, urlCol int, sitemapPages map[string]bool) []domain.BotlogRow {
	rows := make([]domain.BotlogRow, 0, len(records))
	for _, record := range records {
		if uaCol >= len(record) || urlCol >= len(record) {
			continue
		}
		path := record[urlCol]
		row := domain.BotlogRow{
			Fields:   record,
			UAGroup:  a.ClassifyUA(record[uaCol]),
			URLGroup: a.ClassifyURL(path),
		}
		if sitemapPages != nil {
			row.InSitemap = sitemapPages[path]
		}
		rows = append(rows, row)
	}
	return rows
}

// SummarizeUA aggregates hits per UA group, sorted by hits descending
// then name for stable output.
func SummarizeUA(rows []domain.BotlogRow) []domain.BotlogSummary {
	return summarize(rows, func(r domain.BotlogRow) string { return r.UAGroup })
}

// SummarizeURL aggregates hits per URL group.
func SummarizeURL(rows []domain.BotlogRow) []domain.BotlogSummary {
	return summarize(rows, func(r domain.BotlogRow) string { return r.URLGroup })
}

func summarize(rows []domain.BotlogRow, key func(domain.BotlogRow) string) []domain.BotlogSummary {
	counts := make(map[string]int)
	for _, row := range rows {
		counts[key(row)]++
	}
	out := make([]domain.BotlogSummary, 0, len(counts))
	for group, hits := range counts {
		out = append(out, domain.BotlogSummary{Group: group, Hits: hits})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Hits != out[j].Hits {
			return out[i].Hits > out[j].Hits
		}
		return out[i].Group < out[j].Group
	})
	return out
}
