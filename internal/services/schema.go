package services

import (
	"context"
	"errors"

	"github.com/doeshing/serpkit-go/internal/domain"
	"github.com/doeshing/serpkit-go/internal/infrastructure/webpage"
	"github.com/doeshing/serpkit-go/internal/ports"
)

// SchemaService detects schema.org structured data on pages.
type SchemaService struct {
	Fetcher ports.PageFetcher
	Logger  ports.Logger
}

// CheckURL fetches one page and extracts its schema.org types. Fetch
// and parse failures are recorded on the report, not returned, so
// batch callers keep going.
func (s *SchemaService) CheckURL(ctx context.Context, url string) domain.SchemaReport {
	report := domain.SchemaReport{URL: url}
	if s.Fetcher == nil {
		report.Err = errors.New("services.SchemaService: Fetcher not set")
		return report
	}

	body, status, err := s.Fetcher.Fetch(ctx, url)
	report.StatusCode = status
	if err != nil {
		report.Err = err
		return report
	}
	types, err := webpage.ExtractSchemaTypes(body)
	if err != nil {
		report.Err = err
		return report
	}
	report.Types = types
	return report
}

// CheckAll checks every URL sequentially.
func (s *SchemaService) CheckAll(ctx context.Context, urls []string) []domain.SchemaReport {
	reports := make([]domain.SchemaReport, 0, len(urls))
	for _, url := range urls {
		if ctx.Err() != nil {
			reports = append(reports, domain.SchemaReport{URL: url, Err: ctx.Err()})
			continue
		}
		report := s.CheckURL(ctx, url)
		if report.Err != nil && s.Logger != nil {
			s.Logger.Warn("schema check failed", map[string]interface{}{
				"url":   url,
				"error": report.Err.Error(),
			})
		}
		reports = append(reports, report)
	}
	return reports
}
