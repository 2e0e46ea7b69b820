package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/doeshing/serpkit-go/internal/domain"
	"github.com/doeshing/serpkit-go/internal/ports"
)

// TopNewsService extracts the top_stories block for a keyword.
type TopNewsService struct {
	Source ports.SERPSource
	Logger ports.Logger
}

// Fetch returns the top stories for one keyword, in page order. A page
// without a top_stories block yields an empty slice, not an error.
func (s *TopNewsService) Fetch(ctx context.Context, keyword string, locale domain.Locale) ([]domain.TopStory, error) {
	if s.Source == nil {
		return nil, errors.New("services.TopNewsService: Source not set")
	}
	page, err := s.Source.FetchSERP(ctx, domain.SERPRequest{Keyword: keyword, Locale: locale})
	if err != nil {
		return nil, fmt.Errorf("fetch top stories for %q: %w", keyword, err)
	}
	if s.Logger != nil {
		s.Logger.Debug("top stories fetched", map[string]interface{}{
			"keyword": keyword,
			"stories": len(page.TopStories),
		})
	}
	return page.TopStories, nil
}
