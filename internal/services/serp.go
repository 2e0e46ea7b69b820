package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/doeshing/serpkit-go/internal/domain"
	"github.com/doeshing/serpkit-go/internal/ports"
)

// SERPService fetches full result pages and renders them for saving.
type SERPService struct {
	Source ports.SERPSource
	Logger ports.Logger
}

// Fetch retrieves one result page.
func (s *SERPService) Fetch(ctx context.Context, req domain.SERPRequest) (domain.SERPPage, error) {
	if s.Source == nil {
		return domain.SERPPage{}, errors.New("services.SERPService: Source not set")
	}
	page, err := s.Source.FetchSERP(ctx, req)
	if err != nil {
		return domain.SERPPage{}, fmt.Errorf("fetch serp for %q: %w", req.Keyword, err)
	}
	if s.Logger != nil {
		s.Logger.Debug("serp fetched", map[string]interface{}{
			"keyword":     page.Keyword,
			"organic":     len(page.Organic),
			"local_pack":  len(page.LocalPack),
			"top_stories": len(page.TopStories),
		})
	}
	return page, nil
}

// FormatText renders the typed blocks of a page as a plain-text
// report, one section per block in page order.
func FormatText(page domain.SERPPage) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Keyword: %s\n", page.Keyword)
	if page.CheckURL != "" {
		fmt.Fprintf(&sb, "Check URL: %s\n", page.CheckURL)
	}

	if len(page.Organic) > 0 {
		sb.WriteString("\n[ORGANIC]\n")
		for _, r := range page.Organic {
			fmt.Fprintf(&sb, "%d. %s\n   %s\n", r.RankGroup, r.Title, r.URL)
			if r.Description != "" {
				fmt.Fprintf(&sb, "   %s\n", r.Description)
			}
		}
	}

	if len(page.LocalPack) > 0 {
		sb.WriteString("\n[LOCAL PACK]\n")
		for _, e := range page.LocalPack {
			fmt.Fprintf(&sb, "%d. %s", e.RankGroup, e.Title)
			if e.Domain != "" {
				fmt.Fprintf(&sb, " (%s)", e.Domain)
			}
			if e.Rating > 0 {
				fmt.Fprintf(&sb, " rating=%.1f", e.Rating)
			}
			if e.Phone != "" {
				fmt.Fprintf(&sb, " %s", e.Phone)
			}
			sb.WriteString("\n")
		}
	}

	if len(page.TopStories) > 0 {
		sb.WriteString("\n[TOP STORIES]\n")
		for _, st := range page.TopStories {
			fmt.Fprintf(&sb, "%d. %s - %s\n   %s\n", st.RankGroup, st.Title, st.Source, st.URL)
		}
	}

	return sb.String()
}
