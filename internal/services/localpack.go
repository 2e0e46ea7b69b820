package services

import (
	"context"
	"errors"
	"strings"

	"github.com/doeshing/serpkit-go/internal/domain"
	"github.com/doeshing/serpkit-go/internal/ports"
)

// LocalPackCheck reports whether a target domain appears in the local
// pack for one keyword and at which position.
type LocalPackCheck struct {
	Keyword  string
	Found    bool
	Position int
	Entry    domain.LocalPackEntry
	// Pack holds the full block so callers can render competitors.
	Pack []domain.LocalPackEntry
	Err  error
}

// LocalPackService checks local-pack rankings keyword by keyword.
type LocalPackService struct {
	Source ports.SERPSource
	Logger ports.Logger
}

// Check fetches one result page and locates targetDomain in its local
// pack. An empty targetDomain reports the block without matching.
func (s *LocalPackService) Check(ctx context.Context, keyword, targetDomain string, locale domain.Locale) LocalPackCheck {
	check := LocalPackCheck{Keyword: keyword}
	if s.Source == nil {
		check.Err = errors.New("services.LocalPackService: Source not set")
		return check
	}

	page, err := s.Source.FetchSERP(ctx, domain.SERPRequest{Keyword: keyword, Locale: locale})
	if err != nil {
		check.Err = err
		return check
	}
	check.Pack = page.LocalPack

	target := strings.ToLower(strings.TrimSpace(targetDomain))
	if target == "" {
		return check
	}
	for i, entry := range page.LocalPack {
		if strings.Contains(strings.ToLower(entry.Domain), target) {
			check.Found = true
			check.Position = i + 1
			check.Entry = entry
			break
		}
	}
	return check
}

// CheckAll runs Check for every keyword sequentially, isolating
// failures per keyword.
func (s *LocalPackService) CheckAll(ctx context.Context, keywords []string, targetDomain string, locale domain.Locale) []LocalPackCheck {
	checks := make([]LocalPackCheck, 0, len(keywords))
	for _, keyword := range keywords {
		if ctx.Err() != nil {
			checks = append(checks, LocalPackCheck{Keyword: keyword, Err: ctx.Err()})
			continue
		}
		checks = append(checks, s.Check(ctx, keyword, targetDomain, locale))
	}
	return checks
}
