package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/doeshing/serpkit-go/internal/domain"
	"github.com/doeshing/serpkit-go/internal/ports"
)

// LocationsService serves the provider location catalog, caching it
// locally so repeated lookups do not burn API calls.
type LocationsService struct {
	Catalog ports.LocationCatalog
	Cache   ports.CatalogCache
	Logger  ports.Logger
}

// Fetch returns the catalog, preferring a fresh cache unless refresh
// is set. fromCache reports where the data came from.
func (s *LocationsService) Fetch(ctx context.Context, refresh bool) (locations []domain.Location, fromCache bool, err error) {
	if s.Catalog == nil {
		return nil, false, errors.New("services.LocationsService: Catalog not set")
	}

	if !refresh && s.Cache != nil {
		cached, ok, cacheErr := s.Cache.Get()
		if cacheErr != nil && s.Logger != nil {
			s.Logger.Warn("location cache read failed", map[string]interface{}{"error": cacheErr.Error()})
		}
		if ok {
			return cached, true, nil
		}
	}

	locations, err = s.Catalog.FetchLocations(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("fetch location catalog: %w", err)
	}
	if s.Cache != nil {
		if cacheErr := s.Cache.Set(locations); cacheErr != nil && s.Logger != nil {
			s.Logger.Warn("location cache write failed", map[string]interface{}{"error": cacheErr.Error()})
		}
	}
	return locations, false, nil
}

// Resolve turns a user-supplied location into a location code. A
// numeric-looking id is taken as-is elsewhere; this resolves names.
// Matching is case-insensitive on the catalog name; an exact match
// wins over the first substring match.
func (s *LocationsService) Resolve(ctx context.Context, name string) (domain.Location, error) {
	locations, _, err := s.Fetch(ctx, false)
	if err != nil {
		return domain.Location{}, err
	}
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return domain.Location{}, domain.NewConfigError("location", "must not be empty")
	}

	var partial *domain.Location
	for i, loc := range locations {
		candidate := strings.ToLower(loc.Name)
		if candidate == needle {
			return loc, nil
		}
		if partial == nil && strings.Contains(candidate, needle) {
			partial = &locations[i]
		}
	}
	if partial != nil {
		return *partial, nil
	}
	return domain.Location{}, domain.NewConfigError("location", fmt.Sprintf("no location matches %q", name))
}

// Search filters the catalog by substring and returns matches sorted
// by name for stable output.
func (s *LocationsService) Search(ctx context.Context, query string) ([]domain.Location, error) {
	locations, _, err := s.Fetch(ctx, false)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(strings.TrimSpace(query))
	var matches []domain.Location
	for _, loc := range locations {
		if needle == "" || strings.Contains(strings.ToLower(loc.Name), needle) {
			matches = append(matches, loc)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Name < matches[j].Name })
	return matches, nil
}
