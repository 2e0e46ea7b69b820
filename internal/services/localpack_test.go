package services

import (
	"context"
	"errors"
	"testing"

	"github.com/doeshing/serpkit-go/internal/domain"
)

type stubSERPSource struct {
	pages map[string]domain.SERPPage
	fail  map[string]error
}

func (s *stubSERPSource) FetchSERP(ctx context.Context, req domain.SERPRequest) (domain.SERPPage, error) {
	if err, ok := s.fail[req.Keyword]; ok {
		return domain.SERPPage{}, err
	}
	return s.pages[req.Keyword], nil
}

func TestLocalPackCheckFindsTargetDomain(t *testing.T) {
	source := &stubSERPSource{pages: map[string]domain.SERPPage{
		"plumber austin": {
			Keyword: "plumber austin",
			LocalPack: []domain.LocalPackEntry{
				{RankGroup: 1, Title: "Competitor", Domain: "rival.com"},
				{RankGroup: 2, Title: "Us", Domain: "www.example.com", Rating: 4.8},
				{RankGroup: 3, Title: "Other", Domain: "other.com"},
			},
		},
	}}
	svc := &LocalPackService{Source: source}

	check := svc.Check(context.Background(), "plumber austin", "Example.com", domain.Locale{})
	if check.Err != nil {
		t.Fatalf("Check() error = %v", check.Err)
	}
	if !check.Found {
		t.Fatal("target domain not found in local pack")
	}
	if check.Position != 2 {
		t.Errorf("Position = %d, want 2", check.Position)
	}
	if check.Entry.Rating != 4.8 {
		t.Errorf("Entry.Rating = %v, want 4.8", check.Entry.Rating)
	}
	if len(check.Pack) != 3 {
		t.Errorf("Pack size = %d, want 3", len(check.Pack))
	}
}

func TestLocalPackCheckAbsentDomain(t *testing.T) {
	source := &stubSERPSource{pages: map[string]domain.SERPPage{
		"query": {LocalPack: []domain.LocalPackEntry{{Domain: "a.com"}}},
	}}
	svc := &LocalPackService{Source: source}

	check := svc.Check(context.Background(), "query", "missing.com", domain.Locale{})
	if check.Err != nil {
		t.Fatalf("Check() error = %v", check.Err)
	}
	if check.Found || check.Position != 0 {
		t.Errorf("Found=%v Position=%d, want absent", check.Found, check.Position)
	}
}

func TestLocalPackCheckAllIsolatesFailures(t *testing.T) {
	boom := errors.New("rate limited")
	source := &stubSERPSource{
		pages: map[string]domain.SERPPage{
			"ok": {LocalPack: []domain.LocalPackEntry{{Domain: "example.com"}}},
		},
		fail: map[string]error{"bad": boom},
	}
	svc := &LocalPackService{Source: source}

	checks := svc.CheckAll(context.Background(), []string{"ok", "bad"}, "example.com", domain.Locale{})
	if len(checks) != 2 {
		t.Fatalf("got %d checks, want 2", len(checks))
	}
	if !checks[0].Found {
		t.Error("first keyword should find the domain")
	}
	if !errors.Is(checks[1].Err, boom) {
		t.Errorf("second keyword error = %v, want %v", checks[1].Err, boom)
	}
}
