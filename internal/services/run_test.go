package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/serpkit-go/internal/domain"
)

type stubExpander struct {
	mu      sync.Mutex
	calls   []string
	results map[string]domain.ExpandResult
	fail    map[string]error
}

func (s *stubExpander) Expand(ctx context.Context, req domain.ExpandRequest) (domain.ExpandResult, error) {
	s.mu.Lock()
	s.calls = append(s.calls, req.RootKeyword)
	s.mu.Unlock()
	if err, ok := s.fail[req.RootKeyword]; ok {
		return domain.ExpandResult{}, err
	}
	if res, ok := s.results[req.RootKeyword]; ok {
		return res, nil
	}
	return domain.ExpandResult{RootKeyword: req.RootKeyword, RootSucceeded: true}, nil
}

func testLimits() domain.TraversalLimits {
	return domain.TraversalLimits{MaxDepth: 1, MaxQuestions: 10, MaxRequests: 10}
}

func TestRunnerPreservesInputOrder(t *testing.T) {
	expander := &stubExpander{
		results: map[string]domain.ExpandResult{
			"a": {RootKeyword: "a", Questions: []string{"q1"}, RootSucceeded: true},
			"b": {RootKeyword: "b", Questions: []string{"q2", "q3"}, RootSucceeded: true},
		},
	}
	runner := &Runner{Expander: expander, Concurrency: 4}

	batch, err := runner.Run(context.Background(), []string{"a", "b", "c"}, domain.Locale{}, testLimits())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	var order []string
	for _, res := range batch.Results {
		order = append(order, res.Keyword)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, order); diff != "" {
		t.Errorf("result order mismatch (-want +got):\n%s", diff)
	}
	if batch.Failed != 0 {
		t.Errorf("Failed = %d, want 0", batch.Failed)
	}
	if got := len(batch.Results[1].Result.Questions); got != 2 {
		t.Errorf("questions for b = %d, want 2", got)
	}
}

func TestRunnerIsolatesKeywordFailures(t *testing.T) {
	boom := errors.New("provider down")
	expander := &stubExpander{fail: map[string]error{"bad": boom}}
	runner := &Runner{Expander: expander, Concurrency: 1}

	batch, err := runner.Run(context.Background(), []string{"good", "bad", "also good"}, domain.Locale{}, testLimits())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if batch.Failed != 1 {
		t.Errorf("Failed = %d, want 1", batch.Failed)
	}
	if !errors.Is(batch.Results[1].Err, boom) {
		t.Errorf("bad keyword error = %v, want %v", batch.Results[1].Err, boom)
	}
	if batch.Results[0].Err != nil || batch.Results[2].Err != nil {
		t.Error("healthy keywords should not carry errors")
	}
	if len(expander.calls) != 3 {
		t.Errorf("expander called %d times, want 3", len(expander.calls))
	}
}

func TestRunnerCancelledContextSkipsQueuedKeywords(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	expander := &stubExpander{}
	runner := &Runner{Expander: expander, Concurrency: 1}

	batch, err := runner.Run(ctx, []string{"a", "b"}, domain.Locale{}, testLimits())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if batch.Failed != 2 {
		t.Errorf("Failed = %d, want 2", batch.Failed)
	}
	for _, res := range batch.Results {
		if !errors.Is(res.Err, context.Canceled) {
			t.Errorf("keyword %q error = %v, want context.Canceled", res.Keyword, res.Err)
		}
	}
	if len(expander.calls) != 0 {
		t.Errorf("expander called %d times on cancelled context, want 0", len(expander.calls))
	}
}

func TestRunnerMissingExpander(t *testing.T) {
	runner := &Runner{}
	if _, err := runner.Run(context.Background(), []string{"a"}, domain.Locale{}, testLimits()); err == nil {
		t.Error("expected error when Expander is nil")
	}
}
