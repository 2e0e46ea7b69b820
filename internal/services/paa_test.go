package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/serpkit-go/internal/domain"
)

type stubSource struct {
	mu       sync.Mutex
	graph    map[string][]string
	failures map[string]error
	calls    []string
}

func (s *stubSource) FetchQuestions(_ context.Context, keyword string, _ domain.Locale) ([]string, error) {
	s.mu.Lock()
	s.calls = append(s.calls, keyword)
	s.mu.Unlock()
	if err, ok := s.failures[keyword]; ok {
		return nil, err
	}
	return s.graph[keyword], nil
}

type recordingSink struct {
	events []domain.StepEvent
}

func (r *recordingSink) OnStep(event domain.StepEvent) {
	r.events = append(r.events, event)
}

func diamondGraph() map[string][]string {
	return map[string][]string{
		"A": {"B", "C"},
		"B": {"D"},
		"C": {"D", "E"},
	}
}

func limits(depth, questions, requests int) domain.TraversalLimits {
	return domain.TraversalLimits{MaxDepth: depth, MaxQuestions: questions, MaxRequests: requests}
}

func TestExpandDiamondGraphVisitsSharedChildOnce(t *testing.T) {
	source := &stubSource{graph: diamondGraph()}
	expander := &PAAExpander{Source: source}

	result, err := expander.Expand(context.Background(), domain.ExpandRequest{
		RootKeyword: "A",
		Limits:      limits(3, 10, 10),
	})
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}

	// D is discovered by both B and C but enqueued only once; E sits at
	// depth 2, still within depth 3, so it gets its own call.
	wantCalls := []string{"A", "B", "C", "D", "E"}
	if diff := cmp.Diff(wantCalls, source.calls); diff != "" {
		t.Errorf("call order mismatch (-want +got):\n%s", diff)
	}
	wantQuestions := []string{"B", "C", "D", "E"}
	if diff := cmp.Diff(wantQuestions, result.Questions); diff != "" {
		t.Errorf("questions mismatch (-want +got):\n%s", diff)
	}
	if result.RequestsUsed != 5 {
		t.Errorf("RequestsUsed = %d, want 5", result.RequestsUsed)
	}
	if !result.RootSucceeded {
		t.Error("RootSucceeded = false, want true")
	}
}

func TestExpandStopsAtQuestionCap(t *testing.T) {
	source := &stubSource{graph: diamondGraph()}
	expander := &PAAExpander{Source: source}

	result, err := expander.Expand(context.Background(), domain.ExpandRequest{
		RootKeyword: "A",
		Limits:      limits(3, 2, 10),
	})
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}

	// B and C come from A's response in discovery order; the cap ends
	// the traversal before any child is expanded.
	if diff := cmp.Diff([]string{"B", "C"}, result.Questions); diff != "" {
		t.Errorf("questions mismatch (-want +got):\n%s", diff)
	}
	if len(source.calls) != 1 {
		t.Errorf("calls = %v, want only the root call", source.calls)
	}
}

func TestExpandStopsAtRequestBudget(t *testing.T) {
	source := &stubSource{graph: diamondGraph()}
	expander := &PAAExpander{Source: source}

	result, err := expander.Expand(context.Background(), domain.ExpandRequest{
		RootKeyword: "A",
		Limits:      limits(3, 10, 1),
	})
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}

	if diff := cmp.Diff([]string{"A"}, source.calls); diff != "" {
		t.Errorf("call order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"B", "C"}, result.Questions); diff != "" {
		t.Errorf("questions mismatch (-want +got):\n%s", diff)
	}
	if result.RequestsUsed != 1 {
		t.Errorf("RequestsUsed = %d, want 1", result.RequestsUsed)
	}
}

func TestExpandDepthOneOnlyCallsRoot(t *testing.T) {
	source := &stubSource{graph: map[string][]string{
		"A": {" B ", "", "C", "B"},
	}}
	expander := &PAAExpander{Source: source}

	result, err := expander.Expand(context.Background(), domain.ExpandRequest{
		RootKeyword: "A",
		Limits:      limits(1, 10, 10),
	})
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}

	if len(source.calls) != 1 {
		t.Fatalf("calls = %v, want exactly one", source.calls)
	}
	// Trimmed, deduplicated, empties dropped.
	if diff := cmp.Diff([]string{"B", "C"}, result.Questions); diff != "" {
		t.Errorf("questions mismatch (-want +got):\n%s", diff)
	}
}

func TestExpandFailedNodeDoesNotAbortTraversal(t *testing.T) {
	source := &stubSource{
		graph:    diamondGraph(),
		failures: map[string]error{"B": errors.New("rate limited")},
	}
	expander := &PAAExpander{Source: source}

	result, err := expander.Expand(context.Background(), domain.ExpandRequest{
		RootKeyword: "A",
		Limits:      limits(3, 10, 10),
	})
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}

	// B fails so it contributes no children; D and E are still reached
	// via C.
	wantCalls := []string{"A", "B", "C", "D", "E"}
	if diff := cmp.Diff(wantCalls, source.calls); diff != "" {
		t.Errorf("call order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"B", "C", "D", "E"}, result.Questions); diff != "" {
		t.Errorf("questions mismatch (-want +got):\n%s", diff)
	}

	var failed int
	for _, outcome := range result.Outcomes {
		if outcome.Failed() {
			failed++
			if outcome.Keyword != "B" {
				t.Errorf("unexpected failed keyword %q", outcome.Keyword)
			}
		}
	}
	if failed != 1 {
		t.Errorf("failed outcomes = %d, want 1", failed)
	}
}

func TestExpandAllCallsFailYieldsEmptyResultAndTerminates(t *testing.T) {
	boom := errors.New("provider down")
	source := &stubSource{
		graph:    diamondGraph(),
		failures: map[string]error{"A": boom},
	}
	expander := &PAAExpander{Source: source}

	result, err := expander.Expand(context.Background(), domain.ExpandRequest{
		RootKeyword: "A",
		Limits:      limits(3, 10, 10),
	})
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}

	if len(result.Questions) != 0 {
		t.Errorf("questions = %v, want none", result.Questions)
	}
	if result.RootSucceeded {
		t.Error("RootSucceeded = true, want false")
	}
	if len(result.Outcomes) != 1 || !result.Outcomes[0].Failed() {
		t.Fatalf("outcomes = %+v, want one failure", result.Outcomes)
	}
	if !errors.Is(result.Outcomes[0].Err, boom) {
		t.Errorf("outcome error = %v, want %v", result.Outcomes[0].Err, boom)
	}
}

func TestExpandIsDeterministic(t *testing.T) {
	run := func() domain.ExpandResult {
		source := &stubSource{graph: diamondGraph()}
		expander := &PAAExpander{Source: source}
		result, err := expander.Expand(context.Background(), domain.ExpandRequest{
			RootKeyword: "A",
			Limits:      limits(3, 10, 10),
		})
		if err != nil {
			t.Fatalf("Expand() error = %v", err)
		}
		return result
	}

	first := run()
	second := run()
	if diff := cmp.Diff(first.Questions, second.Questions); diff != "" {
		t.Errorf("questions not deterministic (-first +second):\n%s", diff)
	}
	if len(first.Outcomes) != len(second.Outcomes) {
		t.Fatalf("outcome counts differ: %d vs %d", len(first.Outcomes), len(second.Outcomes))
	}
	for i := range first.Outcomes {
		if first.Outcomes[i].Keyword != second.Outcomes[i].Keyword {
			t.Errorf("outcome %d keyword differs: %q vs %q", i, first.Outcomes[i].Keyword, second.Outcomes[i].Keyword)
		}
	}
}

func TestExpandEmitsPreAndPostEventsPerVisit(t *testing.T) {
	source := &stubSource{graph: diamondGraph()}
	sink := &recordingSink{}
	expander := &PAAExpander{Source: source, Progress: sink}

	if _, err := expander.Expand(context.Background(), domain.ExpandRequest{
		RootKeyword: "A",
		Limits:      limits(2, 10, 10),
	}); err != nil {
		t.Fatalf("Expand() error = %v", err)
	}

	// Depth 2 visits A plus its children B and C.
	var sending, done int
	for _, event := range sink.events {
		if event.Sending {
			sending++
		} else if event.Warning == "" {
			done++
		}
	}
	if sending != 3 || done != 3 {
		t.Errorf("events sending=%d done=%d, want 3/3", sending, done)
	}
}

func TestExpandCancellationReturnsPartialResult(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	source := &stubSource{graph: diamondGraph()}
	expander := &PAAExpander{Source: source}

	// Cancel after the root call completes.
	cancelAfterFirst := &cancellingSource{inner: source, cancel: cancel}
	expander.Source = cancelAfterFirst

	result, err := expander.Expand(ctx, domain.ExpandRequest{
		RootKeyword: "A",
		Limits:      limits(3, 10, 10),
	})
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if len(source.calls) != 1 {
		t.Errorf("calls = %v, want only the root before cancellation", source.calls)
	}
	if diff := cmp.Diff([]string{"B", "C"}, result.Questions); diff != "" {
		t.Errorf("partial questions mismatch (-want +got):\n%s", diff)
	}
}

type cancellingSource struct {
	inner  *stubSource
	cancel context.CancelFunc
}

func (c *cancellingSource) FetchQuestions(ctx context.Context, keyword string, locale domain.Locale) ([]string, error) {
	titles, err := c.inner.FetchQuestions(ctx, keyword, locale)
	c.cancel()
	return titles, err
}

func TestExpandRejectsInvalidLimits(t *testing.T) {
	expander := &PAAExpander{Source: &stubSource{}}

	cases := []struct {
		name   string
		req    domain.ExpandRequest
		wantIn string
	}{
		{"empty keyword", domain.ExpandRequest{RootKeyword: "  ", Limits: limits(1, 1, 1)}, "keyword"},
		{"zero depth", domain.ExpandRequest{RootKeyword: "a", Limits: limits(0, 1, 1)}, "depth"},
		{"zero questions", domain.ExpandRequest{RootKeyword: "a", Limits: limits(1, 0, 1)}, "questions"},
		{"zero requests", domain.ExpandRequest{RootKeyword: "a", Limits: limits(1, 1, 0)}, "requests"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := expander.Expand(context.Background(), tc.req)
			var cfgErr *domain.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("error = %v, want ConfigError", err)
			}
			if cfgErr.Field != tc.wantIn {
				t.Errorf("ConfigError field = %q, want %q", cfgErr.Field, tc.wantIn)
			}
		})
	}
}

func TestExpandNeverExceedsBudgetsUnderAdversarialResponses(t *testing.T) {
	// A provider that keeps inventing fresh questions at every node.
	source := &generatorSource{}
	expander := &PAAExpander{Source: source}

	result, err := expander.Expand(context.Background(), domain.ExpandRequest{
		RootKeyword: "seed",
		Limits:      limits(5, 7, 6),
	})
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if len(result.Questions) > 7 {
		t.Errorf("|questions| = %d, exceeds cap 7", len(result.Questions))
	}
	if result.RequestsUsed > 6 {
		t.Errorf("RequestsUsed = %d, exceeds cap 6", result.RequestsUsed)
	}
}

type generatorSource struct {
	counter int
}

func (g *generatorSource) FetchQuestions(context.Context, string, domain.Locale) ([]string, error) {
	out := make([]string, 3)
	for i := range out {
		g.counter++
		out[i] = "generated question " + string(rune('a'+g.counter%26)) + string(rune('a'+(g.counter/26)%26))
	}
	return out, nil
}
