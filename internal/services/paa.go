package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/doeshing/serpkit-go/internal/domain"
	"github.com/doeshing/serpkit-go/internal/ports"
)

// PAAExpander collects People Also Ask questions for one root keyword
// by breadth-first expansion of the question graph the provider
// surfaces. The frontier is strict FIFO, so every question reachable
// at depth d is attempted before any question at depth d+1 and a tight
// request budget is spent on the phrases closest to the root.
type PAAExpander struct {
	Source   ports.QuestionSource
	Progress ports.ProgressSink
	Logger   ports.Logger
}

type frontierEntry struct {
	keyword string
	depth   int
}

// Expand runs one bounded traversal. It returns the unique questions
// collected, sorted lexicographically, plus the per-node outcomes in
// visit order. Provider failures at individual nodes never abort the
// traversal; cancellation stops issuing new calls and returns whatever
// has accumulated.
func (e *PAAExpander) Expand(ctx context.Context, req domain.ExpandRequest) (domain.ExpandResult, error) {
	if e.Source == nil {
		return domain.ExpandResult{}, errors.New("services.PAAExpander: Source not set")
	}
	root := strings.TrimSpace(req.RootKeyword)
	if err := validateExpandRequest(root, req.Limits); err != nil {
		return domain.ExpandResult{}, err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	start := time.Now()
	limits := req.Limits

	visited := map[string]bool{root: true}
	questions := make(map[string]bool)
	frontier := []frontierEntry{{keyword: root, depth: 0}}
	outcomes := make([]domain.VisitOutcome, 0, limits.MaxRequests)
	requestsUsed := 0
	rootSucceeded := false

	for len(frontier) > 0 {
		entry := frontier[0]
		frontier = frontier[1:]

		if requestsUsed >= limits.MaxRequests {
			e.emit(domain.StepEvent{
				RootKeyword:    root,
				Keyword:        entry.keyword,
				Depth:          entry.depth,
				RequestNum:     requestsUsed,
				MaxRequests:    limits.MaxRequests,
				TotalQuestions: len(questions),
				Warning:        "request budget exhausted, frontier abandoned",
			})
			break
		}
		if len(questions) >= limits.MaxQuestions {
			break
		}
		if ctx.Err() != nil {
			// Clean stop: keep what we have, issue no further calls.
			e.emit(domain.StepEvent{
				RootKeyword:    root,
				Keyword:        entry.keyword,
				Depth:          entry.depth,
				RequestNum:     requestsUsed,
				MaxRequests:    limits.MaxRequests,
				TotalQuestions: len(questions),
				Warning:        "traversal cancelled",
			})
			break
		}

		e.emit(domain.StepEvent{
			RootKeyword:    root,
			Keyword:        entry.keyword,
			Depth:          entry.depth,
			RequestNum:     requestsUsed + 1,
			MaxRequests:    limits.MaxRequests,
			TotalQuestions: len(questions),
			Sending:        true,
		})

		callStart := time.Now()
		titles, err := e.Source.FetchQuestions(ctx, entry.keyword, req.Locale)
		elapsed := time.Since(callStart)
		requestsUsed++

		if err != nil {
			outcomes = append(outcomes, domain.VisitOutcome{
				Keyword: entry.keyword,
				Depth:   entry.depth,
				Elapsed: elapsed,
				Err:     err,
			})
			e.emit(domain.StepEvent{
				RootKeyword:    root,
				Keyword:        entry.keyword,
				Depth:          entry.depth,
				RequestNum:     requestsUsed,
				MaxRequests:    limits.MaxRequests,
				TotalQuestions: len(questions),
				Elapsed:        elapsed,
				Err:            err,
			})
			// Failed nodes contribute no children; move on.
			continue
		}

		if entry.depth == 0 {
			rootSucceeded = true
		}

		for _, title := range titles {
			normalized := strings.TrimSpace(title)
			if normalized == "" {
				continue
			}
			if !questions[normalized] {
				questions[normalized] = true
				if len(questions) >= limits.MaxQuestions {
					break
				}
			}
		}

		outcomes = append(outcomes, domain.VisitOutcome{
			Keyword:        entry.keyword,
			Depth:          entry.depth,
			QuestionsFound: len(titles),
			Elapsed:        elapsed,
		})
		e.emit(domain.StepEvent{
			RootKeyword:    root,
			Keyword:        entry.keyword,
			Depth:          entry.depth,
			RequestNum:     requestsUsed,
			MaxRequests:    limits.MaxRequests,
			TotalQuestions: len(questions),
			Elapsed:        elapsed,
			QuestionsFound: len(titles),
		})

		if len(questions) >= limits.MaxQuestions {
			break
		}

		// Mark children visited at discovery time, not dequeue time,
		// so a phrase surfaced by two parents is enqueued only once.
		if entry.depth+1 < limits.MaxDepth {
			for _, title := range titles {
				normalized := strings.TrimSpace(title)
				if normalized == "" || visited[normalized] {
					continue
				}
				visited[normalized] = true
				frontier = append(frontier, frontierEntry{keyword: normalized, depth: entry.depth + 1})
			}
		}
	}

	sorted := make([]string, 0, len(questions))
	for q := range questions {
		sorted = append(sorted, q)
	}
	sort.Strings(sorted)

	return domain.ExpandResult{
		RootKeyword:   root,
		Questions:     sorted,
		Outcomes:      outcomes,
		RequestsUsed:  requestsUsed,
		RootSucceeded: rootSucceeded,
		Elapsed:       time.Since(start),
	}, nil
}

func validateExpandRequest(root string, limits domain.TraversalLimits) error {
	if root == "" {
		return domain.NewConfigError("keyword", "must not be empty")
	}
	if limits.MaxDepth < 1 {
		return domain.NewConfigError("depth", "must be >= 1")
	}
	if limits.MaxQuestions < 1 {
		return domain.NewConfigError("questions", "must be >= 1")
	}
	if limits.MaxRequests < 1 {
		return domain.NewConfigError("requests", "must be >= 1")
	}
	return nil
}

func (e *PAAExpander) emit(event domain.StepEvent) {
	if e.Progress != nil {
		e.Progress.OnStep(event)
	}
	if e.Logger == nil {
		return
	}
	fields := map[string]interface{}{
		"root":      event.RootKeyword,
		"keyword":   event.Keyword,
		"depth":     event.Depth,
		"request":   event.RequestNum,
		"questions": event.TotalQuestions,
	}
	switch {
	case event.Err != nil:
		e.Logger.Error("paa step failed", event.Err, fields)
	case event.Warning != "":
		e.Logger.Warn(event.Warning, fields)
	default:
		e.Logger.Debug("paa step", fields)
	}
}

// Compile-time interface compliance check
var _ domain.Expander = (*PAAExpander)(nil)
