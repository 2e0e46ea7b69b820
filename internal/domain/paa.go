package domain

import (
	"context"
	"time"
)

// TraversalLimits bounds one People Also Ask expansion. All three
// limits are independent; whichever is exhausted first ends the run.
type TraversalLimits struct {
	// MaxDepth >= 1. Depth 1 expands only the root keyword; a node at
	// depth d enqueues children only while d+1 < MaxDepth.
	MaxDepth int
	// MaxQuestions >= 1 caps the unique questions collected per root.
	MaxQuestions int
	// MaxRequests >= 1 caps API calls per root, successful or not.
	MaxRequests int
}

// Locale is passed through unchanged to the provider on every call.
type Locale struct {
	LanguageCode string
	LocationCode int
}

// ExpandRequest describes one root-keyword traversal.
type ExpandRequest struct {
	RootKeyword string
	Locale      Locale
	Limits      TraversalLimits
}

// VisitOutcome records what happened at one dequeued frontier entry.
type VisitOutcome struct {
	Keyword        string
	Depth          int
	QuestionsFound int
	Elapsed        time.Duration
	Err            error
}

// Failed reports whether the visit's API call failed.
func (v VisitOutcome) Failed() bool { return v.Err != nil }

// ExpandResult is the final product of one traversal. Questions are
// unique, trimmed, and sorted lexicographically for determinism.
type ExpandResult struct {
	RootKeyword  string
	Questions    []string
	Outcomes     []VisitOutcome
	RequestsUsed int
	// RootSucceeded distinguishes "no PAA block" from "the root call
	// itself failed"; both yield an empty question list.
	RootSucceeded bool
	Elapsed       time.Duration
}

// StepEvent is emitted once before each API call (Sending=true) and
// once after it completes, for progress reporting only. Sinks must
// never influence traversal behavior.
type StepEvent struct {
	RootKeyword    string
	Keyword        string
	Depth          int
	RequestNum     int
	MaxRequests    int
	TotalQuestions int
	Sending        bool
	// Completion-only fields.
	Elapsed        time.Duration
	QuestionsFound int
	Err            error
	Warning        string
}

// Expander is the use-case boundary for the PAA collection engine.
type Expander interface {
	Expand(ctx context.Context, req ExpandRequest) (ExpandResult, error)
}
