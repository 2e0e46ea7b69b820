package cli

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/doeshing/serpkit-go/internal/domain"
	"github.com/doeshing/serpkit-go/internal/ports"
)

// ConsoleProgress renders traversal step events to the terminal, one
// line per API call. It is safe for concurrent use when several
// keywords expand in parallel.
type ConsoleProgress struct {
	out io.Writer
	mu  sync.Mutex
}

// NewConsoleProgress writes to stderr so progress never pollutes piped
// output.
func NewConsoleProgress(out io.Writer) *ConsoleProgress {
	if out == nil {
		out = os.Stderr
	}
	return &ConsoleProgress{out: out}
}

// OnStep implements ports.ProgressSink.
func (c *ConsoleProgress) OnStep(event domain.StepEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case event.Warning != "":
		fmt.Fprintf(c.out, "WARNING: %s (%d questions collected)\n", event.Warning, event.TotalQuestions)
	case event.Sending:
		fmt.Fprintf(c.out, "Sending request for %q (depth=%d, request %d/%d)...\n",
			event.Keyword, event.Depth, event.RequestNum, event.MaxRequests)
	case event.Err != nil:
		fmt.Fprintf(c.out, "ERROR: %q failed after %.1fs: %v\n",
			event.Keyword, event.Elapsed.Seconds(), event.Err)
	default:
		fmt.Fprintf(c.out, "Done in %.1fs - %d PAA questions found (%d total)\n",
			event.Elapsed.Seconds(), event.QuestionsFound, event.TotalQuestions)
	}
}

var _ ports.ProgressSink = (*ConsoleProgress)(nil)
