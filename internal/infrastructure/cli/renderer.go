package cli

import (
	"fmt"
	"io"

	"github.com/doeshing/serpkit-go/internal/services"
)

// RenderBatchSummary prints the per-keyword outcome of a collection
// run in a friendly, ASCII-only format.
func RenderBatchSummary(out io.Writer, batch services.BatchResult, outputPath string) {
	total := 0
	for _, res := range batch.Results {
		if res.Err != nil {
			fmt.Fprintf(out, "FAILED  %s: %v\n", res.Keyword, res.Err)
			continue
		}
		note := ""
		if !res.Result.RootSucceeded {
			note = " (root request failed)"
		} else if len(res.Result.Questions) == 0 {
			note = " (no PAA block)"
		}
		fmt.Fprintf(out, "OK      %s: %d questions, %d requests, %.1fs%s\n",
			res.Keyword,
			len(res.Result.Questions),
			res.Result.RequestsUsed,
			res.Result.Elapsed.Seconds(),
			note)
		total += len(res.Result.Questions)
	}

	fmt.Fprintf(out, "\n%d keywords processed, %d failed, %d questions collected\n",
		len(batch.Results), batch.Failed, total)
	if outputPath != "" {
		fmt.Fprintf(out, "Saved to %s\n", outputPath)
	}
}
