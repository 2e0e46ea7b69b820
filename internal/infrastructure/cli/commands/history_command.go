package commands

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/doeshing/serpkit-go/internal/app"
	"github.com/doeshing/serpkit-go/internal/domain"
)

const msgNoHistoryRecorded = "No history recorded yet."

// NewHistoryCommand creates the history command with all subcommands
func NewHistoryCommand(container *app.Container) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the collection-run log",
	}

	historyCmd.AddCommand(
		newHistoryListCommand(container),
		newHistorySearchCommand(container),
		newHistoryClearCommand(container),
		newHistoryExportCommand(container),
		newHistoryStatsCommand(container),
		newHistoryRetainCommand(container),
	)

	return historyCmd
}

// newHistoryListCommand creates the 'history list' subcommand
func newHistoryListCommand(container *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listHistoryEntries(cmd.OutOrStdout(), container, limit, "")
		},
	}

	cmd.Flags().IntVar(&limit, "limit", DefaultHistoryLimit, "Max entries to show")
	return cmd
}

// newHistorySearchCommand creates the 'history search' subcommand
func newHistorySearchCommand(container *app.Container) *cobra.Command {
	var query string
	var searchLimit int

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search runs by keyword",
		RunE: func(cmd *cobra.Command, args []string) error {
			if query == "" {
				return fmt.Errorf("--query required")
			}
			return listHistoryEntries(cmd.OutOrStdout(), container, searchLimit, query)
		},
	}

	cmd.Flags().StringVar(&query, "query", "", "Search keyword")
	cmd.Flags().IntVar(&searchLimit, "limit", DefaultHistorySearchLimit, "Limit search results")
	return cmd
}

// newHistoryClearCommand creates the 'history clear' subcommand
func newHistoryClearCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the run log",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.HistoryStore == nil {
				return fmt.Errorf("history store unavailable")
			}
			if err := container.HistoryStore.Clear(); err != nil {
				return fmt.Errorf("failed to clear history: %w", err)
			}
			return nil
		},
	}
}

// newHistoryExportCommand creates the 'history export' subcommand
func newHistoryExportCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Export the run log to a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.HistoryStore == nil {
				return fmt.Errorf("history store unavailable")
			}
			if err := container.HistoryStore.ExportJSON(args[0]); err != nil {
				return fmt.Errorf("failed to export history to %s: %w", args[0], err)
			}
			return nil
		},
	}
}

// newHistoryStatsCommand creates the 'history stats' subcommand
func newHistoryStatsCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show success rate and API usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showHistoryStats(cmd.OutOrStdout(), container)
		},
	}
}

// newHistoryRetainCommand creates the 'history retain' subcommand
func newHistoryRetainCommand(container *app.Container) *cobra.Command {
	var retainDays int

	cmd := &cobra.Command{
		Use:   "retain",
		Short: "Prune runs older than N days and update retention policy",
		RunE: func(cmd *cobra.Command, args []string) error {
			if retainDays <= 0 {
				return fmt.Errorf("--days must be > 0")
			}
			return updateHistoryRetention(cmd.Context(), cmd.OutOrStdout(), container, retainDays)
		},
	}

	cmd.Flags().IntVar(&retainDays, "days", DefaultHistoryRetainDays, "Days to retain history")
	return cmd
}

// listHistoryEntries lists recent runs, optionally filtered by keyword
func listHistoryEntries(out io.Writer, container *app.Container, limit int, search string) error {
	store := container.HistoryStore
	if store == nil {
		return fmt.Errorf("history store unavailable")
	}

	records, err := store.Records(limit, search)
	if err != nil {
		return fmt.Errorf("failed to retrieve history records: %w", err)
	}
	if len(records) == 0 {
		fmt.Fprintln(out, msgNoHistoryRecorded)
		return nil
	}

	for _, rec := range records {
		status := "ok"
		if !rec.Success {
			status = "FAILED"
		}
		fmt.Fprintf(out, "%s | %-8s | %-30s | %s/%d | %d req | %d results | %s\n",
			rec.Timestamp.Format(TimestampFormat),
			rec.Command,
			rec.RootKeyword,
			rec.LanguageCode,
			rec.LocationCode,
			rec.RequestsUsed,
			rec.ResultCount,
			status)
	}
	return nil
}

// showHistoryStats displays success rate and API usage
func showHistoryStats(out io.Writer, container *app.Container) error {
	store := container.HistoryStore
	if store == nil {
		return fmt.Errorf("history store unavailable")
	}

	records, err := store.Records(MaxHistoryAnalysisRecords, "")
	if err != nil {
		return fmt.Errorf("failed to retrieve history for analysis: %w", err)
	}
	if len(records) == 0 {
		fmt.Fprintln(out, msgNoHistoryRecorded)
		return nil
	}

	stats := analyzeRunRecords(records)
	fmt.Fprintf(out, "Runs analyzed: %d\nSuccessful: %d (%.1f%%)\nAPI requests spent: %d\nQuestions collected: %d\n",
		len(records),
		stats.successful,
		float64(stats.successful)/float64(len(records))*100,
		stats.requests,
		stats.results)

	fmt.Fprintln(out, "Top keywords:")
	for _, top := range stats.topKeywords(5) {
		fmt.Fprintf(out, "  %s (%d)\n", top.keyword, top.count)
	}
	return nil
}

// updateHistoryRetention prunes old runs and updates retention policy
func updateHistoryRetention(ctx context.Context, out io.Writer, container *app.Container, days int) error {
	store := container.HistoryStore
	if store == nil {
		return fmt.Errorf("history store unavailable")
	}

	if err := store.PruneOlderThan(days); err != nil {
		return fmt.Errorf("failed to prune old history: %w", err)
	}

	cfg, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg.History.RetentionDays = days
	if err := container.ConfigLoader.Save(cfg); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Fprintf(out, "Retained last %d days of history.\n", days)
	return nil
}

// runStatistics holds analyzed run-log statistics
type runStatistics struct {
	successful  int
	requests    int
	results     int
	keywordFreq map[string]int
}

type keywordCount struct {
	keyword string
	count   int
}

// analyzeRunRecords computes aggregate statistics over run records
func analyzeRunRecords(records []domain.RunRecord) runStatistics {
	stats := runStatistics{keywordFreq: make(map[string]int)}
	for _, rec := range records {
		if rec.Success {
			stats.successful++
		}
		stats.requests += rec.RequestsUsed
		stats.results += rec.ResultCount
		stats.keywordFreq[rec.RootKeyword]++
	}
	return stats
}

func (s runStatistics) topKeywords(n int) []keywordCount {
	counts := make([]keywordCount, 0, len(s.keywordFreq))
	for keyword, count := range s.keywordFreq {
		counts = append(counts, keywordCount{keyword: keyword, count: count})
	}
	// Highest count first, name as tie-break.
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].keyword < counts[j].keyword
	})
	if len(counts) > n {
		counts = counts[:n]
	}
	return counts
}
