package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/doeshing/serpkit-go/internal/app"
	"github.com/doeshing/serpkit-go/internal/domain"
	"github.com/doeshing/serpkit-go/internal/infrastructure/cli/helpers"
	"github.com/doeshing/serpkit-go/internal/infrastructure/output"
	"github.com/doeshing/serpkit-go/internal/services"
)

func newPAACommand(container *app.Container) *cobra.Command {
	var (
		language     string
		country      string
		locationID   int
		depth        int
		maxQuestions int
		maxRequests  int
		format       string
		outputPath   string
		keywordsFile string
		force        bool
		quiet        bool
		timeout      time.Duration
	)

	cmd := &cobra.Command{
		Use:   "paa [keyword]",
		Short: "Collect People Also Ask questions for one or more keywords",
		Long: "Expands the People Also Ask graph breadth-first from each root\n" +
			"keyword, within the configured depth, question and request budgets,\n" +
			"and writes the unique questions to CSV or JSON.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := container.Config

			keywords, err := gatherKeywords(args, keywordsFile)
			if err != nil {
				return err
			}
			locale, err := helpers.ResolveLocale(cfg.Defaults, language, country, locationID)
			if err != nil {
				return err
			}
			limits := domain.TraversalLimits{
				MaxDepth:     pickInt(depth, cfg.Defaults.PAADepth),
				MaxQuestions: pickInt(maxQuestions, cfg.Defaults.MaxQuestions),
				MaxRequests:  pickInt(maxRequests, cfg.Defaults.MaxRequests),
			}

			outFormat := output.Format(strings.ToLower(format))
			if outFormat != output.FormatCSV && outFormat != output.FormatJSON {
				return domain.NewConfigError("format", "must be csv or json")
			}

			firstKeyword := ""
			if keywordsFile == "" {
				firstKeyword = keywords[0]
			}
			path := output.DefaultPath(firstKeyword, keywordsFile, outputPath, outFormat, ".")
			ok, err := helpers.ConfirmWritable(helpers.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout()), path, force)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted, existing file kept.")
				return nil
			}

			ctx := cmd.Context()
			if timeout == 0 && cfg.Defaults.TimeoutSeconds > 0 {
				timeout = time.Duration(cfg.Defaults.TimeoutSeconds) * time.Second
			}
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			if !quiet {
				container.Expander.Progress = NewConsoleProgress(cmd.ErrOrStderr())
			}

			batch, err := container.Runner.Run(ctx, keywords, locale, limits)
			if err != nil {
				return err
			}

			rows, processed := collectRows(batch)
			switch outFormat {
			case output.FormatJSON:
				err = output.WriteJSON(rows, processed, path)
			default:
				err = output.WriteCSV(rows, path)
			}
			if err != nil {
				return fmt.Errorf("write output %s: %w", path, err)
			}

			recordHistory(container, "paa", locale, batch)
			RenderBatchSummary(cmd.OutOrStdout(), batch, path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "", "Language code (default from config)")
	cmd.Flags().StringVarP(&country, "country", "c", "", "ISO country code (default from config)")
	cmd.Flags().IntVar(&locationID, "location-id", 0, "Provider location_code, overrides --country")
	cmd.Flags().IntVarP(&depth, "depth", "d", 0, "Expansion depth, 1 = root keyword only")
	cmd.Flags().IntVarP(&maxQuestions, "max-questions", "q", 0, "Max unique questions per keyword")
	cmd.Flags().IntVarP(&maxRequests, "max-requests", "r", 0, "Max API calls per keyword")
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "Output format: csv or json")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path")
	cmd.Flags().StringVarP(&keywordsFile, "keywords-file", "k", "", "File with one keyword per line")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing output without asking")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Suppress per-request progress output")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Overall timeout (default from config, per run)")

	return cmd
}

func gatherKeywords(args []string, keywordsFile string) ([]string, error) {
	if keywordsFile != "" {
		return helpers.ReadKeywordsFile(keywordsFile)
	}
	if len(args) == 0 {
		return nil, domain.NewConfigError("keyword", "pass a keyword or --keywords-file")
	}
	// Bare words form a single phrase, quoting is optional.
	return []string{strings.Join(args, " ")}, nil
}

func pickInt(flag, fallback int) int {
	if flag > 0 {
		return flag
	}
	return fallback
}

func collectRows(batch services.BatchResult) (rows []output.Row, processed []string) {
	for _, res := range batch.Results {
		if res.Err != nil {
			continue
		}
		processed = append(processed, res.Keyword)
		for _, question := range res.Result.Questions {
			rows = append(rows, output.Row{Keyword: res.Keyword, Question: question})
		}
	}
	return rows, processed
}

func recordHistory(container *app.Container, command string, locale domain.Locale, batch services.BatchResult) {
	if !container.Config.History.Enabled || container.HistoryStore == nil {
		return
	}
	for _, res := range batch.Results {
		record := domain.RunRecord{
			Timestamp:    time.Now().UTC(),
			Command:      command,
			RootKeyword:  res.Keyword,
			LanguageCode: locale.LanguageCode,
			LocationCode: locale.LocationCode,
			RequestsUsed: res.Result.RequestsUsed,
			ResultCount:  len(res.Result.Questions),
			Success:      res.Err == nil && res.Result.RootSucceeded,
			DurationMS:   res.Result.Elapsed.Milliseconds(),
		}
		if err := container.HistoryStore.Save(record); err != nil && container.Logger != nil {
			container.Logger.Warn("history write failed", map[string]interface{}{"error": err.Error()})
		}
	}
}
