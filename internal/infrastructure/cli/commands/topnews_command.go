package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/doeshing/serpkit-go/internal/app"
	"github.com/doeshing/serpkit-go/internal/infrastructure/cli/helpers"
	"github.com/doeshing/serpkit-go/internal/infrastructure/output"
)

// NewTopNewsCommand creates the topnews command
func NewTopNewsCommand(container *app.Container) *cobra.Command {
	var (
		language   string
		country    string
		locationID int
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "topnews <keyword>",
		Short: "Track the top-stories block for a keyword over time",
		Long: "Fetches the top_stories block and appends one row per story to a\n" +
			"CSV, so repeated runs build a time series of news visibility.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keyword := strings.Join(args, " ")
			locale, err := helpers.ResolveLocale(container.Config.Defaults, language, country, locationID)
			if err != nil {
				return err
			}

			stories, err := container.TopNews.Fetch(cmd.Context(), keyword, locale)
			if err != nil {
				return err
			}
			if len(stories) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No top-stories block for this keyword.")
				return nil
			}

			path := outputPath
			if path == "" {
				path = output.SanitizeKeyword(keyword) + "_topnews.csv"
			}

			checkedAt := time.Now().UTC().Format(time.RFC3339)
			header := []string{"checked_at", "keyword", "position", "title", "source", "date", "url"}
			records := make([][]string, 0, len(stories))
			for _, story := range stories {
				records = append(records, []string{
					checkedAt,
					keyword,
					strconv.Itoa(story.RankGroup),
					story.Title,
					story.Source,
					story.Date,
					story.URL,
				})
			}
			if err := output.AppendRecords(header, records, path); err != nil {
				return fmt.Errorf("append output %s: %w", path, err)
			}

			for _, story := range stories {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. %s (%s)\n", story.RankGroup, story.Title, story.Source)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Appended %d stories to %s\n", len(stories), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "", "Language code (default from config)")
	cmd.Flags().StringVarP(&country, "country", "c", "", "ISO country code (default from config)")
	cmd.Flags().IntVar(&locationID, "location-id", 0, "Provider location_code, overrides --country")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "CSV output path (appended to)")

	return cmd
}
