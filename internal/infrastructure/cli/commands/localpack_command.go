package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/serpkit-go/internal/app"
	"github.com/doeshing/serpkit-go/internal/domain"
	"github.com/doeshing/serpkit-go/internal/infrastructure/cli/helpers"
	"github.com/doeshing/serpkit-go/internal/infrastructure/output"
	"github.com/doeshing/serpkit-go/internal/services"
)

// NewLocalPackCommand creates the localpack command
func NewLocalPackCommand(container *app.Container) *cobra.Command {
	var (
		targetDomain string
		keywordsCSV  string
		keywordsFile string
		language     string
		country      string
		locationID   int
		locationName string
		outputPath   string
	)

	cmd := &cobra.Command{
		Use:   "localpack",
		Short: "Check local-pack positions for a domain across keywords",
		RunE: func(cmd *cobra.Command, args []string) error {
			keywords := helpers.SplitAndTrimCSV(keywordsCSV)
			if keywordsFile != "" {
				fromFile, err := helpers.ReadKeywordsFile(keywordsFile)
				if err != nil {
					return err
				}
				keywords = append(keywords, fromFile...)
			}
			if len(keywords) == 0 {
				return domain.NewConfigError("keywords", "pass --keywords or --keywords-file")
			}

			locale, err := helpers.ResolveLocale(container.Config.Defaults, language, country, locationID)
			if err != nil {
				return err
			}
			if locationName != "" && locationID == 0 {
				loc, err := container.Locations.Resolve(cmd.Context(), locationName)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Using location %q (%d)\n", loc.Name, loc.Code)
				locale.LocationCode = loc.Code
			}

			checks := container.LocalPack.CheckAll(cmd.Context(), keywords, targetDomain, locale)
			renderLocalPackChecks(cmd, checks, targetDomain)

			if outputPath != "" {
				if err := writeLocalPackCSV(checks, outputPath); err != nil {
					return fmt.Errorf("write output %s: %w", outputPath, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved to %s\n", outputPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&targetDomain, "domain", "", "Domain to locate in the local pack")
	cmd.Flags().StringVar(&keywordsCSV, "keywords", "", "Comma-separated keywords")
	cmd.Flags().StringVarP(&keywordsFile, "keywords-file", "k", "", "File with one keyword per line")
	cmd.Flags().StringVarP(&language, "language", "l", "", "Language code (default from config)")
	cmd.Flags().StringVarP(&country, "country", "c", "", "ISO country code (default from config)")
	cmd.Flags().IntVar(&locationID, "location-id", 0, "Provider location_code, overrides --country")
	cmd.Flags().StringVar(&locationName, "location", "", "Location name, resolved via the catalog")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "CSV output path")

	return cmd
}

func renderLocalPackChecks(cmd *cobra.Command, checks []services.LocalPackCheck, targetDomain string) {
	out := cmd.OutOrStdout()
	for _, check := range checks {
		switch {
		case check.Err != nil:
			fmt.Fprintf(out, "FAILED  %s: %v\n", check.Keyword, check.Err)
		case len(check.Pack) == 0:
			fmt.Fprintf(out, "-       %s: no local pack on this page\n", check.Keyword)
		case targetDomain == "":
			names := make([]string, 0, len(check.Pack))
			for _, entry := range check.Pack {
				names = append(names, entry.Title)
			}
			fmt.Fprintf(out, "        %s: %s\n", check.Keyword, strings.Join(names, " | "))
		case check.Found:
			fmt.Fprintf(out, "#%d      %s: %s (rating %.1f)\n",
				check.Position, check.Keyword, check.Entry.Title, check.Entry.Rating)
		default:
			fmt.Fprintf(out, "absent  %s: %s not in local pack (%d entries)\n",
				check.Keyword, targetDomain, len(check.Pack))
		}
	}
}

func writeLocalPackCSV(checks []services.LocalPackCheck, path string) error {
	header := []string{"keyword", "found", "position", "title", "domain", "rating", "error"}
	records := make([][]string, 0, len(checks))
	for _, check := range checks {
		errText := ""
		if check.Err != nil {
			errText = check.Err.Error()
		}
		records = append(records, []string{
			check.Keyword,
			strconv.FormatBool(check.Found),
			strconv.Itoa(check.Position),
			check.Entry.Title,
			check.Entry.Domain,
			strconv.FormatFloat(check.Entry.Rating, 'f', 1, 64),
			errText,
		})
	}
	return output.WriteRecords(header, records, path)
}
