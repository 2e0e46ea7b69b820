package commands

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/doeshing/serpkit-go/internal/app"
	"github.com/doeshing/serpkit-go/internal/domain"
	"github.com/doeshing/serpkit-go/internal/infrastructure/cli/helpers"
	"github.com/doeshing/serpkit-go/internal/infrastructure/output"
)

// NewLocationsCommand creates the locations command with subcommands
func NewLocationsCommand(container *app.Container) *cobra.Command {
	locationsCmd := &cobra.Command{
		Use:   "locations",
		Short: "Browse the provider location catalog",
	}

	locationsCmd.AddCommand(
		newLocationsListCommand(container),
		newLocationsCountriesCommand(),
		newLocationsClearCacheCommand(container),
	)

	return locationsCmd
}

// newLocationsListCommand creates the 'locations list' subcommand
func newLocationsListCommand(container *app.Container) *cobra.Command {
	var (
		search     string
		refresh    bool
		limit      int
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List or search catalog locations",
		RunE: func(cmd *cobra.Command, args []string) error {
			spinner := helpers.NewSpinner(cmd.ErrOrStderr())
			spinner.Start()
			if refresh {
				if _, _, err := container.Locations.Fetch(cmd.Context(), true); err != nil {
					spinner.Stop()
					return err
				}
			}
			matches, err := container.Locations.Search(cmd.Context(), search)
			spinner.Stop()
			if err != nil {
				return err
			}

			if outputPath != "" {
				header := []string{"location_code", "location_name", "country_iso", "type"}
				records := make([][]string, 0, len(matches))
				for _, loc := range matches {
					records = append(records, []string{
						strconv.Itoa(loc.Code), loc.Name, loc.CountryISO, loc.Type,
					})
				}
				if err := output.WriteRecords(header, records, outputPath); err != nil {
					return fmt.Errorf("write output %s: %w", outputPath, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %d locations to %s\n", len(matches), outputPath)
				return nil
			}

			shown := 0
			for _, loc := range matches {
				if limit > 0 && shown >= limit {
					fmt.Fprintf(cmd.OutOrStdout(), "... and %d more (use --limit or --output)\n", len(matches)-shown)
					break
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%8d  %-6s %s\n", loc.Code, loc.CountryISO, loc.Name)
				shown++
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Filter by substring of the location name")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Bypass the local cache and refetch the catalog")
	cmd.Flags().IntVar(&limit, "limit", 50, "Max rows to print (0 = all)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "CSV output path")
	return cmd
}

// newLocationsCountriesCommand creates the 'locations countries' subcommand
func newLocationsCountriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "countries",
		Short: "List the country codes usable with --country",
		RunE: func(cmd *cobra.Command, args []string) error {
			countries := domain.SupportedCountries()
			sort.Strings(countries)
			for _, country := range countries {
				fmt.Fprintln(cmd.OutOrStdout(), country)
			}
			return nil
		},
	}
}

// newLocationsClearCacheCommand creates the 'locations clear-cache' subcommand
func newLocationsClearCacheCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-cache",
		Short: "Delete the cached location catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.CatalogCache == nil {
				return fmt.Errorf("catalog cache unavailable")
			}
			if err := container.CatalogCache.Clear(); err != nil {
				return fmt.Errorf("clear catalog cache: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Catalog cache cleared.")
			return nil
		},
	}
}
