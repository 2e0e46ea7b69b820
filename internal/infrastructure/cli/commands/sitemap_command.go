package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/serpkit-go/internal/app"
	"github.com/doeshing/serpkit-go/internal/infrastructure/output"
)

// NewSitemapCommand creates the sitemap command
func NewSitemapCommand(container *app.Container) *cobra.Command {
	var (
		outputPath string
		listURLs   bool
	)

	cmd := &cobra.Command{
		Use:   "sitemap <domain>",
		Short: "Discover the URLs a site publishes via its sitemaps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := container.Sitemap.Collect(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Domain: %s\n", report.Domain)
			fmt.Fprintf(out, "Sitemaps (%d):\n", len(report.SitemapURLs))
			for _, sm := range report.SitemapURLs {
				fmt.Fprintf(out, "  %s\n", sm)
			}
			fmt.Fprintf(out, "Page URLs: %d\n", len(report.PageURLs))
			if listURLs {
				for _, url := range report.PageURLs {
					fmt.Fprintln(out, url)
				}
			}

			if outputPath != "" {
				records := make([][]string, 0, len(report.PageURLs))
				for _, url := range report.PageURLs {
					records = append(records, []string{url})
				}
				if err := output.WriteRecords([]string{"url"}, records, outputPath); err != nil {
					return fmt.Errorf("write output %s: %w", outputPath, err)
				}
				fmt.Fprintf(out, "Saved to %s\n", outputPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "CSV output path for the page URLs")
	cmd.Flags().BoolVar(&listURLs, "list", false, "Print every page URL")

	return cmd
}
