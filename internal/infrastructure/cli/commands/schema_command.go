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
)

// NewSchemaCommand creates the schema command
func NewSchemaCommand(container *app.Container) *cobra.Command {
	var (
		urlsFile   string
		fromDomain string
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "schema [url...]",
		Short: "Detect schema.org structured data on pages",
		Long: "Checks each URL for JSON-LD, microdata and RDFa markup and reports\n" +
			"the schema.org types found. URLs come from arguments, a file, or a\n" +
			"site's sitemap via --domain.",
		RunE: func(cmd *cobra.Command, args []string) error {
			urls := append([]string(nil), args...)
			if urlsFile != "" {
				fromFile, err := helpers.ReadKeywordsFile(urlsFile)
				if err != nil {
					return err
				}
				urls = append(urls, fromFile...)
			}
			if fromDomain != "" {
				report, err := container.Sitemap.Collect(cmd.Context(), fromDomain)
				if err != nil {
					return err
				}
				urls = append(urls, report.PageURLs...)
			}
			if len(urls) == 0 {
				return domain.NewConfigError("url", "pass URLs, --urls-file or --domain")
			}

			reports := container.Schema.CheckAll(cmd.Context(), urls)

			out := cmd.OutOrStdout()
			withSchema := 0
			for _, report := range reports {
				switch {
				case report.Err != nil:
					fmt.Fprintf(out, "FAILED  %s: %v\n", report.URL, report.Err)
				case len(report.Types) == 0:
					fmt.Fprintf(out, "-       %s: no structured data\n", report.URL)
				default:
					withSchema++
					fmt.Fprintf(out, "        %s: %s\n", report.URL, strings.Join(report.Types, ", "))
				}
			}
			fmt.Fprintf(out, "\n%d of %d pages carry structured data\n", withSchema, len(reports))

			if outputPath != "" {
				header := []string{"url", "status", "types", "error"}
				records := make([][]string, 0, len(reports))
				for _, report := range reports {
					errText := ""
					if report.Err != nil {
						errText = report.Err.Error()
					}
					records = append(records, []string{
						report.URL,
						strconv.Itoa(report.StatusCode),
						strings.Join(report.Types, "|"),
						errText,
					})
				}
				if err := output.WriteRecords(header, records, outputPath); err != nil {
					return fmt.Errorf("write output %s: %w", outputPath, err)
				}
				fmt.Fprintf(out, "Saved to %s\n", outputPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&urlsFile, "urls-file", "", "File with one URL per line")
	cmd.Flags().StringVar(&fromDomain, "domain", "", "Check every page listed in this domain's sitemap")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "CSV output path")

	return cmd
}
