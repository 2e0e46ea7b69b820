package commands

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/doeshing/serpkit-go/internal/app"
	"github.com/doeshing/serpkit-go/internal/domain"
	"github.com/doeshing/serpkit-go/internal/infrastructure/cli/helpers"
	"github.com/doeshing/serpkit-go/internal/infrastructure/config"
	"github.com/doeshing/serpkit-go/internal/infrastructure/output"
	"github.com/doeshing/serpkit-go/internal/services"
)

// NewBotlogCommand creates the botlog command
func NewBotlogCommand(container *app.Container) *cobra.Command {
	var (
		uaCol       int
		urlCol      int
		rulesFile   string
		sitemapFile string
		hasHeader   bool
		outputPath  string
	)

	cmd := &cobra.Command{
		Use:   "botlog <logfile.csv>",
		Short: "Classify crawler-log rows by bot and site section",
		Long: "Reads a CSV export of server-log lines, labels each row with a\n" +
			"user-agent group and a URL group from the rules file, and prints\n" +
			"hit counts per group.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := config.LoadBotlogRules(rulesFile)
			if err != nil {
				return err
			}

			records, header, err := readLogCSV(args[0], hasHeader)
			if err != nil {
				return err
			}

			var sitemapPages map[string]bool
			if sitemapFile != "" {
				urls, err := helpers.ReadKeywordsFile(sitemapFile)
				if err != nil {
					return err
				}
				sitemapPages = make(map[string]bool, len(urls))
				for _, url := range urls {
					sitemapPages[url] = true
				}
			}

			analyzer := &services.BotlogAnalyzer{Rules: rules}
			rows := analyzer.Analyze(records, uaCol, urlCol, sitemapPages)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d rows classified\n\nBy bot:\n", len(rows))
			for _, summary := range services.SummarizeUA(rows) {
				fmt.Fprintf(out, "  %-20s %d\n", summary.Group, summary.Hits)
			}
			fmt.Fprintln(out, "\nBy section:")
			for _, summary := range services.SummarizeURL(rows) {
				fmt.Fprintf(out, "  %-20s %d\n", summary.Group, summary.Hits)
			}
			if sitemapPages != nil {
				inSitemap := 0
				for _, row := range rows {
					if row.InSitemap {
						inSitemap++
					}
				}
				fmt.Fprintf(out, "\n%d of %d crawled paths appear in the sitemap\n", inSitemap, len(rows))
			}

			if outputPath != "" {
				if err := writeClassifiedCSV(rows, header, sitemapPages != nil, outputPath); err != nil {
					return fmt.Errorf("write output %s: %w", outputPath, err)
				}
				fmt.Fprintf(out, "Saved to %s\n", outputPath)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&uaCol, "ua-col", 0, "Zero-based column holding the user agent")
	cmd.Flags().IntVar(&urlCol, "url-col", 1, "Zero-based column holding the request path")
	cmd.Flags().StringVar(&rulesFile, "rules", "", "YAML rules file (embedded defaults when omitted)")
	cmd.Flags().StringVar(&sitemapFile, "sitemap-file", "", "File with sitemap URLs to cross-reference")
	cmd.Flags().BoolVar(&hasHeader, "header", true, "Treat the first row as a header")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "CSV output path for classified rows")

	return cmd
}

func readLogCSV(path string, hasHeader bool) (records [][]string, header []string, err error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read log file %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Log exports are rarely perfectly rectangular.
	reader.FieldsPerRecord = -1

	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("parse log file %s: %w", path, err)
		}
		if first && hasHeader {
			header = record
			first = false
			continue
		}
		first = false
		records = append(records, record)
	}
	if len(records) == 0 {
		return nil, nil, domain.NewConfigError("logfile", "no data rows in "+path)
	}
	return records, header, nil
}

func writeClassifiedCSV(rows []domain.BotlogRow, header []string, withSitemap bool, path string) error {
	if len(header) == 0 && len(rows) > 0 {
		header = make([]string, len(rows[0].Fields))
		for i := range header {
			header[i] = "col" + strconv.Itoa(i)
		}
	}
	header = append(append([]string(nil), header...), "ua_group", "url_group")
	if withSitemap {
		header = append(header, "in_sitemap")
	}

	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		record := append(append([]string(nil), row.Fields...), row.UAGroup, row.URLGroup)
		if withSitemap {
			record = append(record, strconv.FormatBool(row.InSitemap))
		}
		records = append(records, record)
	}
	return output.WriteRecords(header, records, path)
}
