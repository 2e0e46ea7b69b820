package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/serpkit-go/internal/app"
	"github.com/doeshing/serpkit-go/internal/domain"
	"github.com/doeshing/serpkit-go/internal/infrastructure/cli/helpers"
	"github.com/doeshing/serpkit-go/internal/infrastructure/output"
	"github.com/doeshing/serpkit-go/internal/services"
)

// NewSERPCommand creates the serp command
func NewSERPCommand(container *app.Container) *cobra.Command {
	var (
		language   string
		country    string
		locationID int
		depth      int
		device     string
		format     string
		outputPath string
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "serp <keyword>",
		Short: "Fetch a full result page and save it as JSON or text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keyword := strings.Join(args, " ")
			locale, err := helpers.ResolveLocale(container.Config.Defaults, language, country, locationID)
			if err != nil {
				return err
			}

			format = strings.ToLower(format)
			if format != "json" && format != "txt" {
				return domain.NewConfigError("format", "must be json or txt")
			}

			spinner := helpers.NewSpinner(cmd.ErrOrStderr())
			spinner.Start()
			page, err := container.SERP.Fetch(cmd.Context(), domain.SERPRequest{
				Keyword: keyword,
				Locale:  locale,
				Depth:   depth,
				Device:  device,
			})
			spinner.Stop()
			if err != nil {
				return err
			}

			path := outputPath
			if path == "" {
				path = output.SanitizeKeyword(keyword) + "_serp." + format
			}
			ok, err := helpers.ConfirmWritable(helpers.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout()), path, force)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted, existing file kept.")
				return nil
			}

			var data []byte
			if format == "json" {
				data = page.RawJSON
			} else {
				data = []byte(services.FormatText(page))
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("write output %s: %w", path, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%d organic, %d local pack, %d top stories)\n",
				path, len(page.Organic), len(page.LocalPack), len(page.TopStories))
			return nil
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "", "Language code (default from config)")
	cmd.Flags().StringVarP(&country, "country", "c", "", "ISO country code (default from config)")
	cmd.Flags().IntVar(&locationID, "location-id", 0, "Provider location_code, overrides --country")
	cmd.Flags().IntVarP(&depth, "depth", "d", 0, "Number of results to request (provider default 10)")
	cmd.Flags().StringVar(&device, "device", "", "Device type: desktop or mobile")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json or txt")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing output without asking")

	return cmd
}
