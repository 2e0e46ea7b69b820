package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/doeshing/serpkit-go/internal/app"
	"github.com/doeshing/serpkit-go/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command. Running the binary with
// bare arguments is shorthand for the paa command.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}

	paaCmd := newPAACommand(container)

	root := &cobra.Command{
		Use:   "serpkit [keyword]",
		Short: "serpkit - SEO data collection toolkit",
		Long: "serpkit collects search-result data through the DataForSEO API:\n" +
			"People Also Ask questions, full result pages, local-pack rankings,\n" +
			"top stories, plus sitemap and structured-data audits.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			paaCmd.SetArgs(args)
			return paaCmd.ExecuteContext(cmd.Context())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(paaCmd)
	root.AddCommand(commands.NewSERPCommand(container))
	root.AddCommand(commands.NewLocalPackCommand(container))
	root.AddCommand(commands.NewTopNewsCommand(container))
	root.AddCommand(commands.NewLocationsCommand(container))
	root.AddCommand(commands.NewSitemapCommand(container))
	root.AddCommand(commands.NewSchemaCommand(container))
	root.AddCommand(commands.NewBotlogCommand(container))
	root.AddCommand(commands.NewHistoryCommand(container))
	root.AddCommand(commands.NewConfigCommand(container))
	root.AddCommand(commands.NewDoctorCommand(container))
	root.AddCommand(commands.NewVersionCommand())
	return root, nil
}
