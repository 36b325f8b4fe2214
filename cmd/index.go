package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"linkmend.dev/pkg/linkmend/internal/domain"
	m "linkmend.dev/pkg/linkmend/internal/model"
)

var indexRootFlag string

// indexCmd represents the index command.
var indexCmd = newIndexCmd()

func newIndexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Regenerate the path registry listing",
		Long: `Walk the documentation tree and rewrite the registry listing with one
entry per file in the canonical format:

  filename : [filename](relative/path/to/filename)

The listing is what fix and scan use to resolve broken references back to
their canonical paths.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return workflow.Index(cmd.Context(), domain.IndexArgs{
				Root:       m.Path(viper.GetString(rootConfigKey)),
				Extensions: viper.GetStringSlice(extensionsConfigKey),
				Listing:    m.Path(viper.GetString(registryConfigKey)),
			})
		},
	}

	cmd.Flags().StringVar(&indexRootFlag, indexRootFlagName, viper.GetString(rootConfigKey), "documentation tree root to index")
	bindFlagToConfig(cmd.Flags().Lookup(indexRootFlagName), rootConfigKey)

	return cmd
}

func init() {
	rootCmd.AddCommand(indexCmd)
}
