package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"linkmend.dev/pkg/linkmend/internal/domain"
	m "linkmend.dev/pkg/linkmend/internal/model"
)

var fixParallelFlag int
var fixDryRunFlag bool
var fixRequireRegistryFlag bool

// fixCmd represents the fix command.
var fixCmd = newFixCmd()

func newFixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix [paths...]",
		Short: "Repair broken link shapes in place",
		Long:  fixLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Fix(cmd.Context(), domain.FixArgs{
				Paths:           parsePaths(args),
				Exclude:         viper.GetStringSlice(excludeConfigKey),
				Extensions:      viper.GetStringSlice(extensionsConfigKey),
				Registry:        m.Path(viper.GetString(registryConfigKey)),
				RequireRegistry: viper.GetBool(registryRequiredKey),
				DryRun:          fixDryRunFlag,
				Threads:         viper.GetInt(fixParallelConfigKey),
				Reports:         m.Path(viper.GetString(outputFlagName)),
				Patterns:        patternOptionsFromConfig(),
			})
		},
	}

	configureFixFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(fixCmd)
}

func configureFixFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&fixParallelFlag, fixParallelFlagName, "p", viper.GetInt(fixParallelConfigKey), "number of parallel workers for file processing")
	bindFlagToConfig(cmd.Flags().Lookup(fixParallelFlagName), fixParallelConfigKey)

	cmd.Flags().BoolVarP(&fixDryRunFlag, dryRunFlagName, "n", false, "show would-be changes without writing files")

	cmd.Flags().BoolVar(&fixRequireRegistryFlag, requireRegistryFlagName, viper.GetBool(registryRequiredKey), "fail when the registry listing cannot be loaded")
	bindFlagToConfig(cmd.Flags().Lookup(requireRegistryFlagName), registryRequiredKey)
}
