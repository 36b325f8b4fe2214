package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"linkmend.dev/pkg/linkmend/internal/domain"
	m "linkmend.dev/pkg/linkmend/internal/model"
)

// scanCmd represents the scan command.
var scanCmd = newScanCmd()

func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan [paths...]",
		Short: "Detect broken link shapes without modifying files",
		Long: `Scan the given paths (default: current directory) for broken link
shapes and list every match with its pattern kind, without writing anything.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Scan(cmd.Context(), domain.ScanArgs{
				Paths:      parsePaths(args),
				Exclude:    viper.GetStringSlice(excludeConfigKey),
				Extensions: viper.GetStringSlice(extensionsConfigKey),
				Registry:   m.Path(viper.GetString(registryConfigKey)),
				Patterns:   patternOptionsFromConfig(),
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
