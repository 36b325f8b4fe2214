package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"linkmend.dev/pkg/linkmend/internal/domain"
	m "linkmend.dev/pkg/linkmend/internal/model"
)

var checkReportFlag string

// checkCmd represents the check command.
var checkCmd = newCheckCmd()

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Validate that well-formed links resolve",
		Long: `Validate every [text](target) link in the given paths. A link passes
when its target exists relative to the containing file, relative to the tree
root, or through the path registry. Exits non-zero when broken links remain,
which makes the command usable as a CI gate.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			scheme := viper.GetString(patternSchemeKey)

			var schemes []string
			if scheme != "" {
				schemes = []string{scheme}
			}

			return workflow.Check(cmd.Context(), domain.CheckArgs{
				Paths:      parsePaths(args),
				Exclude:    viper.GetStringSlice(excludeConfigKey),
				Extensions: viper.GetStringSlice(extensionsConfigKey),
				Registry:   m.Path(viper.GetString(registryConfigKey)),
				Root:       m.Path(viper.GetString(rootConfigKey)),
				ReportFile: m.Path(checkReportFlag),
				Schemes:    schemes,
			})
		},
	}

	cmd.Flags().StringVar(&checkReportFlag, checkReportFlagName, "", "write a markdown validation report to this file")

	return cmd
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
