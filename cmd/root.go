// Package cmd provides the root command and CLI setup for linkmend.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"linkmend.dev/pkg/linkmend/internal/adapter"
	"linkmend.dev/pkg/linkmend/internal/controller"
	"linkmend.dev/pkg/linkmend/internal/domain"
	m "linkmend.dev/pkg/linkmend/internal/model"
)

var docsFSAdapter adapter.DocsFSAdapter
var registryStore adapter.RegistryStore
var reportStore adapter.ReportStore
var workflow domain.Workflow
var ui controller.UI

// reportsOutputDirFlag is a root-level flag shared by commands that read/write reports.
var reportsOutputDirFlag string

// registryListingFlag points at the `filename : [filename](path)` listing.
var registryListingFlag string

// excludePatterns is a root-level flag that filters files for applicable commands.
var excludePatterns []string

// extensionsFlag selects which file extensions count as documentation.
var extensionsFlag []string

// verboseFlag raises the log level to debug.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	docsFSAdapter = adapter.NewLocalDocsFSAdapter()
	registryStore = adapter.NewLocalRegistryStore()
	reportStore = adapter.NewLocalReportStore()
	workflow = domain.NewWorkflow(docsFSAdapter, registryStore, reportStore, ui)
}

const rootLongDescription = `Linkmend repairs broken markdown link references in documentation trees.

It detects malformed link shapes left behind by editors and bulk renames
(nested brackets, stray backticks, doubled parentheses, leftover schemes),
looks the referenced filename up in a path registry listing, and rewrites
each occurrence to the canonical [name](path) form. Repairs are idempotent:
running the tool on an already-repaired tree changes nothing.`

const fixLongDescription = `Repair broken link shapes in the given paths (default: current directory).

Files are rewritten in place only when at least one fix applies. Filenames
with no registry entry are reported and left untouched.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "linkmend",
		Short: "Markdown link repair tool",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger("", verboseFlag || viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for repair reports",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().StringVarP(&registryListingFlag, registryFlagName, "r", viper.GetString(registryConfigKey), "path registry listing file")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(registryFlagName), registryConfigKey)

	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude files matching regex (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().StringArrayVarP(&extensionsFlag, extensionFlagName, "e", viper.GetStringSlice(extensionsConfigKey), "documentation file extension (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(extensionFlagName), extensionsConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
