// Package cli implements the mpmd-metadata command line interface.
package cli

import (
	"fmt"

	"github.com/dcervenkov/mpmd-metadata/internal/config"
	"github.com/dcervenkov/mpmd-metadata/internal/logging"
	"github.com/spf13/cobra"
)

var version = "dev"

// SetVersion records the build version shown by the version command.
func SetVersion(v string) {
	version = v
}

var (
	rootVerbose bool
	rootQuiet   bool
	rootConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "mpmd-metadata",
	Short: "Embed SJPG thumbnails and print metadata in G-code files",
	Long: `mpmd-metadata post-processes slicer-generated G-code for the
Monoprice Mini Delta v2 firmware. It embeds a preview image in the
firmware's segmented JPEG (SJPG) format and adds material, infill
density and filament usage metadata lines at the expected positions.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(rootVerbose, rootQuiet)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&rootQuiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringVarP(&rootConfig, "config", "c", "", "configuration file path")

	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// newLoader builds a config loader honoring the --config flag.
func newLoader() (*config.Loader, error) {
	if rootConfig != "" {
		return config.NewLoaderWithPath(rootConfig), nil
	}
	return config.NewLoader()
}

// loadConfig reads the effective configuration.
func loadConfig() (*config.Config, error) {
	loader, err := newLoader()
	if err != nil {
		return nil, err
	}
	return loader.Load()
}
