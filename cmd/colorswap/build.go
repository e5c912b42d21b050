package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/yacobolo/colorswap"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Replace color tokens with palette values",
	Long: `Rewrite every matching file under the source directory, replacing color
tokens with their palette values. Files are rewritten in place unless
--output-dir is given, in which case the source tree is mirrored there.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runBuild,
}

func init() {
	addBuildFlags(buildCmd.Flags())
}

func addBuildFlags(f *pflag.FlagSet) {
	f.Bool("dry-run", false, "Report what would change without writing")
	f.Bool("diff", false, "Print a diff of every changed file")
}

func runBuild(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}

	config := buildBuildConfig(logger)

	result, err := colorswap.Build(cmd.Context(), config)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	if !getBoolWithFallback("quiet", "quiet", false) {
		colorswap.WriteBuildSummary(cmd.OutOrStdout(), result, useColors())
	}

	return nil
}
