package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yacobolo/colorswap"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "Generate token declarations for editors",
	Long: `Write the palette's token names as a TypeScript declaration file
(ColorName union, CSS property augmentation) or as Go constants.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runTypes,
}

func init() {
	f := typesCmd.Flags()
	f.String("format", colorswap.TypesFormatTS, "Declaration format: ts|go")
	f.String("output", "", "Output file (default: colors.d.ts, or <package>/<package>.go)")
	f.String("package", "colors", "Go package name for --format go")
}

func runTypes(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}

	result, err := colorswap.GenerateTypes(buildTypesConfig(logger))
	if err != nil {
		return fmt.Errorf("types failed: %w", err)
	}

	if getBoolWithFallback("quiet", "quiet", false) {
		return nil
	}

	out := cmd.OutOrStdout()
	if result.Written {
		fmt.Fprintf(out, "Wrote %d tokens to %s\n", result.Tokens, result.Path)
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(out, "  Warning: %s\n", w)
	}
	return nil
}
