package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/yacobolo/colorswap"
	"github.com/yacobolo/colorswap/internal/palette"
)

var rootCmd = &cobra.Command{
	Use:   "colorswap",
	Short: "Replace color tokens in CSS, JS/TS and HTML with palette values",
	Long: `colorswap rewrites color token names such as "primary" or "Gray/800"
into the concrete values defined in a palette file (colors.yaml).

Stylesheets are rewritten through a syntax tree, scripts and markup through
a fixed set of styling idioms (template literals, style objects, sx props,
theme.palette access and style attributes).`,
	// Without a subcommand colorswap builds. loadConfig is called here
	// because buildCmd's PreRunE does not run when delegating.
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return runBuild(cmd, nil)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	pf := rootCmd.PersistentFlags()
	pf.String("config", defaultConfigFile, "Config file path")
	pf.BoolP("verbose", "v", false, "Enable debug logging")
	pf.Bool("quiet", false, "Suppress all output (exit code only)")
	pf.Bool("color", false, "Force color output")
	pf.String("log-level", defaultLogLevel, "Log level: debug|info|warn|error")
	pf.StringP("palette", "p", palette.DefaultFile, "Palette file (.yaml, .yml or .json)")

	addSourceFlags(pf)
	addBuildFlags(rootCmd.Flags())

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(typesCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}

// addSourceFlags registers the flags that select which files are rewritten
func addSourceFlags(f *pflag.FlagSet) {
	f.StringP("source", "s", defaultSourceDir, "Source directory")
	f.StringP("output-dir", "o", "", "Write rewritten files here instead of in place")
	f.StringSlice("include", colorswap.DefaultIncludes, "Glob patterns of files to rewrite")
	f.StringSlice("exclude", colorswap.DefaultExcludes, "Glob patterns of files to skip")
	f.Int("workers", 0, "Parallel rewrites (0 = number of CPUs)")
	f.Duration("file-timeout", colorswap.DefaultFileTimeout, "Time budget for rewriting one file")
}
