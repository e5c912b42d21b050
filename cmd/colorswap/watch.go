package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yacobolo/colorswap"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild whenever the palette or a source file changes",
	Long: `Build once, then watch the palette and the source tree and rebuild after
changes settle. The palette is reloaded from disk on every rebuild.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().Duration("debounce", colorswap.DefaultDebounce, "Wait this long for changes to settle")
}

func runWatch(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}

	quiet := getBoolWithFallback("quiet", "quiet", false)
	out := cmd.OutOrStdout()

	config := buildWatchConfig(logger)
	config.OnBuild = func(result *colorswap.BuildResult, err error) {
		if quiet || err != nil {
			return
		}
		colorswap.WriteBuildSummary(out, result, useColors())
	}

	watcher, err := colorswap.NewWatcher(config)
	if err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	defer watcher.Close()

	return watcher.Run(cmd.Context())
}
