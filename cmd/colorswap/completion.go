package main

import (
	"github.com/spf13/cobra"
)

var completionNoDesc bool

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate a completion script for colorswap subcommands and flags.

Load it for the current shell session, for example:

  source <(colorswap completion bash)
  colorswap completion zsh > "${fpath[1]}/_colorswap"
  colorswap completion fish | source`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		withDesc := !completionNoDesc
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletionV2(out, withDesc)
		case "zsh":
			if withDesc {
				return rootCmd.GenZshCompletion(out)
			}
			return rootCmd.GenZshCompletionNoDesc(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, withDesc)
		case "powershell":
			if withDesc {
				return rootCmd.GenPowerShellCompletionWithDesc(out)
			}
			return rootCmd.GenPowerShellCompletion(out)
		}
		return nil
	},
}

func init() {
	completionCmd.Flags().BoolVar(&completionNoDesc, "no-descriptions", false, "Leave flag and command descriptions out of the script")
}
