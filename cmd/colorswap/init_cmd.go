package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .colorswap.yaml config file",
	Long:  `Create a .colorswap.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(defaultConfigFile); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", defaultConfigFile)
		}

		if err := os.WriteFile(defaultConfigFile, []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", defaultConfigFile)
		return nil
	},
}

const defaultConfig = `# colorswap configuration
# Precedence: flags > COLORSWAP_* environment variables > this file

# Palette file (.yaml, .yml or .json); nested groups become "Group/shade" tokens
palette: colors.yaml

# Inline tokens, merged over the palette file
# colors:
#   primary: "#3B82F6"
#   Gray:
#     800: "#1F2937"

source: src
output-dir: ""           # empty rewrites files in place
include:
  - "**/*.css"
  - "**/*.scss"
  - "**/*.less"
  - "**/*.js"
  - "**/*.jsx"
  - "**/*.ts"
  - "**/*.tsx"
  - "**/*.html"
exclude:
  - "**/node_modules/**"
  - "**/vendor/**"
  - "**/dist/**"
  - "**/build/**"
  - "**/.next/**"
workers: 0               # 0 = number of CPUs
file-timeout: 10s
log-level: warn

# Check settings
check:
  strict: false
  output-format: issues  # issues | summary | full | json | markdown
  max-issues-per-linter: 0 # 0 = unlimited
  max-same-issues: 0     # 0 = unlimited
  print-lines: true
  print-linter-name: true

# Type declarations
types:
  format: ts             # ts | go
  output: colors.d.ts
  package: colors

watch:
  debounce: 300ms
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
