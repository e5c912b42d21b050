package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/yacobolo/colorswap"
	"github.com/yacobolo/colorswap/internal/palette"
)

const (
	defaultConfigFile = ".colorswap.yaml"
	defaultSourceDir  = "src"
	envPrefix         = "COLORSWAP_"
)

// config file sections; env vars starting with one map into it
var configSections = []string{"build", "check", "types", "watch"}

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigFile
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// Only flags set on the command line are loaded; unset flags fall back
	// to the config file and then to the defaults in the build* helpers.
	if err := k.Load(posflag.Provider(cmd.Flags(), ".", nil), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// envKey maps an environment variable to a config key:
//
//	COLORSWAP_OUTPUT_DIR            -> output-dir
//	COLORSWAP_CHECK_STRICT          -> check.strict
//	COLORSWAP_CHECK_MAX_SAME_ISSUES -> check.max-same-issues
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))

	for _, section := range configSections {
		if rest, ok := strings.CutPrefix(key, section+"_"); ok {
			return section + "." + strings.ReplaceAll(rest, "_", "-")
		}
	}
	return strings.ReplaceAll(key, "_", "-")
}

// buildBuildConfig constructs the library's Config struct from koanf state.
func buildBuildConfig(logger zerolog.Logger) colorswap.Config {
	inline := inlineColors()

	return colorswap.Config{
		SourceDir:    getStringWithFallback("source", "build.source", defaultSourceDir),
		OutputDir:    getStringWithFallback("output-dir", "build.output-dir", ""),
		Palette:      palettePath(inline),
		InlineColors: inline,
		Includes:     getStringsWithFallback("include", "build.include", colorswap.DefaultIncludes),
		Excludes:     getStringsWithFallback("exclude", "build.exclude", colorswap.DefaultExcludes),
		Workers:      getIntWithFallback("workers", "build.workers", 0),
		FileTimeout:  getDurationWithFallback("file-timeout", "build.file-timeout", colorswap.DefaultFileTimeout),
		DryRun:       getBoolWithFallback("dry-run", "build.dry-run", false),
		Diff:         getBoolWithFallback("diff", "build.diff", false),
		Logger:       logger,
	}
}

// buildCheckConfig constructs the library's CheckConfig struct from koanf state.
func buildCheckConfig(logger zerolog.Logger) colorswap.CheckConfig {
	return colorswap.CheckConfig{
		Config:             buildBuildConfig(logger),
		Strict:             getBoolWithFallback("strict", "check.strict", false),
		MaxIssuesPerLinter: getIntWithFallback("max-issues-per-linter", "check.max-issues-per-linter", 0),
		MaxSameIssues:      getIntWithFallback("max-same-issues", "check.max-same-issues", 0),
		PrintIssuedLines:   getBoolWithFallback("print-lines", "check.print-lines", true),
		PrintLinterName:    getBoolWithFallback("print-linter-name", "check.print-linter-name", true),
		UseColors:          getBoolWithFallback("color", "color", false),
	}
}

// buildTypesConfig constructs the library's TypesConfig struct from koanf state.
func buildTypesConfig(logger zerolog.Logger) colorswap.TypesConfig {
	inline := inlineColors()

	return colorswap.TypesConfig{
		Palette:      palettePath(inline),
		InlineColors: inline,
		Format:       getStringWithFallback("format", "types.format", colorswap.TypesFormatTS),
		Output:       getStringWithFallback("output", "types.output", ""),
		PackageName:  getStringWithFallback("package", "types.package", "colors"),
		Logger:       logger,
	}
}

// buildWatchConfig constructs the library's WatchConfig struct from koanf state.
func buildWatchConfig(logger zerolog.Logger) colorswap.WatchConfig {
	return colorswap.WatchConfig{
		Build:    buildBuildConfig(logger),
		Debounce: getDurationWithFallback("debounce", "watch.debounce", colorswap.DefaultDebounce),
	}
}

// inlineColors returns the palette given under "colors" in the config file
func inlineColors() map[string]any {
	colors, _ := k.Get("colors").(map[string]any)
	return colors
}

// palettePath resolves the palette file. A missing default palette is not
// an error when inline colors are configured.
func palettePath(inline map[string]any) string {
	path := getStringWithFallback("palette", "palette", palette.DefaultFile)
	if path == palette.DefaultFile && len(inline) > 0 {
		if _, err := os.Stat(path); err != nil {
			return ""
		}
	}
	return path
}

func useColors() bool {
	return colorswap.ColorsEnabled(getBoolWithFallback("color", "color", false))
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getStringsWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringsWithFallback(flagKey, configKey string, defaultVal []string) []string {
	if v := k.Strings(flagKey); len(v) > 0 {
		return v
	}
	if v := k.Strings(configKey); len(v) > 0 {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getIntWithFallback checks the flag key first, then the config file key, then returns the default.
func getIntWithFallback(flagKey, configKey string, defaultVal int) int {
	if k.Exists(flagKey) {
		return k.Int(flagKey)
	}
	if k.Exists(configKey) {
		return k.Int(configKey)
	}
	return defaultVal
}

// getDurationWithFallback checks the flag key first, then the config file key, then returns the default.
func getDurationWithFallback(flagKey, configKey string, defaultVal time.Duration) time.Duration {
	if k.Exists(flagKey) {
		return k.Duration(flagKey)
	}
	if k.Exists(configKey) {
		return k.Duration(configKey)
	}
	return defaultVal
}
