package colorswap

import (
	"bytes"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/rs/zerolog"
	"github.com/yacobolo/colorswap/internal/palette"
)

// Type declaration formats
const (
	TypesFormatTS = "ts"
	TypesFormatGo = "go"
)

// TypesConfig configures GenerateTypes
type TypesConfig struct {
	Palette      string
	InlineColors map[string]any
	Format       string // "ts" (default) or "go"
	Output       string // "colors.d.ts" or "colors/colors.go" by default
	PackageName  string // Go package name (default: "colors")
	Logger       zerolog.Logger
}

// TypesResult describes the written declaration file
type TypesResult struct {
	Path     string
	Tokens   int
	Written  bool
	Warnings []string
}

func (c TypesConfig) withDefaults() TypesConfig {
	if c.Format == "" {
		c.Format = TypesFormatTS
	}
	if c.PackageName == "" {
		c.PackageName = "colors"
	}
	if c.Output == "" {
		switch c.Format {
		case TypesFormatGo:
			c.Output = filepath.Join(c.PackageName, c.PackageName+".go")
		default:
			c.Output = "colors.d.ts"
		}
	}
	return c
}

// GenerateTypes writes token declarations so editors can complete color
// names. Nothing is written when the palette is empty.
func GenerateTypes(config TypesConfig) (*TypesResult, error) {
	config = config.withDefaults()

	tokens, err := palette.LoadTokens(config.Palette, config.InlineColors)
	if err != nil {
		return nil, fmt.Errorf("load palette: %w", err)
	}

	result := &TypesResult{Path: config.Output, Tokens: len(tokens)}
	if len(tokens) == 0 {
		config.Logger.Warn().Str("palette", config.Palette).Msg("no color tokens found, no types written")
		result.Warnings = append(result.Warnings, "no color tokens found in palette, no types written")
		return result, nil
	}

	var content []byte
	switch config.Format {
	case TypesFormatTS:
		content = renderTypeScript(tokens)
	case TypesFormatGo:
		var warnings []string
		content, warnings, err = renderGo(tokens, config.PackageName)
		if err != nil {
			return nil, err
		}
		result.Warnings = append(result.Warnings, warnings...)
	default:
		return nil, fmt.Errorf("unknown types format %q (want %q or %q)", config.Format, TypesFormatTS, TypesFormatGo)
	}

	if dir := filepath.Dir(config.Output); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(config.Output, content, 0644); err != nil {
		return nil, fmt.Errorf("failed to write types: %w", err)
	}

	result.Written = true
	config.Logger.Info().Str("path", config.Output).Int("tokens", len(tokens)).Msg("types written")
	return result, nil
}

// renderTypeScript emits a ColorName union and widens the color-valued CSS
// properties to accept it
func renderTypeScript(tokens palette.TokenMap) []byte {
	var buf bytes.Buffer

	buf.WriteString("// Code generated by colorswap. DO NOT EDIT.\n\n")
	buf.WriteString("export type ColorName =\n")
	for _, token := range sortedTokenNames(tokens) {
		fmt.Fprintf(&buf, "  | %s\n", strconv.Quote(token))
	}
	buf.WriteString(";\n\n")

	buf.WriteString("declare module \"csstype\" {\n")
	buf.WriteString("  interface Properties {\n")
	for _, prop := range []string{"color", "backgroundColor", "borderColor", "outlineColor", "fill", "stroke"} {
		fmt.Fprintf(&buf, "    %s?: ColorName | (string & {});\n", prop)
	}
	buf.WriteString("  }\n")
	buf.WriteString("}\n")

	return buf.Bytes()
}

// renderGo emits one constant per token plus a lookup map. Tokens whose Go
// names collide are skipped with a warning.
func renderGo(tokens palette.TokenMap, pkg string) ([]byte, []string, error) {
	var buf bytes.Buffer
	var warnings []string

	buf.WriteString("// Code generated by colorswap. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "// Package %s holds the palette color values.\n", pkg)
	fmt.Fprintf(&buf, "package %s\n\n", pkg)

	// the lookup map owns its name
	seen := map[string]string{"Tokens": "Tokens"}

	buf.WriteString("const (\n")
	var kept []string
	for _, token := range sortedTokenNames(tokens) {
		name := tokenGoName(token)
		if other, ok := seen[name]; ok {
			warnings = append(warnings, fmt.Sprintf("token %q collides with %q as Go name %s, skipped", token, other, name))
			continue
		}
		seen[name] = token
		kept = append(kept, token)
		fmt.Fprintf(&buf, "\t%s = %s // %s\n", name, strconv.Quote(tokens[token]), token)
	}
	buf.WriteString(")\n\n")

	buf.WriteString("// Tokens maps palette token names to their values.\n")
	buf.WriteString("var Tokens = map[string]string{\n")
	for _, token := range kept {
		fmt.Fprintf(&buf, "\t%s: %s,\n", strconv.Quote(token), tokenGoName(token))
	}
	buf.WriteString("}\n")

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, nil, fmt.Errorf("format generated code: %w", err)
	}
	return formatted, warnings, nil
}

// tokenGoName converts a token name to an exported Go identifier:
// "Gray/800" → "Gray800", "brand-primary" → "BrandPrimary", "800" → "Color800"
func tokenGoName(token string) string {
	parts := strings.FieldsFunc(token, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	for i, part := range parts {
		runes := []rune(part)
		runes[0] = unicode.ToUpper(runes[0])
		parts[i] = string(runes)
	}

	name := strings.Join(parts, "")
	if name == "" || !unicode.IsLetter([]rune(name)[0]) {
		name = "Color" + name
	}
	return name
}
