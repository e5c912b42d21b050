// Package colorswap replaces symbolic color tokens in CSS and script sources
// with the concrete values from a palette file.
//
// A palette is a nested YAML or JSON mapping. Nested keys are joined with "/"
// so that
//
//	Gray:
//	  800: "#1F2937"
//	primary: "#3B82F6"
//
// defines the tokens "Gray/800" and "primary".
//
// # Building
//
// Rewrite every stylesheet, script and HTML file under a directory:
//
//	config := colorswap.Config{
//		SourceDir: "src",
//		OutputDir: "build/src",
//		Palette:   "colors.yaml",
//		Includes:  colorswap.DefaultIncludes,
//	}
//	result, err := colorswap.Build(ctx, config)
//
// # Checking
//
// Report where tokens are used without writing anything:
//
//	checkConfig := colorswap.CheckConfig{Config: config, PrintIssuedLines: true}
//	result, err := colorswap.Check(ctx, checkConfig)
//	err = colorswap.WriteOutput(os.Stdout, result, colorswap.OutputIssues, checkConfig)
//
// # CLI Tool
//
//	go install github.com/yacobolo/colorswap/cmd/colorswap@latest
package colorswap
