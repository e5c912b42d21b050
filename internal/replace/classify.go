package replace

import (
	"path/filepath"
	"strings"
)

// Kind selects the engine a file is routed to
type Kind int

// File kinds
const (
	KindNone Kind = iota // passed through unmodified
	KindCSS
	KindJS
	KindHTML
)

func (k Kind) String() string {
	switch k {
	case KindCSS:
		return "css"
	case KindJS:
		return "js"
	case KindHTML:
		return "html"
	default:
		return "none"
	}
}

var (
	cssExtensions  = []string{"css", "scss", "sass", "less", "styl", "stylus"}
	jsExtensions   = []string{"js", "jsx", "ts", "tsx"}
	htmlExtensions = []string{"html", "htm"}
)

// IsCSSFile reports whether path is a stylesheet (css, scss, sass, less, styl, stylus)
func IsCSSFile(path string) bool {
	return hasExtension(path, cssExtensions)
}

// IsJSFile reports whether path is a script (js, jsx, ts, tsx)
func IsJSFile(path string) bool {
	return hasExtension(path, jsExtensions)
}

// IsHTMLFile reports whether path is markup (html, htm)
func IsHTMLFile(path string) bool {
	return hasExtension(path, htmlExtensions)
}

// Classify returns the kind of engine that handles path
func Classify(path string) Kind {
	switch {
	case IsCSSFile(path):
		return KindCSS
	case IsJSFile(path):
		return KindJS
	case IsHTMLFile(path):
		return KindHTML
	default:
		return KindNone
	}
}

func hasExtension(path string, extensions []string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return false
	}
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}
