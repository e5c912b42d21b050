package replace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		css  bool
		js   bool
		html bool
		kind Kind
	}{
		{path: "a.css", css: true, kind: KindCSS},
		{path: "a.scss", css: true, kind: KindCSS},
		{path: "src/theme.sass", css: true, kind: KindCSS},
		{path: "a.less", css: true, kind: KindCSS},
		{path: "a.styl", css: true, kind: KindCSS},
		{path: "a.stylus", css: true, kind: KindCSS},
		{path: "A.CSS", css: true, kind: KindCSS},
		{path: "a.js", js: true, kind: KindJS},
		{path: "a.jsx", js: true, kind: KindJS},
		{path: "a.ts", js: true, kind: KindJS},
		{path: "components/Button.tsx", js: true, kind: KindJS},
		{path: "index.html", html: true, kind: KindHTML},
		{path: "a.htm", html: true, kind: KindHTML},
		{path: "README.md", kind: KindNone},
		{path: "a.css.map", kind: KindNone},
		{path: "Makefile", kind: KindNone},
		{path: "css", kind: KindNone},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.css, IsCSSFile(tt.path))
			assert.Equal(t, tt.js, IsJSFile(tt.path))
			assert.Equal(t, tt.html, IsHTMLFile(tt.path))
			assert.Equal(t, tt.kind, Classify(tt.path))
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "css", KindCSS.String())
	assert.Equal(t, "js", KindJS.String())
	assert.Equal(t, "html", KindHTML.String())
	assert.Equal(t, "none", KindNone.String())
}
