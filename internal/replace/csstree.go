package replace

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Parse failures that send a stylesheet to the pattern-only fallback
var (
	errUnbalanced  = errors.New("unbalanced brackets")
	errUnclosed    = errors.New("unclosed block")
	errBadToken    = errors.New("malformed string or url")
	errLossyLexing = errors.New("lexer did not reproduce the input")
)

// nodeKind classifies nodes of the concrete syntax tree
type nodeKind int

const (
	nodeToken       nodeKind = iota // leaf never rewritten
	nodeIdent                       // identifier inside a declaration value
	nodeString                      // quoted string inside a declaration value
	nodeRaw                         // trimmed custom property value
	nodeDeclaration                 // property: value;
	nodeStatement                   // at-rule without block, or stray tokens
	nodeRule                        // prelude { block }
	nodeBlock                       // { ... }
	nodeStylesheet
)

// cssNode is a concrete syntax tree node. Leaves keep their exact source text,
// so writing the tree back reproduces the input byte for byte until a leaf is
// rewritten.
type cssNode struct {
	kind     nodeKind
	text     string
	children []*cssNode
}

func (n *cssNode) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *cssNode) write(b *strings.Builder) {
	if len(n.children) == 0 {
		b.WriteString(n.text)
		return
	}
	for _, c := range n.children {
		c.write(b)
	}
}

// walk visits n and its descendants depth first
func (n *cssNode) walk(fn func(*cssNode)) {
	fn(n)
	for _, c := range n.children {
		c.walk(fn)
	}
}

type cssToken struct {
	tt   css.TokenType
	text string
}

func leaf(kind nodeKind, text string) *cssNode {
	return &cssNode{kind: kind, text: text}
}

// parseStylesheet lexes content and builds its syntax tree
func parseStylesheet(content string) (*cssNode, error) {
	tokens, err := lexCSS(content)
	if err != nil {
		return nil, err
	}

	p := &cssParser{tokens: tokens}
	children, err := p.parseStatements(false)
	if err != nil {
		return nil, err
	}
	return &cssNode{kind: nodeStylesheet, children: children}, nil
}

func lexCSS(content string) ([]cssToken, error) {
	lexer := css.NewLexer(parse.NewInputString(content))

	var tokens []cssToken
	var seen strings.Builder

	for {
		tt, text := lexer.Next()
		if tt == css.ErrorToken {
			if err := lexer.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("lex: %w", err)
			}
			break
		}

		if tt == css.BadStringToken || tt == css.BadURLToken {
			return nil, errBadToken
		}

		tokens = append(tokens, cssToken{tt: tt, text: string(text)})
		seen.Write(text)
	}

	if seen.String() != content {
		return nil, errLossyLexing
	}
	return tokens, nil
}

type cssParser struct {
	tokens []cssToken
	pos    int
}

// parseStatements reads statements until the closing brace of the enclosing
// block (nested) or the end of input (top level)
func (p *cssParser) parseStatements(nested bool) ([]*cssNode, error) {
	var out []*cssNode
	var pending []cssToken
	depth := 0

	for p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]
		p.pos++

		switch tok.tt {
		case css.LeftParenthesisToken, css.FunctionToken, css.LeftBracketToken:
			depth++
			pending = append(pending, tok)

		case css.RightParenthesisToken, css.RightBracketToken:
			depth--
			if depth < 0 {
				return nil, errUnbalanced
			}
			pending = append(pending, tok)

		case css.SemicolonToken:
			if depth > 0 {
				pending = append(pending, tok)
				continue
			}
			out = appendNode(out, buildStatement(pending, &tok))
			pending = nil

		case css.LeftBraceToken:
			if depth > 0 {
				return nil, errUnbalanced
			}
			block, err := p.parseBlock(tok)
			if err != nil {
				return nil, err
			}
			rule := &cssNode{kind: nodeRule}
			for _, t := range pending {
				rule.children = append(rule.children, leaf(nodeToken, t.text))
			}
			rule.children = append(rule.children, block)
			out = append(out, rule)
			pending = nil

		case css.RightBraceToken:
			if !nested || depth > 0 {
				return nil, errUnbalanced
			}
			out = appendNode(out, buildStatement(pending, nil))
			// leave the brace for parseBlock
			p.pos--
			return out, nil

		default:
			pending = append(pending, tok)
		}
	}

	if nested {
		return nil, errUnclosed
	}
	if depth != 0 {
		return nil, errUnbalanced
	}
	return appendNode(out, buildStatement(pending, nil)), nil
}

func (p *cssParser) parseBlock(open cssToken) (*cssNode, error) {
	children, err := p.parseStatements(true)
	if err != nil {
		return nil, err
	}

	closing := p.tokens[p.pos]
	p.pos++

	block := &cssNode{kind: nodeBlock}
	block.children = append(block.children, leaf(nodeToken, open.text))
	block.children = append(block.children, children...)
	block.children = append(block.children, leaf(nodeToken, closing.text))
	return block, nil
}

func appendNode(nodes []*cssNode, n *cssNode) []*cssNode {
	if n == nil {
		return nodes
	}
	return append(nodes, n)
}

// buildStatement turns the tokens of one statement into a declaration when it
// has a top-level colon, otherwise into an opaque statement
func buildStatement(tokens []cssToken, terminator *cssToken) *cssNode {
	if len(tokens) == 0 && terminator == nil {
		return nil
	}

	colon := -1
	depth := 0
	first := css.ErrorToken
	for i, t := range tokens {
		if first == css.ErrorToken && t.tt != css.WhitespaceToken && t.tt != css.CommentToken {
			first = t.tt
		}
		switch t.tt {
		case css.LeftParenthesisToken, css.FunctionToken, css.LeftBracketToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			depth--
		case css.ColonToken:
			if depth == 0 && colon < 0 {
				colon = i
			}
		}
	}

	if first == css.AtKeywordToken || colon < 0 {
		stmt := &cssNode{kind: nodeStatement}
		for _, t := range tokens {
			stmt.children = append(stmt.children, leaf(nodeToken, t.text))
		}
		if terminator != nil {
			stmt.children = append(stmt.children, leaf(nodeToken, terminator.text))
		}
		if len(stmt.children) == 0 {
			return nil
		}
		return stmt
	}

	decl := &cssNode{kind: nodeDeclaration}
	var property strings.Builder
	for _, t := range tokens[:colon] {
		property.WriteString(t.text)
		decl.children = append(decl.children, leaf(nodeToken, t.text))
	}
	decl.children = append(decl.children, leaf(nodeToken, tokens[colon].text))

	value := tokens[colon+1:]
	if strings.HasPrefix(strings.TrimSpace(property.String()), "--") {
		decl.children = append(decl.children, rawValue(value)...)
	} else {
		for _, t := range value {
			decl.children = append(decl.children, valueLeaf(t))
		}
	}

	if terminator != nil {
		decl.children = append(decl.children, leaf(nodeToken, terminator.text))
	}
	return decl
}

func valueLeaf(t cssToken) *cssNode {
	switch t.tt {
	case css.IdentToken:
		return leaf(nodeIdent, t.text)
	case css.StringToken:
		return leaf(nodeString, t.text)
	default:
		return leaf(nodeToken, t.text)
	}
}

// rawValue keeps a custom property value as one raw node, with the
// surrounding whitespace split off so it survives a rewrite
func rawValue(tokens []cssToken) []*cssNode {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.text)
	}
	text := b.String()

	core := strings.TrimSpace(text)
	if core == "" {
		if text == "" {
			return nil
		}
		return []*cssNode{leaf(nodeToken, text)}
	}

	start := strings.Index(text, core)
	nodes := make([]*cssNode, 0, 3)
	if start > 0 {
		nodes = append(nodes, leaf(nodeToken, text[:start]))
	}
	nodes = append(nodes, leaf(nodeRaw, core))
	if end := start + len(core); end < len(text) {
		nodes = append(nodes, leaf(nodeToken, text[end:]))
	}
	return nodes
}

// unquote strips one leading and one trailing quote character
func unquote(s string) string {
	if s != "" && (s[0] == '"' || s[0] == '\'') {
		s = s[1:]
	}
	if s != "" && (s[len(s)-1] == '"' || s[len(s)-1] == '\'') {
		s = s[:len(s)-1]
	}
	return s
}
