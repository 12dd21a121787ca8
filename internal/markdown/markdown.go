// Package markdown renders news content as sanitized HTML.
package markdown

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

type Parser struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func NewParser() *Parser {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
		),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithHardWraps(),
			renderer.WithNodeRenderers(util.Prioritized(literalHTML{}, 100)),
		),
	)
	return &Parser{md: md, policy: bluemonday.UGCPolicy()}
}

// Parse converts source to HTML and strips anything the UGC policy does not allow.
func (p *Parser) Parse(source []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := p.md.Convert(source, &buf); err != nil {
		return nil, err
	}
	return p.policy.SanitizeBytes(buf.Bytes()), nil
}

// HTML is Parse for templates. On a conversion error the escaped source is returned.
func (p *Parser) HTML(source string) template.HTML {
	out, err := p.Parse([]byte(source))
	if err != nil {
		return template.HTML(template.HTMLEscapeString(source))
	}
	return template.HTML(out)
}

// literalHTML prints raw HTML found in the source as escaped text, so the author's
// words are shown instead of being dropped.
type literalHTML struct{}

func (literalHTML) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindRawHTML, renderRawHTML)
	reg.Register(ast.KindHTMLBlock, renderHTMLBlock)
}

func renderRawHTML(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkSkipChildren, nil
	}
	segs := node.(*ast.RawHTML).Segments
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		_, _ = w.Write(util.EscapeHTML(seg.Value(source)))
	}
	return ast.WalkSkipChildren, nil
}

func renderHTMLBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.HTMLBlock)
	var text bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		text.Write(line.Value(source))
	}
	if n.HasClosure() {
		text.Write(n.ClosureLine.Value(source))
	}
	body := bytes.TrimRight(text.Bytes(), "\r\n")
	_, _ = w.WriteString("<p>")
	for i, line := range bytes.Split(body, []byte("\n")) {
		if i > 0 {
			_, _ = w.WriteString("<br>\n")
		}
		_, _ = w.Write(util.EscapeHTML(bytes.TrimRight(line, "\r")))
	}
	_, _ = w.WriteString("</p>\n")
	return ast.WalkContinue, nil
}

var defaultParser = NewParser()

// Render uses a shared parser; goldmark converters are safe for concurrent use.
func Render(source string) template.HTML {
	return defaultParser.HTML(source)
}
