package main

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

type markdownRenderer struct {
	md goldmark.Markdown
}

func newMarkdownRenderer(hl highlighter) *markdownRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Table,
			extension.Footnote,
			extension.Strikethrough,
			superscript,
			underline,
		),
		goldmark.WithRendererOptions(
			renderer.WithNodeRenderers(util.Prioritized(&codeBlockRenderer{hl}, 200)),
		),
	)
	return &markdownRenderer{md}
}

func (m *markdownRenderer) render(in []byte) (string, error) {
	var b bytes.Buffer
	if err := m.md.Convert(in, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// codeBlockRenderer hands fenced code to the highlighter.
type codeBlockRenderer struct {
	hl highlighter
}

func (r *codeBlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
}

func (r *codeBlockRenderer) renderFencedCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)

	var lang string
	if l := n.Language(source); l != nil {
		lang = string(l)
	}

	var code bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		code.Write(line.Value(source))
	}

	html, err := r.hl.Highlight(code.String(), lang)
	if err != nil {
		return ast.WalkStop, err
	}
	_, _ = w.WriteString(html)
	return ast.WalkSkipChildren, nil
}
