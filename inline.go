package main

import (
	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// delimitedInline describes an inline span wrapped in a run of exactly
// width copies of char, e.g. ^x^ or __x__, rendered inside tag.
type delimitedInline struct {
	char  byte
	width int
	tag   string
	kind  gast.NodeKind
}

var (
	kindSuperscript = gast.NewNodeKind("Superscript")
	kindUnderline   = gast.NewNodeKind("Underline")

	// Superscript renders ^text^ as <sup>text</sup>.
	superscript = &delimitedInline{char: '^', width: 1, tag: "sup", kind: kindSuperscript}

	// Underline renders __text__ as <u>text</u>. Single underscores stay
	// emphasis; it has to run before the emphasis parser to see the run.
	underline = &delimitedInline{char: '_', width: 2, tag: "u", kind: kindUnderline}
)

type delimitedNode struct {
	gast.BaseInline
	kind gast.NodeKind
}

func (n *delimitedNode) Kind() gast.NodeKind { return n.kind }

func (n *delimitedNode) Dump(source []byte, level int) {
	gast.DumpHelper(n, source, level, nil, nil)
}

func (d *delimitedInline) IsDelimiter(b byte) bool { return b == d.char }

func (d *delimitedInline) CanOpenCloser(opener, closer *parser.Delimiter) bool {
	return opener.Char == closer.Char && opener.Processor == closer.Processor
}

func (d *delimitedInline) OnMatch(consumes int) gast.Node {
	return &delimitedNode{kind: d.kind}
}

func (d *delimitedInline) Trigger() []byte { return []byte{d.char} }

func (d *delimitedInline) Parse(parent gast.Node, block text.Reader, pc parser.Context) gast.Node {
	before := block.PrecendingCharacter()
	line, segment := block.PeekLine()
	node := parser.ScanDelimiter(line, before, d.width, d)
	if node == nil || node.OriginalLength != d.width || before == rune(d.char) {
		return nil
	}
	node.Segment = segment.WithStop(segment.Start + node.OriginalLength)
	block.Advance(node.OriginalLength)
	pc.PushDelimiter(node)
	return node
}

func (d *delimitedInline) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(d.kind, d.render)
}

func (d *delimitedInline) render(w util.BufWriter, source []byte, n gast.Node, entering bool) (gast.WalkStatus, error) {
	if entering {
		_ = w.WriteByte('<')
	} else {
		_, _ = w.WriteString("</")
	}
	_, _ = w.WriteString(d.tag)
	_ = w.WriteByte('>')
	return gast.WalkContinue, nil
}

func (d *delimitedInline) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(util.Prioritized(d, 450)))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(util.Prioritized(d, 500)))
}
