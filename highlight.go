package main

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

const defaultHighlightTheme = "solarized-dark"

// highlighter turns a fenced code block into HTML. Implementations that emit
// class names instead of inline styles provide the matching stylesheet.
type highlighter interface {
	Highlight(code, lang string) (string, error)
	WriteStylesheet(w io.Writer) error
}

type chromaHighlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

func newChromaHighlighter(theme string) (*chromaHighlighter, error) {
	style, ok := styles.Registry[theme]
	if !ok {
		return nil, fmt.Errorf("unknown highlight theme %q", theme)
	}
	return &chromaHighlighter{
		style:     style,
		formatter: chromahtml.New(chromahtml.WithClasses(true)),
	}, nil
}

func (h *chromaHighlighter) Highlight(code, lang string) (string, error) {
	var lexer chroma.Lexer
	if lang != "" {
		lexer = lexers.Get(lang)
	}
	if lexer == nil {
		return plainCodeBlock(code, lang), nil
	}

	it, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("tokenise %s: %w", lang, err)
	}

	var b strings.Builder
	if err := h.formatter.Format(&b, h.style, it); err != nil {
		return "", fmt.Errorf("highlight %s: %w", lang, err)
	}
	return b.String(), nil
}

func (h *chromaHighlighter) WriteStylesheet(w io.Writer) error {
	return h.formatter.WriteCSS(w, h.style)
}

func plainCodeBlock(code, lang string) string {
	var b strings.Builder
	b.WriteString("<pre><code")
	if lang != "" {
		b.WriteString(` class="language-`)
		b.WriteString(html.EscapeString(lang))
		b.WriteString(`"`)
	}
	b.WriteString(">")
	b.WriteString(html.EscapeString(code))
	b.WriteString("</code></pre>\n")
	return b.String()
}
