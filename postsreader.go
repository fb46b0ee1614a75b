package main

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/adrg/frontmatter"
	"github.com/bmatcuk/doublestar/v4"
)

const postFilePattern = "*.md"

// findPostFiles lists the Markdown files at the top of fsys in the order
// fs.ReadDir yields them. Everything else is ignored.
func findPostFiles(fsys fs.FS) ([]string, error) {
	return doublestar.Glob(fsys, postFilePattern, doublestar.WithFilesOnly())
}

// parsePost splits the front matter from the body and converts it into a
// post. Content is left empty; the caller renders the returned body.
func parsePost(source string, raw []byte) (*post, []byte, error) {
	var fm map[string]any
	body, err := frontmatter.Parse(bytes.NewReader(raw), &fm, frontMatterFormats...)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w: %w", source, ErrMalformedFrontMatter, err)
	}

	m, err := metaFromMap(source, fm)
	if err != nil {
		return nil, nil, err
	}

	slug := slugify(m.Title)
	if slug == "" {
		return nil, nil, &FieldError{Source: source, Field: "title", Err: ErrMalformedFrontMatter, Reason: "has no letters or digits"}
	}

	return &post{
		Meta:   m,
		Slug:   slug,
		Source: source,
	}, body, nil
}

func readPostFromFile(fsys fs.FS, name string, md *markdownRenderer) (*post, error) {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, err
	}

	p, body, err := parsePost(name, raw)
	if err != nil {
		return nil, err
	}

	if p.Content, err = md.render(body); err != nil {
		return nil, renderError(name, err)
	}
	return p, nil
}

// readPosts parses and renders every post in dir. The first bad post aborts
// the whole read.
func readPosts(dir string, md *markdownRenderer, logger *slog.Logger) (posts, error) {
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && !info.IsDir()) {
		return nil, fmt.Errorf("%w: expected directory at %s", ErrInputNotFound, dir)
	}
	if err != nil {
		return nil, err
	}

	fsys := os.DirFS(dir)
	files, err := findPostFiles(fsys)
	if err != nil {
		return nil, err
	}

	ps := make(posts, 0, len(files))
	for _, f := range files {
		p, err := readPostFromFile(fsys, f, md)
		if err != nil {
			return nil, err
		}
		logger.Debug("read post", slog.Any("post", p))
		ps = append(ps, p)
	}

	return ps, nil
}
