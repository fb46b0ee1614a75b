// Command tiller renders a directory of dated, tagged Markdown notes
// ("TILs") into a static site: an index, one page per tag, one page per
// note, an RSS feed and an Atom feed.
//
// Notes live in <indir>/tils/*.md and start with a YAML (---) or TOML (+++)
// front matter block carrying title, date, tags and an optional origin URL.
// An optional <indir>/_index.md is rendered onto the index page, and an
// optional <indir>/tiller.yaml holds site settings.
//
// Templates, the stylesheet and the script are compiled into the binary.
package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	atom "github.com/thomas11/atomgenerator"
	"golang.org/x/sync/errgroup"
)

const (
	// Number of posts on the index page and in the feeds.
	maxRecentPosts = 20

	siteTitle      = "TILs"
	highlightCSS   = "chroma.css"
	categoryOutDir = "category"
	postOutDir     = "post"
)

type Site struct {
	posts         posts
	conf          *SiteConf
	hl            highlighter
	indexFragment string
	// nil when the site has no valid Atom feed.
	atomFeed      *atom.Feed
	logger        *slog.Logger
}

// ReadSite parses and renders every post and the index fragment. Nothing is
// written; any bad post fails the whole read.
func ReadSite(conf *SiteConf, logger *slog.Logger) (*Site, error) {
	hl, err := newChromaHighlighter(conf.HighlightTheme)
	if err != nil {
		return nil, err
	}
	md := newMarkdownRenderer(hl)

	ps, err := readPosts(conf.tilsDir(), md, logger)
	if err != nil {
		return nil, err
	}
	if err := checkSlugs(ps); err != nil {
		return nil, err
	}

	thisSite := Site{
		posts:  ps,
		conf:   conf,
		hl:     hl,
		logger: logger,
	}
	thisSite.atomFeed = thisSite.buildAtomFeed()

	if conf.IndexPath != "" {
		raw, err := os.ReadFile(conf.IndexPath)
		if err != nil {
			return nil, err
		}
		if thisSite.indexFragment, err = md.render(raw); err != nil {
			return nil, renderError(conf.IndexPath, err)
		}
	}

	return &thisSite, nil
}

// Every post gets its own directory, so two titles with the same slug
// would overwrite each other.
func checkSlugs(ps posts) error {
	seen := make(map[string]*post, len(ps))
	for _, p := range ps {
		if other, ok := seen[p.Slug]; ok {
			return fmt.Errorf("%w: %s and %s both render to %s/%s", ErrSlugCollision, other.Source, p.Source, postOutDir, p.Slug)
		}
		seen[p.Slug] = p
	}
	return nil
}

func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, os.FileMode(0775)); err != nil {
		return writeError(dir, err)
	}
	if err := os.WriteFile(path, data, os.FileMode(0664)); err != nil {
		return writeError(path, err)
	}
	return nil
}

func (s *Site) outPath(elem ...string) string {
	return filepath.Join(append([]string{s.conf.OutDir}, elem...)...)
}

func (s *Site) RenderAll(ctx context.Context) error {
	if err := os.MkdirAll(s.conf.OutDir, os.FileMode(0775)); err != nil {
		return writeError(s.conf.OutDir, err)
	}

	if err := s.CopyStaticFiles(); err != nil {
		return err
	}
	if err := s.RenderHtml(ctx); err != nil {
		return err
	}
	if err := s.RenderRSS(); err != nil {
		return err
	}
	return s.RenderAtom()
}

// CopyStaticFiles writes the bundled assets and the highlighter stylesheet.
func (s *Site) CopyStaticFiles() error {
	if err := copyStaticFiles(s.conf.OutDir); err != nil {
		return writeError(s.conf.OutDir, err)
	}

	var css bytes.Buffer
	if err := s.hl.WriteStylesheet(&css); err != nil {
		return renderError(highlightCSS, err)
	}
	return writeFile(s.outPath(highlightCSS), css.Bytes())
}

func (s *Site) templateParam(title, id string) templateParam {
	return templateParam{
		Conf:      s.conf,
		PageTitle: title,
		FileId:    id,
		HasAtom:   s.atomFeed != nil,
	}
}

func (s *Site) RenderHtml(ctx context.Context) error {
	engine, err := newTemplateEngine(s.conf.BaseURL)
	if err != nil {
		return err
	}

	// All views are computed before any page is rendered; workers only read
	// them.
	byCat := s.posts.byTag()
	s.logger.Debug("grouped posts", slog.String("categories", byCat.String()))

	// Render index.html with the most recent posts.
	b, err := engine.renderIndex(
		s.templateParam(siteTitle, "index"),
		s.indexFragment, byCat.counts(), s.posts.recent(maxRecentPosts))
	if err != nil {
		return err
	}
	if err := writeFile(s.outPath("index.html"), b); err != nil {
		return err
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.conf.Workers)

	// Render the category pages.
	for _, c := range byCat {
		c := c // per-iteration copy; go.mod targets go 1.21
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			b, err := engine.renderCategory(s.templateParam(c.Tag, c.Tag), c)
			if err != nil {
				return err
			}
			return writeFile(s.outPath(categoryOutDir, c.Tag, "index.html"), b)
		})
	}

	// Render the posts, in the order they were read.
	for _, p := range s.posts {
		p := p // per-iteration copy; go.mod targets go 1.21
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			b, err := engine.renderPost(s.templateParam(p.Meta.Title, p.Slug), p)
			if err != nil {
				return err
			}
			return writeFile(s.outPath(postOutDir, p.Slug, "index.html"), b)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	s.logger.Info("Rendered pages",
		slog.Int("posts", len(s.posts)),
		slog.Int("categories", len(byCat)))
	return nil
}
