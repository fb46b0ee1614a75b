package main

import (
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestConf returns a validated config with an empty tils directory and an
// output directory that does not exist yet.
func newTestConf(t *testing.T) *SiteConf {
	t.Helper()
	conf := newDefaultConf()
	conf.InDir = t.TempDir()
	conf.OutDir = filepath.Join(t.TempDir(), "site")
	require.NoError(t, os.Mkdir(conf.tilsDir(), 0o755))
	require.NoError(t, conf.Validate())
	return conf
}

func writeTIL(t *testing.T, conf *SiteConf, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(conf.tilsDir(), name), []byte(content), 0o644))
}

func til(title, date string, tags ...string) string {
	s := "---\ntitle: " + title + "\ndate: " + date + "\n"
	if len(tags) > 0 {
		s += "tags:\n"
		for _, tag := range tags {
			s += "  - " + tag + "\n"
		}
	}
	return s + "---\nSome text about " + title + ".\n"
}

func readOut(t *testing.T, conf *SiteConf, elem ...string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(append([]string{conf.OutDir}, elem...)...))
	require.NoError(t, err)
	return string(b)
}

// snapshot maps every file below dir to its content.
func snapshot(t *testing.T, dir string) map[string]string {
	t.Helper()
	files := map[string]string{}
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files[rel] = string(b)
		return nil
	})
	require.NoError(t, err)
	return files
}

func postsOf(ps ...*post) posts { return posts(ps) }

func newPost(title, date string, tags ...string) *post {
	return &post{
		Meta:   meta{Title: title, Date: date, Tags: tags},
		Slug:   slugify(title),
		Source: slugify(title) + ".md",
	}
}

func titles(ps posts) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Meta.Title
	}
	return out
}

func mustHighlighter(t *testing.T) *chromaHighlighter {
	t.Helper()
	hl, err := newChromaHighlighter(defaultHighlightTheme)
	require.NoError(t, err)
	return hl
}
