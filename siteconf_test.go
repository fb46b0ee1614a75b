package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConf() *SiteConf {
	conf := newDefaultConf()
	conf.InDir = "in"
	conf.OutDir = "out"
	return conf
}

func TestReadConf_MissingFileUsesDefaults(t *testing.T) {
	conf, err := readConf(filepath.Join(t.TempDir(), "tiller.yaml"))
	require.NoError(t, err)
	assert.Equal(t, newDefaultConf(), conf)
}

func TestReadConf_YAMLWithEnv(t *testing.T) {
	t.Setenv("TILLER_TEST_MASTODON", "https://mastodon.social/@someone")

	path := filepath.Join(t.TempDir(), "tiller.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
base_url: https://example.com/tils
mastodon: ${TILLER_TEST_MASTODON}
author: Someone
highlight_theme: monokai
workers: 4
log_level: debug
top_links:
  - title: About
    url: /about/
  - title: Code
    url: https://example.com/code
`), 0o644))

	conf, err := readConf(path)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/tils", conf.BaseURL)
	assert.Equal(t, "https://mastodon.social/@someone", conf.Mastodon)
	assert.Equal(t, "Someone", conf.Author)
	assert.Equal(t, "monokai", conf.HighlightTheme)
	assert.Equal(t, 4, conf.Workers)
	assert.Equal(t, slog.LevelDebug, conf.LogLevel)
	assert.Equal(t, []Link{{"About", "/about/"}, {"Code", "https://example.com/code"}}, conf.TopLinks)

	conf.InDir, conf.OutDir = "in", "out"
	require.NoError(t, conf.Validate())
	assert.Equal(t, "https://example.com/tils/", conf.BaseURL)
}

func TestReadConf_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiller.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base_url: [unclosed\n"), 0o644))

	_, err := readConf(path)
	assert.ErrorContains(t, err, path)
}

func TestSiteConfValidate_NormalizesBaseURL(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"example.com", "example.com/"},
		{"example.com/", "example.com/"},
		{"https://example.com/tils", "https://example.com/tils/"},
		{"", "/"},
		{"/", "/"},
	}

	for _, tt := range tests {
		conf := validConf()
		conf.BaseURL = tt.in
		require.NoError(t, conf.Validate(), tt.in)
		assert.Equal(t, tt.want, conf.BaseURL, tt.in)
	}
}

func TestSiteConfValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*SiteConf)
	}{
		{"unknown theme", func(c *SiteConf) { c.HighlightTheme = "no-such-theme" }},
		{"negative workers", func(c *SiteConf) { c.Workers = -2 }},
		{"bad mastodon url", func(c *SiteConf) { c.Mastodon = "not a url" }},
		{"link without url", func(c *SiteConf) { c.TopLinks = []Link{{Title: "About"}} }},
		{"link without title", func(c *SiteConf) { c.TopLinks = []Link{{URL: "/about/"}} }},
		{"relative link url", func(c *SiteConf) { c.TopLinks = []Link{{Title: "About", URL: "about/"}} }},
		{"link url not a url", func(c *SiteConf) { c.TopLinks = []Link{{Title: "About", URL: "not a url"}} }},
		{"no outdir", func(c *SiteConf) { c.OutDir = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := validConf()
			tt.modify(conf)
			assert.Error(t, conf.Validate())
		})
	}
}

func TestSiteConfValidate_FillsZeroValues(t *testing.T) {
	conf := &SiteConf{InDir: "in", OutDir: "out"}
	require.NoError(t, conf.Validate())
	assert.Equal(t, "/", conf.BaseURL)
	assert.Equal(t, 1, conf.Workers)
	assert.Equal(t, defaultHighlightTheme, conf.HighlightTheme)
}

func TestLinkValidate(t *testing.T) {
	for _, u := range []string{"/about/", "/", "https://example.com/code", "http://localhost:8080/x"} {
		assert.NoError(t, Link{Title: "x", URL: u}.Validate(), u)
	}
}
