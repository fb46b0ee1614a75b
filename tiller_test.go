package main

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

// confFor runs the command line with args and returns the config it builds.
func confFor(t *testing.T, args ...string) (*SiteConf, error) {
	t.Helper()
	var conf *SiteConf
	cmd := newCommand()
	cmd.Action = func(_ context.Context, c *cli.Command) error {
		var err error
		conf, err = confFromCommand(c)
		return err
	}
	err := cmd.Run(context.Background(), append([]string{"tiller"}, args...))
	return conf, err
}

func TestConfFromCommand_Flags(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "site")
	require.NoError(t, os.WriteFile(filepath.Join(in, defaultConfFile), []byte("base_url: https://example.com\nworkers: 2\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(in, indexFragmentMD), []byte("hi\n"), 0o644))

	conf, err := confFor(t, "--indir", in, "--outdir", out, "--workers", "3", "--log-level", "debug")
	require.NoError(t, err)

	assert.Equal(t, in, conf.InDir)
	assert.Equal(t, out, conf.OutDir)
	assert.Equal(t, "https://example.com/", conf.BaseURL)
	assert.Equal(t, 3, conf.Workers)
	assert.Equal(t, slog.LevelDebug, conf.LogLevel)
	assert.Equal(t, filepath.Join(in, indexFragmentMD), conf.IndexPath)
}

func TestConfFromCommand_DevOverridesBaseURL(t *testing.T) {
	in := t.TempDir()

	conf, err := confFor(t, "-i", in, "-o", t.TempDir(), "--base-url", "https://example.com/", "--dev")
	require.NoError(t, err)
	assert.Equal(t, "/", conf.BaseURL)
	assert.Empty(t, conf.IndexPath)
}

func TestConfFromCommand_ExplicitConfigAndIndex(t *testing.T) {
	dir := t.TempDir()
	confPath := filepath.Join(dir, "elsewhere.yaml")
	require.NoError(t, os.WriteFile(confPath, []byte("author: Someone\n"), 0o644))
	index := filepath.Join(dir, "front.md")

	conf, err := confFor(t, "-i", t.TempDir(), "-o", t.TempDir(), "-c", confPath, "--index", index)
	require.NoError(t, err)
	assert.Equal(t, "Someone", conf.Author)
	assert.Equal(t, index, conf.IndexPath)
}

func TestConfFromCommand_Invalid(t *testing.T) {
	_, err := confFor(t, "-i", t.TempDir(), "-o", t.TempDir(), "--log-level", "loud")
	assert.ErrorContains(t, err, "log level")

	_, err = confFor(t, "-i", t.TempDir(), "-o", t.TempDir(), "--workers=-1")
	assert.Error(t, err)
}

func TestPreviewServer(t *testing.T) {
	conf := newTestConf(t)
	writeTIL(t, conf, "a.md", til("A post", "2024-01-01", "go"))
	require.NoError(t, renderSite(context.Background(), conf, discardLogger()))

	ts := httptest.NewServer(newPreviewServer(conf.OutDir, defaultServeAddr).Handler)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/post/a-post/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/post/missing/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServeSite_StopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, serveSite(ctx, t.TempDir(), "127.0.0.1:0", discardLogger()))
}
