package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/styles"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfFile  = "tiller.yaml"
	tilsDirName      = "tils"
	indexFragmentMD  = "_index.md"
	defaultOutDirRel = "site"
)

// Link is a navigation entry. URL is absolute or starts with "/".
type Link struct {
	Title string `yaml:"title"`
	URL   string `yaml:"url"`
}

func (l Link) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Title, validation.Required),
		validation.Field(&l.URL, validation.Required,
			validation.When(!strings.HasPrefix(l.URL, "/"), is.RequestURL)),
	)
}

type SiteConf struct {
	BaseURL  string `yaml:"base_url"`
	Mastodon string `yaml:"mastodon"`
	TopLinks []Link `yaml:"top_links"`
	// Author of the Atom feed. Defaults to the site title.
	Author string `yaml:"author"`

	HighlightTheme string     `yaml:"highlight_theme"`
	Workers        int        `yaml:"workers"`
	LogLevel       slog.Level `yaml:"log_level"`

	InDir     string `yaml:"-"`
	OutDir    string `yaml:"-"`
	IndexPath string `yaml:"-"`
}

func newDefaultConf() *SiteConf {
	return &SiteConf{
		BaseURL:        "/",
		HighlightTheme: defaultHighlightTheme,
		Workers:        1,
		LogLevel:       slog.LevelInfo,
	}
}

// readConf reads a YAML site configuration on top of the defaults. Environment
// variables in the file are expanded. A missing file leaves the defaults.
func readConf(fileName string) (*SiteConf, error) {
	conf := newDefaultConf()

	rawConf, err := os.ReadFile(fileName)
	if errors.Is(err, fs.ErrNotExist) {
		return conf, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", fileName, err)
	}

	expanded := os.ExpandEnv(string(rawConf))
	if err := yaml.Unmarshal([]byte(expanded), conf); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", fileName, err)
	}
	return conf, nil
}

// Validate normalizes the configuration and checks it.
func (c *SiteConf) Validate() error {
	c.normalize()
	return validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, validation.Required),
		validation.Field(&c.Mastodon, is.URL),
		validation.Field(&c.TopLinks),
		validation.Field(&c.HighlightTheme, validation.Required, validation.By(registeredTheme)),
		validation.Field(&c.Workers, validation.Min(1)),
		validation.Field(&c.InDir, validation.Required),
		validation.Field(&c.OutDir, validation.Required),
	)
}

// All URL joining assumes a terminating slash.
func (c *SiteConf) normalize() {
	c.BaseURL = strings.TrimSpace(c.BaseURL)
	if !strings.HasSuffix(c.BaseURL, "/") {
		c.BaseURL += "/"
	}
	if c.Workers == 0 {
		c.Workers = 1
	}
	if c.HighlightTheme == "" {
		c.HighlightTheme = defaultHighlightTheme
	}
}

func (c *SiteConf) tilsDir() string {
	return filepath.Join(c.InDir, tilsDirName)
}

func registeredTheme(value any) error {
	name, _ := value.(string)
	if _, ok := styles.Registry[name]; !ok {
		return fmt.Errorf("unknown highlight theme %q", name)
	}
	return nil
}
