package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"
)

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		slog.Error("tiller failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:   "tiller",
		Usage:  "Render a directory of TILs into a static site",
		Action: run,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "indir",
				Aliases:     []string{"i"},
				Usage:       "Directory to render from; must contain a tils subdirectory",
				DefaultText: "current directory",
				Sources:     cli.EnvVars("TILLER_INDIR"),
			},
			&cli.StringFlag{
				Name:        "index",
				Usage:       "Markdown fragment to put on the index page",
				DefaultText: "{indir}/" + indexFragmentMD + ", if present",
			},
			&cli.StringFlag{
				Name:        "outdir",
				Aliases:     []string{"o"},
				Usage:       "Directory to render into",
				DefaultText: "$CWD/" + defaultOutDirRel,
				Sources:     cli.EnvVars("TILLER_OUTDIR"),
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to the site config file",
				DefaultText: "{indir}/" + defaultConfFile,
				Sources:     cli.EnvVars("TILLER_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "base-url",
				Usage:   "Base URL to render links from, overrides the config",
				Sources: cli.EnvVars("TILLER_BASE_URL"),
			},
			&cli.BoolFlag{
				Name:  "dev",
				Usage: "Render links relative to / for local previews",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Number of pages rendered in parallel, overrides the config",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error, overrides the config",
			},
			&cli.BoolFlag{
				Name:  "serve",
				Usage: "Serve the rendered site until interrupted; implies --dev",
			},
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Address to serve on",
				Value: defaultServeAddr,
			},
		},
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	conf, err := confFromCommand(cmd)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: conf.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Debug("Configuration loaded",
		slog.String("indir", conf.InDir),
		slog.String("outdir", conf.OutDir),
		slog.String("base_url", conf.BaseURL),
		slog.String("highlight_theme", conf.HighlightTheme),
		slog.Int("workers", conf.Workers))

	if err := renderSite(ctx, conf, logger); err != nil {
		return err
	}
	if cmd.Bool("serve") {
		return serveSite(ctx, conf.OutDir, cmd.String("addr"), logger)
	}
	return nil
}

func confFromCommand(cmd *cli.Command) (*SiteConf, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	inDir := cmd.String("indir")
	if inDir == "" {
		inDir = cwd
	}

	confPath := cmd.String("config")
	if confPath == "" {
		confPath = filepath.Join(inDir, defaultConfFile)
	}
	conf, err := readConf(confPath)
	if err != nil {
		return nil, err
	}

	conf.InDir = inDir
	conf.OutDir = cmd.String("outdir")
	if conf.OutDir == "" {
		conf.OutDir = filepath.Join(cwd, defaultOutDirRel)
	}
	conf.IndexPath = cmd.String("index")
	if conf.IndexPath == "" {
		conf.IndexPath = defaultIndexPath(inDir)
	}

	if cmd.IsSet("base-url") {
		conf.BaseURL = cmd.String("base-url")
	}
	if cmd.Bool("dev") || cmd.Bool("serve") {
		conf.BaseURL = "/"
	}
	if cmd.IsSet("workers") {
		conf.Workers = int(cmd.Int("workers"))
	}
	if cmd.IsSet("log-level") {
		if err := conf.LogLevel.UnmarshalText([]byte(cmd.String("log-level"))); err != nil {
			return nil, fmt.Errorf("invalid log level: %w", err)
		}
	}

	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return conf, nil
}

func defaultIndexPath(inDir string) string {
	path := filepath.Join(inDir, indexFragmentMD)
	if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
		return path
	}
	return ""
}

func renderSite(ctx context.Context, conf *SiteConf, logger *slog.Logger) error {
	site, err := ReadSite(conf, logger)
	if err != nil {
		return err
	}

	logger.Info("Writing site to " + conf.OutDir)
	return site.RenderAll(ctx)
}
