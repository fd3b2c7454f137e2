package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/novelsrc"
	"github.com/fwojciec/novelsrc/dateparser"
	"github.com/fwojciec/novelsrc/feed"
	"github.com/fwojciec/novelsrc/fs"
	"github.com/fwojciec/novelsrc/goquery"
	"github.com/fwojciec/novelsrc/htmltomarkdown"
	novelhttp "github.com/fwojciec/novelsrc/http"
	"github.com/fwojciec/novelsrc/jsonparser"
	"github.com/fwojciec/novelsrc/pipeline"
	"github.com/fwojciec/novelsrc/readability"
	"github.com/fwojciec/novelsrc/rod"
	novelslog "github.com/fwojciec/novelsrc/slog"
	"github.com/fwojciec/novelsrc/trafilatura"
	"github.com/fwojciec/novelsrc/yaml"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Closers are released by Close in reverse order.
	closers []io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var first error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	m.closers = nil
	return first
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}
	deps.NewWriter = func(dir string) novelsrc.ChapterWriter {
		return fs.NewChapterWriter(dir)
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("novelsrc"),
		kong.Description("Browse and read novel sites described by declarative source definitions"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'novelsrc --help' to see available commands")
	}
	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	var file yaml.File
	if cli.Config != "" {
		f, err := yaml.LoadConfig(cli.Config)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Set NOVELSRC_CONFIG or pass --config with a source definitions file")
			return err
		}
		file = *f
	}
	settings := file.Settings

	defer m.Close()

	var fetcher novelsrc.Fetcher = novelhttp.NewFetcher(fetcherOptions(settings)...)
	fetcher = novelslog.NewLoggingFetcher(fetcher, logger)
	if settings.CacheTTL >= 0 {
		fetcher = novelhttp.NewCachingFetcher(fetcher, novelhttp.WithTTL(cacheTTL(settings)))
	}
	m.closers = append(m.closers, fetcher)
	deps.Fetcher = fetcher

	presets := novelslog.NewLoggingRegistry(goquery.NewDefaultRegistry(), logger)
	deps.Presets = presets
	deps.Sitemaps = novelslog.NewLoggingSitemapService(novelhttp.NewSitemapService(sitemapOptions(settings)...), logger)

	governor := pipeline.NewGovernor(settings.RateLimit.Limit())
	m.closers = append(m.closers, governor)

	defs, err := file.Definitions(presets)
	if err != nil {
		return err
	}
	registry := &pipeline.Registry{}
	m.closers = append(m.closers, registry)
	for _, def := range defs {
		governor.SetLimit(def.Config.ID, def.Config.RateLimit)
		src, err := pipeline.New(def.Config, fetcher, newParser(def),
			pipeline.WithGovernor(governor),
			pipeline.WithLogFunc(func(format string, args ...any) {
				logger.Debug(fmt.Sprintf(format, args...), "source", def.Config.ID)
			}),
		)
		if err != nil {
			return err
		}
		if err := registry.Register(novelslog.NewLoggingSource(src, logger)); err != nil {
			return err
		}
	}
	deps.Sources = registry

	deps.Concurrency = settings.Concurrency
	if deps.Concurrency <= 0 {
		deps.Concurrency = pipeline.DefaultConcurrency
	}

	if cli.Render || settings.Render {
		var browserOpts []rod.ManagerOption
		if settings.Proxy != "" {
			browserOpts = append(browserOpts, rod.WithProxy(settings.Proxy))
		}
		if settings.BrowserDataDir != "" {
			browserOpts = append(browserOpts, rod.WithUserDataDir(settings.BrowserDataDir))
		}
		opts := []rod.Option{rod.WithBrowserOptions(browserOpts...)}
		if settings.Timeout > 0 {
			opts = append(opts, rod.WithRenderTimeout(settings.Timeout))
		}
		renderer, err := rod.NewRenderer(opts...)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		deps.Renderer = novelslog.NewLoggingRenderer(renderer, logger)
		m.closers = append(m.closers, deps.Renderer)
	}

	return kongCtx.Run(deps)
}

func fetcherOptions(s yaml.Settings) []novelhttp.Option {
	var opts []novelhttp.Option
	if s.Timeout > 0 {
		opts = append(opts, novelhttp.WithTimeout(s.Timeout))
	}
	if s.UserAgent != "" {
		opts = append(opts, novelhttp.WithUserAgent(s.UserAgent))
	}
	return opts
}

func sitemapOptions(s yaml.Settings) []novelhttp.SitemapOption {
	if s.UserAgent == "" {
		return nil
	}
	return []novelhttp.SitemapOption{novelhttp.WithSitemapUserAgent(s.UserAgent)}
}

func cacheTTL(s yaml.Settings) time.Duration {
	if s.CacheTTL > 0 {
		return s.CacheTTL
	}
	return novelhttp.DefaultCacheTTL
}

// newParser builds the document parser a definition asks for. Date
// parsing follows the source language.
func newParser(def yaml.Definition) novelsrc.Parser {
	var dateOpts []dateparser.Option
	if def.Config.Lang != "" {
		dateOpts = append(dateOpts, dateparser.WithLanguages(def.Config.Lang))
	}
	dates := dateparser.NewParser(dateOpts...)

	html := &goquery.Parser{
		Converter: htmltomarkdown.NewConverter(),
		Extractor: trafilatura.NewExtractor(trafilatura.WithFallback(readability.NewExtractor())),
		Dates:     dates,
	}
	switch def.Parser {
	case yaml.ParserJSON:
		return &jsonparser.Parser{Dates: dates}
	case yaml.ParserFeed:
		return feed.NewParser(html)
	default:
		return html
	}
}
