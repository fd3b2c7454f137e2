package main

import (
	"context"
	"io"

	"github.com/fwojciec/novelsrc"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	Sources  novelsrc.SourceRegistry
	Presets  novelsrc.PresetRegistry
	Sitemaps novelsrc.SitemapService

	// Fetcher serves requests that belong to no source, such as probing.
	Fetcher novelsrc.Fetcher

	// Renderer, when set, renders detail and chapter pages in a browser
	// and hands the result to the source as commands.
	Renderer novelsrc.Renderer

	// NewWriter creates the exporter used by the download command.
	NewWriter func(dir string) novelsrc.ChapterWriter

	Concurrency int
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config string `short:"c" env:"NOVELSRC_CONFIG" help:"Source definitions file (YAML)"`
	Debug  bool   `help:"Log every request to stderr"`
	Render bool   `help:"Render detail and chapter pages in a headless browser"`

	Sources   SourcesCmd   `cmd:"" help:"List configured sources"`
	List      ListCmd      `cmd:"" help:"Browse a listing of a source"`
	Search    SearchCmd    `cmd:"" help:"Search a source"`
	SearchAll SearchAllCmd `cmd:"" name:"search-all" help:"Search every configured source"`
	Detail    DetailCmd    `cmd:"" help:"Show the details of a title"`
	Chapters  ChaptersCmd  `cmd:"" help:"List the chapters of a title"`
	Read      ReadCmd      `cmd:"" help:"Print the text of a chapter"`
	Download  DownloadCmd  `cmd:"" help:"Save chapters of a title as markdown files"`
	Probe     ProbeCmd     `cmd:"" help:"Detect the theme a site is built on"`
	Discover  DiscoverCmd  `cmd:"" help:"Discover title URLs from a site's sitemaps"`
}

// SourcesCmd is the "sources" subcommand.
type SourcesCmd struct{}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Source   string `arg:"" help:"Source ID"`
	Listing  string `short:"l" help:"Listing name (default: first listing)"`
	Page     int    `short:"p" default:"1" help:"Page to fetch"`
	All      bool   `short:"a" help:"Walk pages until exhausted"`
	MaxPages int    `default:"10" help:"Page budget for --all"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Source string `arg:"" help:"Source ID"`
	Query  string `arg:"" help:"Search text"`
	Page   int    `short:"p" default:"1" help:"Page to fetch"`
}

// SearchAllCmd is the "search-all" subcommand.
type SearchAllCmd struct {
	Query string `arg:"" help:"Search text"`
}

// DetailCmd is the "detail" subcommand.
type DetailCmd struct {
	Source string `arg:"" help:"Source ID"`
	Key    string `arg:"" help:"Title key or URL"`
}

// ChaptersCmd is the "chapters" subcommand.
type ChaptersCmd struct {
	Source string `arg:"" help:"Source ID"`
	Key    string `arg:"" help:"Title key or URL"`
}

// ReadCmd is the "read" subcommand.
type ReadCmd struct {
	Source string `arg:"" help:"Source ID"`
	Key    string `arg:"" help:"Chapter key or URL"`
	Hash   bool   `help:"Print only the content hash"`
}

// DownloadCmd is the "download" subcommand.
type DownloadCmd struct {
	Source string  `arg:"" help:"Source ID"`
	Key    string  `arg:"" help:"Title key or URL"`
	Out    string  `short:"o" default:"." help:"Output directory"`
	From   float64 `help:"First chapter number to save"`
	To     float64 `help:"Last chapter number to save"`
}

// ProbeCmd is the "probe" subcommand.
type ProbeCmd struct {
	URL string `arg:"" help:"Page URL"`
}

// DiscoverCmd is the "discover" subcommand.
type DiscoverCmd struct {
	URL     string   `arg:"" help:"Site URL"`
	Include []string `short:"i" help:"Only URLs matching regex (repeatable)"`
	Exclude []string `short:"x" help:"Skip URLs matching regex (repeatable)"`
	Since   string   `help:"Only URLs modified on or after this date (YYYY-MM-DD)"`
}
