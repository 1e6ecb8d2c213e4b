package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/pagelens/pagelens"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Scraper pagelens.Scraper
	Logger  *slog.Logger
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config string `short:"c" help:"Path to a YAML configuration file" type:"existingfile"`

	Serve  ServeCmd  `cmd:"" help:"Start the HTTP analysis server"`
	Scrape ScrapeCmd `cmd:"" help:"Scrape a single URL and print the result as JSON"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `default:":8080" help:"Listen address"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URL     string   `arg:"" help:"Page URL to analyze"`
	Mode    string   `default:"basic" help:"Scraping mode (basic|advanced|ai_enhanced|comprehensive)"`
	Targets []string `short:"t" help:"Target content types (products, articles, contacts)"`
	Pretty  bool     `short:"p" help:"Indent the JSON output"`
}
