package main

import (
	"context"
	"io"

	"github.com/progdex/progdex"
	"github.com/progdex/progdex/fs"
	"github.com/progdex/progdex/pipeline"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Store    *fs.Store
	Programs progdex.ProgramService
	Pipeline *pipeline.Pipeline
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Scrape       ScrapeCmd       `cmd:"" help:"Extract programs from university page URLs and merge them into the database"`
	List         ListCmd         `cmd:"" help:"List programs in the database"`
	Search       SearchCmd       `cmd:"" help:"Search programs by keyword"`
	Universities UniversitiesCmd `cmd:"" help:"List scraped universities"`
	Stats        StatsCmd        `cmd:"" help:"Show database statistics"`
	Export       ExportCmd       `cmd:"" help:"Export all programs as JSON or CSV"`
	Clear        ClearCmd        `cmd:"" help:"Reset the database to empty"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URLs        []string `arg:"" name:"url" help:"University page URLs"`
	Provider    string   `default:"openai" enum:"openai,gemini" help:"Extraction provider (openai or gemini)"`
	Model       string   `help:"Override the provider's default model"`
	Reader      bool     `help:"Use main-content extraction instead of full-page text"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent URL limit"`
	MaxChars    int      `default:"8000" help:"Maximum page text length sent for extraction"`
	Verbose     bool     `short:"v" help:"Log fetch and merge details"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	University string `short:"u" help:"Only programs for this university"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query string `arg:"" help:"Keyword to search for"`
}

// UniversitiesCmd is the "universities" subcommand.
type UniversitiesCmd struct{}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct{}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Format string `default:"json" enum:"json,csv" help:"Export format (json or csv)"`
	Out    string `short:"o" help:"Write to file instead of stdout"`
}

// ClearCmd is the "clear" subcommand.
type ClearCmd struct {
	Force bool `help:"Confirm deletion of all data"`
}
