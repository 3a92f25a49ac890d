package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/openfiscal/munidocs"
	"github.com/openfiscal/munidocs/pipeline"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Entities munidocs.EntityService
	Cache    munidocs.CacheStore
	Store    munidocs.DocumentStore
	Ledger   munidocs.Ledger
	Runner   *pipeline.Runner
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`

	Fetch  FetchCmd  `cmd:"" help:"Discover and download financial documents"`
	Rename RenameCmd `cmd:"" help:"Standardize names of already-downloaded documents"`
	Cache  CacheCmd  `cmd:"" help:"Inspect the discovery cache"`
	Ledger LedgerCmd `cmd:"" help:"Show the rename ledger for an entity"`
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	Entity      []string `short:"e" help:"Process only the named entities (repeatable)"`
	Top         int      `short:"t" help:"Process only the N most populous entities"`
	DryRun      bool     `short:"n" help:"Report what would be downloaded without writing anything"`
	Concurrency int      `short:"c" default:"3" help:"Concurrent entity limit"`
}

// RenameCmd is the "rename" subcommand.
type RenameCmd struct {
	Entity []string `short:"e" help:"Process only the named entities (repeatable)"`
	DryRun bool     `short:"n" help:"Report what would be renamed without moving files or writing the ledger"`
}

// CacheCmd groups the cache inspection subcommands.
type CacheCmd struct {
	Stats CacheStatsCmd `cmd:"" help:"Show aggregate cache statistics"`
	List  CacheListCmd  `cmd:"" help:"List cached entities and their documents"`
}

// CacheStatsCmd is the "cache stats" subcommand.
type CacheStatsCmd struct{}

// CacheListCmd is the "cache list" subcommand.
type CacheListCmd struct {
	Entity string `arg:"" optional:"" help:"Show only this entity's cached documents"`
}

// LedgerCmd is the "ledger" subcommand.
type LedgerCmd struct {
	Entity string `arg:"" help:"Entity name"`
}
