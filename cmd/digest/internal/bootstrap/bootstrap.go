// Package bootstrap assembles digest modules for the CLI entry point.
package bootstrap

import (
	"fmt"
	"os"
	"strings"

	digest "github.com/goliatone/go-digest"
	"github.com/goliatone/go-digest/internal/di"
	"github.com/goliatone/go-digest/internal/logging/console"
	"github.com/goliatone/go-digest/pkg/interfaces"
)

// DefaultFeedFile is the feed the render mode reads when no path is given.
// The name is inherited from the service this CLI replaces.
const DefaultFeedFile = "date.txt"

// Options captures configuration for digest CLI bootstraps.
type Options struct {
	Addr           string
	BaseURL        string
	ArchiveEnabled bool
	ArchiveDSN     string
	MarkdownDir    string
	Pattern        string
	Recursive      bool
	LogProvider    string
	LogLevel       string
	LogFormat      string
	Verbose        bool
	LoggerProvider interfaces.LoggerProvider
}

// Module wraps the digest module and the logger configured for the CLI run.
type Module struct {
	Module *digest.Module
	Logger interfaces.Logger
}

// BuildModule constructs a digest module from CLI options. Logging defaults
// to off so rendered HTML on stdout stays clean; Verbose routes console logs
// to stderr instead.
func BuildModule(opts Options) (*Module, error) {
	cfg := digest.DefaultConfig()

	if addr := resolveAddr(opts.Addr); addr != "" {
		cfg.Server.Addr = addr
	}
	if baseURL := strings.TrimSpace(opts.BaseURL); baseURL != "" {
		cfg.Server.BaseURL = baseURL
	}

	if opts.ArchiveEnabled {
		cfg.Features.Archive = true
		cfg.Archive.DSN = strings.TrimSpace(opts.ArchiveDSN)
		if cfg.Archive.DSN == "" {
			cfg.Archive.DSN = "file:digest.db?_fk=1"
		}
	}

	if dir := strings.TrimSpace(opts.MarkdownDir); dir != "" {
		cfg.Features.Markdown = true
		cfg.Markdown.Enabled = true
		cfg.Markdown.ContentDir = dir
		if pattern := strings.TrimSpace(opts.Pattern); pattern != "" {
			cfg.Markdown.Pattern = pattern
		}
		cfg.Markdown.Recursive = opts.Recursive
	}

	if opts.Verbose || opts.LoggerProvider != nil {
		cfg.Features.Logger = true
		if provider := strings.TrimSpace(opts.LogProvider); provider != "" {
			cfg.Logging.Provider = provider
		}
		if level := strings.TrimSpace(opts.LogLevel); level != "" {
			cfg.Logging.Level = level
		}
		if format := strings.TrimSpace(opts.LogFormat); format != "" {
			cfg.Logging.Format = format
		}
	}

	diOpts := []di.Option{}
	switch {
	case opts.LoggerProvider != nil:
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	case opts.Verbose && strings.EqualFold(strings.TrimSpace(cfg.Logging.Provider), "console"):
		// Keep stdout reserved for rendered HTML.
		diOpts = append(diOpts, di.WithLoggerProvider(console.NewProvider(console.Options{
			Writer: os.Stderr,
		})))
	}

	module, err := digest.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise digest module: %w", err)
	}

	return &Module{
		Module: module,
		Logger: module.Logger(),
	}, nil
}

// resolveAddr picks the listen address: explicit flag first, then the
// DIGEST_ADDR environment variable.
func resolveAddr(flagValue string) string {
	if addr := strings.TrimSpace(flagValue); addr != "" {
		return addr
	}
	return strings.TrimSpace(os.Getenv("DIGEST_ADDR"))
}
