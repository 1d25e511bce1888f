// Command digest renders article feeds into WeChat-ready HTML.
//
// Modes:
//
//	digest api [flags]              start the HTTP API (default :8000)
//	digest markdown [flags] [dir]   render a directory of Markdown articles
//	digest prune [flags]            delete old archive records
//	digest [flags] [feed.json]      render a JSON feed file (default date.txt)
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goliatone/go-digest/cmd/digest/internal/bootstrap"
	"github.com/goliatone/go-digest/internal/commands"
	digestcmd "github.com/goliatone/go-digest/internal/commands/digest"
	"github.com/goliatone/go-digest/internal/markdown"
	"github.com/goliatone/go-digest/pkg/interfaces"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("digest: %v", err)
	}
}

func run(args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "api":
			return runAPI(args[1:])
		case "markdown":
			return runMarkdown(args[1:])
		case "prune":
			return runPrune(args[1:])
		}
	}
	return runRender(args)
}

func runAPI(args []string) error {
	fs := flag.NewFlagSet("digest-api", flag.ExitOnError)
	addr := fs.String("addr", "", "Listen address (defaults to DIGEST_ADDR or :8000)")
	baseURL := fs.String("base-url", "", "Public base URL used for archive links")
	archive := fs.Bool("archive", false, "Persist rendered digests to the archive")
	archiveDSN := fs.String("archive-dsn", "", "Archive database DSN (sqlite)")
	logProvider := fs.String("log-provider", "console", "Logging provider (console or gologger)")
	logLevel := fs.String("log-level", "info", "Logging level")
	logFormat := fs.String("log-format", "", "Logging format for gologger (json, console, pretty)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	built, err := moduleBuilder(bootstrap.Options{
		Addr:           *addr,
		BaseURL:        *baseURL,
		ArchiveEnabled: *archive,
		ArchiveDSN:     *archiveDSN,
		LogProvider:    *logProvider,
		LogLevel:       *logLevel,
		LogFormat:      *logFormat,
		Verbose:        true,
	})
	if err != nil {
		return err
	}
	defer built.Module.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := built.Module.Server()
	built.Logger.Info("starting api mode", "addr", server.Addr())

	if err := server.Run(ctx); err != nil {
		return fmt.Errorf("serve api: %w", err)
	}
	return nil
}

func runRender(args []string) error {
	fs := flag.NewFlagSet("digest-render", flag.ExitOnError)
	output := fs.String("o", "", "Write HTML to the given file instead of stdout")
	title := fs.String("title", "", "Override the dated banner headline")
	subtitle := fs.String("subtitle", "", "Override the banner subtitle")
	archive := fs.Bool("archive", false, "Persist the rendered digest to the archive")
	archiveDSN := fs.String("archive-dsn", "", "Archive database DSN (sqlite)")
	timeout := fs.Duration("timeout", 0, "Command timeout (0 uses the default)")
	verbose := fs.Bool("verbose", false, "Log progress to stderr")

	if err := fs.Parse(args); err != nil {
		return err
	}

	path := fs.Arg(0)
	if path == "" {
		path = bootstrap.DefaultFeedFile
	}

	built, err := moduleBuilder(bootstrap.Options{
		ArchiveEnabled: *archive,
		ArchiveDSN:     *archiveDSN,
		Verbose:        *verbose,
	})
	if err != nil {
		return err
	}
	defer built.Module.Close()

	handlerOpts := []commands.HandlerOption[digestcmd.RenderFeedCommand]{}
	if *timeout > 0 {
		handlerOpts = append(handlerOpts, commands.WithTimeout[digestcmd.RenderFeedCommand](*timeout))
	}

	handler := digestcmd.NewRenderFeedHandler(built.Module.Convert(), built.Logger, os.Stdout, handlerOpts...)
	cmd := digestcmd.RenderFeedCommand{
		Path:           path,
		Output:         *output,
		HeaderTitle:    *title,
		HeaderSubtitle: *subtitle,
	}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("render feed %s: %w", path, err)
	}
	return nil
}

func runMarkdown(args []string) error {
	fs := flag.NewFlagSet("digest-markdown", flag.ExitOnError)
	output := fs.String("o", "", "Write HTML to the given file instead of stdout")
	title := fs.String("title", "", "Override the dated banner headline")
	subtitle := fs.String("subtitle", "", "Override the banner subtitle")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering markdown files")
	recursive := fs.Bool("recursive", true, "Descend into subdirectories")
	archive := fs.Bool("archive", false, "Persist the rendered digest to the archive")
	archiveDSN := fs.String("archive-dsn", "", "Archive database DSN (sqlite)")
	verbose := fs.Bool("verbose", false, "Log progress to stderr")

	if err := fs.Parse(args); err != nil {
		return err
	}

	dir := fs.Arg(0)
	if dir == "" {
		dir = "content"
	}

	built, err := moduleBuilder(bootstrap.Options{
		MarkdownDir:    dir,
		Pattern:        *pattern,
		Recursive:      *recursive,
		ArchiveEnabled: *archive,
		ArchiveDSN:     *archiveDSN,
		Verbose:        *verbose,
	})
	if err != nil {
		return err
	}
	defer built.Module.Close()

	service := built.Module.Markdown()
	if service == nil {
		return fmt.Errorf("markdown service not configured for %s", dir)
	}

	ctx := context.Background()

	docs, err := service.LoadDirectory(ctx, ".", interfaces.LoadOptions{})
	if err != nil {
		return fmt.Errorf("load markdown directory %s: %w", dir, err)
	}

	articles := markdown.FeedFromDocuments(docs)

	result, err := built.Module.Convert().ConvertFeed(ctx, articles, interfaces.RenderOptions{
		HeaderTitle:    *title,
		HeaderSubtitle: *subtitle,
	})
	if err != nil {
		return fmt.Errorf("render markdown directory %s: %w", dir, err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, result.HTML, 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", *output, err)
		}
		return nil
	}
	if _, err := os.Stdout.Write(append(result.HTML, '\n')); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func runPrune(args []string) error {
	fs := flag.NewFlagSet("digest-prune", flag.ExitOnError)
	keepDays := fs.Int("keep-days", 30, "Retention window in days")
	archiveDSN := fs.String("archive-dsn", "", "Archive database DSN (sqlite)")
	timeout := fs.Duration("timeout", time.Minute, "Command timeout")
	verbose := fs.Bool("verbose", false, "Log progress to stderr")

	if err := fs.Parse(args); err != nil {
		return err
	}

	built, err := moduleBuilder(bootstrap.Options{
		ArchiveEnabled: true,
		ArchiveDSN:     *archiveDSN,
		Verbose:        *verbose,
	})
	if err != nil {
		return err
	}
	defer built.Module.Close()

	handlerOpts := []commands.HandlerOption[digestcmd.PruneArchiveCommand]{}
	if *timeout > 0 {
		handlerOpts = append(handlerOpts, commands.WithTimeout[digestcmd.PruneArchiveCommand](*timeout))
	}

	handler := digestcmd.NewPruneArchiveHandler(built.Module.Archive(), built.Logger, digestcmd.FeatureGates{
		ArchiveEnabled: func() bool { return true },
	}, handlerOpts...)

	if err := handler.Execute(context.Background(), digestcmd.PruneArchiveCommand{KeepDays: *keepDays}); err != nil {
		return fmt.Errorf("prune archive: %w", err)
	}
	return nil
}
