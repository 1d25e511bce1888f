package bootstrap

import (
	"context"
	"testing"

	"github.com/goliatone/go-digest/feed"
	"github.com/goliatone/go-digest/pkg/interfaces"
)

func TestBuildModule_Defaults(t *testing.T) {
	built, err := BuildModule(Options{})
	if err != nil {
		t.Fatalf("BuildModule error = %v", err)
	}
	t.Cleanup(func() { _ = built.Module.Close() })

	if built.Module.Convert() == nil {
		t.Fatalf("expected convert service")
	}
	if built.Module.LoggerProvider() != nil {
		t.Fatalf("logging should stay off unless verbose is set")
	}
	if built.Module.Archive().Enabled() {
		t.Fatalf("archive should stay off unless requested")
	}

	result, err := built.Module.Convert().ConvertFeed(context.Background(), feed.Feed{
		{Title: "Hello", Summary: "World."},
	}, interfaces.RenderOptions{})
	if err != nil {
		t.Fatalf("ConvertFeed error = %v", err)
	}
	if len(result.HTML) == 0 {
		t.Fatalf("expected rendered html")
	}
}

func TestBuildModule_ArchiveEnabled(t *testing.T) {
	built, err := BuildModule(Options{
		ArchiveEnabled: true,
		ArchiveDSN:     "file:bootstrap_archive?mode=memory&cache=shared&_fk=1",
	})
	if err != nil {
		t.Fatalf("BuildModule error = %v", err)
	}
	t.Cleanup(func() { _ = built.Module.Close() })

	if !built.Module.Archive().Enabled() {
		t.Fatalf("expected enabled archive")
	}
}

func TestBuildModule_VerboseEnablesLogging(t *testing.T) {
	built, err := BuildModule(Options{Verbose: true})
	if err != nil {
		t.Fatalf("BuildModule error = %v", err)
	}
	t.Cleanup(func() { _ = built.Module.Close() })

	if built.Module.LoggerProvider() == nil {
		t.Fatalf("expected logger provider in verbose mode")
	}
}

func TestResolveAddr(t *testing.T) {
	t.Setenv("DIGEST_ADDR", ":9000")

	if got := resolveAddr(""); got != ":9000" {
		t.Fatalf("resolveAddr should fall back to DIGEST_ADDR, got %q", got)
	}
	if got := resolveAddr(":8080"); got != ":8080" {
		t.Fatalf("explicit flag should win, got %q", got)
	}
}
