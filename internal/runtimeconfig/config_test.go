package runtimeconfig_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-digest/internal/runtimeconfig"
)

func TestConfigValidate_DefaultsAreValid(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
	if cfg.Server.Addr != ":8000" {
		t.Fatalf("expected default addr :8000, got %q", cfg.Server.Addr)
	}
}

func TestConfigValidate_RequiresServerAddr(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Server.Addr = " "

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrServerAddrRequired) {
		t.Fatalf("expected ErrServerAddrRequired, got %v", err)
	}
}

func TestConfigValidate_RequiresDSNWhenArchiveEnabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Archive = true
	cfg.Archive.DSN = ""

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrArchiveDSNRequired) {
		t.Fatalf("expected ErrArchiveDSNRequired, got %v", err)
	}
}

func TestConfigValidate_RejectsArchiveDSNWhenFeatureDisabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Archive.DSN = "file:digest.db"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrArchiveFeatureRequired) {
		t.Fatalf("expected ErrArchiveFeatureRequired, got %v", err)
	}
}

func TestConfigValidate_RejectsNegativeRetention(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Archive = true
	cfg.Archive.DSN = "file::memory:"
	cfg.Archive.KeepDays = -1

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrArchiveRetentionInvalid) {
		t.Fatalf("expected ErrArchiveRetentionInvalid, got %v", err)
	}
}

func TestConfigValidate_RequiresMarkdownFeatureWhenEnabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Markdown.Enabled = true

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrMarkdownFeatureRequired) {
		t.Fatalf("expected ErrMarkdownFeatureRequired, got %v", err)
	}
}

func TestConfigValidate_RequiresContentDirWhenMarkdownEnabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Markdown = true
	cfg.Markdown.Enabled = true
	cfg.Markdown.ContentDir = " "

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrMarkdownContentDirRequired) {
		t.Fatalf("expected ErrMarkdownContentDirRequired, got %v", err)
	}
}

func TestConfigValidate_RejectsIncompletePalette(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Render.Palettes = []runtimeconfig.PaletteConfig{
		{Dot: "#4A90E2", Title: "#2C5F8D", Background: ""},
	}

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrRenderPaletteIncomplete) {
		t.Fatalf("expected ErrRenderPaletteIncomplete, got %v", err)
	}
}

func TestConfigValidate_RequiresLoggingProviderWhenFeatureEnabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = ""

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingProviderRequired) {
		t.Fatalf("expected ErrLoggingProviderRequired, got %v", err)
	}
}

func TestConfigValidate_RejectsUnknownLoggingProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "syslog"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}

func TestConfigValidate_RejectsInvalidLoggingFormat(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Format = "xml"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}
}

func TestConfigValidate_AcceptsKnownLoggingLevels(t *testing.T) {
	for _, level := range []string{"trace", "debug", "info", "warn", "error", "fatal"} {
		cfg := runtimeconfig.DefaultConfig()
		cfg.Features.Logger = true
		cfg.Logging.Level = level

		if err := cfg.Validate(); err != nil {
			t.Fatalf("Validate() rejected level %q: %v", level, err)
		}
	}
}
