package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	urlkit "github.com/goliatone/go-urlkit"
)

// ErrArchiveFeatureRequired indicates inconsistent archive configuration.
var ErrArchiveFeatureRequired = errors.New("digest config: archive feature must be enabled to configure archiving")

// ErrArchiveDSNRequired ensures the archive always has storage behind it.
var ErrArchiveDSNRequired = errors.New("digest config: archive DSN is required when archiving is enabled")

var ErrArchiveRetentionInvalid = errors.New("digest config: archive retention must be zero or positive")
var ErrMarkdownFeatureRequired = errors.New("digest config: markdown feature must be enabled to configure markdown ingestion")
var ErrMarkdownContentDirRequired = errors.New("digest config: markdown content directory is required when markdown is enabled")
var ErrServerAddrRequired = errors.New("digest config: server address is required")
var ErrRenderPaletteIncomplete = errors.New("digest config: render palettes need dot, title, and background colors")
var ErrLoggingProviderRequired = errors.New("digest config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("digest config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("digest config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("digest config: logging format is invalid")

// Config aggregates feature flags and adapter bindings for the digest module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Enabled    bool
	Server     ServerConfig
	Render     RenderConfig
	Markdown   MarkdownConfig
	Archive    ArchiveConfig
	Cache      CacheConfig
	Navigation NavigationConfig
	Logging    LoggingConfig
	Features   Features
	Commands   CommandsConfig
}

// ServerConfig captures listener behaviour for the HTTP API mode.
type ServerConfig struct {
	Addr            string
	BasePath        string
	BaseURL         string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// RenderConfig captures the digest renderer's visual defaults.
type RenderConfig struct {
	BannerLabel string
	Subtitle    string
	DateLayout  string
	Palettes    []PaletteConfig
	Parser      MarkdownParserConfig
}

// PaletteConfig mirrors render.Palette for runtime configuration.
type PaletteConfig struct {
	Dot        string
	Title      string
	Background string
}

// MarkdownConfig captures filesystem and parser behaviour for Markdown-authored feeds.
type MarkdownConfig struct {
	Enabled    bool
	ContentDir string
	Pattern    string
	Recursive  bool
	Parser     MarkdownParserConfig
}

// MarkdownParserConfig mirrors interfaces.ParseOptions for runtime configuration.
type MarkdownParserConfig struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// ArchiveConfig captures storage behaviour for persisted digests.
type ArchiveConfig struct {
	DSN      string
	KeepDays int
}

// CacheConfig captures read-through cache behaviour for archive lookups.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// NavigationConfig captures routing configuration for archive URL resolution.
type NavigationConfig struct {
	RouteConfig *urlkit.Config
	URLKit      URLKitResolverConfig
}

// URLKitResolverConfig configures the go-urlkit based archive URL builder.
type URLKitResolverConfig struct {
	Group       string
	DigestRoute string
	ListRoute   string
	IDParam     string
}

// Features toggles module functionality.
type Features struct {
	Archive  bool
	Markdown bool
	Logger   bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// CommandsConfig captures optional command-layer behaviour.
type CommandsConfig struct {
	Enabled bool
	Timeout time.Duration
}

// DefaultConfig returns opinionated defaults matching the stock digest service:
// API on :8000, hard-wrapped GFM summaries, archiving off.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Server: ServerConfig{
			Addr:            ":8000",
			ShutdownTimeout: 10 * time.Second,
		},
		Render: RenderConfig{
			Parser: MarkdownParserConfig{
				Extensions: []string{"extra"},
				HardWraps:  true,
			},
		},
		Markdown: MarkdownConfig{
			ContentDir: "content",
			Pattern:    "*.md",
			Recursive:  true,
			Parser: MarkdownParserConfig{
				Extensions: []string{"extra"},
				HardWraps:  true,
			},
		},
		Archive: ArchiveConfig{},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Navigation: NavigationConfig{},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
		Features: Features{},
		Commands: CommandsConfig{},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return ErrServerAddrRequired
	}
	if len(cfg.Render.Palettes) > 0 {
		for _, palette := range cfg.Render.Palettes {
			if strings.TrimSpace(palette.Dot) == "" ||
				strings.TrimSpace(palette.Title) == "" ||
				strings.TrimSpace(palette.Background) == "" {
				return ErrRenderPaletteIncomplete
			}
		}
	}
	if cfg.Features.Archive {
		if strings.TrimSpace(cfg.Archive.DSN) == "" {
			return ErrArchiveDSNRequired
		}
		if cfg.Archive.KeepDays < 0 {
			return ErrArchiveRetentionInvalid
		}
	} else if strings.TrimSpace(cfg.Archive.DSN) != "" {
		return ErrArchiveFeatureRequired
	}
	if cfg.Markdown.Enabled {
		if !cfg.Features.Markdown {
			return ErrMarkdownFeatureRequired
		}
		if strings.TrimSpace(cfg.Markdown.ContentDir) == "" {
			return ErrMarkdownContentDirRequired
		}
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
