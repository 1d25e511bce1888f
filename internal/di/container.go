// Package di wires the digest module: logger provider, markdown parser,
// renderer, archive storage, and the convert service, each overridable by
// host-supplied options.
package di

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	urlkit "github.com/goliatone/go-urlkit"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	archivesvc "github.com/goliatone/go-digest/internal/archive"
	"github.com/goliatone/go-digest/internal/convert"
	digesthttp "github.com/goliatone/go-digest/internal/http"
	"github.com/goliatone/go-digest/internal/logging"
	"github.com/goliatone/go-digest/internal/logging/console"
	"github.com/goliatone/go-digest/internal/logging/gologger"
	"github.com/goliatone/go-digest/internal/markdown"
	"github.com/goliatone/go-digest/internal/render"
	"github.com/goliatone/go-digest/internal/runtimeconfig"
	"github.com/goliatone/go-digest/pkg/interfaces"
)

// Container wires module dependencies for the digest runtime.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	clock          func() time.Time

	bunDB   *bun.DB
	ownedDB *sql.DB

	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	archiveRepo archivesvc.DigestRepository

	parser      interfaces.MarkdownParser
	markdownSvc interfaces.MarkdownService
	renderer    interfaces.DigestRenderer
	archiveSvc  *archivesvc.Service
	convertSvc  *convert.Service

	routeManager *urlkit.RouteManager
	archiveURLs  *digesthttp.ArchiveURLs
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider derived from the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithBunDB supplies an externally managed database handle for the archive.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the default archive read-through cache.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithArchiveRepository overrides the default bun-backed archive repository.
func WithArchiveRepository(repo archivesvc.DigestRepository) Option {
	return func(c *Container) {
		c.archiveRepo = repo
	}
}

// WithMarkdownParser overrides the default goldmark parser binding.
func WithMarkdownParser(parser interfaces.MarkdownParser) Option {
	return func(c *Container) {
		c.parser = parser
	}
}

// WithRenderer overrides the default digest renderer binding.
func WithRenderer(renderer interfaces.DigestRenderer) Option {
	return func(c *Container) {
		c.renderer = renderer
	}
}

// WithConvertService overrides the default convert service binding.
func WithConvertService(svc *convert.Service) Option {
	return func(c *Container) {
		c.convertSvc = svc
	}
}

// WithArchiveService overrides the default archive service binding.
func WithArchiveService(svc *archivesvc.Service) Option {
	return func(c *Container) {
		c.archiveSvc = svc
	}
}

// WithClock pins the time source used for banner dates and archive timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Container) {
		if now != nil {
			c.clock = now
		}
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		Config: cfg,
		clock:  time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.configureLogging(); err != nil {
		return nil, err
	}

	if c.parser == nil {
		c.parser = markdown.NewGoldmarkParser(toParseOptions(cfg.Render.Parser))
	}

	if c.renderer == nil {
		renderer, err := render.New(c.parser, render.Config{
			Palettes:    toPalettes(cfg.Render.Palettes),
			BannerLabel: cfg.Render.BannerLabel,
			Subtitle:    cfg.Render.Subtitle,
			DateLayout:  cfg.Render.DateLayout,
			Parser:      toParseOptions(cfg.Render.Parser),
		},
			render.WithLogger(logging.RenderLogger(c.loggerProvider)),
			render.WithClock(c.clock),
		)
		if err != nil {
			return nil, err
		}
		c.renderer = renderer
	}

	if err := c.configureArchive(); err != nil {
		c.Close()
		return nil, err
	}

	c.configureNavigation()

	if c.convertSvc == nil {
		converter, err := convert.NewService(c.renderer,
			convert.WithArchive(c.archiveSvc),
			convert.WithLogger(logging.ConvertLogger(c.loggerProvider)),
		)
		if err != nil {
			c.Close()
			return nil, err
		}
		c.convertSvc = converter
	}

	if cfg.Features.Markdown && cfg.Markdown.Enabled && c.markdownSvc == nil {
		svc, err := markdown.NewService(markdown.Config{
			BasePath:  cfg.Markdown.ContentDir,
			Pattern:   cfg.Markdown.Pattern,
			Recursive: cfg.Markdown.Recursive,
			Parser:    toParseOptions(cfg.Markdown.Parser),
		}, c.parser)
		if err != nil {
			c.Close()
			return nil, err
		}
		c.markdownSvc = svc
	}

	return c, nil
}

func (c *Container) configureLogging() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}

	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		c.loggerProvider = console.NewProvider(console.Options{})
	}
	return nil
}

func (c *Container) configureArchive() error {
	if !c.Config.Features.Archive {
		if c.archiveSvc == nil {
			c.archiveSvc = archivesvc.NewService(nil)
		}
		return nil
	}
	if c.archiveSvc != nil {
		return nil
	}

	if c.archiveRepo == nil {
		if c.bunDB == nil {
			sqldb, err := sql.Open("sqlite3", c.Config.Archive.DSN)
			if err != nil {
				return fmt.Errorf("di: open archive database: %w", err)
			}
			c.ownedDB = sqldb
			c.bunDB = bun.NewDB(sqldb, sqlitedialect.New())
		}

		if err := archivesvc.EnsureSchema(context.Background(), c.bunDB); err != nil {
			return err
		}

		c.configureCacheDefaults()
		c.archiveRepo = archivesvc.NewBunDigestRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	}

	c.archiveSvc = archivesvc.NewService(c.archiveRepo,
		archivesvc.WithLogger(logging.ArchiveLogger(c.loggerProvider)),
		archivesvc.WithClock(c.clock),
	)
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		c.cacheService = nil
		c.keySerializer = nil
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.Config.Cache.DefaultTTL > 0 {
			cfg.TTL = c.Config.Cache.DefaultTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureNavigation() {
	if c.archiveURLs != nil {
		return
	}

	navCfg := c.Config.Navigation
	routeConfig := navCfg.RouteConfig
	if routeConfig == nil {
		baseURL := strings.TrimSpace(c.Config.Server.BaseURL)
		if baseURL == "" {
			return
		}
		routeConfig = &urlkit.Config{
			Groups: []urlkit.GroupConfig{
				{
					Name:    "api",
					BaseURL: strings.TrimRight(baseURL, "/"),
					Paths: map[string]string{
						"archive": "/archive",
						"digest":  "/archive/:id",
					},
				},
			},
		}
	}

	manager := urlkit.NewRouteManager(routeConfig)
	c.routeManager = manager

	c.archiveURLs = digesthttp.NewArchiveURLs(digesthttp.ArchiveURLsOptions{
		Manager:     manager,
		Group:       strings.TrimSpace(navCfg.URLKit.Group),
		DigestRoute: strings.TrimSpace(navCfg.URLKit.DigestRoute),
		ListRoute:   strings.TrimSpace(navCfg.URLKit.ListRoute),
		IDParam:     strings.TrimSpace(navCfg.URLKit.IDParam),
	})
}

// Close releases resources the container opened itself. Database handles
// supplied via WithBunDB stay under the caller's control.
func (c *Container) Close() error {
	if c == nil || c.ownedDB == nil {
		return nil
	}
	err := c.ownedDB.Close()
	c.ownedDB = nil
	return err
}

// LoggerProvider exposes the configured logger provider. It is nil when the
// logger feature is off and no provider was injected.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Logger returns the root module logger.
func (c *Container) Logger() interfaces.Logger {
	return logging.ModuleLogger(c.loggerProvider, "")
}

// BunDB exposes the archive database handle when one is configured.
func (c *Container) BunDB() *bun.DB {
	return c.bunDB
}

// MarkdownParser exposes the configured parser.
func (c *Container) MarkdownParser() interfaces.MarkdownParser {
	return c.parser
}

// MarkdownService returns the file-based markdown service when the feature is on.
func (c *Container) MarkdownService() interfaces.MarkdownService {
	return c.markdownSvc
}

// Renderer returns the configured digest renderer.
func (c *Container) Renderer() interfaces.DigestRenderer {
	return c.renderer
}

// ArchiveService returns the configured archive service. The service is
// always non-nil; it reports disabled when the feature is off.
func (c *Container) ArchiveService() *archivesvc.Service {
	return c.archiveSvc
}

// ConvertService returns the configured convert service.
func (c *Container) ConvertService() *convert.Service {
	return c.convertSvc
}

// ArchiveURLs returns the canonical URL builder for archive resources. It is
// nil when neither a route config nor a server base URL is set.
func (c *Container) ArchiveURLs() *digesthttp.ArchiveURLs {
	return c.archiveURLs
}

// HTTPAPI assembles the HTTP surface for the module services.
func (c *Container) HTTPAPI() *digesthttp.API {
	return digesthttp.NewAPI(digesthttp.APIOptions{
		Converter: c.convertSvc,
		Archive:   c.archiveSvc,
		URLs:      c.archiveURLs,
		Logger:    logging.HTTPLogger(c.loggerProvider),
		ArchiveEnabled: func() bool {
			return c.Config.Features.Archive
		},
	})
}

func toParseOptions(cfg runtimeconfig.MarkdownParserConfig) interfaces.ParseOptions {
	return interfaces.ParseOptions{
		Extensions: append([]string(nil), cfg.Extensions...),
		Sanitize:   cfg.Sanitize,
		HardWraps:  cfg.HardWraps,
		SafeMode:   cfg.SafeMode,
	}
}

func toPalettes(cfgs []runtimeconfig.PaletteConfig) []render.Palette {
	if len(cfgs) == 0 {
		return nil
	}
	palettes := make([]render.Palette, 0, len(cfgs))
	for _, p := range cfgs {
		palettes = append(palettes, render.Palette{
			Dot:        p.Dot,
			Title:      p.Title,
			Background: p.Background,
		})
	}
	return palettes
}
