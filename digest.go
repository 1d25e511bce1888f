// Package digest renders article feeds into WeChat-ready HTML digests. The
// package is the runtime façade: configure it with Config, construct with
// New, and pull services off the returned Module.
package digest

import (
	archivesvc "github.com/goliatone/go-digest/internal/archive"
	"github.com/goliatone/go-digest/internal/convert"
	"github.com/goliatone/go-digest/internal/di"
	digesthttp "github.com/goliatone/go-digest/internal/http"
	"github.com/goliatone/go-digest/pkg/interfaces"
)

// ConvertService exports the convert service contract for consumers of the digest package.
type ConvertService = *convert.Service

// ArchiveService exports the archive service contract.
type ArchiveService = *archivesvc.Service

// HTTPAPI exports the HTTP adapter contract.
type HTTPAPI = *digesthttp.API

// HTTPServer exports the bundled server contract.
type HTTPServer = *digesthttp.Server

// ServerOptions exports the bundled server options.
type ServerOptions = digesthttp.ServerOptions

// Module represents the top level digest runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a digest module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Convert returns the configured convert service.
func (m *Module) Convert() ConvertService {
	return m.container.ConvertService()
}

// Archive returns the configured archive service.
func (m *Module) Archive() ArchiveService {
	return m.container.ArchiveService()
}

// Markdown returns the markdown file service when the feature is configured.
func (m *Module) Markdown() interfaces.MarkdownService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.MarkdownService()
}

// Renderer returns the configured digest renderer.
func (m *Module) Renderer() interfaces.DigestRenderer {
	return m.container.Renderer()
}

// Parser returns the configured markdown parser.
func (m *Module) Parser() interfaces.MarkdownParser {
	return m.container.MarkdownParser()
}

// Logger returns the root module logger.
func (m *Module) Logger() interfaces.Logger {
	return m.container.Logger()
}

// LoggerProvider returns the configured logger provider, nil when logging is off.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	return m.container.LoggerProvider()
}

// HTTP assembles the HTTP API for the module services.
func (m *Module) HTTP() HTTPAPI {
	return m.container.HTTPAPI()
}

// Server bundles the HTTP API into a runnable server using the module's
// server configuration. Explicit options override config values.
func (m *Module) Server() HTTPServer {
	serverCfg := m.container.Config.Server
	return digesthttp.NewServer(m.HTTP(), digesthttp.ServerOptions{
		Addr:            serverCfg.Addr,
		BasePath:        serverCfg.BasePath,
		ReadTimeout:     serverCfg.ReadTimeout,
		WriteTimeout:    serverCfg.WriteTimeout,
		ShutdownTimeout: serverCfg.ShutdownTimeout,
		Logger:          m.Logger(),
	})
}

// Close releases resources the module opened itself, such as an archive
// database created from a DSN.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}
