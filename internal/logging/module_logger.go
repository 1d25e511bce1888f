package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-digest/pkg/interfaces"
)

const (
	rootModule     = "digest"
	renderModule   = "digest.render"
	convertModule  = "digest.convert"
	archiveModule  = "digest.archive"
	markdownModule = "digest.markdown"
	httpModule     = "digest.http"
)

const (
	fieldFeedPath     = "feed_path"
	fieldArticleCount = "article_count"
	fieldDigestID     = "digest_id"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(map[string]any{
			"module": module,
		})
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// RenderLogger returns the logger namespace reserved for the digest renderer.
func RenderLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, renderModule)
}

// ConvertLogger returns the logger namespace reserved for the convert service.
func ConvertLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, convertModule)
}

// ArchiveLogger returns the logger namespace reserved for archive storage.
func ArchiveLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, archiveModule)
}

// MarkdownLogger returns the logger namespace reserved for markdown workflows.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// HTTPLogger returns the logger namespace reserved for the HTTP API.
func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}

// WithConvertContext enriches the provided logger with common conversion
// fields such as feed path, article count, and digest id. Empty values are
// ignored.
func WithConvertContext(logger interfaces.Logger, path string, articles int, digestID string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldFeedPath] = trimmed
	}
	if articles > 0 {
		fields[fieldArticleCount] = articles
	}
	if trimmed := strings.TrimSpace(digestID); trimmed != "" {
		fields[fieldDigestID] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
