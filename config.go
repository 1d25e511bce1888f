package digest

import "github.com/goliatone/go-digest/internal/runtimeconfig"

var (
	ErrServerAddrRequired         = runtimeconfig.ErrServerAddrRequired
	ErrArchiveFeatureRequired     = runtimeconfig.ErrArchiveFeatureRequired
	ErrArchiveDSNRequired         = runtimeconfig.ErrArchiveDSNRequired
	ErrArchiveRetentionInvalid    = runtimeconfig.ErrArchiveRetentionInvalid
	ErrMarkdownFeatureRequired    = runtimeconfig.ErrMarkdownFeatureRequired
	ErrMarkdownContentDirRequired = runtimeconfig.ErrMarkdownContentDirRequired
	ErrRenderPaletteIncomplete    = runtimeconfig.ErrRenderPaletteIncomplete
	ErrLoggingProviderRequired    = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown     = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid        = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid       = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config               = runtimeconfig.Config
	ServerConfig         = runtimeconfig.ServerConfig
	RenderConfig         = runtimeconfig.RenderConfig
	PaletteConfig        = runtimeconfig.PaletteConfig
	MarkdownConfig       = runtimeconfig.MarkdownConfig
	MarkdownParserConfig = runtimeconfig.MarkdownParserConfig
	ArchiveConfig        = runtimeconfig.ArchiveConfig
	CacheConfig          = runtimeconfig.CacheConfig
	NavigationConfig     = runtimeconfig.NavigationConfig
	URLKitResolverConfig = runtimeconfig.URLKitResolverConfig
	Features             = runtimeconfig.Features
	LoggingConfig        = runtimeconfig.LoggingConfig
	CommandsConfig       = runtimeconfig.CommandsConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
