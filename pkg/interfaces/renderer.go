package interfaces

import (
	"context"
	"time"

	"github.com/goliatone/go-digest/feed"
)

// DigestRenderer assembles a complete digest HTML fragment from a feed.
// Implementations own card layout, palette rotation, and the header/footer
// decorators; Markdown conversion is delegated to a MarkdownParser.
type DigestRenderer interface {
	// Render produces the digest HTML for the supplied feed.
	Render(ctx context.Context, articles feed.Feed, opts RenderOptions) ([]byte, error)
}

// RenderOptions customises a single render pass. Zero values fall back to
// the renderer's configured defaults.
type RenderOptions struct {
	// HeaderTitle overrides the dated banner title. When empty the renderer
	// formats the current date using its configured layout.
	HeaderTitle string
	// HeaderSubtitle overrides the banner subtitle.
	HeaderSubtitle string
	// Now pins the timestamp used for the dated header. Zero means time.Now.
	Now time.Time
	// Parser overrides Markdown parse behaviour for article summaries.
	Parser ParseOptions
}
