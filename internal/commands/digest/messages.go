package digestcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	renderFeedMessageType   = "digest.render_feed"
	pruneArchiveMessageType = "digest.prune_archive"
)

// RenderFeedCommand renders a feed file from disk into WeChat digest HTML.
// The command mirrors the CLI file mode: read Path, validate the payload,
// render, and write the result to Output or standard output.
type RenderFeedCommand struct {
	// Path selects the feed file (a JSON array of articles) to render.
	Path string `json:"path"`
	// Output writes the HTML to the given file instead of standard output.
	Output string `json:"output,omitempty"`
	// HeaderTitle overrides the dated banner headline.
	HeaderTitle string `json:"header_title,omitempty"`
	// HeaderSubtitle overrides the banner subtitle.
	HeaderSubtitle string `json:"header_subtitle,omitempty"`
}

// Type implements command.Message.
func (RenderFeedCommand) Type() string { return renderFeedMessageType }

// Validate ensures a feed path is present before handlers execute.
func (cmd RenderFeedCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Path, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("digest.render_feed.path_required", "path is required")
			}
			return nil
		})),
	)
}

// PruneArchiveCommand removes archived digests older than KeepDays days.
type PruneArchiveCommand struct {
	// KeepDays is the retention window in days. Records older than this are removed.
	KeepDays int `json:"keep_days"`
}

// Type implements command.Message.
func (PruneArchiveCommand) Type() string { return pruneArchiveMessageType }

// Validate ensures the retention window is usable before handlers execute.
func (cmd PruneArchiveCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.KeepDays, validation.Required, validation.Min(1)),
	)
}
