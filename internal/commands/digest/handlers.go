package digestcmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goliatone/go-digest/internal/commands"
	"github.com/goliatone/go-digest/internal/convert"
	"github.com/goliatone/go-digest/internal/logging"
	"github.com/goliatone/go-digest/pkg/interfaces"
	command "github.com/goliatone/go-command"

	archivesvc "github.com/goliatone/go-digest/internal/archive"
)

const (
	renderOperation = "digest.render_feed"
	pruneOperation  = "digest.prune_archive"
)

var (
	// ErrArchiveFeatureDisabled is returned when the archive feature flag is disabled at runtime.
	ErrArchiveFeatureDisabled = errors.New("digest command: archive feature disabled")
)

var (
	_ command.Commander[RenderFeedCommand]   = (*RenderFeedHandler)(nil)
	_ command.Commander[PruneArchiveCommand] = (*PruneArchiveHandler)(nil)
)

// RenderFeedHandler renders feed files via the shared command handler foundation.
type RenderFeedHandler struct {
	inner *commands.Handler[RenderFeedCommand]
}

// NewRenderFeedHandler creates a handler bound to the supplied convert service.
// HTML goes to out when the command carries no Output path; a nil out means
// standard output.
func NewRenderFeedHandler(service *convert.Service, logger interfaces.Logger, out io.Writer, opts ...commands.HandlerOption[RenderFeedCommand]) *RenderFeedHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}
	if out == nil {
		out = os.Stdout
	}

	exec := func(ctx context.Context, msg RenderFeedCommand) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		result, err := service.ConvertFile(ctx, msg.Path, interfaces.RenderOptions{
			HeaderTitle:    msg.HeaderTitle,
			HeaderSubtitle: msg.HeaderSubtitle,
		})
		if err != nil {
			return err
		}

		if msg.Output != "" {
			if err := os.WriteFile(msg.Output, result.HTML, 0o644); err != nil {
				return fmt.Errorf("write output %s: %w", msg.Output, err)
			}
		} else {
			if _, err := out.Write(append(result.HTML, '\n')); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
		}

		fields := map[string]any{
			"path":  msg.Path,
			"bytes": len(result.HTML),
		}
		if result.Digest != nil {
			fields["digest_id"] = result.Digest.ID.String()
		}
		logging.WithFields(baseLogger, fields).Info("digest.command.render_feed.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[RenderFeedCommand]{
		commands.WithLogger[RenderFeedCommand](baseLogger),
		commands.WithOperation[RenderFeedCommand](renderOperation),
		commands.WithMessageFields(func(msg RenderFeedCommand) map[string]any {
			fields := map[string]any{
				"path": msg.Path,
			}
			if msg.Output != "" {
				fields["output"] = msg.Output
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[RenderFeedCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &RenderFeedHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[RenderFeedCommand].
func (h *RenderFeedHandler) Execute(ctx context.Context, msg RenderFeedCommand) error {
	return h.inner.Execute(ctx, msg)
}

// PruneArchiveHandler trims the digest archive via the shared command handler foundation.
type PruneArchiveHandler struct {
	inner *commands.Handler[PruneArchiveCommand]
}

// NewPruneArchiveHandler creates a handler bound to the supplied archive service.
func NewPruneArchiveHandler(service *archivesvc.Service, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[PruneArchiveCommand]) *PruneArchiveHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg PruneArchiveCommand) error {
		if !gates.archiveEnabled() {
			return ErrArchiveFeatureDisabled
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		removed, err := service.Prune(ctx, msg.KeepDays)
		if err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"removed":   removed,
			"keep_days": msg.KeepDays,
		}).Info("digest.command.prune_archive.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[PruneArchiveCommand]{
		commands.WithLogger[PruneArchiveCommand](baseLogger),
		commands.WithOperation[PruneArchiveCommand](pruneOperation),
		commands.WithMessageFields(func(msg PruneArchiveCommand) map[string]any {
			return map[string]any{
				"keep_days": msg.KeepDays,
			}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[PruneArchiveCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &PruneArchiveHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[PruneArchiveCommand].
func (h *PruneArchiveHandler) Execute(ctx context.Context, msg PruneArchiveCommand) error {
	return h.inner.Execute(ctx, msg)
}
