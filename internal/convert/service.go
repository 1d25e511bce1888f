// Package convert orchestrates the digest pipeline: validate a feed payload,
// render it into WeChat HTML, and optionally archive the result.
package convert

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	digestarchive "github.com/goliatone/go-digest/archive"
	"github.com/goliatone/go-digest/feed"
	archivesvc "github.com/goliatone/go-digest/internal/archive"
	"github.com/goliatone/go-digest/internal/logging"
	"github.com/goliatone/go-digest/internal/validation"
	"github.com/goliatone/go-digest/pkg/interfaces"
)

// Result carries the rendered digest and, when archiving is on, the stored
// record.
type Result struct {
	HTML   []byte
	Digest *digestarchive.Digest
}

// Service wires the renderer and the archive behind one entry point.
type Service struct {
	renderer interfaces.DigestRenderer
	archive  *archivesvc.Service
	logger   interfaces.Logger
}

// Option mutates the service during construction.
type Option func(*Service)

// WithArchive enables archiving of rendered digests.
func WithArchive(svc *archivesvc.Service) Option {
	return func(s *Service) {
		s.archive = svc
	}
}

// WithLogger attaches a logger. A nil logger is ignored.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService builds a convert service around a renderer.
func NewService(renderer interfaces.DigestRenderer, opts ...Option) (*Service, error) {
	if renderer == nil {
		return nil, feed.ErrRendererMissing
	}
	s := &Service{
		renderer: renderer,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ConvertFeed renders validated articles and archives the result when an
// archive is attached. Render errors never leave a partial archive row
// behind because archiving only happens after a successful render.
func (s *Service) ConvertFeed(ctx context.Context, articles feed.Feed, opts interfaces.RenderOptions) (*Result, error) {
	if err := articles.Validate(); err != nil {
		return nil, err
	}

	html, err := s.renderer.Render(ctx, articles, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{HTML: html}

	if s.archive != nil && s.archive.Enabled() {
		record, err := s.archive.Save(ctx, articles, html)
		if err != nil {
			// Rendering succeeded; a broken archive should not lose the digest.
			s.logger.Error("archive save failed", "error", err)
		} else {
			result.Digest = record
		}
	}

	s.logger.Info("digest converted", "articles", len(articles), "bytes", len(html))

	return result, nil
}

// ConvertRequest validates and renders a raw convert request body of the form
// {"articles": [...]}.
func (s *Service) ConvertRequest(ctx context.Context, body []byte, opts interfaces.RenderOptions) (*Result, error) {
	var payload any
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	if err := decoder.Decode(&payload); err != nil {
		return nil, &feed.DecodeError{Source: "request", Cause: err}
	}

	if err := validation.ValidateConvertPayload(payload); err != nil {
		return nil, err
	}

	var request struct {
		Articles feed.Feed `json:"articles"`
	}
	if err := json.Unmarshal(body, &request); err != nil {
		return nil, &feed.DecodeError{Source: "request", Cause: err}
	}

	return s.ConvertFeed(ctx, request.Articles, opts)
}

// ConvertFile reads a feed file from disk, validates it, and renders it.
func (s *Service) ConvertFile(ctx context.Context, path string, opts interfaces.RenderOptions) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &feed.DecodeError{Source: path, Cause: err}
	}

	if err := validation.ValidateFeedBytes(data); err != nil {
		return nil, fmt.Errorf("feed file %s: %w", path, err)
	}

	articles, err := feed.DecodeBytes(data)
	if err != nil {
		return nil, fmt.Errorf("feed file %s: %w", path, err)
	}

	s.logger.Debug("feed file loaded", "path", path, "articles", len(articles))

	return s.ConvertFeed(ctx, articles, opts)
}
