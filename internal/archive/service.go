package archive

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	digestarchive "github.com/goliatone/go-digest/archive"
	"github.com/goliatone/go-digest/feed"
	"github.com/goliatone/go-digest/internal/identity"
	"github.com/goliatone/go-digest/internal/logging"
	"github.com/goliatone/go-digest/pkg/interfaces"
)

// DigestRepository is the storage contract the archive service depends on.
type DigestRepository interface {
	Create(ctx context.Context, record *digestarchive.Digest) (*digestarchive.Digest, error)
	Update(ctx context.Context, record *digestarchive.Digest) (*digestarchive.Digest, error)
	GetByID(ctx context.Context, id uuid.UUID) (*digestarchive.Digest, error)
	GetByChecksum(ctx context.Context, checksum string) (*digestarchive.Digest, error)
	List(ctx context.Context, limit, offset int) ([]*digestarchive.Digest, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// Service stores rendered digests keyed by the checksum of their canonical
// feed payload. Saving the same feed twice updates the existing row.
type Service struct {
	repo   DigestRepository
	logger interfaces.Logger
	now    func() time.Time
}

// ServiceOption mutates the service during construction.
type ServiceOption func(*Service)

// WithLogger attaches a logger. A nil logger is ignored.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source used for generated_at and pruning.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService builds an archive service. A nil repository yields a service
// whose operations all fail with ErrArchiveDisabled, which is how the host
// behaves when archiving is switched off.
func NewService(repo DigestRepository, opts ...ServiceOption) *Service {
	s := &Service{
		repo:   repo,
		logger: logging.NoOp(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Enabled reports whether the service has storage behind it.
func (s *Service) Enabled() bool {
	return s.repo != nil
}

// Save persists a rendered digest. The record ID derives from the feed
// checksum so converting identical feeds upserts instead of duplicating.
func (s *Service) Save(ctx context.Context, articles feed.Feed, html []byte) (*digestarchive.Digest, error) {
	if !s.Enabled() {
		return nil, digestarchive.ErrArchiveDisabled
	}
	if len(articles) == 0 || len(html) == 0 {
		return nil, digestarchive.ErrDigestRequired
	}

	source, err := articles.MarshalCanonical()
	if err != nil {
		return nil, fmt.Errorf("archive: canonicalize feed: %w", err)
	}

	sum := sha256.Sum256(source)
	checksum := hex.EncodeToString(sum[:])
	id := identity.DigestUUID(sum[:])

	record := &digestarchive.Digest{
		ID:           id,
		Checksum:     checksum,
		ArticleCount: len(articles),
		Source:       source,
		HTML:         string(html),
		GeneratedAt:  s.now().UTC(),
	}

	existing, err := s.repo.GetByID(ctx, id)
	switch {
	case err == nil && existing != nil:
		stored, err := s.repo.Update(ctx, record)
		if err != nil {
			return nil, err
		}
		s.logger.Debug("digest archived", "id", id.String(), "checksum", checksum, "op", "update")
		return stored, nil
	case err != nil && !errors.Is(err, digestarchive.ErrDigestNotFound):
		return nil, err
	}

	stored, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("digest archived", "id", id.String(), "checksum", checksum, "op", "create")
	return stored, nil
}

// Get fetches an archived digest by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*digestarchive.Digest, error) {
	if !s.Enabled() {
		return nil, digestarchive.ErrArchiveDisabled
	}
	return s.repo.GetByID(ctx, id)
}

// GetByChecksum fetches an archived digest by feed checksum.
func (s *Service) GetByChecksum(ctx context.Context, checksum string) (*digestarchive.Digest, error) {
	if !s.Enabled() {
		return nil, digestarchive.ErrArchiveDisabled
	}
	return s.repo.GetByChecksum(ctx, checksum)
}

// List returns digest summaries newest first. limit <= 0 means no limit.
func (s *Service) List(ctx context.Context, limit, offset int) ([]digestarchive.Summary, error) {
	if !s.Enabled() {
		return nil, digestarchive.ErrArchiveDisabled
	}
	records, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	summaries := make([]digestarchive.Summary, 0, len(records))
	for _, record := range records {
		summaries = append(summaries, record.Summarize())
	}
	return summaries, nil
}

// Delete removes one archived digest.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if !s.Enabled() {
		return digestarchive.ErrArchiveDisabled
	}
	return s.repo.Delete(ctx, id)
}

// Prune removes digests older than keepDays days and reports how many rows
// were removed.
func (s *Service) Prune(ctx context.Context, keepDays int) (int64, error) {
	if !s.Enabled() {
		return 0, digestarchive.ErrArchiveDisabled
	}
	if keepDays <= 0 {
		return 0, digestarchive.ErrRetentionWindow
	}
	cutoff := s.now().UTC().AddDate(0, 0, -keepDays)
	removed, err := s.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.logger.Info("archive pruned", "removed", removed, "keep_days", keepDays)
	}
	return removed, nil
}
