package archive

import (
	"context"
	"fmt"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	digestarchive "github.com/goliatone/go-digest/archive"
)

// BunDigestRepository implements DigestRepository with optional caching.
type BunDigestRepository struct {
	db   *bun.DB
	repo repository.Repository[*digestarchive.Digest]
}

// NewBunDigestRepository creates a digest repository without caching.
func NewBunDigestRepository(db *bun.DB) *BunDigestRepository {
	return NewBunDigestRepositoryWithCache(db, nil, nil)
}

// NewBunDigestRepositoryWithCache creates a digest repository with caching support.
func NewBunDigestRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunDigestRepository {
	base := NewDigestRepository(db)
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
	}
	return &BunDigestRepository{db: db, repo: base}
}

func (r *BunDigestRepository) Create(ctx context.Context, record *digestarchive.Digest) (*digestarchive.Digest, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("digest repository error: %w", err)
	}
	return created, nil
}

func (r *BunDigestRepository) Update(ctx context.Context, record *digestarchive.Digest) (*digestarchive.Digest, error) {
	updated, err := r.repo.Update(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, "digest", record.ID.String())
	}
	return updated, nil
}

func (r *BunDigestRepository) GetByID(ctx context.Context, id uuid.UUID) (*digestarchive.Digest, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "digest", id.String())
	}
	return record, nil
}

func (r *BunDigestRepository) GetByChecksum(ctx context.Context, checksum string) (*digestarchive.Digest, error) {
	record, err := r.repo.GetByIdentifier(ctx, checksum)
	if err != nil {
		return nil, mapRepositoryError(err, "digest", checksum)
	}
	return record, nil
}

// List returns digests newest first. limit <= 0 means no limit.
func (r *BunDigestRepository) List(ctx context.Context, limit, offset int) ([]*digestarchive.Digest, error) {
	newestFirst := repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.OrderExpr("?TableAlias.generated_at DESC")
	})

	var (
		records []*digestarchive.Digest
		err     error
	)
	if limit > 0 {
		records, _, err = r.repo.List(ctx, newestFirst, repository.SelectPaginate(limit, offset))
	} else {
		records, _, err = r.repo.List(ctx, newestFirst)
	}
	if err != nil {
		return nil, fmt.Errorf("digest repository error: %w", err)
	}
	return records, nil
}

func (r *BunDigestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.repo.Delete(ctx, &digestarchive.Digest{ID: id})
}

// DeleteOlderThan removes digests generated before the cutoff and reports how
// many rows went away.
func (r *BunDigestRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.NewDelete().
		Model((*digestarchive.Digest)(nil)).
		Where("generated_at < ?", cutoff).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("digest repository error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("digest repository error: %w", err)
	}
	return affected, nil
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if errors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &digestarchive.NotFoundError{Resource: resource, Key: key}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}
