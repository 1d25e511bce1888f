package archive

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	digestarchive "github.com/goliatone/go-digest/archive"
)

// EnsureSchema creates the archive tables when they do not exist yet. The
// digest archive is a single table, so a create-if-missing pass replaces a
// full migration runner.
func EnsureSchema(ctx context.Context, db *bun.DB) error {
	if db == nil {
		return digestarchive.ErrArchiveDisabled
	}
	if _, err := db.NewCreateTable().
		Model((*digestarchive.Digest)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("archive: ensure schema: %w", err)
	}
	if _, err := db.NewCreateIndex().
		Model((*digestarchive.Digest)(nil)).
		Index("idx_digests_generated_at").
		Column("generated_at").
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("archive: ensure schema: %w", err)
	}
	return nil
}
