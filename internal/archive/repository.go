// Package archive persists generated digests so past newsletters can be
// listed, re-fetched, and pruned. Storage goes through go-repository-bun on
// a bun.DB handle, optionally wrapped with a repository cache.
package archive

import (
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	digestarchive "github.com/goliatone/go-digest/archive"
	"github.com/goliatone/go-repository-bun"
)

// NewDigestRepository creates a repository for archived digests. The checksum
// acts as the secondary identifier so repeated conversions of the same feed
// can be found without knowing the record ID.
func NewDigestRepository(db *bun.DB) repository.Repository[*digestarchive.Digest] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*digestarchive.Digest]{
		NewRecord:          func() *digestarchive.Digest { return &digestarchive.Digest{} },
		GetID:              func(d *digestarchive.Digest) uuid.UUID { return d.ID },
		SetID:              func(d *digestarchive.Digest, id uuid.UUID) { d.ID = id },
		GetIdentifier:      func() string { return "checksum" },
		GetIdentifierValue: func(d *digestarchive.Digest) string { return d.Checksum },
	})
}
