package archive

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Digest is the persisted record of a generated digest: the canonical feed
// payload, the rendered HTML, and enough metadata to list and deduplicate.
type Digest struct {
	bun.BaseModel `bun:"table:digests,alias:d"`

	ID           uuid.UUID `bun:",pk,type:uuid"                json:"id"`
	Checksum     string    `bun:"checksum,notnull"             json:"checksum"`
	ArticleCount int       `bun:"article_count,notnull"        json:"article_count"`
	Source       []byte    `bun:"source,notnull"               json:"source,omitempty"`
	HTML         string    `bun:"html,notnull"                 json:"html,omitempty"`
	GeneratedAt  time.Time `bun:"generated_at,nullzero,default:current_timestamp" json:"generated_at"`
}

// Summary is the listing projection of a Digest: everything but the payload
// columns, so archive indexes stay cheap to serve.
type Summary struct {
	ID           uuid.UUID `json:"id"`
	Checksum     string    `json:"checksum"`
	ArticleCount int       `json:"article_count"`
	GeneratedAt  time.Time `json:"generated_at"`
	URL          string    `json:"url,omitempty"`
}

// Summarize projects a Digest into its listing form.
func (d *Digest) Summarize() Summary {
	if d == nil {
		return Summary{}
	}
	return Summary{
		ID:           d.ID,
		Checksum:     d.Checksum,
		ArticleCount: d.ArticleCount,
		GeneratedAt:  d.GeneratedAt,
	}
}
