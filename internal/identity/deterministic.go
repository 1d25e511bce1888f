package identity

import (
	"encoding/hex"
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// DigestUUID keys archived digests by the checksum of their canonical feed
// payload so re-converting the same feed upserts instead of duplicating rows.
func DigestUUID(checksum []byte) uuid.UUID {
	if len(checksum) == 0 {
		return uuid.Nil
	}
	return UUID("go-digest:digest:" + hex.EncodeToString(checksum))
}
