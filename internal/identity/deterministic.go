package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

const namespace = "go-folio"

// UUID derives a deterministic UUID from a stable key using go-hashid.
// Keys must be prefixed by kind so different kinds never collide.
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

// EntityUUID returns the stable identifier of a content entity. The same
// file always maps to the same UUID across scans and processes.
func EntityUUID(kind, slug string) uuid.UUID {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return uuid.Nil
	}
	return UUID(namespace + ":" + strings.ToLower(strings.TrimSpace(kind)) + ":" + slug)
}
