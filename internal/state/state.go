package state

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// SyncRecord associates a local item code with the external product id the
// remote API assigned on first create. The id never changes once assigned.
type SyncRecord struct {
	ItemCode   string
	ExternalID string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IdempotencyRecord caches a hook response for redelivered requests.
type IdempotencyRecord struct {
	StatusCode int
	BodyJSON   []byte
	ExpiresAt  time.Time
	CreatedAt  time.Time
}

type Store interface {
	// Identifier resolution: absence means the item was never synced.
	GetExternalID(ctx context.Context, itemCode string) (externalID string, ok bool, err error)

	// UpsertExternalID is idempotent; calling it again with the same value
	// is a no-op.
	UpsertExternalID(ctx context.Context, itemCode string, externalID string) error

	// Idempotency cache for the hook surface.
	GetIdempotency(ctx context.Context, endpoint string, idemKeyHash string) (IdempotencyRecord, bool, error)
	PutIdempotency(ctx context.Context, endpoint string, idemKeyHash string, rec IdempotencyRecord) error
}

// HashIdempotencyKey hashes client-supplied idempotency keys deterministically.
func HashIdempotencyKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}
