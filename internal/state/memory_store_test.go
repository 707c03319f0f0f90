package state

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStore_ExternalID(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, ok, err := s.GetExternalID(ctx, "SKU1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatalf("expected no record")
	}

	if err := s.UpsertExternalID(ctx, "SKU1", "prod_1"); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	id, ok, err := s.GetExternalID(ctx, "SKU1")
	if err != nil || !ok || id != "prod_1" {
		t.Fatalf("get after upsert: %q ok=%v err=%v", id, ok, err)
	}
}

func TestMemoryStore_UpsertIdempotent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.UpsertExternalID(ctx, "SKU1", "prod_1"); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	first := s.records["SKU1"]

	// Same value again: record (and timestamps) stay untouched.
	if err := s.UpsertExternalID(ctx, "SKU1", "prod_1"); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if s.records["SKU1"] != first {
		t.Fatalf("redundant upsert modified the record")
	}
}

func TestMemoryStore_Idempotency(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	keyHash := HashIdempotencyKey("abc")

	_, ok, err := s.GetIdempotency(ctx, "/v1/hooks/items:created", keyHash)
	if err != nil || ok {
		t.Fatalf("expected miss, ok=%v err=%v", ok, err)
	}

	rec := IdempotencyRecord{
		StatusCode: 200,
		BodyJSON:   []byte(`{"ok":true}`),
		CreatedAt:  time.Now().UTC(),
		ExpiresAt:  time.Now().UTC().Add(time.Hour),
	}
	if err := s.PutIdempotency(ctx, "/v1/hooks/items:created", keyHash, rec); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := s.GetIdempotency(ctx, "/v1/hooks/items:created", keyHash)
	if err != nil || !ok {
		t.Fatalf("expected hit, ok=%v err=%v", ok, err)
	}
	if got.StatusCode != 200 || string(got.BodyJSON) != `{"ok":true}` {
		t.Fatalf("record: %+v", got)
	}

	// Different endpoint, same key: miss.
	_, ok, _ = s.GetIdempotency(ctx, "/v1/hooks/items:updated", keyHash)
	if ok {
		t.Fatalf("idempotency must be endpoint-scoped")
	}
}

func TestMemoryStore_IdempotencyExpiry(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	rec := IdempotencyRecord{
		StatusCode: 200,
		BodyJSON:   []byte(`{}`),
		CreatedAt:  time.Now().UTC().Add(-2 * time.Hour),
		ExpiresAt:  time.Now().UTC().Add(-time.Hour),
	}
	_ = s.PutIdempotency(ctx, "/x", "k", rec)

	_, ok, _ := s.GetIdempotency(ctx, "/x", "k")
	if ok {
		t.Fatalf("expired record must be a miss")
	}
}
