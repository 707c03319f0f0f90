package state

import (
	"context"
	"sync"
	"time"
)

type MemoryStore struct {
	mu sync.RWMutex

	records map[string]SyncRecord            // item_code -> record
	idem    map[string]map[string]IdempotencyRecord // endpoint -> keyhash -> record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]SyncRecord),
		idem:    make(map[string]map[string]IdempotencyRecord),
	}
}

func (s *MemoryStore) GetExternalID(ctx context.Context, itemCode string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[itemCode]
	if !ok {
		return "", false, nil
	}
	return rec.ExternalID, true, nil
}

func (s *MemoryStore) UpsertExternalID(ctx context.Context, itemCode string, externalID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()

	rec, ok := s.records[itemCode]
	if ok && rec.ExternalID == externalID {
		// Redundant write; keep timestamps stable.
		return nil
	}

	if !ok {
		rec = SyncRecord{ItemCode: itemCode, CreatedAt: now}
	}
	rec.ExternalID = externalID
	rec.UpdatedAt = now
	s.records[itemCode] = rec
	return nil
}

func (s *MemoryStore) GetIdempotency(ctx context.Context, endpoint string, idemKeyHash string) (IdempotencyRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ep, ok := s.idem[endpoint]
	if !ok {
		return IdempotencyRecord{}, false, nil
	}
	rec, ok := ep[idemKeyHash]
	if !ok {
		return IdempotencyRecord{}, false, nil
	}

	if time.Now().UTC().After(rec.ExpiresAt) {
		return IdempotencyRecord{}, false, nil
	}

	return rec, true, nil
}

func (s *MemoryStore) PutIdempotency(ctx context.Context, endpoint string, idemKeyHash string, rec IdempotencyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ep, ok := s.idem[endpoint]
	if !ok {
		ep = make(map[string]IdempotencyRecord)
		s.idem[endpoint] = ep
	}
	ep[idemKeyHash] = rec
	return nil
}
