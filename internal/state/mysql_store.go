package state

import (
	"context"
	"database/sql"
	"time"
)

type MySQLStore struct {
	db *sql.DB
}

func NewMySQLStore(db *sql.DB) *MySQLStore {
	return &MySQLStore{db: db}
}

func (s *MySQLStore) GetExternalID(ctx context.Context, itemCode string) (string, bool, error) {
	var id string
	err := s.db.QueryRowContext(
		ctx,
		`SELECT external_product_id FROM sync_records WHERE item_code = ?`,
		itemCode,
	).Scan(&id)

	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return id, true, nil
}

func (s *MySQLStore) UpsertExternalID(ctx context.Context, itemCode string, externalID string) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO sync_records (item_code, external_product_id)
		 VALUES (?, ?)
		 ON DUPLICATE KEY UPDATE external_product_id = VALUES(external_product_id)`,
		itemCode, externalID,
	)
	return err
}

func (s *MySQLStore) GetIdempotency(ctx context.Context, endpoint string, idemKeyHash string) (IdempotencyRecord, bool, error) {
	var status int
	var body []byte
	var created time.Time
	var expires time.Time

	err := s.db.QueryRowContext(
		ctx,
		`SELECT status_code, response_body_json, created_at, expires_at
		 FROM idempotency
		 WHERE endpoint = ? AND idem_key_hash = ?`,
		endpoint, idemKeyHash,
	).Scan(&status, &body, &created, &expires)

	if err == sql.ErrNoRows {
		return IdempotencyRecord{}, false, nil
	}
	if err != nil {
		return IdempotencyRecord{}, false, err
	}

	if time.Now().UTC().After(expires.UTC()) {
		return IdempotencyRecord{}, false, nil
	}

	return IdempotencyRecord{
		StatusCode: status,
		BodyJSON:   body,
		CreatedAt:  created.UTC(),
		ExpiresAt:  expires.UTC(),
	}, true, nil
}

func (s *MySQLStore) PutIdempotency(ctx context.Context, endpoint string, idemKeyHash string, rec IdempotencyRecord) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO idempotency (endpoint, idem_key_hash, status_code, response_body_json, created_at, expires_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON DUPLICATE KEY UPDATE
			status_code = VALUES(status_code),
			response_body_json = VALUES(response_body_json),
			expires_at = VALUES(expires_at)`,
		endpoint, idemKeyHash, rec.StatusCode, rec.BodyJSON, rec.CreatedAt.UTC(), rec.ExpiresAt.UTC(),
	)
	return err
}
