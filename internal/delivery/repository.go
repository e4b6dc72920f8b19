package delivery

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"taskbridge/internal/normalize"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Insert records a processed delivery keyed by the payload hash. It reports
// false when the same payload was already recorded, which is how replayed
// relay deliveries are recognized.
func (r *Repository) Insert(ctx context.Context, eventKind, payloadHash string, rec normalize.Record) (bool, error) {
	b, err := json.Marshal(rec)
	if err != nil {
		return false, err
	}

	const q = `
INSERT INTO webhook_deliveries (event_kind, payload_hash, record, received_at)
VALUES ($1, $2, CAST($3 AS jsonb), NOW())
ON CONFLICT (payload_hash) DO NOTHING
`
	ct, err := r.db.Exec(ctx, q, eventKind, payloadHash, string(b))
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

type Delivery struct {
	ID          string          `json:"id"`
	EventKind   string          `json:"event_kind"`
	PayloadHash string          `json:"payload_hash"`
	Record      json.RawMessage `json:"record"`
	ReceivedAt  time.Time       `json:"received_at"`
}

func (r *Repository) ListRecent(ctx context.Context, limit int) ([]Delivery, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	const q = `
SELECT id, event_kind, payload_hash, record, received_at
FROM webhook_deliveries
ORDER BY received_at DESC
LIMIT $1
`
	rows, err := r.db.Query(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Delivery{}
	for rows.Next() {
		var d Delivery
		if err := rows.Scan(&d.ID, &d.EventKind, &d.PayloadHash, &d.Record, &d.ReceivedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
