package offline

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"fieldops-backend/config"
)

// ErrQueueWrite marks a failed local enqueue. It is fatal to that single
// capture attempt only; the device keeps working.
var ErrQueueWrite = errors.New("offline queue write failed")

// Intent is one locally captured write awaiting application to the
// central store. Intents never leave the device that created them.
type Intent struct {
	Seq        int64           `json:"seq"`
	ClientKey  string          `json:"client_key"`
	Collection string          `json:"collection"`
	Payload    json.RawMessage `json:"payload"`
	CreatedAt  time.Time       `json:"created_at"`
	Synced     bool            `json:"synced"`
}

const schema = `
CREATE TABLE IF NOT EXISTS intents (
    seq        INTEGER PRIMARY KEY AUTOINCREMENT,
    client_key TEXT NOT NULL UNIQUE,
    collection TEXT NOT NULL,
    payload    TEXT NOT NULL,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    synced     INTEGER NOT NULL DEFAULT 0
);
`

// Queue is the durable per-device intent store, backed by a local SQLite
// file so captures survive process restarts.
type Queue struct {
	db *sql.DB
}

// Open opens (or creates) the queue database at path and configures
// pragmas.
func Open(path string) (*Queue, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening queue database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating queue schema: %w", err)
	}

	return &Queue{db: db}, nil
}

func (q *Queue) Close() error {
	return q.db.Close()
}

// Enqueue appends an intent for the target collection. Always local, never
// blocks on network. Each intent gets a fresh idempotency key the server
// de-duplicates on.
func (q *Queue) Enqueue(ctx context.Context, collection string, payload any) (*Intent, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding payload: %v", ErrQueueWrite, err)
	}

	intent := Intent{
		ClientKey:  uuid.NewString(),
		Collection: collection,
		Payload:    raw,
		CreatedAt:  time.Now().UTC(),
	}

	result, err := q.db.ExecContext(ctx,
		`INSERT INTO intents (client_key, collection, payload, created_at) VALUES (?, ?, ?, ?)`,
		intent.ClientKey, intent.Collection, string(raw), intent.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueueWrite, err)
	}

	intent.Seq, _ = result.LastInsertId()
	return &intent, nil
}

// Pending returns unsynced intents in creation order, oldest first, so
// causally ordered captures replay in order.
func (q *Queue) Pending(ctx context.Context) ([]Intent, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT seq, client_key, collection, payload, created_at FROM intents WHERE synced = 0 ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("listing pending intents: %w", err)
	}
	defer rows.Close()

	var intents []Intent
	for rows.Next() {
		var intent Intent
		var payload string
		if err := rows.Scan(&intent.Seq, &intent.ClientKey, &intent.Collection, &payload, &intent.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning intent: %w", err)
		}
		intent.Payload = json.RawMessage(payload)
		intents = append(intents, intent)
	}
	return intents, rows.Err()
}

// PendingCount backs the "pending sync" badge in the field UI.
func (q *Queue) PendingCount(ctx context.Context) (int, error) {
	var count int
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM intents WHERE synced = 0`).Scan(&count)
	return count, err
}

// MarkSynced flags an intent as applied centrally.
func (q *Queue) MarkSynced(ctx context.Context, seq int64) error {
	_, err := q.db.ExecContext(ctx, `UPDATE intents SET synced = 1 WHERE seq = ?`, seq)
	return err
}

// Applier applies one intent against the central store. The server side
// must treat the intent's client key as an idempotency key.
type Applier interface {
	Apply(ctx context.Context, intent Intent) error
}

// Drain replays every pending intent, oldest first. One intent failing
// does not block the rest; it stays queued for the next drain. Returns
// how many intents were applied and marked.
func (q *Queue) Drain(ctx context.Context, applier Applier) (int, error) {
	pending, err := q.Pending(ctx)
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, intent := range pending {
		if err := ctx.Err(); err != nil {
			return applied, err
		}

		if err := applier.Apply(ctx, intent); err != nil {
			// The original caller has long moved on; log and retry on the
			// next drain cycle instead of surfacing.
			config.LogError("offline", "Queue.Drain", intent.ClientKey, err)
			continue
		}
		if err := q.MarkSynced(ctx, intent.Seq); err != nil {
			config.LogError("offline", "Queue.Drain", intent.ClientKey, err)
			continue
		}
		applied++
	}
	return applied, nil
}
