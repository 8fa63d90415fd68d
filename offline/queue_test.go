package offline

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

// recordingApplier applies every intent and records the order. Keys in
// failKeys return an error instead.
type recordingApplier struct {
	applied  []string
	failKeys map[string]bool
}

func (a *recordingApplier) Apply(_ context.Context, intent Intent) error {
	if a.failKeys[intent.ClientKey] {
		return errors.New("server unreachable")
	}
	a.applied = append(a.applied, intent.ClientKey)
	return nil
}

func openQueue(t *testing.T, path string) *Queue {
	t.Helper()
	q, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { q.Close() })
	return q
}

func TestQueueSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "queue.db")

	q, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	intent, err := q.Enqueue(ctx, "inventory_transfers", map[string]any{"quantity": 5})
	if err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	if intent.ClientKey == "" {
		t.Fatal("enqueued intent must carry a client key")
	}
	if err := q.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// Simulated app restart: the capture must still be there.
	reopened := openQueue(t, path)
	pending, err := reopened.Pending(ctx)
	if err != nil {
		t.Fatalf("Pending: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("got %d pending intents after reopen, want 1", len(pending))
	}
	if pending[0].ClientKey != intent.ClientKey {
		t.Errorf("client key = %q, want %q", pending[0].ClientKey, intent.ClientKey)
	}
	if pending[0].Collection != "inventory_transfers" {
		t.Errorf("collection = %q, want inventory_transfers", pending[0].Collection)
	}
}

func TestDrainAppliesOldestFirst(t *testing.T) {
	ctx := context.Background()
	q := openQueue(t, filepath.Join(t.TempDir(), "queue.db"))

	var keys []string
	for i := 0; i < 3; i++ {
		intent, err := q.Enqueue(ctx, "inventory_transfers", map[string]int{"n": i})
		if err != nil {
			t.Fatalf("Enqueue: %v", err)
		}
		keys = append(keys, intent.ClientKey)
	}

	applier := &recordingApplier{}
	applied, err := q.Drain(ctx, applier)
	if err != nil {
		t.Fatalf("Drain: %v", err)
	}
	if applied != 3 {
		t.Errorf("applied = %d, want 3", applied)
	}
	for i, key := range keys {
		if applier.applied[i] != key {
			t.Errorf("applied[%d] = %q, want %q (capture order must hold)", i, applier.applied[i], key)
		}
	}

	count, err := q.PendingCount(ctx)
	if err != nil {
		t.Fatalf("PendingCount: %v", err)
	}
	if count != 0 {
		t.Errorf("pending count after drain = %d, want 0", count)
	}
}

func TestDrainKeepsFailedIntents(t *testing.T) {
	ctx := context.Background()
	q := openQueue(t, filepath.Join(t.TempDir(), "queue.db"))

	first, err := q.Enqueue(ctx, "inventory_transfers", map[string]int{"n": 1})
	if err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	second, err := q.Enqueue(ctx, "site_surveys", map[string]int{"n": 2})
	if err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	applier := &recordingApplier{failKeys: map[string]bool{first.ClientKey: true}}
	applied, err := q.Drain(ctx, applier)
	if err != nil {
		t.Fatalf("Drain: %v", err)
	}
	if applied != 1 {
		t.Errorf("applied = %d, want 1", applied)
	}
	if len(applier.applied) != 1 || applier.applied[0] != second.ClientKey {
		t.Errorf("applied keys = %v, want just %q", applier.applied, second.ClientKey)
	}

	// The failed intent stays queued and goes out on the next drain with
	// the same client key, so the server can de-duplicate.
	pending, err := q.Pending(ctx)
	if err != nil {
		t.Fatalf("Pending: %v", err)
	}
	if len(pending) != 1 || pending[0].ClientKey != first.ClientKey {
		t.Fatalf("pending = %v, want just the failed intent", pending)
	}

	applier.failKeys = nil
	applied, err = q.Drain(ctx, applier)
	if err != nil {
		t.Fatalf("second Drain: %v", err)
	}
	if applied != 1 {
		t.Errorf("second drain applied = %d, want 1", applied)
	}
	count, _ := q.PendingCount(ctx)
	if count != 0 {
		t.Errorf("pending count = %d, want 0", count)
	}
}

func TestDrainStopsOnCanceledContext(t *testing.T) {
	ctx := context.Background()
	q := openQueue(t, filepath.Join(t.TempDir(), "queue.db"))

	if _, err := q.Enqueue(ctx, "inventory_transfers", map[string]int{"n": 1}); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	canceled, cancel := context.WithCancel(ctx)
	cancel()

	applier := &recordingApplier{}
	if _, err := q.Drain(canceled, applier); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if len(applier.applied) != 0 {
		t.Errorf("applied %d intents under a canceled context, want 0", len(applier.applied))
	}

	count, err := q.PendingCount(ctx)
	if err != nil {
		t.Fatalf("PendingCount: %v", err)
	}
	if count != 1 {
		t.Errorf("pending count = %d, want 1", count)
	}
}
