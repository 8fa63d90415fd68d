package offline

import (
	"context"
	"time"

	"fieldops-backend/config"
)

// Watcher drains the queue whenever the device regains connectivity, and
// periodically while online to keep the backlog age down.
type Watcher struct {
	Queue   *Queue
	Applier Applier
	// Online receives true on connectivity-regained and false on loss.
	// The signal comes from the device's network layer.
	Online <-chan bool
	// Interval between opportunistic drains while online. Zero disables
	// the ticker.
	Interval time.Duration
}

func (w *Watcher) Run(ctx context.Context) {
	online := false

	var tick <-chan time.Time
	if w.Interval > 0 {
		ticker := time.NewTicker(w.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case state, ok := <-w.Online:
			if !ok {
				return
			}
			wasOnline := online
			online = state
			if online && !wasOnline {
				w.drain(ctx)
			}
		case <-tick:
			if online {
				w.drain(ctx)
			}
		}
	}
}

func (w *Watcher) drain(ctx context.Context) {
	applied, err := w.Queue.Drain(ctx, w.Applier)
	if err != nil {
		config.LogError("offline", "Watcher.drain", nil, err)
		return
	}
	if applied > 0 {
		config.GetLogger().WithField("applied", applied).Info("offline queue drained")
	}
}
