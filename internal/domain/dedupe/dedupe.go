// Package dedupe suppresses duplicate discovery and refresh requests.
package dedupe

import (
	"context"
	"strings"
	"sync"
)

// Deduper records normalized request keys so each discovery runs at most
// once while it is pending or already merged.
type Deduper interface {
	// SeenAndRecord atomically checks whether key was seen and records it
	// if not. Returns true if key was already seen.
	SeenAndRecord(ctx context.Context, key string) bool

	// Unrecord removes a key, allowing the request to be retried. Used
	// when a recorded request failed to complete (enqueue backpressure,
	// lookup failure).
	Unrecord(ctx context.Context, key string)

	Size() int64
}

// Normalize folds a request subject into a dedup key. Discovery requests
// for "Sunita Devi" and "sunita devi" are the same request.
func Normalize(kind, subject string) string {
	return kind + ":" + strings.ToLower(strings.TrimSpace(subject))
}

// tracker implements Deduper with a bounded map. When the bound is hit
// the oldest recorded key is evicted, FIFO, so long-running processes do
// not grow without limit. A non-positive max size disables eviction.
type tracker struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	order   []string
	maxSize int
}

// NewTracker creates a deduper with configuration options.
func NewTracker(opts ...Option) Deduper {
	t := &tracker{
		seen:    make(map[string]struct{}),
		maxSize: defaultMaxSize,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *tracker) SeenAndRecord(_ context.Context, key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.seen[key]; ok {
		return true
	}

	if t.maxSize > 0 && len(t.seen) >= t.maxSize {
		t.evictOldest()
	}

	t.seen[key] = struct{}{}
	t.order = append(t.order, key)
	return false
}

func (t *tracker) Unrecord(_ context.Context, key string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.seen[key]; !ok {
		return
	}
	delete(t.seen, key)
	for i, k := range t.order {
		if k == key {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

func (t *tracker) Size() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return int64(len(t.seen))
}

// evictOldest drops the earliest recorded key. Must hold t.mu.
func (t *tracker) evictOldest() {
	if len(t.order) == 0 {
		return
	}
	delete(t.seen, t.order[0])
	t.order = t.order[1:]
}
