package dedupe

// defaultMaxSize bounds the tracked key set.
const defaultMaxSize = 10000

// Option applies a configuration option to the tracker.
type Option func(*tracker)

// WithMaxSize sets the maximum number of keys to keep. A non-positive
// value disables eviction entirely.
func WithMaxSize(maxSize int) Option {
	return func(t *tracker) {
		t.maxSize = maxSize
	}
}
