package timing

import "time"

// WithMinimumDuration runs fn and does not return before minimum has
// elapsed since the call started. It pads the tail, never delays fn itself.
//
// The search form uses it to keep a loading indicator visible long enough
// to avoid flicker when the lookup responds faster than the indicator can
// be perceived. Call it from a goroutine; it blocks.
func WithMinimumDuration[T any](minimum time.Duration, fn func() (T, error)) (T, error) {
	start := time.Now()
	v, err := fn()
	if remaining := minimum - time.Since(start); remaining > 0 {
		time.Sleep(remaining)
	}
	return v, err
}
