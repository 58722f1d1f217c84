package overlay

import (
	"sync"
	"time"
)

// DefaultFrameInterval approximates one animation frame at 60 Hz.
const DefaultFrameInterval = 16 * time.Millisecond

// FrameScheduler throttles reposition work to at most one run per frame
// interval, no matter how many scroll or resize events arrive. Attach one
// per open overlay and Stop it on close so no work leaks past unmount.
type FrameScheduler struct {
	mu       sync.Mutex
	interval time.Duration
	fn       func()
	pending  bool
	stopped  bool
}

// NewFrameScheduler returns a scheduler invoking fn at most once per
// interval. A zero interval falls back to DefaultFrameInterval.
func NewFrameScheduler(interval time.Duration, fn func()) *FrameScheduler {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &FrameScheduler{interval: interval, fn: fn}
}

// Request asks for a run on the next frame. Requests arriving while one is
// already pending are absorbed.
func (s *FrameScheduler) Request() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending || s.stopped {
		return
	}
	s.pending = true
	time.AfterFunc(s.interval, s.run)
}

func (s *FrameScheduler) run() {
	s.mu.Lock()
	s.pending = false
	stopped := s.stopped
	s.mu.Unlock()
	if !stopped {
		s.fn()
	}
}

// Stop prevents any further runs, including one already scheduled.
func (s *FrameScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
}
