package chart

import "sync"

// FrameRequester is the host's "run on next tick" primitive. Implementations
// schedule fn for the next animation frame and return a cancel function that
// prevents the callback if it has not fired yet.
type FrameRequester interface {
	RequestFrame(fn func()) (cancel func())
}

// FrameRequesterFunc adapts a plain function to the FrameRequester interface.
type FrameRequesterFunc func(fn func()) (cancel func())

func (f FrameRequesterFunc) RequestFrame(fn func()) (cancel func()) {
	return f(fn)
}

// FrameScheduler coalesces invalidations into at most one paint per frame.
// It keeps a single two-state pending flag guarding one outstanding frame
// request: invalidating while a request is pending is a no-op, and a frame
// with no pending invalidation paints nothing.
type FrameScheduler struct {
	mu        sync.Mutex
	requester FrameRequester
	paint     func()
	pending   bool
	cancel    func()
	stopped   bool
}

// NewFrameScheduler creates a scheduler that runs paint on the frame
// following an invalidation.
func NewFrameScheduler(requester FrameRequester, paint func()) *FrameScheduler {
	return &FrameScheduler{
		requester: requester,
		paint:     paint,
	}
}

// Invalidate marks the chart dirty and requests a frame unless one is
// already outstanding.
func (s *FrameScheduler) Invalidate() {
	s.mu.Lock()

	if s.stopped || s.pending {
		s.mu.Unlock()

		return
	}

	s.pending = true
	s.mu.Unlock()

	cancel := s.requester.RequestFrame(s.onFrame)

	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()
}

func (s *FrameScheduler) onFrame() {
	s.mu.Lock()

	if s.stopped || !s.pending {
		s.mu.Unlock()

		return
	}

	s.pending = false
	s.cancel = nil
	s.mu.Unlock()

	s.paint()
}

// Pending reports whether a frame request is outstanding.
func (s *FrameScheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.pending
}

// Stop cancels any outstanding frame request. Further invalidations are
// ignored; painting into a torn-down surface is never attempted.
func (s *FrameScheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.pending = false
	s.stopped = true
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}
