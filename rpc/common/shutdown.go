package common

import (
	"sync"
)

// ShutdownSignal is the single-use handle for requesting graceful shutdown
// of a running server. It is returned by the server builders and must be
// retained by the caller for the server's whole running lifetime.
//
// Fire is idempotent and may be called before the server starts serving; in
// that case the server shuts down immediately once it begins running.
type ShutdownSignal struct {
	once sync.Once
	ch   chan struct{}
}

// NewShutdownSignal creates a new, unfired shutdown signal.
func NewShutdownSignal() *ShutdownSignal {
	return &ShutdownSignal{ch: make(chan struct{})}
}

// Fire requests shutdown. Calling it more than once is a no-op.
func (s *ShutdownSignal) Fire() {
	s.once.Do(func() { close(s.ch) })
}

// Done returns the channel closed when the signal has been fired.
func (s *ShutdownSignal) Done() <-chan struct{} {
	return s.ch
}

// Fired reports whether the signal has already been fired.
func (s *ShutdownSignal) Fired() bool {
	select {
	case <-s.ch:
		return true
	default:
		return false
	}
}
