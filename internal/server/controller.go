package server

import (
	"sync"
	"sync/atomic"
)

// Controller holds the process-wide counters shared by every session and
// producer: the active session count, the total dispatched-item count, and
// the shutdown flag. All three fields are read and written without any
// other lock held.
type Controller struct {
	nActiveSessions   atomic.Int64
	nPackagesServed   atomic.Int64
	serverStopped     atomic.Bool
	maxPackagesServed int64

	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewController builds a Controller with the given shutdown threshold. A
// non-positive threshold starts the controller already stopped, so a
// server configured for zero work never dispatches anything.
func NewController(maxPackagesServed int64) *Controller {
	c := &Controller{maxPackagesServed: maxPackagesServed, stopCh: make(chan struct{})}
	if maxPackagesServed <= 0 {
		c.stop()
	}
	return c
}

// Done returns a channel that is closed the instant the controller
// transitions to server_stopped, whether that happens because
// RecordDispatch crossed the threshold or because the controller was
// constructed already stopped. Callers driving the top-level shutdown
// cascade select on this instead of polling Stopped.
func (c *Controller) Done() <-chan struct{} { return c.stopCh }

func (c *Controller) stop() {
	c.stopOnce.Do(func() {
		c.serverStopped.Store(true)
		close(c.stopCh)
	})
}

// ActiveSessions returns the current number of live sessions.
func (c *Controller) ActiveSessions() int64 { return c.nActiveSessions.Load() }

// PackagesServed returns the total number of items dispatched so far.
func (c *Controller) PackagesServed() int64 { return c.nPackagesServed.Load() }

// Stopped reports whether the server has begun shutting down.
func (c *Controller) Stopped() bool { return c.serverStopped.Load() }

// SessionJoined records a newly accepted session.
func (c *Controller) SessionJoined() int64 {
	return c.nActiveSessions.Add(1)
}

// SessionLeft records a session terminating. It panics if the active count
// would go negative: that is a bug in the caller, not an operating
// condition.
func (c *Controller) SessionLeft() int64 {
	n := c.nActiveSessions.Add(-1)
	if n < 0 {
		panic("server: n_active_sessions went negative")
	}
	return n
}

// RecordDispatch is called exactly once per successful queue pop, i.e. once
// per COMPUTE a session hands to a client. If the served count was already
// at or past the threshold before this dispatch, it flips ServerStopped.
func (c *Controller) RecordDispatch() {
	prev := c.nPackagesServed.Add(1) - 1
	if prev >= c.maxPackagesServed {
		c.stop()
	}
}
