package server

import "github.com/rberlich/workdispatch/internal/protocol"

// Hooks are the three callbacks an Acceptor hands to every Session, so a
// Session never reaches into the queue or controller directly.
type Hooks struct {
	// NextPayload pops the next work item, if any is queued.
	NextPayload func() (protocol.Payload, bool)
	// Stopped reports whether the server has begun shutting down.
	Stopped func() bool
	// SignOn records a session joining (true) or leaving (false).
	SignOn func(joined bool)
}
