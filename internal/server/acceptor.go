package server

import (
	"context"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rberlich/workdispatch/internal/codec"
	"github.com/rberlich/workdispatch/internal/protocol"
	"github.com/rberlich/workdispatch/internal/queue"
)

// Acceptor listens for incoming WebSocket upgrade requests and spawns one
// Session per accepted connection. It re-arms itself after every accept
// unless the controller has stopped.
type Acceptor struct {
	addr       string
	upgrader   websocket.Upgrader
	queue      *queue.Queue[protocol.Payload]
	controller *Controller
	codec      codec.Codec
	httpSrv    *http.Server
}

// NewAcceptor builds an Acceptor bound to addr, dispatching popped items
// from q and bookkeeping through ctrl.
func NewAcceptor(addr string, q *queue.Queue[protocol.Payload], ctrl *Controller, c codec.Codec) *Acceptor {
	return &Acceptor{
		addr: addr,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		queue:      q,
		controller: ctrl,
		codec:      c,
	}
}

// ListenAndServe blocks, accepting connections until Close is called. It
// returns nil on a clean shutdown.
func (a *Acceptor) ListenAndServe() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", a.handleUpgrade)
	a.httpSrv = &http.Server{Addr: a.addr, Handler: mux}

	err := a.httpSrv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Close stops accepting new connections. Sessions already running drain on
// their own; Close does not wait for them.
func (a *Acceptor) Close(ctx context.Context) error {
	if a.httpSrv == nil {
		return nil
	}
	return a.httpSrv.Shutdown(ctx)
}

func (a *Acceptor) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	if a.controller.Stopped() {
		http.Error(w, "server stopped", http.StatusServiceUnavailable)
		return
	}

	respHeader := http.Header{}
	respHeader.Set("Server", serverHeader)

	conn, err := a.upgrader.Upgrade(w, r, respHeader)
	if err != nil {
		log.Printf("[acceptor] upgrade error: %v", err)
		return
	}

	id := uuid.NewString()
	hooks := Hooks{
		NextPayload: func() (protocol.Payload, bool) {
			item, ok := a.queue.TryPop()
			if ok {
				a.controller.RecordDispatch()
			}
			return item, ok
		},
		Stopped: a.controller.Stopped,
		SignOn: func(joined bool) {
			if joined {
				a.controller.SessionJoined()
			} else {
				a.controller.SessionLeft()
			}
			log.Printf("[acceptor] session %s joined=%v (active=%d)", id, joined, a.controller.ActiveSessions())
		},
	}

	sess := NewSession(id, conn, a.codec, hooks)
	go sess.Run()
}
