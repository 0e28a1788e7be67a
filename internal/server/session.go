package server

import (
	"log"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rberlich/workdispatch/internal/codec"
	"github.com/rberlich/workdispatch/internal/protocol"
)

// Session runs the server side of one client connection: a strict
// read-process-write loop with no overlapping reads or writes at the
// application layer. It owns exactly one goroutine for its entire
// lifetime.
type Session struct {
	id    string
	conn  *websocket.Conn
	codec codec.Codec
	hooks Hooks
}

// NewSession wraps an already-upgraded connection. Run must be called to
// drive it; NewSession performs no I/O.
func NewSession(id string, conn *websocket.Conn, c codec.Codec, hooks Hooks) *Session {
	return &Session{id: id, conn: conn, codec: c, hooks: hooks}
}

// Run drives the session until the connection closes, a transport error
// occurs, a protocol violation is detected, or the server has stopped and
// this session's next write has completed. It always closes conn before
// returning.
func (s *Session) Run() {
	defer s.conn.Close()

	s.hooks.SignOn(true)
	defer s.hooks.SignOn(false)

	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(readWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(readWait))
		return nil
	})

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[session %s] read error: %v", s.id, err)
			}
			return
		}

		container, err := s.codec.Decode(raw)
		if err != nil {
			log.Printf("[session %s] decode error: %v", s.id, err)
			return
		}

		resp, perr := s.process(container)
		if perr != nil {
			s.closeProtocolError(perr)
			return
		}

		if err := s.write(resp); err != nil {
			log.Printf("[session %s] write error: %v", s.id, err)
			return
		}

		if s.hooks.Stopped() {
			return
		}
	}
}

// process implements the session's request/response rule: GETDATA and
// ERROR both attempt a dispatch; RESULT first checks that its payload was
// actually processed, then also attempts a dispatch; anything else is a
// protocol violation.
func (s *Session) process(c *protocol.CommandContainer) (*protocol.CommandContainer, *protocol.ProtocolError) {
	if err := c.Validate(); err != nil {
		if pe, ok := err.(*protocol.ProtocolError); ok {
			return nil, pe
		}
		return nil, &protocol.ProtocolError{Reason: err.Error()}
	}

	switch c.Command {
	case protocol.GetData, protocol.Error:
		return s.dispatch(), nil
	case protocol.Result:
		if !c.Payload.IsProcessed() {
			return nil, &protocol.ProtocolError{Reason: "RESULT payload was not processed"}
		}
		return s.dispatch(), nil
	default:
		return nil, &protocol.ProtocolError{Reason: "unexpected command " + c.Command.String()}
	}
}

func (s *Session) dispatch() *protocol.CommandContainer {
	item, ok := s.hooks.NextPayload()
	if !ok {
		return protocol.NewCommandContainer(protocol.NoData, nil)
	}
	return protocol.NewCommandContainer(protocol.Compute, item)
}

func (s *Session) write(c *protocol.CommandContainer) error {
	data, err := s.codec.Encode(c)
	if err != nil {
		return err
	}
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(wsMessageType(s.codec.Format()), data)
}

func (s *Session) closeProtocolError(pe *protocol.ProtocolError) {
	log.Printf("[session %s] protocol error: %v", s.id, pe)
	msg := websocket.FormatCloseMessage(websocket.CloseProtocolError, pe.Reason)
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	s.conn.WriteMessage(websocket.CloseMessage, msg)
}
