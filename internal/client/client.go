package client

import (
	"context"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rberlich/workdispatch/internal/codec"
	"github.com/rberlich/workdispatch/internal/protocol"
)

// Hooks let a caller observe the client's progress without touching its
// internals — used by the dashboard to update its counters.
type Hooks struct {
	OnFetch   func()
	OnCompute func()
	OnNoData  func()
	OnResult  func()
}

// Client runs the worker side of the conversation: it opens with GETDATA,
// always keeps a read outstanding, and hands every decoded frame to its
// own processing loop which computes the payload and writes the response.
type Client struct {
	conn  *websocket.Conn
	codec codec.Codec
	rng   *rand.Rand
	hooks Hooks
}

// Dial connects to the server at url and returns a Client ready for Run.
func Dial(url string, c codec.Codec, hooks Hooks) (*Client, error) {
	header := http.Header{}
	header.Set("User-Agent", userAgent)

	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	if err != nil {
		return nil, err
	}
	return New(conn, c, hooks), nil
}

// New wraps an already-dialed connection.
func New(conn *websocket.Conn, c codec.Codec, hooks Hooks) *Client {
	var seed [2]uint64
	seed[0] = uint64(time.Now().UnixNano())
	seed[1] = seed[0] ^ 0x2545f4914f6cdd1d
	return &Client{
		conn:  conn,
		codec: c,
		rng:   rand.New(rand.NewPCG(seed[0], seed[1])),
		hooks: hooks,
	}
}

// Run drives the client until ctx is cancelled or a fatal transport,
// codec, or protocol error occurs. It always closes conn before
// returning.
func (cl *Client) Run(ctx context.Context) error {
	defer cl.conn.Close()

	frames := make(chan *protocol.CommandContainer)
	errCh := make(chan error, 1)
	go cl.readLoop(frames, errCh)

	if err := cl.fetch(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
			cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			cl.conn.WriteMessage(websocket.CloseMessage, msg)
			return ctx.Err()

		case err := <-errCh:
			return err

		case c := <-frames:
			if err := cl.handle(c); err != nil {
				return err
			}
		}
	}
}

func (cl *Client) readLoop(frames chan<- *protocol.CommandContainer, errCh chan<- error) {
	cl.conn.SetReadLimit(maxMessageSize)
	cl.conn.SetReadDeadline(time.Now().Add(readWait))
	cl.conn.SetPongHandler(func(string) error {
		cl.conn.SetReadDeadline(time.Now().Add(readWait))
		return nil
	})

	for {
		_, raw, err := cl.conn.ReadMessage()
		if err != nil {
			errCh <- err
			return
		}
		container, err := cl.codec.Decode(raw)
		if err != nil {
			errCh <- err
			return
		}
		frames <- container
	}
}

func (cl *Client) handle(c *protocol.CommandContainer) error {
	switch c.Command {
	case protocol.Compute:
		if cl.hooks.OnCompute != nil {
			cl.hooks.OnCompute()
		}
		c.Payload.Process()
		if err := cl.send(protocol.NewCommandContainer(protocol.Result, c.Payload)); err != nil {
			return err
		}
		if cl.hooks.OnResult != nil {
			cl.hooks.OnResult()
		}
		return cl.fetch()

	case protocol.NoData, protocol.Error:
		if cl.hooks.OnNoData != nil {
			cl.hooks.OnNoData()
		}
		cl.backoff()
		return cl.fetch()

	default:
		return &protocol.ProtocolError{Reason: "unexpected command " + c.Command.String() + " from server"}
	}
}

// backoff sleeps a uniformly random integer number of milliseconds in
// [10, 50], so an idle client doesn't hot-spin against an empty server.
func (cl *Client) backoff() {
	ms := 10 + cl.rng.IntN(41)
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

func (cl *Client) fetch() error {
	if cl.hooks.OnFetch != nil {
		cl.hooks.OnFetch()
	}
	return cl.send(protocol.NewCommandContainer(protocol.GetData, nil))
}

func (cl *Client) send(c *protocol.CommandContainer) error {
	data, err := cl.codec.Encode(c)
	if err != nil {
		return err
	}
	cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return cl.conn.WriteMessage(wsMessageType(cl.codec.Format()), data)
}
