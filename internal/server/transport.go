package server

import (
	"time"

	"github.com/gorilla/websocket"

	"github.com/rberlich/workdispatch/internal/codec"
)

const (
	writeWait      = 10 * time.Second
	readWait       = 60 * time.Second
	maxMessageSize = 1 << 20 // 1 MB

	// serverHeader is advertised on every upgrade response.
	serverHeader = "workdispatch/1 async_websocket_server_session"
)

// wsMessageType returns the WebSocket frame type matching the codec's wire
// format, so binary-coded frames travel as binary frames and the
// text-coded formats travel as text frames.
func wsMessageType(f codec.Format) int {
	if f == codec.FormatBinary {
		return websocket.BinaryMessage
	}
	return websocket.TextMessage
}
