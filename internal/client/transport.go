package client

import (
	"time"

	"github.com/gorilla/websocket"

	"github.com/rberlich/workdispatch/internal/codec"
)

const (
	writeWait      = 10 * time.Second
	readWait       = 60 * time.Second
	maxMessageSize = 1 << 20 // 1 MB

	// userAgent is advertised on the dial's upgrade request.
	userAgent = "workdispatch/1 async_websocket_client"
)

func wsMessageType(f codec.Format) int {
	if f == codec.FormatBinary {
		return websocket.BinaryMessage
	}
	return websocket.TextMessage
}
