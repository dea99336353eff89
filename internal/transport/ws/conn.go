package ws

import (
	"time"

	"github.com/gorilla/websocket"

	"github.com/qwisky/relay-service/internal/relay"
)

// wsConn оборачивает gorilla-соединение. Записи сериализуются через
// канал-семафор: gorilla не разрешает конкурентные WriteJSON.
type wsConn struct {
	conn         *websocket.Conn
	writeTimeout time.Duration
	sendMu       chan struct{}
	closed       chan struct{}
}

func newWSConn(c *websocket.Conn, writeTimeout time.Duration) *wsConn {
	return &wsConn{
		conn:         c,
		writeTimeout: writeTimeout,
		sendMu:       make(chan struct{}, 1),
		closed:       make(chan struct{}),
	}
}

func (c *wsConn) Send(msg relay.Message) error {
	c.sendMu <- struct{}{}
	defer func() { <-c.sendMu }()
	_ = c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))

	return c.conn.WriteJSON(msg)
}

func (c *wsConn) Close() error {
	select {
	case <-c.closed:
	default:
		close(c.closed)
	}

	return c.conn.Close()
}
