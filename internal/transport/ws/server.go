package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/qwisky/relay-service/internal/relay"
)

// Relay — контракт ядра, который нужен транспорту: соединение пришло,
// соединение прислало событие, соединение закрылось.
type Relay interface {
	Connect(c relay.Conn) string
	HandleEvent(connID string, msg relay.Message)
	Disconnect(connID string)
}

type Config struct {
	PingInterval    time.Duration
	WriteTimeout    time.Duration
	MaxMessageBytes int64
	AllowedOrigins  []string
}

type Server struct {
	upgrader websocket.Upgrader
	relay    Relay

	pingEvery       time.Duration
	writeTimeout    time.Duration
	maxMessageBytes int64
}

func NewServer(r Relay, cfg Config) *Server {
	pingEvery := cfg.PingInterval
	if pingEvery <= 0 {
		pingEvery = 15 * time.Second
	}
	writeTimeout := cfg.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = 5 * time.Second
	}
	maxBytes := cfg.MaxMessageBytes
	if maxBytes <= 0 {
		maxBytes = 1 << 20
	}

	return &Server{
		relay: r,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(cfg.AllowedOrigins),
		},
		pingEvery:       pingEvery,
		writeTimeout:    writeTimeout,
		maxMessageBytes: maxBytes,
	}
}

// WS endpoint: GET /socket
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("ws upgrade failed", "err", err)
		return
	}

	c := newWSConn(conn, s.writeTimeout)
	connID := s.relay.Connect(c)

	go s.writeLoop(c)
	s.readLoop(c, connID)

	// Отключение синхронно выводит соединение из всех комнат;
	// дальше ему ничего не доставляется.
	s.relay.Disconnect(connID)

	if err := c.Close(); err != nil {
		slog.Debug("ws close failed", "conn", connID, "err", err)
	}
}

func (s *Server) readLoop(c *wsConn, connID string) {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(s.maxMessageBytes)
	_ = c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			break
		}
		var msg relay.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			slog.Debug("malformed frame dropped", "conn", connID, "err", err)
			continue
		}
		s.relay.HandleEvent(connID, msg)
	}
}

func (s *Server) writeLoop(c *wsConn) {
	ticker := time.NewTicker(s.pingEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(s.writeTimeout))
		case <-c.closed:
			return
		}
	}
}

// originChecker повторяет политику исходника: в dev-конфиге список пуст
// и берётся любой Origin, в prod сверяется со списком.
func originChecker(allowed []string) func(*http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}

	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[o] = struct{}{}
	}

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true // не-браузерные клиенты
		}
		_, ok := set[origin]
		return ok
	}
}
