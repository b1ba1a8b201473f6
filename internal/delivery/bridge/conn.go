package bridge

import (
	"encoding/json"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"terrimap/internal/errors"
	"terrimap/internal/infra/metrics"

	"github.com/gorilla/websocket"
)

const (
	sendBuffer     = 256
	writeWait      = 10 * time.Second
	maxMessageSize = 4 << 20
)

// sender queues outbound commands.
type sender interface {
	Send(msgType string, payload any)
}

// Conn owns one websocket. Send may be called from any goroutine; a client
// that cannot keep up with its send buffer is disconnected.
type Conn struct {
	logger       *slog.Logger
	ws           *websocket.Conn
	send         chan Message
	pingInterval time.Duration
	pongTimeout  time.Duration
	seq          atomic.Uint64

	closed    chan struct{}
	closeOnce sync.Once
}

func newConn(logger *slog.Logger, ws *websocket.Conn, pingInterval, pongTimeout time.Duration) *Conn {
	return &Conn{
		logger:       logger,
		ws:           ws,
		send:         make(chan Message, sendBuffer),
		pingInterval: pingInterval,
		pongTimeout:  pongTimeout,
		closed:       make(chan struct{}),
	}
}

// Send implements sender.
func (c *Conn) Send(msgType string, payload any) {
	msg := Message{
		Type:      msgType,
		Seq:       c.seq.Add(1),
		Timestamp: time.Now().UTC(),
	}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			c.logger.Error("Failed to encode outbound message", slog.String("type", msgType), slog.Any("error", err))
			return
		}
		msg.Payload = raw
	}

	select {
	case <-c.closed:
		return
	default:
	}

	select {
	case c.send <- msg:
		metrics.BridgeMessagesTotal.WithLabelValues("out", msgType).Inc()
	case <-c.closed:
	default:
		c.logger.Warn("Client send buffer full, disconnecting", slog.String("type", msgType))
		c.Close()
	}
}

// Close stops both pumps.
func (c *Conn) Close() {
	c.closeOnce.Do(func() {
		close(c.closed)
	})
}

// Done is closed once the connection is closing.
func (c *Conn) Done() <-chan struct{} {
	return c.closed
}

// writePump pumps queued messages and keepalive pings to the websocket.
func (c *Conn) writePump() {
	ticker := time.NewTicker(c.pingInterval)
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
	}()

	for {
		select {
		case msg := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteJSON(msg); err != nil {
				c.logger.Debug("Websocket write failed", slog.Any("error", err))
				c.Close()

				return
			}

		case <-ticker.C:
			if err := c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				c.Close()
				return
			}

		case <-c.closed:
			_ = c.ws.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait),
			)

			return
		}
	}
}

// readPump decodes inbound messages and hands them to handle until the
// client goes away.
func (c *Conn) readPump(handle func(Message)) error {
	defer c.Close()

	c.ws.SetReadLimit(maxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(c.pongTimeout))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(c.pongTimeout))
	})

	for {
		var msg Message
		if err := c.ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				return errors.Wrap(err, "read websocket")
			}

			return nil
		}
		_ = c.ws.SetReadDeadline(time.Now().Add(c.pongTimeout))
		metrics.BridgeMessagesTotal.WithLabelValues("in", inboundLabel(msg.Type)).Inc()

		handle(msg)
	}
}
