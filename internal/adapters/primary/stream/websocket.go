package stream

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/domain"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Maximum message size allowed from peer. Clients on this channel are
	// listeners; anything they send beyond keep-alives is ignored.
	maxMessageSize = 512
)

// WSSession binds a registered client to a websocket connection and runs
// the usual pumps: reads only to detect the close, writes every broadcast
// command as a JSON text message.
type WSSession struct {
	registry *Registry
	client   *Client
	conn     *websocket.Conn

	// pingPeriod is the idle heartbeat interval; a failed ping follows the
	// same removal path as a failed broadcast write.
	pingPeriod time.Duration

	logger *slog.Logger
}

// NewWSSession creates a session; the caller starts ReadPump and WritePump
// in their own goroutines.
func NewWSSession(registry *Registry, client *Client, conn *websocket.Conn, pingPeriod time.Duration, logger *slog.Logger) *WSSession {
	return &WSSession{
		registry:   registry,
		client:     client,
		conn:       conn,
		pingPeriod: pingPeriod,
		logger:     logger.With("connection_id", client.ID.String()),
	}
}

// ReadPump discards inbound frames and unregisters the client the moment
// the transport closes. This method runs in its own goroutine.
func (s *WSSession) ReadPump() {
	defer func() {
		s.registry.Unregister <- s.client
		_ = s.conn.Close()
	}()

	s.conn.SetReadLimit(maxMessageSize)
	if err := s.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		s.logger.Error("failed to set read deadline", "error", err)
		return
	}
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				s.logger.Warn("websocket read error", "error", err)
			}
			return
		}
	}
}

// WritePump forwards broadcast commands to the peer and pings it on the
// heartbeat interval. This method runs in its own goroutine.
func (s *WSSession) WritePump() {
	ticker := time.NewTicker(s.pingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case cmd, ok := <-s.client.Send:
			if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				s.logger.Error("failed to set write deadline", "error", err)
				return
			}

			if !ok {
				// The registry closed the channel.
				_ = s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := s.writeJSON(cmd); err != nil {
				s.logger.Error("failed to write command", "error", err)
				return
			}

		case <-ticker.C:
			if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				s.logger.Error("failed to set write deadline for ping", "error", err)
				return
			}
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.logger.Debug("failed to send ping", "error", err)
				return
			}
		}
	}
}

func (s *WSSession) writeJSON(cmd domain.Command) error {
	w, err := s.conn.NextWriter(websocket.TextMessage)
	if err != nil {
		return err
	}

	if err := json.NewEncoder(w).Encode(cmd); err != nil {
		_ = w.Close()
		return err
	}

	return w.Close()
}
