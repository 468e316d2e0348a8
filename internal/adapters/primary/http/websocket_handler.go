package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/adapters/primary/stream"
)

// WebSocketHandler upgrades connections onto the command broadcast. It is
// the bidirectional alternative to the SSE stream; both feeds register into
// the same registry and see the same commands.
type WebSocketHandler struct {
	registry   *stream.Registry
	upgrader   websocket.Upgrader
	pingPeriod time.Duration
	logger     *slog.Logger
}

// WebSocketConfig holds the upgrade and heartbeat settings.
type WebSocketConfig struct {
	AllowedOrigins  []string
	ReadBufferSize  int
	WriteBufferSize int
	PingPeriod      time.Duration
}

// NewWebSocketHandler creates a new websocket handler. An empty
// AllowedOrigins list accepts any origin, which is only sane in development.
func NewWebSocketHandler(registry *stream.Registry, cfg WebSocketConfig, logger *slog.Logger) *WebSocketHandler {
	pingPeriod := cfg.PingPeriod
	if pingPeriod <= 0 {
		pingPeriod = 54 * time.Second
	}

	checkOrigin := func(r *http.Request) bool {
		if len(cfg.AllowedOrigins) == 0 {
			return true
		}
		origin := r.Header.Get("Origin")
		for _, allowed := range cfg.AllowedOrigins {
			if origin == allowed {
				return true
			}
		}
		return false
	}

	return &WebSocketHandler{
		registry: registry,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			CheckOrigin:     checkOrigin,
		},
		pingPeriod: pingPeriod,
		logger:     logger.With("handler", "websocket"),
	}
}

// HandleConnect handles GET /commands/ws
func (h *WebSocketHandler) HandleConnect(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		h.logger.Warn("websocket upgrade failed", "error", err, "remote", r.RemoteAddr)
		return
	}

	client := stream.NewClient()
	h.registry.Register <- client

	session := stream.NewWSSession(h.registry, client, conn, h.pingPeriod, h.logger)
	go session.WritePump()
	go session.ReadPump()
}
