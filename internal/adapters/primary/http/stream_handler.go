package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/lucascardosonobody/roleta-raspadinha2/internal/adapters/primary/stream"
)

// StreamHandler serves the SSE command feed. Each connection registers a
// client in the broadcast registry and relays commands as `data:` frames
// until the peer goes away.
type StreamHandler struct {
	registry  *stream.Registry
	heartbeat time.Duration
	logger    *slog.Logger
}

// NewStreamHandler creates a new SSE stream handler.
func NewStreamHandler(registry *stream.Registry, heartbeat time.Duration, logger *slog.Logger) *StreamHandler {
	if heartbeat <= 0 {
		heartbeat = 15 * time.Second
	}
	return &StreamHandler{
		registry:  registry,
		heartbeat: heartbeat,
		logger:    logger.With("handler", "stream"),
	}
}

// HandleStream handles GET /commands/stream
func (h *StreamHandler) HandleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	// The server's WriteTimeout covers the whole response. Left in place it
	// would sever the stream at the first write past the deadline, so the
	// connection lives until the peer goes away instead.
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil {
		h.logger.Warn("could not clear write deadline", "error", err)
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	client := stream.NewClient()
	h.registry.Register <- client
	defer func() {
		h.registry.Unregister <- client
	}()

	// Initial event so clients know the stream is live.
	fmt.Fprintf(w, "event: connected\ndata: {\"connectionId\":%q}\n\n", client.ID)
	flusher.Flush()

	heartbeat := time.NewTicker(h.heartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return

		case cmd, open := <-client.Send:
			if !open {
				// Registry dropped us (send buffer overflow).
				return
			}
			payload, err := json.Marshal(cmd)
			if err != nil {
				h.logger.Error("failed to encode command", "error", err, "kind", cmd.Kind)
				continue
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
				return
			}
			flusher.Flush()

		case <-heartbeat.C:
			// Comment frame keeps proxies from closing idle connections.
			if _, err := fmt.Fprintf(w, ":heartbeat %d\n\n", time.Now().UnixMilli()); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
