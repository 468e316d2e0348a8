// Package stream implements the broadcast registry: the set of live client
// connections commands are fanned out to. Connections are transport
// agnostic; the SSE and WebSocket handlers both register plain clients here.
package stream

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/domain"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/ports"
)

// Registry maintains the set of live connections and broadcasts commands to
// them.
type Registry struct {
	// clients maps connection IDs to their client handle.
	clients map[uuid.UUID]*Client

	// broadcast carries commands into the run loop.
	broadcast chan domain.Command

	// Register requests from new connections.
	Register chan *Client

	// Unregister requests from closing connections.
	Unregister chan *Client

	// mu protects the clients map.
	mu sync.RWMutex

	logger *slog.Logger
}

// Ensure Registry implements the CommandBroadcaster interface.
var _ ports.CommandBroadcaster = (*Registry)(nil)

// NewRegistry creates a new broadcast registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		clients:    make(map[uuid.UUID]*Client),
		broadcast:  make(chan domain.Command, 256),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		logger:     logger.With("component", "broadcast_registry"),
	}
}

// Broadcast queues a command for fan-out to every registered connection.
// This method implements the ports.CommandBroadcaster interface.
func (r *Registry) Broadcast(cmd domain.Command) {
	select {
	case r.broadcast <- cmd:
	default:
		r.logger.Warn("broadcast channel full, dropping command", "kind", cmd.Kind)
	}
}

// Run starts the registry's event loop. This MUST be run as a goroutine.
func (r *Registry) Run() {
	for {
		select {
		case client := <-r.Register:
			r.registerClient(client)

		case client := <-r.Unregister:
			r.unregisterClient(client)

		case cmd := <-r.broadcast:
			r.broadcastCommand(cmd)
		}
	}
}

func (r *Registry) registerClient(client *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.clients[client.ID] = client

	r.logger.Info("client connected",
		"connection_id", client.ID,
		"total_connections", len(r.clients),
	)
}

// unregisterClient removes a client. Safe to call repeatedly or for a
// client that was never registered; both are no-ops beyond closing the
// send channel.
func (r *Registry) unregisterClient(client *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.clients[client.ID]; ok {
		delete(r.clients, client.ID)
		r.logger.Info("client disconnected",
			"connection_id", client.ID,
			"total_connections", len(r.clients),
		)
	}

	client.CloseSend()
}

// broadcastCommand delivers a command to every registered connection. A
// client whose send buffer is full is treated as gone: it is scheduled for
// removal and the remaining clients still receive the command.
func (r *Registry) broadcastCommand(cmd domain.Command) {
	r.mu.RLock()
	clients := make([]*Client, 0, len(r.clients))
	for _, client := range r.clients {
		clients = append(clients, client)
	}
	r.mu.RUnlock()

	r.logger.Debug("broadcasting command",
		"kind", cmd.Kind,
		"client_count", len(clients),
	)

	for _, client := range clients {
		select {
		case client.Send <- cmd:
			// Successfully queued
		default:
			r.logger.Warn("client send buffer full, unregistering",
				"connection_id", client.ID,
			)
			go func(c *Client) { r.Unregister <- c }(client)
		}
	}
}

// Size returns the number of live connections, reported back to the admin
// as delivery confirmation metadata.
func (r *Registry) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}
